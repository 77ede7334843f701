// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"swipebite/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumDishes   int
	ShouldClean bool
}

// Run populates the database with cuisines, dishes, users, and a
// realistic spread of interactions.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 25
	}
	if opts.NumDishes <= 0 {
		opts.NumDishes = 120
	}

	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return fmt.Errorf("cleaning tables: %w", err)
		}
	}

	f := NewFactory(db)

	cuisines, err := f.CreateCuisines()
	if err != nil {
		return fmt.Errorf("seeding cuisines: %w", err)
	}
	log.Printf("Seeded %d cuisines", len(cuisines))

	dishes, err := f.CreateDishes(cuisines, opts.NumDishes)
	if err != nil {
		return fmt.Errorf("seeding dishes: %w", err)
	}
	log.Printf("Seeded %d dishes", len(dishes))

	users, err := f.CreateUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}
	log.Printf("Seeded %d users", len(users))

	if err := f.CreateInteractions(users, dishes); err != nil {
		return fmt.Errorf("seeding interactions: %w", err)
	}
	log.Println("Seeded interactions")

	return nil
}

// Clean truncates all seeded tables. Order matters because of foreign keys.
func Clean(db *gorm.DB) error {
	tables := []string{
		"assistant_query_logs", "user_badges", "weekly_rankings", "trending_dishes",
		"review_helpfuls", "reviews", "favorites", "swipe_actions",
		"restaurant_dishes", "restaurants", "dishes", "cuisines", "users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rnd *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var cuisinePresets = []models.Cuisine{
	{Name: "Thai", Emoji: "🍜", Description: "Bold, aromatic, and balanced between sweet, sour, and spicy."},
	{Name: "Mexican", Emoji: "🌮", Description: "Corn, chiles, and slow-cooked meats."},
	{Name: "Italian", Emoji: "🍝", Description: "Pasta, tomatoes, olive oil, and regional classics."},
	{Name: "Japanese", Emoji: "🍣", Description: "Clean flavors, seasonal fish, and precise technique."},
	{Name: "Indian", Emoji: "🍛", Description: "Layered spices, curries, and breads."},
	{Name: "American", Emoji: "🍔", Description: "Comfort food, grills, and diner staples."},
	{Name: "Mediterranean", Emoji: "🥙", Description: "Fresh vegetables, legumes, and olive oil."},
	{Name: "Korean", Emoji: "🍲", Description: "Fermented depth, barbecue, and banchan."},
	{Name: "Vietnamese", Emoji: "🍲", Description: "Fresh herbs, light broths, and bright flavors."},
	{Name: "Ethiopian", Emoji: "🫓", Description: "Injera, rich stews, and berbere spice."},
}

// CreateCuisines inserts the fixed cuisine catalog.
func (f *Factory) CreateCuisines() ([]models.Cuisine, error) {
	cuisines := make([]models.Cuisine, len(cuisinePresets))
	copy(cuisines, cuisinePresets)
	if err := f.db.Create(&cuisines).Error; err != nil {
		return nil, err
	}
	return cuisines, nil
}

var mealTypes = []string{
	models.MealBreakfast, models.MealLunch, models.MealDinner,
	models.MealSnack, models.MealDessert,
}

// BuildDish constructs a dish without persisting it.
func (f *Factory) BuildDish(cuisine *models.Cuisine) *models.Dish {
	isVegetarian := f.rnd.Intn(100) < 30
	isVegan := isVegetarian && f.rnd.Intn(100) < 40

	dish := &models.Dish{
		Name:         gofakeit.Dinner(),
		Description:  gofakeit.Sentence(12),
		CuisineID:    &cuisine.ID,
		Calories:     150 + f.rnd.Intn(900),
		Protein:      5 + f.rnd.Intn(50),
		Carbs:        10 + f.rnd.Intn(90),
		Fat:          2 + f.rnd.Intn(40),
		MealType:     mealTypes[f.rnd.Intn(len(mealTypes))],
		IsVegetarian: isVegetarian,
		IsVegan:      isVegan,
		IsGlutenFree: f.rnd.Intn(100) < 20,
		SpiceLevel:   f.rnd.Intn(6),
		PriceTier:    models.PriceTierMin + f.rnd.Intn(models.PriceTierMax),
		ImageURL:     fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		IsActive:     true,
	}
	return dish
}

// CreateDishes persists count dishes spread across the cuisines.
func (f *Factory) CreateDishes(cuisines []models.Cuisine, count int) ([]models.Dish, error) {
	dishes := make([]models.Dish, 0, count)
	for i := 0; i < count; i++ {
		cuisine := &cuisines[f.rnd.Intn(len(cuisines))]
		dishes = append(dishes, *f.BuildDish(cuisine))
	}
	if err := f.db.Create(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

var dietTypes = []string{
	models.DietNone, models.DietNone, models.DietNone, // weighted toward none
	models.DietVegetarian, models.DietVegan, models.DietPescatarian,
	models.DietKeto, models.DietHalal, models.DietKosher,
}

// CreateUsers persists count users with a shared demo password.
func (f *Factory) CreateUsers(count int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		users = append(users, models.User{
			Username:         fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:            fmt.Sprintf("user%d@%s", i, gofakeit.DomainName()),
			PasswordHash:     string(hash),
			City:             gofakeit.City(),
			Bio:              gofakeit.Sentence(8),
			DietType:         dietTypes[f.rnd.Intn(len(dietTypes))],
			DailyCalorieGoal: 1500 + f.rnd.Intn(1500),
			MaxDistanceMiles: float64(1 + f.rnd.Intn(20)),
		})
	}
	if err := f.db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreateInteractions spreads swipes, favorites, and reviews over the
// past 30 days so trending and weekly rankings have signal.
func (f *Factory) CreateInteractions(users []models.User, dishes []models.Dish) error {
	for i := range users {
		user := &users[i]
		swiped := f.rnd.Perm(len(dishes))
		numSwipes := 10 + f.rnd.Intn(40)
		if numSwipes > len(dishes) {
			numSwipes = len(dishes)
		}

		for _, di := range swiped[:numSwipes] {
			dish := &dishes[di]
			direction := models.SwipeLeft
			liked := f.rnd.Intn(100) < 60
			if liked {
				direction = models.SwipeRight
			}
			createdAt := f.pastTimestamp(30)

			if err := f.db.Create(&models.SwipeAction{
				UserID:    user.ID,
				DishID:    dish.ID,
				Direction: direction,
				CreatedAt: createdAt,
			}).Error; err != nil {
				return err
			}
			if !liked {
				continue
			}

			if f.rnd.Intn(100) < 25 {
				if err := f.db.Create(&models.Favorite{
					UserID:    user.ID,
					DishID:    dish.ID,
					Notes:     gofakeit.Sentence(6),
					CreatedAt: createdAt.Add(time.Hour),
				}).Error; err != nil {
					return err
				}
			}
			if f.rnd.Intn(100) < 30 {
				if err := f.db.Create(&models.Review{
					UserID:    user.ID,
					DishID:    dish.ID,
					Rating:    2 + f.rnd.Intn(4),
					Title:     gofakeit.Sentence(4),
					Content:   gofakeit.Paragraph(1, 2, 8, " "),
					CreatedAt: createdAt.Add(2 * time.Hour),
				}).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (f *Factory) pastTimestamp(maxDays int) time.Time {
	daysBack := f.rnd.Intn(maxDays)
	hoursBack := f.rnd.Intn(24)
	minsBack := f.rnd.Intn(60)
	return time.Now().UTC().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)
}
