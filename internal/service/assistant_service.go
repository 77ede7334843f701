package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"swipebite/internal/models"
	"swipebite/internal/observability"
	"swipebite/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RecommendMaxK      = 25
	maxChatMessageLen  = 1000
	maxSuggestionsChat = 3

	healthyMaxCalories = 500
	budgetPriceTier    = 2
)

// AssistantService answers food questions with a fixed keyword rule
// table and ranks dish suggestions from stored ratings and trending
// scores. There is no model behind it and no retrieval; every reply is
// deterministic for a given database state.
type AssistantService struct {
	dishRepo      repository.DishRepository
	reviewRepo    repository.ReviewRepository
	rankingRepo   repository.RankingRepository
	userRepo      repository.UserRepository
	assistantRepo repository.AssistantRepository

	defaultK int
	now      func() time.Time
	newID    func() string
}

type ChatInput struct {
	UserID         uint
	Message        string
	ConversationID string
}

func NewAssistantService(
	dishRepo repository.DishRepository,
	reviewRepo repository.ReviewRepository,
	rankingRepo repository.RankingRepository,
	userRepo repository.UserRepository,
	assistantRepo repository.AssistantRepository,
	defaultK int,
) *AssistantService {
	if defaultK <= 0 {
		defaultK = 5
	}
	return &AssistantService{
		dishRepo:      dishRepo,
		reviewRepo:    reviewRepo,
		rankingRepo:   rankingRepo,
		userRepo:      userRepo,
		assistantRepo: assistantRepo,
		defaultK:      defaultK,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// Recommend returns up to k dishes matching every constraint, best-rated
// first. Keywords extracted from the free-text query fill in whatever the
// structured preferences leave unset; all constraints apply together.
// No matches is an empty list, not an error.
func (s *AssistantService) Recommend(ctx context.Context, userID uint, query string, prefs models.Preferences, k int) ([]*models.Dish, error) {
	if k <= 0 {
		k = s.defaultK
	}
	if k > RecommendMaxK {
		k = RecommendMaxK
	}
	if err := validatePreferences(prefs); err != nil {
		return nil, err
	}
	return s.recommendWithFilter(ctx, filterFromPreferences(prefs), strings.ToLower(query), k)
}

func (s *AssistantService) recommendWithFilter(ctx context.Context, filter repository.DishFilter, query string, k int) ([]*models.Dish, error) {
	if strings.TrimSpace(query) != "" {
		if err := s.applyQueryKeywords(ctx, query, &filter); err != nil {
			return nil, err
		}
	}
	candidates, err := s.dishRepo.Filter(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.rankDishes(ctx, candidates, k)
}

// applyQueryKeywords scans a lowercased free-text query against the fixed
// vocabulary and tightens filter fields left unset. Cuisine names come
// from the database; everything else is a small word list.
func (s *AssistantService) applyQueryKeywords(ctx context.Context, query string, filter *repository.DishFilter) error {
	if filter.CuisineName == "" {
		names, err := s.dishRepo.CuisineNames(ctx)
		if err != nil {
			return err
		}
		for _, name := range names {
			if strings.Contains(query, strings.ToLower(name)) {
				filter.CuisineName = name
				break
			}
		}
	}
	if filter.MealType == "" {
		for _, meal := range []string{
			models.MealBreakfast, models.MealLunch, models.MealDinner,
			models.MealSnack, models.MealDessert,
		} {
			if strings.Contains(query, meal) {
				filter.MealType = meal
				break
			}
		}
	}
	if filter.Diet == "" {
		switch {
		case strings.Contains(query, "vegan"):
			filter.Diet = models.DietVegan
		case strings.Contains(query, "vegetarian"):
			filter.Diet = models.DietVegetarian
		case strings.Contains(query, "gluten"):
			filter.Diet = "gluten_free"
		}
	}
	if matchesAny(query, []string{"spicy", "spice"}) {
		filter.Spicy = true
	}
	if filter.MaxCalories == 0 && matchesAny(query, []string{"healthy", "low calorie"}) {
		filter.MaxCalories = healthyMaxCalories
	}
	if filter.PriceTier == 0 && matchesAny(query, []string{"cheap", "budget", "affordable"}) {
		filter.PriceTier = budgetPriceTier
	}
	return nil
}

func validatePreferences(prefs models.Preferences) error {
	switch prefs.Diet {
	case "", models.DietVegetarian, models.DietVegan, "gluten_free":
	default:
		return models.NewValidationError("Diet must be one of: vegetarian, vegan, gluten_free")
	}
	if prefs.MaxCalories < 0 {
		return models.NewValidationError("Max calories cannot be negative")
	}
	if prefs.PriceTier < 0 || prefs.PriceTier > models.PriceTierMax {
		return models.NewValidationError("Price tier must be between 1 and 4")
	}
	return nil
}

func filterFromPreferences(prefs models.Preferences) repository.DishFilter {
	return repository.DishFilter{
		CuisineName: prefs.Cuisine,
		Diet:        prefs.Diet,
		MaxCalories: prefs.MaxCalories,
		PriceTier:   prefs.PriceTier,
	}
}

// rankDishes orders candidates by average rating, then trending score,
// then dish ID, and keeps the top k.
func (s *AssistantService) rankDishes(ctx context.Context, candidates []*models.Dish, k int) ([]*models.Dish, error) {
	if len(candidates) == 0 {
		return []*models.Dish{}, nil
	}

	ids := make([]uint, len(candidates))
	for i, d := range candidates {
		ids[i] = d.ID
	}
	averages, err := s.reviewRepo.AveragesByDish(ctx, ids)
	if err != nil {
		return nil, err
	}
	trendingEntries, err := s.rankingRepo.ListTrending(ctx, 0)
	if err != nil {
		return nil, err
	}
	trending := make(map[uint]float64, len(trendingEntries))
	for _, t := range trendingEntries {
		trending[t.DishID] = t.Score
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if averages[a.ID] != averages[b.ID] {
			return averages[a.ID] > averages[b.ID]
		}
		if trending[a.ID] != trending[b.ID] {
			return trending[a.ID] > trending[b.ID]
		}
		return a.ID < b.ID
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates, nil
}

// chatRule matches a message by substring and produces a reply. Rules
// are checked in order; the first hit wins. The responder gets the
// lowered message so every vocabulary keyword in it still narrows the
// suggestions, not just the one that picked the rule.
type chatRule struct {
	keywords  []string
	queryType string
	respond   func(s *AssistantService, ctx context.Context, user *models.User, query string) (string, []*models.Dish, error)
}

var chatRules = []chatRule{
	{
		keywords:  []string{"hello", "hi there", "hey"},
		queryType: models.QueryGeneral,
		respond: func(_ *AssistantService, _ context.Context, user *models.User, _ string) (string, []*models.Dish, error) {
			return fmt.Sprintf("Hey %s! Ask me for a recommendation, or about calories, protein, or allergies.", user.Username), nil, nil
		},
	},
	{
		keywords:  []string{"thank"},
		queryType: models.QueryGeneral,
		respond: func(_ *AssistantService, _ context.Context, _ *models.User, _ string) (string, []*models.Dish, error) {
			return "Anytime! Happy eating.", nil, nil
		},
	},
	{
		keywords:  []string{"allerg"},
		queryType: models.QueryDietary,
		respond: func(_ *AssistantService, _ context.Context, user *models.User, _ string) (string, []*models.Dish, error) {
			allergies := user.AllergyList()
			if len(allergies) == 0 {
				return "You haven't listed any allergies on your profile. Add them and I'll keep them in mind.", nil, nil
			}
			return fmt.Sprintf("Your profile lists these allergies: %s. Always double-check ingredients with the restaurant.", strings.Join(allergies, ", ")), nil, nil
		},
	},
	{
		keywords:  []string{"protein"},
		queryType: models.QueryNutrition,
		respond: func(s *AssistantService, ctx context.Context, _ *models.User, _ string) (string, []*models.Dish, error) {
			dishes, err := s.dishRepo.Filter(ctx, repository.DishFilter{})
			if err != nil {
				return "", nil, err
			}
			sort.Slice(dishes, func(i, j int) bool {
				if dishes[i].Protein != dishes[j].Protein {
					return dishes[i].Protein > dishes[j].Protein
				}
				return dishes[i].ID < dishes[j].ID
			})
			if len(dishes) > maxSuggestionsChat {
				dishes = dishes[:maxSuggestionsChat]
			}
			return "Here are the highest-protein dishes I know:", dishes, nil
		},
	},
	{
		keywords:  []string{"calorie", "diet"},
		queryType: models.QueryNutrition,
		respond: func(s *AssistantService, ctx context.Context, user *models.User, query string) (string, []*models.Dish, error) {
			maxCal := user.DailyCalorieGoal / 3
			if maxCal <= 0 {
				maxCal = 600
			}
			dishes, err := s.Recommend(ctx, user.ID, query, models.Preferences{MaxCalories: maxCal}, maxSuggestionsChat)
			if err != nil {
				return "", nil, err
			}
			return fmt.Sprintf("These fit within %d calories per meal:", maxCal), dishes, nil
		},
	},
	{
		keywords:  []string{"vegan"},
		queryType: models.QueryDietary,
		respond: func(s *AssistantService, ctx context.Context, user *models.User, query string) (string, []*models.Dish, error) {
			dishes, err := s.Recommend(ctx, user.ID, query, models.Preferences{Diet: models.DietVegan}, maxSuggestionsChat)
			if err != nil {
				return "", nil, err
			}
			return "Here are some well-rated vegan options:", dishes, nil
		},
	},
	{
		keywords:  []string{"vegetarian"},
		queryType: models.QueryDietary,
		respond: func(s *AssistantService, ctx context.Context, user *models.User, query string) (string, []*models.Dish, error) {
			dishes, err := s.Recommend(ctx, user.ID, query, models.Preferences{Diet: models.DietVegetarian}, maxSuggestionsChat)
			if err != nil {
				return "", nil, err
			}
			return "Here are some well-rated vegetarian options:", dishes, nil
		},
	},
	{
		keywords:  []string{"spicy", "spice"},
		queryType: models.QueryRecommendation,
		respond: func(s *AssistantService, ctx context.Context, _ *models.User, query string) (string, []*models.Dish, error) {
			dishes, err := s.recommendWithFilter(ctx, repository.DishFilter{Spicy: true}, query, maxSuggestionsChat)
			if err != nil {
				return "", nil, err
			}
			return "If you can handle the heat, try these:", dishes, nil
		},
	},
	{
		keywords:  []string{"cheap", "budget", "affordable"},
		queryType: models.QueryRecommendation,
		respond: func(s *AssistantService, ctx context.Context, user *models.User, query string) (string, []*models.Dish, error) {
			dishes, err := s.Recommend(ctx, user.ID, query, models.Preferences{PriceTier: budgetPriceTier}, maxSuggestionsChat)
			if err != nil {
				return "", nil, err
			}
			return "Easy on the wallet, good on the plate:", dishes, nil
		},
	},
	{
		keywords:  []string{"dessert", "sweet"},
		queryType: models.QueryRecommendation,
		respond: func(s *AssistantService, ctx context.Context, _ *models.User, query string) (string, []*models.Dish, error) {
			dishes, err := s.recommendWithFilter(ctx, repository.DishFilter{MealType: models.MealDessert}, query, maxSuggestionsChat)
			if err != nil {
				return "", nil, err
			}
			return "Something sweet coming right up:", dishes, nil
		},
	},
	{
		keywords:  []string{"healthy"},
		queryType: models.QueryRecommendation,
		respond: func(s *AssistantService, ctx context.Context, user *models.User, query string) (string, []*models.Dish, error) {
			dishes, err := s.Recommend(ctx, user.ID, query, models.Preferences{MaxCalories: healthyMaxCalories}, maxSuggestionsChat)
			if err != nil {
				return "", nil, err
			}
			return "Light and well-reviewed:", dishes, nil
		},
	},
	{
		keywords:  []string{"recommend", "suggest", "what should i eat", "hungry"},
		queryType: models.QueryRecommendation,
		respond: func(s *AssistantService, ctx context.Context, user *models.User, query string) (string, []*models.Dish, error) {
			prefs := models.Preferences{}
			if user.DietType == models.DietVegetarian || user.DietType == models.DietVegan {
				prefs.Diet = user.DietType
			}
			dishes, err := s.Recommend(ctx, user.ID, query, prefs, maxSuggestionsChat)
			if err != nil {
				return "", nil, err
			}
			if len(dishes) == 0 {
				return "I couldn't find anything matching your preferences yet. Try swiping on more dishes!", nil, nil
			}
			return "Based on what's popular right now, you might enjoy:", dishes, nil
		},
	},
}

// Chat answers a free-text message. Classification is a first-match scan
// over the keyword table; anything unmatched gets the fallback reply.
func (s *AssistantService) Chat(ctx context.Context, in ChatInput) (*models.AssistantReply, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, models.NewValidationError("Message is required")
	}
	if len(message) > maxChatMessageLen {
		return nil, models.NewValidationError("Message too long (max 1000 characters)")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("User", in.UserID)
	}
	if err != nil {
		return nil, err
	}

	start := s.now()
	lowered := strings.ToLower(message)

	queryType := models.QueryGeneral
	reply := "I can recommend dishes, look up nutrition, or check your dietary preferences. Try asking 'what should I eat?'"
	var suggestions []*models.Dish

	for _, rule := range chatRules {
		if !matchesAny(lowered, rule.keywords) {
			continue
		}
		text, dishes, err := rule.respond(s, ctx, user, lowered)
		if err != nil {
			return nil, err
		}
		queryType = rule.queryType
		reply = text
		suggestions = dishes
		break
	}

	conversationID := in.ConversationID
	if conversationID == "" {
		conversationID = s.newID()
	}

	logEntry := &models.AssistantQueryLog{
		UserID:         in.UserID,
		QueryType:      queryType,
		UserMessage:    message,
		Reply:          reply,
		ConversationID: conversationID,
		ResponseTimeMS: time.Since(start).Milliseconds(),
	}
	if err := s.assistantRepo.LogQuery(ctx, logEntry); err != nil {
		return nil, err
	}
	observability.AssistantRepliesTotal.WithLabelValues(queryType).Inc()

	out := &models.AssistantReply{
		ConversationID: conversationID,
		QueryType:      queryType,
		Message:        reply,
	}
	for _, d := range suggestions {
		out.Suggestions = append(out.Suggestions, *d)
	}
	return out, nil
}

// History returns the user's past exchanges, newest first.
func (s *AssistantService) History(ctx context.Context, userID uint, conversationID string, limit int) ([]*models.AssistantQueryLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.assistantRepo.History(ctx, userID, conversationID, limit)
}

func matchesAny(message string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}
