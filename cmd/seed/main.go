// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"swipebite/internal/config"
	"swipebite/internal/database"
	"swipebite/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numDishes := flag.Int("dishes", 120, "Number of dishes to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Printf("Target: %d users, %d dishes, clean=%v\n", *numUsers, *numDishes, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		NumUsers:    *numUsers,
		NumDishes:   *numDishes,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with demo data.")
}
