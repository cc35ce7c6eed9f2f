// Command seed populates the database with demo data for FoodBridge.
package main

import (
	"flag"
	"log"

	"foodbridge/internal/config"
	"foodbridge/internal/database"
	"foodbridge/internal/seed"
)

func main() {
	numDonors := flag.Int("donors", 5, "Number of donors (each with one store) to create")
	itemsPerStore := flag.Int("items", 6, "Number of available food items per store")
	shouldClean := flag.Bool("clean", false, "Clean database before seeding")
	lifecycle := flag.Bool("lifecycle", true, "Also seed claimed and picked-up items")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Printf("Target: %d donors, %d items per store, clean=%v", *numDonors, *itemsPerStore, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.Options{
		NumDonors:        *numDonors,
		ItemsPerStore:    *itemsPerStore,
		ShouldClean:      *shouldClean,
		IncludeLifecycle: *lifecycle,
	}
	if err := seed.Seed(db, opts); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with demo data.")
}
