package seed

import (
	"fmt"
	"log"

	"foodbridge/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumDonors        int
	ItemsPerStore    int
	ShouldClean      bool
	IncludeLifecycle bool // also seed claimed and picked-up items
}

// DefaultOptions are the presets used by the seed command.
func DefaultOptions() Options {
	return Options{
		NumDonors:        5,
		ItemsPerStore:    6,
		IncludeLifecycle: true,
	}
}

// Seed populates the database with demo donors, their stores, and food
// listings. Unless ShouldClean is set it refuses to touch a database
// that already has donors.
func Seed(db *gorm.DB, opts Options) error {
	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("warning: could not clear all existing data, continuing anyway")
		}
	} else {
		var count int64
		if err := db.Model(&models.Donor{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to inspect existing data: %w", err)
		}
		if count > 0 {
			log.Printf("database already has %d donors, skipping seed", count)
			return nil
		}
	}

	log.Printf("🌱 Seeding %d donors with %d items each...", opts.NumDonors, opts.ItemsPerStore)

	factory := NewFactory(db)

	for i := 0; i < opts.NumDonors; i++ {
		donor, err := factory.CreateDonor()
		if err != nil {
			return fmt.Errorf("failed to create donor: %w", err)
		}

		store, err := factory.CreateStore(donor)
		if err != nil {
			return fmt.Errorf("failed to create store: %w", err)
		}

		for j := 0; j < opts.ItemsPerStore; j++ {
			if _, err := factory.CreateFoodItem(store); err != nil {
				return fmt.Errorf("failed to create food item: %w", err)
			}
		}

		// A couple of in-flight lifecycle examples per store so demos
		// show every state.
		if opts.IncludeLifecycle {
			if _, err := factory.CreateFoodItem(store, WithClaim(gofakeit.Name(), "SEED01")); err != nil {
				return fmt.Errorf("failed to create claimed item: %w", err)
			}
			if _, err := factory.CreateFoodItem(store, WithPickup(gofakeit.Name(), "SEED02")); err != nil {
				return fmt.Errorf("failed to create picked-up item: %w", err)
			}
		}
	}

	log.Printf("✓ Seeding complete. Seeded donors log in with password %q", DemoPassword)
	return nil
}

// clearData deletes all rows, children first.
func clearData(db *gorm.DB) error {
	for _, model := range []interface{}{
		&models.FoodItem{},
		&models.Store{},
		&models.Donor{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
