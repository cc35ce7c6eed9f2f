// Command migrate applies the database schema. Connect skips
// automigration in production, so this is how production schemas are
// rolled forward.
package main

import (
	"log"

	"foodbridge/internal/config"
	"foodbridge/internal/database"
)

func main() {
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

	log.Println("Schema migration completed")
}
