// Package bootstrap wires process-level dependencies for the command
// binaries.
package bootstrap

import (
	"fmt"

	"foodbridge/internal/cache"
	"foodbridge/internal/config"
	"foodbridge/internal/database"
	"foodbridge/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemo populates an empty development database with demo
	// donors, stores, and food listings.
	SeedDemo bool
}

// InitRuntime connects to Postgres and Redis and optionally seeds demo
// data. The returned Redis client is nil when Redis is unreachable; the
// application degrades to uncached operation in that case.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemo && !cfg.IsProduction() {
		if err := seed.Seed(db, seed.DefaultOptions()); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}
