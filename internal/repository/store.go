package repository

import (
	"context"
	"errors"

	"foodbridge/internal/cache"
	"foodbridge/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreRepository defines persistence operations for stores.
type StoreRepository interface {
	GetByDonorID(ctx context.Context, donorID uuid.UUID) (*models.Store, error)
	Create(ctx context.Context, store *models.Store) error
}

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository returns a new StoreRepository implementation.
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

// GetByDonorID returns the donor's store, or a NOT_FOUND error when the
// donor has not registered one. Found stores are cached; stores are
// immutable after registration, so no invalidation is needed.
func (r *storeRepository) GetByDonorID(ctx context.Context, donorID uuid.UUID) (*models.Store, error) {
	var store models.Store
	err := cache.Aside(ctx, cache.StoreKey(donorID), &store, cache.StoreTTL, func() error {
		if err := r.db.WithContext(ctx).Where("donor_id = ?", donorID).First(&store).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Store", donorID)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) Create(ctx context.Context, store *models.Store) error {
	if err := r.db.WithContext(ctx).Create(store).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateStore(ctx, store.DonorID)
	return nil
}
