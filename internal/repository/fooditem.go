package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodbridge/internal/cache"
	"foodbridge/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FoodItemRepository defines persistence operations for food items.
//
// Claim and MarkPickedUp are the two lifecycle transitions. Each runs
// as a single compare-and-swap UPDATE whose WHERE clause encodes the
// state guard, so two concurrent calls on the same item can never both
// succeed and a failed guard never writes anything.
type FoodItemRepository interface {
	Create(ctx context.Context, item *models.FoodItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.FoodItem, error)
	ListAvailable(ctx context.Context) ([]models.FoodItem, error)
	Claim(ctx context.Context, id uuid.UUID, claimerName, claimCode string) (*models.FoodItem, error)
	MarkPickedUp(ctx context.Context, id uuid.UUID) (*models.FoodItem, error)
}

type foodItemRepository struct {
	db *gorm.DB
}

// NewFoodItemRepository returns a new FoodItemRepository implementation.
func NewFoodItemRepository(db *gorm.DB) FoodItemRepository {
	return &foodItemRepository{db: db}
}

func (r *foodItemRepository) Create(ctx context.Context, item *models.FoodItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateAvailableFood(ctx)
	return nil
}

func (r *foodItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Food item", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &item, nil
}

// ListAvailable returns unclaimed items that have not expired, soonest
// expiry first. The listing is served cache-aside with a short TTL.
func (r *foodItemRepository) ListAvailable(ctx context.Context) ([]models.FoodItem, error) {
	var items []models.FoodItem
	err := cache.Aside(ctx, cache.AvailableFoodKey, &items, cache.AvailableFoodTTL, func() error {
		if err := r.db.WithContext(ctx).
			Where("claim_code IS NULL AND expiration_date > ?", time.Now().UTC()).
			Order("expiration_date ASC").
			Find(&items).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Claim atomically transitions an available item to claimed. The WHERE
// clause only matches rows with no claim code, so of N concurrent
// claims exactly one update takes effect; the rest observe zero rows
// affected and are classified by a follow-up read.
func (r *foodItemRepository) Claim(ctx context.Context, id uuid.UUID, claimerName, claimCode string) (*models.FoodItem, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&models.FoodItem{}).
		Where("id = ? AND claim_code IS NULL", id).
		Updates(map[string]interface{}{
			"claim_code":      claimCode,
			"claimed_by_name": claimerName,
			"claimed_at":      now,
		})
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		// Either the item does not exist or it is already claimed.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, models.NewAlreadyClaimedError()
	}

	cache.InvalidateAvailableFood(ctx)
	return r.GetByID(ctx, id)
}

// MarkPickedUp atomically transitions a claimed item to picked up. The
// WHERE clause requires a claim code and no prior pickup, which also
// makes the invalid picked-up-without-claim combination unreachable.
func (r *foodItemRepository) MarkPickedUp(ctx context.Context, id uuid.UUID) (*models.FoodItem, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&models.FoodItem{}).
		Where("id = ? AND claim_code IS NOT NULL AND is_picked_up = ?", id, false).
		Updates(map[string]interface{}{
			"is_picked_up": true,
			"picked_up_at": now,
		})
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		item, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		switch item.State() {
		case models.StatePickedUp:
			return nil, models.NewAlreadyPickedUpError()
		case models.StateAvailable:
			return nil, models.NewNotYetClaimedError()
		default:
			return nil, models.NewInternalError(fmt.Errorf("pickup update affected no rows for claimed item %s", id))
		}
	}

	return r.GetByID(ctx, id)
}
