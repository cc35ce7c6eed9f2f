// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"foodbridge/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonorRepository defines persistence operations for donors.
type DonorRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Donor, error)
	GetByUsername(ctx context.Context, username string) (*models.Donor, error)
	Create(ctx context.Context, donor *models.Donor) error
}

type donorRepository struct {
	db *gorm.DB
}

// NewDonorRepository returns a new DonorRepository implementation.
func NewDonorRepository(db *gorm.DB) DonorRepository {
	return &donorRepository{db: db}
}

func (r *donorRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Donor, error) {
	var donor models.Donor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&donor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Donor", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &donor, nil
}

func (r *donorRepository) GetByUsername(ctx context.Context, username string) (*models.Donor, error) {
	var donor models.Donor
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&donor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Return nil for not found, not an error
		}
		return nil, models.NewInternalError(err)
	}
	return &donor, nil
}

func (r *donorRepository) Create(ctx context.Context, donor *models.Donor) error {
	if err := r.db.WithContext(ctx).Create(donor).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
