package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is the physical location a donor lists food items from.
// A donor owns at most one store (DonorID carries a unique index).
type Store struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	Latitude  float64    `gorm:"not null" json:"latitude"`
	Longitude float64    `gorm:"not null" json:"longitude"`
	DonorID   uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"donor_id"`
	CreatedAt time.Time  `json:"created_at"`
	FoodItems []FoodItem `gorm:"foreignKey:StoreID" json:"food_items,omitempty"`
}

// BeforeCreate assigns a UUID primary key when none is set.
func (s *Store) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
