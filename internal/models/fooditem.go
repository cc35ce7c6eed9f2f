package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LifecycleState is the claim/pickup state of a food item.
type LifecycleState string

const (
	// StateAvailable means the item has no claim and can be claimed.
	StateAvailable LifecycleState = "available"
	// StateClaimed means a recipient holds a claim code but the item is still at the store.
	StateClaimed LifecycleState = "claimed"
	// StatePickedUp is terminal: the item has been handed over.
	StatePickedUp LifecycleState = "picked_up"
)

// FoodItem is a surplus food listing owned by a store.
//
// ClaimCode is present exactly when the item has been claimed, and
// IsPickedUp can only be set on a claimed item; both transitions are
// enforced atomically in the repository layer, so the invalid
// combination (picked up without a claim code) is never persisted.
type FoodItem struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string     `gorm:"size:100;not null" json:"name"`
	Description    string     `gorm:"size:500" json:"description,omitempty"`
	ExpirationDate time.Time  `gorm:"not null" json:"expiration_date"`
	StoreID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"store_id"`
	ClaimCode      *string    `gorm:"size:10" json:"claim_code,omitempty"`
	ClaimedByName  *string    `gorm:"size:100" json:"claimed_by_name,omitempty"`
	ClaimedAt      *time.Time `json:"claimed_at,omitempty"`
	IsPickedUp     bool       `gorm:"not null;default:false" json:"is_picked_up"`
	PickedUpAt     *time.Time `json:"picked_up_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when none is set.
func (f *FoodItem) BeforeCreate(_ *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// State derives the lifecycle state from the persisted fields.
func (f *FoodItem) State() LifecycleState {
	switch {
	case f.ClaimCode == nil:
		return StateAvailable
	case f.IsPickedUp:
		return StatePickedUp
	default:
		return StateClaimed
	}
}
