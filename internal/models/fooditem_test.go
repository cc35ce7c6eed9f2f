package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFoodItemState(t *testing.T) {
	code := "A1B2C3"
	now := time.Now()

	tests := []struct {
		name     string
		item     FoodItem
		expected LifecycleState
	}{
		{
			name:     "No claim code means available",
			item:     FoodItem{},
			expected: StateAvailable,
		},
		{
			name:     "Claim code without pickup means claimed",
			item:     FoodItem{ClaimCode: &code, ClaimedAt: &now},
			expected: StateClaimed,
		},
		{
			name:     "Claim code with pickup means picked up",
			item:     FoodItem{ClaimCode: &code, ClaimedAt: &now, IsPickedUp: true},
			expected: StatePickedUp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.item.State())
		})
	}
}
