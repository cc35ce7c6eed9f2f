// Package validation contains input validation rules for API requests.
package validation

import (
	"strings"

	"foodbridge/internal/models"
)

const (
	maxUsernameLen    = 50
	minClaimerNameLen = 2
	maxClaimerNameLen = 100
	maxFoodNameLen    = 100
	maxDescriptionLen = 500
	maxStoreNameLen   = 100
)

// Username validates a donor username.
func Username(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.NewValidationError("Username is required")
	}
	if len(username) > maxUsernameLen {
		return models.NewValidationError("Username too long (max 50 characters)")
	}
	return nil
}

// ClaimerName validates the recipient name supplied with a claim.
func ClaimerName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < minClaimerNameLen {
		return models.NewValidationError("Claimer name must be at least 2 characters")
	}
	if len(name) > maxClaimerNameLen {
		return models.NewValidationError("Claimer name too long (max 100 characters)")
	}
	return nil
}

// StoreName validates a store name.
func StoreName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.NewValidationError("Store name is required")
	}
	if len(name) > maxStoreNameLen {
		return models.NewValidationError("Store name too long (max 100 characters)")
	}
	return nil
}

// FoodItem validates the donor-supplied fields of a new food item.
func FoodItem(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.NewValidationError("Food item name is required")
	}
	if len(name) > maxFoodNameLen {
		return models.NewValidationError("Food item name too long (max 100 characters)")
	}
	if len(description) > maxDescriptionLen {
		return models.NewValidationError("Description too long (max 500 characters)")
	}
	return nil
}
