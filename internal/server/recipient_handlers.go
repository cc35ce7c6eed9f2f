package server

import (
	"foodbridge/internal/middleware"
	"foodbridge/internal/models"

	"github.com/gofiber/fiber/v2"
)

type claimFoodRequest struct {
	ClaimerName string `json:"claimer_name"`
}

// AvailableFood lists unclaimed, unexpired food items. Recipients
// browse without an account, so this endpoint is unauthenticated.
func (s *Server) AvailableFood(c *fiber.Ctx) error {
	items, err := s.foodRepo.ListAvailable(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	if items == nil {
		items = []models.FoodItem{}
	}
	return c.JSON(items)
}

// ClaimFood claims an available item for a named recipient and returns
// the claim code they present at pickup. When several recipients race
// for the same item, exactly one receives a code; the rest get a 409.
func (s *Server) ClaimFood(c *fiber.Ctx) error {
	itemID, err := parseIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	var req claimFoodRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	result, err := s.lifecycle.Claim(c.Context(), itemID, req.ClaimerName)
	if err != nil {
		return respondError(c, err)
	}

	middleware.Logger.Info("food item claimed", "item_id", result.ItemID)

	return c.JSON(result)
}
