package server

import (
	"strings"
	"time"

	"foodbridge/internal/middleware"
	"foodbridge/internal/models"
	"foodbridge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type registerStoreRequest struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type createFoodItemRequest struct {
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	ExpirationDate time.Time `json:"expiration_date"`
}

// RegisterStore creates the authenticated donor's store. Each donor can
// register exactly one.
func (s *Server) RegisterStore(c *fiber.Ctx) error {
	donorID, err := donorFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	var req registerStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validation.StoreName(req.Name); err != nil {
		return respondError(c, err)
	}
	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		return respondError(c, models.NewValidationError("Invalid coordinates"))
	}

	existing, err := s.storeRepo.GetByDonorID(c.Context(), donorID)
	if err != nil && !models.IsNotFound(err) {
		return respondError(c, err)
	}
	if existing != nil {
		return respondError(c, models.NewConflictError("Donor already has a registered store"))
	}

	store := &models.Store{
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		DonorID:   donorID,
	}
	if err := s.storeRepo.Create(c.Context(), store); err != nil {
		return respondError(c, err)
	}

	middleware.Logger.Info("store registered", "store_id", store.ID, "donor_id", donorID)

	return c.Status(fiber.StatusCreated).JSON(store)
}

// GetStore returns the authenticated donor's store.
func (s *Server) GetStore(c *fiber.Ctx) error {
	donorID, err := donorFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	store, err := s.storeRepo.GetByDonorID(c.Context(), donorID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(store)
}

// CreateFoodItem lists a new surplus item under the donor's store.
func (s *Server) CreateFoodItem(c *fiber.Ctx) error {
	donorID, err := donorFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	var req createFoodItemRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validation.FoodItem(req.Name, req.Description); err != nil {
		return respondError(c, err)
	}
	if req.ExpirationDate.IsZero() {
		return respondError(c, models.NewValidationError("Expiration date is required"))
	}

	store, err := s.storeRepo.GetByDonorID(c.Context(), donorID)
	if err != nil {
		if models.IsNotFound(err) {
			return respondError(c, models.NewValidationError("Register a store before listing food"))
		}
		return respondError(c, err)
	}

	item := &models.FoodItem{
		Name:           req.Name,
		Description:    req.Description,
		ExpirationDate: req.ExpirationDate,
		StoreID:        store.ID,
	}
	if err := s.foodRepo.Create(c.Context(), item); err != nil {
		return respondError(c, err)
	}

	middleware.Logger.Info("food item listed", "item_id", item.ID, "store_id", store.ID)

	return c.Status(fiber.StatusCreated).JSON(item)
}

// MarkPickedUp confirms the physical handoff of a claimed item. Only
// the donor owning the item's store may confirm.
func (s *Server) MarkPickedUp(c *fiber.Ctx) error {
	donorID, err := donorFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	itemID, err := parseIDParam(c)
	if err != nil {
		return respondError(c, err)
	}

	item, err := s.lifecycle.MarkPickedUp(c.Context(), itemID, donorID)
	if err != nil {
		return respondError(c, err)
	}

	middleware.Logger.Info("food item picked up", "item_id", item.ID, "donor_id", donorID)

	return c.JSON(item)
}
