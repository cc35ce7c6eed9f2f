// Package service contains the domain logic sitting between handlers
// and repositories.
package service

import (
	"context"
	"errors"

	"foodbridge/internal/models"
	"foodbridge/internal/observability"
	"foodbridge/internal/repository"
	"foodbridge/internal/validation"

	"github.com/google/uuid"
)

// ClaimLifecycle owns the Available -> Claimed -> PickedUp progression
// of a food item. Transitions are delegated to the repository's atomic
// compare-and-swap operations; this service adds validation, claim-code
// generation, and the pickup ownership guard.
type ClaimLifecycle struct {
	items  repository.FoodItemRepository
	stores repository.StoreRepository
}

// ClaimResult is returned to the recipient after a successful claim.
type ClaimResult struct {
	ItemID    uuid.UUID `json:"id"`
	ClaimCode string    `json:"claim_code"`
}

// NewClaimLifecycle returns a ClaimLifecycle over the given repositories.
func NewClaimLifecycle(items repository.FoodItemRepository, stores repository.StoreRepository) *ClaimLifecycle {
	return &ClaimLifecycle{items: items, stores: stores}
}

// Claim transitions an available item to claimed on behalf of a
// recipient and returns the generated claim code. Any recipient may
// claim any available item; the code is their proof for pickup.
func (l *ClaimLifecycle) Claim(ctx context.Context, itemID uuid.UUID, claimerName string) (*ClaimResult, error) {
	if err := validation.ClaimerName(claimerName); err != nil {
		return nil, err
	}

	code, err := GenerateClaimCode()
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	item, err := l.items.Claim(ctx, itemID, claimerName, code)
	if err != nil {
		observability.ClaimAttempts.WithLabelValues(claimOutcome(err)).Inc()
		return nil, err
	}

	observability.ClaimAttempts.WithLabelValues(observability.OutcomeSuccess).Inc()
	return &ClaimResult{ItemID: item.ID, ClaimCode: *item.ClaimCode}, nil
}

// MarkPickedUp transitions a claimed item to its terminal picked-up
// state. Only the donor owning the item's store may perform it: the
// store has physical custody of the item, so the recipient presents the
// claim code in person and the donor confirms the handoff.
func (l *ClaimLifecycle) MarkPickedUp(ctx context.Context, itemID, donorID uuid.UUID) (*models.FoodItem, error) {
	item, err := l.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	store, err := l.stores.GetByDonorID(ctx, donorID)
	if err != nil {
		return nil, err
	}

	if store.ID != item.StoreID {
		observability.PickupAttempts.WithLabelValues(observability.OutcomeError).Inc()
		return nil, models.NewForbiddenError("Food item belongs to another store")
	}

	updated, err := l.items.MarkPickedUp(ctx, itemID)
	if err != nil {
		observability.PickupAttempts.WithLabelValues(claimOutcome(err)).Inc()
		return nil, err
	}

	observability.PickupAttempts.WithLabelValues(observability.OutcomeSuccess).Inc()
	return updated, nil
}

func claimOutcome(err error) string {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeAlreadyClaimed, models.CodeAlreadyPickedUp, models.CodeNotYetClaimed:
			return observability.OutcomeConflict
		}
	}
	return observability.OutcomeError
}
