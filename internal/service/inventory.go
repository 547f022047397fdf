package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/sweetshop/api/internal/events"
	"github.com/sweetshop/api/internal/models"
	"github.com/sweetshop/api/internal/repo"
	"github.com/sweetshop/api/internal/search"
	"github.com/sweetshop/api/pkg/logging"
)

// InventoryService adjusts a sweet's on-hand quantity. Both operations are
// single conditional updates in the store, so concurrent calls against the
// same sweet cannot lose updates or cross zero.
type InventoryService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	Search   *search.Client
}

// Purchase decrements quantity by qty. qty must be a positive integer and may
// not exceed the current stock.
func (s *InventoryService) Purchase(ctx context.Context, id uuid.UUID, qty int) (*models.Sweet, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	sweet, err := s.Repo.PurchaseSweet(ctx, id, qty)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "sweet_purchased", sweet, qty)
	s.mirror(ctx, sweet)
	return sweet, nil
}

// Restock increments quantity by qty, unboundedly. qty must be a positive
// integer.
func (s *InventoryService) Restock(ctx context.Context, id uuid.UUID, qty int) (*models.Sweet, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	sweet, err := s.Repo.RestockSweet(ctx, id, qty)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "sweet_restocked", sweet, qty)
	s.mirror(ctx, sweet)
	return sweet, nil
}

func (s *InventoryService) publish(ctx context.Context, eventType string, sweet *models.Sweet, qty int) {
	err := s.Producer.PublishEvent(ctx, events.TopicSweetEvents, sweet.ID.String(), map[string]any{
		"type":     eventType,
		"sweetID":  sweet.ID,
		"quantity": qty,
		"stock":    sweet.Quantity,
	})
	if err != nil {
		logging.FromContext(ctx).Error("event publish failed", "type", eventType, "error", err)
	}
}

func (s *InventoryService) mirror(ctx context.Context, sweet *models.Sweet) {
	if s.Search == nil {
		return
	}
	if err := s.Search.IndexSweet(ctx, *sweet); err != nil {
		logging.FromContext(ctx).Error("search index failed", "sweetID", sweet.ID, "error", err)
	}
}
