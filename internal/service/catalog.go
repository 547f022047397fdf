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

// CatalogService owns sweet CRUD and filtered search. Search may be nil, in
// which case the Elasticsearch mirror is skipped and suggestions fall back to
// the store.
type CatalogService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	Search   *search.Client
}

func (s *CatalogService) ListSweets(ctx context.Context) ([]models.Sweet, error) {
	return s.Repo.ListSweets(ctx)
}

func (s *CatalogService) GetSweet(ctx context.Context, id uuid.UUID) (*models.Sweet, error) {
	return s.Repo.GetSweet(ctx, id)
}

func (s *CatalogService) SearchSweets(ctx context.Context, c repo.SearchCriteria) ([]models.Sweet, error) {
	return s.Repo.SearchSweets(ctx, c)
}

func (s *CatalogService) CreateSweet(ctx context.Context, sweet *models.Sweet) error {
	if err := s.Repo.CreateSweetIfNew(ctx, sweet); err != nil {
		return err
	}

	s.publish(ctx, "sweet_created", *sweet)
	s.mirror(ctx, *sweet)
	return nil
}

// UpdateSweet is a full replacement: every updatable field of the stored
// record is overwritten from sweet. Identity and creation time are kept.
func (s *CatalogService) UpdateSweet(ctx context.Context, id uuid.UUID, sweet models.Sweet) (*models.Sweet, error) {
	current, err := s.Repo.GetSweet(ctx, id)
	if err != nil {
		return nil, err
	}

	if sweet.Name != current.Name {
		taken, err := s.Repo.SweetNameTaken(ctx, sweet.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, repo.ErrNameTaken
		}
	}

	current.Name = sweet.Name
	current.Category = sweet.Category
	current.Price = sweet.Price
	current.Quantity = sweet.Quantity
	current.Description = sweet.Description
	current.Image = sweet.Image
	current.Ingredients = sweet.Ingredients
	current.Weight = sweet.Weight

	if err := s.Repo.SaveSweet(ctx, current); err != nil {
		return nil, err
	}

	s.publish(ctx, "sweet_updated", *current)
	s.mirror(ctx, *current)
	return current, nil
}

func (s *CatalogService) DeleteSweet(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteSweet(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, "sweet_deleted", models.Sweet{ID: id})
	if s.Search != nil {
		if err := s.Search.DeleteSweet(ctx, id.String()); err != nil {
			logging.FromContext(ctx).Error("search unindex failed", "sweetID", id, "error", err)
		}
	}
	return nil
}

// Suggest serves the fuzzy catalog lookup. With the mirror disabled it
// degrades to the store's substring search.
func (s *CatalogService) Suggest(ctx context.Context, query string, size int) ([]models.Sweet, error) {
	if s.Search != nil {
		return s.Search.Suggest(ctx, query, size)
	}
	return s.Repo.SearchSweets(ctx, repo.SearchCriteria{Name: query})
}

func (s *CatalogService) publish(ctx context.Context, eventType string, sweet models.Sweet) {
	err := s.Producer.PublishEvent(ctx, events.TopicSweetEvents, sweet.ID.String(), map[string]any{
		"type":    eventType,
		"sweetID": sweet.ID,
		"name":    sweet.Name,
	})
	if err != nil {
		logging.FromContext(ctx).Error("event publish failed", "type", eventType, "error", err)
	}
}

func (s *CatalogService) mirror(ctx context.Context, sweet models.Sweet) {
	if s.Search == nil {
		return
	}
	if err := s.Search.IndexSweet(ctx, sweet); err != nil {
		logging.FromContext(ctx).Error("search index failed", "sweetID", sweet.ID, "error", err)
	}
}
