package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sweetshop/api/internal/models"
)

// SearchCriteria is the typed filter set for catalog search. Nil price bounds
// mean unbounded; empty strings mean "no filter".
type SearchCriteria struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// applyCriteria is the one place a SearchCriteria is translated into store
// query clauses. Filters combine with AND; the name filter is a
// case-insensitive substring match over name, category and description.
func applyCriteria(q *gorm.DB, c SearchCriteria) *gorm.DB {
	if c.Name != "" {
		p := "%" + strings.ToLower(c.Name) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ? OR LOWER(description) LIKE ?", p, p, p)
	}
	if c.Category != "" {
		q = q.Where("category = ?", c.Category)
	}
	if c.MinPrice != nil {
		q = q.Where("price >= ?", *c.MinPrice)
	}
	if c.MaxPrice != nil {
		q = q.Where("price <= ?", *c.MaxPrice)
	}
	return q
}

func (r *GormRepo) ListSweets(ctx context.Context) ([]models.Sweet, error) {
	var items []models.Sweet
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetSweet(ctx context.Context, id uuid.UUID) (*models.Sweet, error) {
	var sweet models.Sweet
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&sweet).Error; err != nil {
		return nil, err
	}
	return &sweet, nil
}

func (r *GormRepo) SearchSweets(ctx context.Context, c SearchCriteria) ([]models.Sweet, error) {
	var items []models.Sweet
	q := applyCriteria(r.DB.WithContext(ctx).Model(&models.Sweet{}), c)
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateSweetIfNew persists s unless the name is already taken.
func (r *GormRepo) CreateSweetIfNew(ctx context.Context, s *models.Sweet) error {
	tx := r.DB.WithContext(ctx).Where("name = ?", s.Name).FirstOrCreate(s)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNameTaken
	}
	return nil
}

// SweetNameTaken reports whether another sweet already uses name.
func (r *GormRepo) SweetNameTaken(ctx context.Context, name string, exclude uuid.UUID) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Sweet{}).
		Where("name = ? AND id <> ?", name, exclude).
		Count(&count).Error
	return count > 0, err
}

func (r *GormRepo) SaveSweet(ctx context.Context, s *models.Sweet) error {
	return r.DB.WithContext(ctx).Save(s).Error
}

func (r *GormRepo) DeleteSweet(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Sweet{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// PurchaseSweet decrements the on-hand quantity with a single conditional
// UPDATE so two concurrent purchases can never drive the stock below zero.
// Zero rows affected means either a missing sweet or insufficient stock; a
// follow-up read tells the two apart.
func (r *GormRepo) PurchaseSweet(ctx context.Context, id uuid.UUID, qty int) (*models.Sweet, error) {
	res := r.DB.WithContext(ctx).Model(&models.Sweet{}).
		Where("id = ? AND quantity >= ?", id, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetSweet(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrInsufficientStock
	}
	return r.GetSweet(ctx, id)
}

// RestockSweet increments the on-hand quantity unboundedly, as a single
// UPDATE for the same lost-update reason as PurchaseSweet.
func (r *GormRepo) RestockSweet(ctx context.Context, id uuid.UUID, qty int) (*models.Sweet, error) {
	res := r.DB.WithContext(ctx).Model(&models.Sweet{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", qty))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetSweet(ctx, id)
}
