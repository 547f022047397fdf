package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sweetshop/api/internal/events"
	"github.com/sweetshop/api/internal/models"
	"github.com/sweetshop/api/internal/repo"
)

func newInventoryService(t *testing.T) (*InventoryService, *repo.GormRepo) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Sweet{}))

	store := &repo.GormRepo{DB: db}
	return &InventoryService{Repo: store, Producer: events.NewProducer(nil)}, store
}

func seedSweet(t *testing.T, store *repo.GormRepo, qty int) models.Sweet {
	t.Helper()
	s := models.Sweet{
		Name: "Gulab Jamun", Category: "Syrup-based", Price: 250, Quantity: qty,
		Description: "Milk-solid balls in sugar syrup.",
	}
	require.NoError(t, store.DB.Create(&s).Error)
	return s
}

func TestPurchase(t *testing.T) {
	svc, store := newInventoryService(t)
	sweet := seedSweet(t, store, 50)

	got, err := svc.Purchase(context.Background(), sweet.ID, 10)
	require.NoError(t, err)
	require.Equal(t, 40, got.Quantity)
}

func TestPurchaseRejectsNonPositiveQuantity(t *testing.T) {
	svc, store := newInventoryService(t)
	sweet := seedSweet(t, store, 50)
	ctx := context.Background()

	_, err := svc.Purchase(ctx, sweet.ID, 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = svc.Purchase(ctx, sweet.ID, -3)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	got, err := store.GetSweet(ctx, sweet.ID)
	require.NoError(t, err)
	require.Equal(t, 50, got.Quantity)
}

func TestPurchaseInsufficientStock(t *testing.T) {
	svc, store := newInventoryService(t)
	sweet := seedSweet(t, store, 5)

	_, err := svc.Purchase(context.Background(), sweet.ID, 6)
	require.ErrorIs(t, err, repo.ErrInsufficientStock)
}

func TestRestock(t *testing.T) {
	svc, store := newInventoryService(t)
	sweet := seedSweet(t, store, 40)
	ctx := context.Background()

	got, err := svc.Restock(ctx, sweet.ID, 25)
	require.NoError(t, err)
	require.Equal(t, 65, got.Quantity)

	_, err = svc.Restock(ctx, sweet.ID, 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.Restock(ctx, uuid.New(), 5)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
