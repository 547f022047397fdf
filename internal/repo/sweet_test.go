package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sweetshop/api/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Sweet{}))
	return &GormRepo{DB: db}
}

func mustCreate(t *testing.T, r *GormRepo, s models.Sweet) models.Sweet {
	t.Helper()
	require.NoError(t, r.DB.Create(&s).Error)
	return s
}

func TestPurchaseSweetDecrementsStock(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	sweet := mustCreate(t, r, models.Sweet{
		Name: "Gulab Jamun", Category: "Syrup-based", Price: 250, Quantity: 50,
		Description: "Milk-solid balls in sugar syrup.",
	})

	got, err := r.PurchaseSweet(ctx, sweet.ID, 10)
	require.NoError(t, err)
	require.Equal(t, 40, got.Quantity)

	got, err = r.PurchaseSweet(ctx, sweet.ID, 40)
	require.NoError(t, err)
	require.Equal(t, 0, got.Quantity)
}

func TestPurchaseSweetInsufficientStock(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	sweet := mustCreate(t, r, models.Sweet{
		Name: "Kaju Katli", Category: "Dry Fruits", Price: 800, Quantity: 5,
		Description: "Premium cashew fudge.",
	})

	_, err := r.PurchaseSweet(ctx, sweet.ID, 6)
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Stock is untouched when the guard rejects the purchase.
	got, err := r.GetSweet(ctx, sweet.ID)
	require.NoError(t, err)
	require.Equal(t, 5, got.Quantity)
}

func TestPurchaseSweetMissing(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.PurchaseSweet(context.Background(), uuid.New(), 1)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRestockSweet(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	sweet := mustCreate(t, r, models.Sweet{
		Name: "Rasgulla", Category: "Syrup-based", Price: 200, Quantity: 40,
		Description: "Spongy cottage cheese balls.",
	})

	got, err := r.RestockSweet(ctx, sweet.ID, 25)
	require.NoError(t, err)
	require.Equal(t, 65, got.Quantity)

	_, err = r.RestockSweet(ctx, uuid.New(), 5)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateSweetIfNew(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	first := models.Sweet{
		Name: "Barfi", Category: "Milk-based", Price: 350, Quantity: 45,
		Description: "Traditional milk fudge.",
	}
	require.NoError(t, r.CreateSweetIfNew(ctx, &first))
	require.NotEqual(t, uuid.Nil, first.ID)

	dup := models.Sweet{
		Name: "Barfi", Category: "Special", Price: 999, Quantity: 1,
		Description: "Pretender with the same name.",
	}
	require.ErrorIs(t, r.CreateSweetIfNew(ctx, &dup), ErrNameTaken)
	require.Equal(t, first.ID, dup.ID, "conflict loads the existing record")
}

func TestSweetNameTaken(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	sweet := mustCreate(t, r, models.Sweet{
		Name: "Ladoo", Category: "Special", Price: 300, Quantity: 60,
		Description: "Golden spheres of gram flour.",
	})

	taken, err := r.SweetNameTaken(ctx, "Ladoo", uuid.New())
	require.NoError(t, err)
	require.True(t, taken)

	// A sweet's own name does not conflict with itself.
	taken, err = r.SweetNameTaken(ctx, "Ladoo", sweet.ID)
	require.NoError(t, err)
	require.False(t, taken)

	taken, err = r.SweetNameTaken(ctx, "Jalebi", uuid.New())
	require.NoError(t, err)
	require.False(t, taken)
}

func TestSearchSweetsCriteria(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	mustCreate(t, r, models.Sweet{
		Name: "Gulab Jamun", Category: "Syrup-based", Price: 250, Quantity: 50,
		Description: "Milk-solid balls in sugar syrup.",
	})
	mustCreate(t, r, models.Sweet{
		Name: "Kaju Katli", Category: "Dry Fruits", Price: 800, Quantity: 30,
		Description: "Premium cashew fudge.",
	})
	mustCreate(t, r, models.Sweet{
		Name: "Jalebi", Category: "Syrup-based", Price: 180, Quantity: 35,
		Description: "Crispy spirals in saffron syrup.",
	})

	names := func(items []models.Sweet) []string {
		out := make([]string, 0, len(items))
		for _, s := range items {
			out = append(out, s.Name)
		}
		return out
	}
	fp := func(f float64) *float64 { return &f }

	items, err := r.SearchSweets(ctx, SearchCriteria{Name: "KAJU"})
	require.NoError(t, err)
	require.Equal(t, []string{"Kaju Katli"}, names(items))

	items, err = r.SearchSweets(ctx, SearchCriteria{Name: "syrup"})
	require.NoError(t, err)
	require.Len(t, items, 2, "name term matches category and description too")

	items, err = r.SearchSweets(ctx, SearchCriteria{Category: "Syrup-based", MaxPrice: fp(200)})
	require.NoError(t, err)
	require.Equal(t, []string{"Jalebi"}, names(items))

	items, err = r.SearchSweets(ctx, SearchCriteria{MinPrice: fp(200), MaxPrice: fp(300)})
	require.NoError(t, err)
	require.Equal(t, []string{"Gulab Jamun"}, names(items))

	items, err = r.SearchSweets(ctx, SearchCriteria{})
	require.NoError(t, err)
	require.Len(t, items, 3)
}

func TestDeleteSweet(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	sweet := mustCreate(t, r, models.Sweet{
		Name: "Sandesh", Category: "Milk-based", Price: 280, Quantity: 25,
		Description: "Bengali cottage cheese delicacy.",
	})

	require.NoError(t, r.DeleteSweet(ctx, sweet.ID))
	require.ErrorIs(t, r.DeleteSweet(ctx, sweet.ID), gorm.ErrRecordNotFound)
}

func TestCreateUserIfNew(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	first := models.User{Name: "Test User", Email: "dup@example.com", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, r.CreateUserIfNew(ctx, &first))

	dup := models.User{Name: "Other", Email: "dup@example.com", PasswordHash: "y", Role: models.RoleUser}
	require.ErrorIs(t, r.CreateUserIfNew(ctx, &dup), ErrEmailTaken)
}
