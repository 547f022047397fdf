// Command seed wipes the store and loads the demo catalog plus an admin and a
// regular account. Intended for development and demos only.
package main

import (
	"context"
	"log"
	"time"

	"github.com/sweetshop/api/internal/config"
	"github.com/sweetshop/api/internal/models"
	pkgdb "github.com/sweetshop/api/pkg/db"
	"github.com/sweetshop/api/pkg/hash"
)

var sampleSweets = []models.Sweet{
	{
		Name:        "Gulab Jamun",
		Category:    "Syrup-based",
		Price:       250,
		Quantity:    50,
		Description: "Soft, spongy milk-solid balls soaked in aromatic sugar syrup. A classic Indian dessert loved by all.",
		Image:       "https://images.unsplash.com/photo-1589119908995-c6c1cd6e8743?w=400",
		Ingredients: []string{"Milk powder", "Sugar", "Ghee", "Cardamom", "Rose water"},
		Weight:      "500g",
	},
	{
		Name:        "Kaju Katli",
		Category:    "Dry Fruits",
		Price:       800,
		Quantity:    30,
		Description: "Premium cashew fudge with a thin silver leaf. Smooth, melt-in-mouth texture.",
		Image:       "https://images.unsplash.com/photo-1627662055085-e3c2f0f4b9c0?w=400",
		Ingredients: []string{"Cashews", "Sugar", "Ghee", "Silver leaf"},
		Weight:      "500g",
	},
	{
		Name:        "Rasgulla",
		Category:    "Syrup-based",
		Price:       200,
		Quantity:    40,
		Description: "Spongy cottage cheese balls soaked in light sugar syrup. Refreshingly sweet.",
		Image:       "https://images.unsplash.com/photo-1586190848861-99aa4a171e90?w=400",
		Ingredients: []string{"Cottage cheese", "Sugar", "Cardamom"},
		Weight:      "500g",
	},
	{
		Name:        "Barfi",
		Category:    "Milk-based",
		Price:       350,
		Quantity:    45,
		Description: "Traditional milk fudge with pistachios and almonds. Rich and creamy.",
		Image:       "https://images.unsplash.com/photo-1631452180519-c014fe946bc7?w=400",
		Ingredients: []string{"Milk", "Sugar", "Pistachios", "Almonds", "Cardamom"},
		Weight:      "500g",
	},
	{
		Name:        "Ladoo",
		Category:    "Special",
		Price:       300,
		Quantity:    60,
		Description: "Golden spherical sweets made with gram flour and ghee. Perfect for celebrations.",
		Image:       "https://images.unsplash.com/photo-1599599810769-bcde5a160d32?w=400",
		Ingredients: []string{"Gram flour", "Sugar", "Ghee", "Cashews", "Raisins"},
		Weight:      "500g",
	},
	{
		Name:        "Jalebi",
		Category:    "Syrup-based",
		Price:       180,
		Quantity:    35,
		Description: "Crispy, spiral-shaped dessert soaked in saffron-flavored sugar syrup.",
		Image:       "https://images.unsplash.com/photo-1626776877389-6b16dd290f4d?w=400",
		Ingredients: []string{"Flour", "Sugar", "Saffron", "Cardamom"},
		Weight:      "250g",
	},
	{
		Name:        "Sandesh",
		Category:    "Milk-based",
		Price:       280,
		Quantity:    25,
		Description: "Bengali delicacy made from cottage cheese and sugar. Light and aromatic.",
		Image:       "https://images.unsplash.com/photo-1606312619070-d48b4a8d8f8f?w=400",
		Ingredients: []string{"Cottage cheese", "Sugar", "Cardamom", "Saffron"},
		Weight:      "500g",
	},
}

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Sweet{}); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	if err := db.Exec("DELETE FROM sweets").Error; err != nil {
		log.Fatalf("clear sweets: %v", err)
	}
	if err := db.Exec("DELETE FROM users").Error; err != nil {
		log.Fatalf("clear users: %v", err)
	}

	if err := db.Create(&sampleSweets).Error; err != nil {
		log.Fatalf("seed sweets: %v", err)
	}
	log.Printf("seeded %d sweets", len(sampleSweets))

	adminHash, err := hash.HashPassword(config.EnvDefault("SEED_ADMIN_PASSWORD", "Admin123"))
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}
	userHash, err := hash.HashPassword(config.EnvDefault("SEED_USER_PASSWORD", "User1234"))
	if err != nil {
		log.Fatalf("hash user password: %v", err)
	}

	accounts := []models.User{
		{Name: "Admin", Email: "admin@sweetshop.com", PasswordHash: adminHash, Role: models.RoleAdmin},
		{Name: "Demo User", Email: "user@sweetshop.com", PasswordHash: userHash, Role: models.RoleUser},
	}
	if err := db.Create(&accounts).Error; err != nil {
		log.Fatalf("seed accounts: %v", err)
	}
	log.Printf("seeded %d accounts", len(accounts))
}
