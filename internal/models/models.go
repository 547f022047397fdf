package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Categories is the closed set of sweet categories.
var Categories = []string{"Milk-based", "Syrup-based", "Dry Fruits", "Seasonal", "Special"}

func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"          json:"id"`
	Name         string    `gorm:"size:255;not null"             json:"name"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null"             json:"-"`
	Role         string    `gorm:"size:50;not null;default:user" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Sweet struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"          json:"id"`
	Name        string    `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Category    string    `gorm:"size:50;not null;index"        json:"category"`
	Price       float64   `gorm:"not null"                      json:"price"`
	Quantity    int       `gorm:"not null;default:0"            json:"quantity"`
	Description string    `gorm:"type:text;not null"            json:"description"`
	Image       string    `gorm:"size:512"                      json:"image"`
	Ingredients []string  `gorm:"serializer:json"               json:"ingredients"`
	Weight      string    `gorm:"size:50"                       json:"weight"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (s *Sweet) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
