package repo

import (
	"errors"

	"gorm.io/gorm"
)

// GormRepo is the single store behind both the credential and catalog
// services.
type GormRepo struct {
	DB *gorm.DB
}

var (
	ErrEmailTaken        = errors.New("email already registered")
	ErrNameTaken         = errors.New("sweet name already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ErrNotFound re-exports the store's missing-record error so callers don't
// have to import gorm for errors.Is checks.
var ErrNotFound = gorm.ErrRecordNotFound
