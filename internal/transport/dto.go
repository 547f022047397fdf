// Package transport holds the request/response DTOs and the validation pass
// that turns raw request bodies into typed, fully-defaulted records before
// they reach a service or the store.
package transport

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sweetshop/api/internal/models"
)

const (
	defaultImage  = "https://via.placeholder.com/300x200?text=Sweet"
	defaultWeight = "250g"
)

var (
	nameRe   = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	emailRe  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	weightRe = regexp.MustCompile(`(?i)^\d+(\.\d+)?\s*(g|kg|mg|oz|lb)$`)
	urlRe    = regexp.MustCompile(`^https?://\S+$`)
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate normalizes the request in place (trimmed name, lowercased email,
// defaulted role) and reports every violated rule.
func (r *RegisterRequest) Validate() []FieldError {
	var errs []FieldError

	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Role == "" {
		r.Role = models.RoleUser
	}

	switch {
	case r.Name == "":
		errs = append(errs, FieldError{"name", "Name is required"})
	case len(r.Name) < 2 || len(r.Name) > 50:
		errs = append(errs, FieldError{"name", "Name must be between 2 and 50 characters"})
	case !nameRe.MatchString(r.Name):
		errs = append(errs, FieldError{"name", "Name can only contain letters and spaces"})
	}

	switch {
	case r.Email == "":
		errs = append(errs, FieldError{"email", "Email is required"})
	case !emailRe.MatchString(r.Email):
		errs = append(errs, FieldError{"email", "Please provide a valid email"})
	}

	switch {
	case r.Password == "":
		errs = append(errs, FieldError{"password", "Password is required"})
	case len(r.Password) < 6:
		errs = append(errs, FieldError{"password", "Password must be at least 6 characters long"})
	}

	if r.Role != models.RoleUser && r.Role != models.RoleAdmin {
		errs = append(errs, FieldError{"role", "Role must be either user or admin"})
	}

	return errs
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() []FieldError {
	var errs []FieldError

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" {
		errs = append(errs, FieldError{"email", "Email is required"})
	} else if !emailRe.MatchString(r.Email) {
		errs = append(errs, FieldError{"email", "Please provide a valid email"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{"password", "Password is required"})
	}

	return errs
}

// SweetRequest covers both create and full update. Price and Quantity are
// pointers so a missing field is distinguishable from an explicit zero.
type SweetRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Ingredients []string `json:"ingredients"`
	Weight      string   `json:"weight"`
}

func (r *SweetRequest) Validate() []FieldError {
	var errs []FieldError

	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	r.Description = strings.TrimSpace(r.Description)
	r.Image = strings.TrimSpace(r.Image)
	r.Weight = strings.TrimSpace(r.Weight)

	switch {
	case r.Name == "":
		errs = append(errs, FieldError{"name", "Sweet name is required"})
	case len(r.Name) < 2 || len(r.Name) > 100:
		errs = append(errs, FieldError{"name", "Sweet name must be between 2 and 100 characters"})
	}

	switch {
	case r.Category == "":
		errs = append(errs, FieldError{"category", "Category is required"})
	case !models.ValidCategory(r.Category):
		errs = append(errs, FieldError{"category", "Invalid category"})
	}

	switch {
	case r.Price == nil:
		errs = append(errs, FieldError{"price", "Price is required"})
	case *r.Price <= 0:
		errs = append(errs, FieldError{"price", "Price must be greater than 0"})
	}

	switch {
	case r.Quantity == nil:
		errs = append(errs, FieldError{"quantity", "Quantity is required"})
	case *r.Quantity < 0:
		errs = append(errs, FieldError{"quantity", "Quantity must be a non-negative integer"})
	}

	switch {
	case r.Description == "":
		errs = append(errs, FieldError{"description", "Description is required"})
	case len(r.Description) < 10 || len(r.Description) > 500:
		errs = append(errs, FieldError{"description", "Description must be between 10 and 500 characters"})
	}

	if r.Image != "" && !urlRe.MatchString(r.Image) {
		errs = append(errs, FieldError{"image", "Image must be a valid URL"})
	}

	for i, ing := range r.Ingredients {
		if strings.TrimSpace(ing) == "" {
			errs = append(errs, FieldError{fmt.Sprintf("ingredients[%d]", i), "Ingredient cannot be empty"})
		}
	}

	if r.Weight != "" && !weightRe.MatchString(r.Weight) {
		errs = append(errs, FieldError{"weight", "Weight must be in format like: 250g, 1kg, 500mg"})
	}

	return errs
}

// ToModel produces the fully-defaulted record that goes to the store. Validate
// must have passed first.
func (r *SweetRequest) ToModel() models.Sweet {
	s := models.Sweet{
		Name:        r.Name,
		Category:    r.Category,
		Price:       *r.Price,
		Quantity:    *r.Quantity,
		Description: r.Description,
		Image:       r.Image,
		Ingredients: r.Ingredients,
		Weight:      r.Weight,
	}
	if s.Image == "" {
		s.Image = defaultImage
	}
	if s.Ingredients == nil {
		s.Ingredients = []string{}
	}
	if s.Weight == "" {
		s.Weight = defaultWeight
	}
	return s
}

// SearchRequest carries the already-parsed search filters. Price bounds are
// pointers: absent means unbounded.
type SearchRequest struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

func (r *SearchRequest) Validate() []FieldError {
	var errs []FieldError

	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)

	if len(r.Name) > 100 {
		errs = append(errs, FieldError{"name", "Search name must be between 1 and 100 characters"})
	}
	if r.Category != "" && !models.ValidCategory(r.Category) {
		errs = append(errs, FieldError{"category", "Invalid category"})
	}
	if r.MinPrice != nil && *r.MinPrice < 0 {
		errs = append(errs, FieldError{"minPrice", "Minimum price must be a non-negative number"})
	}
	if r.MaxPrice != nil && *r.MaxPrice < 0 {
		errs = append(errs, FieldError{"maxPrice", "Maximum price must be a non-negative number"})
	}
	if r.MinPrice != nil && r.MaxPrice != nil && *r.MaxPrice < *r.MinPrice {
		errs = append(errs, FieldError{"maxPrice", "Maximum price must be greater than minimum price"})
	}

	return errs
}

// QuantityRequest is the body of purchase and restock calls.
type QuantityRequest struct {
	Quantity *int `json:"quantity"`
}
