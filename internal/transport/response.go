package transport

import (
	"github.com/google/uuid"

	"github.com/sweetshop/api/internal/models"
)

// Envelope is the response shape shared by every endpoint:
// {success, data|message|errors}.
type Envelope struct {
	Success bool         `json:"success"`
	Count   *int         `json:"count,omitempty"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func OKCount(count int, data any) Envelope {
	return Envelope{Success: true, Count: &count, Data: data}
}

func OKMessage(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

func FailValidation(errs []FieldError) Envelope {
	return Envelope{Success: false, Message: "Validation failed", Errors: errs}
}

// PublicUser is the serializable subset of a user record.
type PublicUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

func PublicUserFrom(u models.User) PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// AuthResponse is returned by register and login: the issued bearer token plus
// the public user fields.
type AuthResponse struct {
	Success bool       `json:"success"`
	Token   string     `json:"token"`
	User    PublicUser `json:"user"`
}
