package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/sweetshop/api/internal/middleware"
	"github.com/sweetshop/api/internal/repo"
	"github.com/sweetshop/api/internal/service"
	"github.com/sweetshop/api/internal/transport"
	"github.com/sweetshop/api/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("Invalid request body"))
	}
	if errs := req.Validate(); len(errs) > 0 {
		l.Warn("register_failed", "status", 400, "reason", "validation")
		return c.JSON(http.StatusBadRequest, transport.FailValidation(errs))
	}

	token, user, err := h.Svc.Register(ctx, req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			l.Warn("register_failed", "status", 400, "reason", "duplicate email")
			return c.JSON(http.StatusBadRequest, transport.Fail("User already exists with this email"))
		}
		l.Error("register_failed", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("Server error"))
	}

	l.Info("register_success", "userID", user.ID)
	return c.JSON(http.StatusCreated, transport.AuthResponse{
		Success: true,
		Token:   token,
		User:    transport.PublicUserFrom(*user),
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.Fail("Invalid request body"))
	}
	if errs := req.Validate(); len(errs) > 0 {
		l.Warn("login_failed", "status", 400, "reason", "validation")
		return c.JSON(http.StatusBadRequest, transport.FailValidation(errs))
	}

	token, user, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 401, "reason", "invalid credentials")
			return c.JSON(http.StatusUnauthorized, transport.Fail("Invalid credentials"))
		}
		l.Error("login_failed", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("Server error"))
	}

	l.Info("login_success", "userID", user.ID)
	return c.JSON(http.StatusOK, transport.AuthResponse{
		Success: true,
		Token:   token,
		User:    transport.PublicUserFrom(*user),
	})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.me")

	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, transport.Fail("Authentication required"))
	}

	user, err := h.Svc.Me(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("me_failed", "status", 404, "reason", "user gone", "userID", id.UserID)
			return c.JSON(http.StatusNotFound, transport.Fail("User not found"))
		}
		l.Error("me_failed", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.Fail("Server error"))
	}

	return c.JSON(http.StatusOK, transport.OK(transport.PublicUserFrom(*user)))
}
