package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sweetshop/api/internal/models"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/auth/register", map[string]string{
		"name":     "Test User",
		"email":    "Test@Example.com",
		"password": "Password1",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decode(t, rec)
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "Test User", resp.User.Name)
	require.Equal(t, "test@example.com", resp.User.Email, "email is case-normalized")
	require.Equal(t, models.RoleUser, resp.User.Role, "role defaults to user")

	var stored models.User
	require.NoError(t, env.DB.Where("email = ?", "test@example.com").First(&stored).Error)
	require.NotEqual(t, "Password1", stored.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]string{
		"name":     "Test User",
		"email":    "dup@example.com",
		"password": "Password1",
	}
	rec := env.do(http.MethodPost, "/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(http.MethodPost, "/auth/register", body, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	require.False(t, resp.Success)
	require.Equal(t, "User already exists with this email", resp.Message)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/auth/register", map[string]string{
		"name":     "X",
		"email":    "not-an-email",
		"password": "abc",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode(t, rec)
	require.False(t, resp.Success)

	fields := make(map[string]string)
	for _, fe := range resp.Errors {
		fields[fe.Field] = fe.Message
	}
	require.Contains(t, fields, "name")
	require.Contains(t, fields, "email")
	require.Contains(t, fields, "password")
}

func TestRegisterAdminRole(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/auth/register", map[string]string{
		"name":     "Shop Admin",
		"email":    "admin@example.com",
		"password": "Password1",
		"role":     "admin",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, models.RoleAdmin, decode(t, rec).User.Role)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("Test User", "login@example.com", "Password1", models.RoleUser)

	rec := env.do(http.MethodPost, "/auth/login", map[string]string{
		"email":    "login@example.com",
		"password": "Password1",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode(t, rec)
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "login@example.com", resp.User.Email)
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("Test User", "login@example.com", "Password1", models.RoleUser)

	// Wrong password and unknown email report the same failure so the
	// endpoint does not leak which accounts exist.
	rec := env.do(http.MethodPost, "/auth/login", map[string]string{
		"email":    "login@example.com",
		"password": "WrongPassword",
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid credentials", decode(t, rec).Message)

	rec = env.do(http.MethodPost, "/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "Password1",
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid credentials", decode(t, rec).Message)
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser("Test User", "me@example.com", "Password1", models.RoleUser)

	rec := env.do(http.MethodGet, "/auth/me", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode(t, rec)
	require.True(t, resp.Success)

	var got map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	require.Equal(t, user.ID.String(), got["id"])
	require.Equal(t, "me@example.com", got["email"])
}

func TestMeUnauthorized(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/auth/me", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, decode(t, rec).Success)

	rec = env.do(http.MethodGet, "/auth/me", nil, "not-a-token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
