package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sweetshop/api/internal/events"
	"github.com/sweetshop/api/internal/models"
	"github.com/sweetshop/api/internal/repo"
	"github.com/sweetshop/api/internal/service"
	"github.com/sweetshop/api/internal/transport"
	"github.com/sweetshop/api/pkg/hash"
	"github.com/sweetshop/api/pkg/tokens"
)

var testSecret = []byte("test-secret")

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Sweet{}))

	store := &repo.GormRepo{DB: db}
	producer := events.NewProducer(nil)

	authSvc := &service.AuthService{
		Repo:     store,
		Secret:   testSecret,
		TokenTTL: time.Hour,
		Producer: producer,
	}
	catalogSvc := &service.CatalogService{Repo: store, Producer: producer}
	inventorySvc := &service.InventoryService{Repo: store, Producer: producer}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:  &AuthHTTP{Svc: authSvc},
		SweetHandler: &SweetHTTP{Catalog: catalogSvc, Inventory: inventorySvc},
		JWTSecret:    testSecret,
	})

	return &testEnv{T: t, E: e, DB: db}
}

func (env *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	env.T.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(env.T, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

// createUser inserts a user directly and returns a signed token for it.
func (env *testEnv) createUser(name, email, password, role string) (models.User, string) {
	env.T.Helper()

	pwHash, err := hash.HashPassword(password)
	require.NoError(env.T, err)

	user := models.User{Name: name, Email: email, PasswordHash: pwHash, Role: role}
	require.NoError(env.T, env.DB.Create(&user).Error)

	token, err := tokens.SignAccessToken(user.ID.String(), user.Role, time.Hour, testSecret)
	require.NoError(env.T, err)
	return user, token
}

func (env *testEnv) userToken() string {
	_, token := env.createUser("Test User", "user@example.com", "Password1", models.RoleUser)
	return token
}

func (env *testEnv) adminToken() string {
	_, token := env.createUser("Test Admin", "admin@example.com", "Password1", models.RoleAdmin)
	return token
}

func (env *testEnv) createSweet(s models.Sweet) models.Sweet {
	env.T.Helper()
	require.NoError(env.T, env.DB.Create(&s).Error)
	return s
}

// envelope mirrors the wire shape for decoding in assertions.
type envelope struct {
	Success bool                   `json:"success"`
	Count   int                    `json:"count"`
	Message string                 `json:"message"`
	Data    json.RawMessage        `json:"data"`
	Errors  []transport.FieldError `json:"errors"`
	Token   string                 `json:"token"`
	User    transport.PublicUser   `json:"user"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func decodeSweet(t *testing.T, raw json.RawMessage) models.Sweet {
	t.Helper()
	var s models.Sweet
	require.NoError(t, json.Unmarshal(raw, &s))
	return s
}

func decodeSweets(t *testing.T, raw json.RawMessage) []models.Sweet {
	t.Helper()
	var s []models.Sweet
	require.NoError(t, json.Unmarshal(raw, &s))
	return s
}
