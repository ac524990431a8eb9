package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/auth"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/domain"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/event"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/internal/service"
	apperrors "github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/errors"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/health"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/httputil"
	pkgkafka "github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/kafka"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/middleware"
	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/pagination"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockCartRepo struct {
	mock.Mock
}

func (m *mockCartRepo) Get(ctx context.Context, owner domain.CartOwner) (*domain.Cart, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepo) SaveIfVersion(ctx context.Context, cart *domain.Cart, expectedVersion int) (bool, error) {
	args := m.Called(ctx, cart, expectedVersion)
	return args.Bool(0), args.Error(1)
}

func (m *mockCartRepo) Delete(ctx context.Context, owner domain.CartOwner) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepo) List(ctx context.Context, params pagination.Params) ([]*domain.Product, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Product), args.Int(1), args.Error(2)
}

func (m *mockProductRepo) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ============================================================================
// Test Helpers
// ============================================================================

type nopPublisher struct{}

func (nopPublisher) Publish(ctx context.Context, topic string, event *pkgkafka.Event) error {
	return nil
}

func restTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func restTestJWT() *auth.JWTManager {
	return auth.NewJWTManager("test-secret-key-at-least-32-chars-long", time.Hour)
}

// setupRouter builds the full production router over mocked repositories.
func setupRouter(userRepo *mockUserRepo, cartRepo *mockCartRepo, productRepo *mockProductRepo) http.Handler {
	logger := restTestLogger()
	producer := event.NewProducer(nopPublisher{}, logger)
	jwtManager := restTestJWT()

	users := service.NewUserService(userRepo, jwtManager, producer, logger)
	carts := service.NewCartService(cartRepo, productRepo, producer, logger, 7*24*time.Hour)

	return NewRouter(RouterConfig{
		Users:         users,
		Carts:         carts,
		Verifier:      auth.Verifier(jwtManager),
		HealthHandler: health.NewHandler(),
		Logger:        logger,
		TokenTTL:      time.Hour,
		CORS:          middleware.CORSConfig{AllowedOrigins: []string{"*"}, Environment: "test"},
	})
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func sampleAccount(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now().UTC()
	return &domain.User{
		ID:           "user-1",
		Fullname:     "Alice Smith",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ============================================================================
// Register
// ============================================================================

func TestRegister_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	router := setupRouter(userRepo, new(mockCartRepo), new(mockProductRepo))

	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/registeruser", map[string]string{
		"fullname": "Alice Smith",
		"email":    "alice@example.com",
		"password": "Str0ng!Pass",
	}, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "User registered successfully", resp.Message)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", data["email"])
	// The password hash never leaves the service.
	assert.NotContains(t, data, "password_hash")

	userRepo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := new(mockUserRepo)
	router := setupRouter(userRepo, new(mockCartRepo), new(mockProductRepo))

	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Return(apperrors.AlreadyExists("user", "email", "alice@example.com"))

	rec := doJSON(t, router, http.MethodPost, "/api/auth/registeruser", map[string]string{
		"fullname": "Alice Smith",
		"email":    "alice@example.com",
		"password": "Str0ng!Pass",
	}, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ALREADY_EXISTS", resp.Error.Code)

	userRepo.AssertExpectations(t)
}

func TestRegister_MissingFields(t *testing.T) {
	router := setupRouter(new(mockUserRepo), new(mockCartRepo), new(mockProductRepo))

	rec := doJSON(t, router, http.MethodPost, "/api/auth/registeruser", map[string]string{
		"email": "alice@example.com",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Fields, "Fullname")
	assert.Contains(t, resp.Error.Fields, "Password")
}

func TestRegister_WrongContentType(t *testing.T) {
	router := setupRouter(new(mockUserRepo), new(mockCartRepo), new(mockProductRepo))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/registeruser", bytes.NewBufferString("<xml/>"))
	req.Header.Set("Content-Type", "text/xml")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

// ============================================================================
// Login
// ============================================================================

func TestLogin_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	router := setupRouter(userRepo, new(mockCartRepo), new(mockProductRepo))

	account := sampleAccount(t, "Str0ng!Pass")
	userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(account, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "Str0ng!Pass",
	}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "Login successful", resp.Message)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, domain.RoleCustomer, data["role"])

	// The token also travels as an HttpOnly cookie.
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.TokenCookieName, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	userRepo.AssertExpectations(t)
}

func TestLogin_LegacyPrefix(t *testing.T) {
	userRepo := new(mockUserRepo)
	router := setupRouter(userRepo, new(mockCartRepo), new(mockProductRepo))

	account := sampleAccount(t, "Str0ng!Pass")
	userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(account, nil)

	// The same endpoints answer under /api/login as well.
	rec := doJSON(t, router, http.MethodPost, "/api/login/login", map[string]string{
		"email":    "alice@example.com",
		"password": "Str0ng!Pass",
	}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	userRepo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(mockUserRepo)
	router := setupRouter(userRepo, new(mockCartRepo), new(mockProductRepo))

	account := sampleAccount(t, "Str0ng!Pass")
	userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(account, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "Wr0ng!Pass",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "invalid email or password", resp.Error.Message)
	assert.Empty(t, rec.Result().Cookies())

	userRepo.AssertExpectations(t)
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(mockUserRepo)
	router := setupRouter(userRepo, new(mockCartRepo), new(mockProductRepo))

	userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, apperrors.ErrNotFound)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "Str0ng!Pass",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	// Indistinguishable from a wrong password.
	assert.Equal(t, "invalid email or password", resp.Error.Message)

	userRepo.AssertExpectations(t)
}

// ============================================================================
// Root
// ============================================================================

func TestRoot_Banner(t *testing.T) {
	router := setupRouter(new(mockUserRepo), new(mockCartRepo), new(mockProductRepo))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Backend is running...", rec.Body.String())
}
