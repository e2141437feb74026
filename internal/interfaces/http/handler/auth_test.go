package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appidentity "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

const testCookieName = "storefront_session"

// MockUserRepository implements identity.UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func setupAuthTestRouter() (*gin.Engine, *MockUserRepository, *auth.MemoryStore) {
	gin.SetMode(gin.TestMode)

	userRepo := new(MockUserRepository)
	sessions := auth.NewMemoryStore(time.Hour)
	authService := appidentity.NewAuthService(userRepo, sessions, zap.NewNop())
	handler := NewAuthHandler(authService,
		config.SessionConfig{TTL: time.Hour, CookieName: testCookieName},
		config.CookieConfig{Path: "/", SameSite: "lax"},
	)

	engine := gin.New()
	engine.Use(middleware.Session(middleware.SessionConfig{
		Sessions:   sessions,
		Users:      userRepo,
		CookieName: testCookieName,
		Logger:     zap.NewNop(),
	}))
	api := engine.Group("/api")
	handler.RegisterRoutes(api)
	return engine, userRepo, sessions
}

func newActiveUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("alice", "alice@example.com", "Password1")
	require.NoError(t, err)
	return user
}

func decodeEnvelope(t *testing.T, body *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(body.Bytes(), &resp))
	return resp
}

func TestAuthHandler_Register(t *testing.T) {
	engine, userRepo, _ := setupAuthTestRouter()

	userRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, shared.ErrNotFound)
	userRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, shared.ErrNotFound)
	userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	body, _ := json.Marshal(gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "Password1",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeEnvelope(t, w.Body)
	assert.True(t, resp["success"].(bool))
	assert.NotEmpty(t, resp["timestamp"])
	userRepo.AssertExpectations(t)
}

func TestAuthHandler_Register_DuplicateUsername(t *testing.T) {
	engine, userRepo, _ := setupAuthTestRouter()

	userRepo.On("FindByUsername", mock.Anything, "alice").Return(newActiveUser(t), nil)

	body, _ := json.Marshal(gin.H{
		"username": "alice",
		"email":    "second@example.com",
		"password": "Password1",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeEnvelope(t, w.Body)
	assert.False(t, resp["success"].(bool))
	assert.Equal(t, "ALREADY_EXISTS", resp["error_code"])
}

func TestAuthHandler_Login_SetsCookie(t *testing.T) {
	engine, userRepo, _ := setupAuthTestRouter()
	user := newActiveUser(t)

	userRepo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)

	body, _ := json.Marshal(gin.H{"username": "alice", "password": "Password1"})
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var sessionCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == testCookieName {
			sessionCookie = cookie
		}
	}
	require.NotNil(t, sessionCookie, "login must set the session cookie")
	assert.Len(t, sessionCookie.Value, 64)
	assert.True(t, sessionCookie.HttpOnly)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	engine, userRepo, _ := setupAuthTestRouter()

	userRepo.On("FindByUsername", mock.Anything, "alice").Return(newActiveUser(t), nil)

	body, _ := json.Marshal(gin.H{"username": "alice", "password": "Wrong1234"})
	req, _ := http.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_MeAndLogout(t *testing.T) {
	engine, userRepo, sessions := setupAuthTestRouter()
	user := newActiveUser(t)

	token, err := sessions.Create(context.Background(), user.ID)
	require.NoError(t, err)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w.Body)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "alice", data["username"])

	req, _ = http.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	_, err = sessions.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}

func TestAuthHandler_Me_Anonymous(t *testing.T) {
	engine, _, _ := setupAuthTestRouter()

	req, _ := http.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Check(t *testing.T) {
	engine, userRepo, sessions := setupAuthTestRouter()
	user := newActiveUser(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/auth/check", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w.Body)
	assert.False(t, resp["data"].(map[string]interface{})["authenticated"].(bool))

	token, err := sessions.Create(context.Background(), user.ID)
	require.NoError(t, err)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	req, _ = http.NewRequest(http.MethodGet, "/api/auth/check", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp = decodeEnvelope(t, w.Body)
	assert.True(t, resp["data"].(map[string]interface{})["authenticated"].(bool))
}

func TestSessionMiddleware_DeactivatedUserInvalidatesSession(t *testing.T) {
	engine, userRepo, sessions := setupAuthTestRouter()
	user := newActiveUser(t)
	user.Deactivate()

	token, err := sessions.Create(context.Background(), user.ID)
	require.NoError(t, err)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	_, err = sessions.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound, "stale session must be destroyed")
}
