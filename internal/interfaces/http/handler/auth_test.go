package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appidentity "github.com/hris/backend/internal/application/identity"
	"github.com/hris/backend/internal/domain/identity"
	"github.com/hris/backend/internal/domain/shared"
	"github.com/hris/backend/internal/infrastructure/auth"
	"github.com/hris/backend/internal/infrastructure/config"
	"github.com/hris/backend/internal/interfaces/http/middleware"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
	}
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
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

func (m *MockUserRepository) FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) (*shared.Paginated[*identity.User], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*identity.User]), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) CountByRole(ctx context.Context, roleID uuid.UUID) (int64, error) {
	args := m.Called(ctx, roleID)
	return args.Get(0).(int64), args.Error(1)
}

// MockRoleRepository is a mock implementation of identity.RoleRepository
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) Save(ctx context.Context, role *identity.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Role), args.Error(1)
}

func (m *MockRoleRepository) FindByCode(ctx context.Context, code string) (*identity.Role, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Role), args.Error(1)
}

func (m *MockRoleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*identity.Role, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.Role), args.Error(1)
}

func (m *MockRoleRepository) FindAll(ctx context.Context, filter identity.RoleFilter) (*shared.Paginated[*identity.Role], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*identity.Role]), args.Error(1)
}

func (m *MockRoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoleRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// stubBlacklist is an in-memory auth.TokenBlacklist for tests
type stubBlacklist struct {
	mu   sync.Mutex
	jtis map[string]struct{}
}

func newStubBlacklist() *stubBlacklist {
	return &stubBlacklist{jtis: make(map[string]struct{})}
}

func (b *stubBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jtis[jti] = struct{}{}
	return nil
}

func (b *stubBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.jtis[jti]
	return ok, nil
}

func (b *stubBlacklist) AddUserTokensToBlacklist(ctx context.Context, userID string, ttl time.Duration) error {
	return nil
}

func (b *stubBlacklist) IsUserTokenInvalidated(ctx context.Context, userID string, tokenIssuedAt time.Time) (bool, error) {
	return false, nil
}

func newActiveUser(t *testing.T, username, password string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(username, password)
	require.NoError(t, err)
	require.NoError(t, user.Activate())
	return user
}

type authTestEnv struct {
	handler   *AuthHandler
	userRepo  *MockUserRepository
	roleRepo  *MockRoleRepository
	blacklist *stubBlacklist
	engine    *gin.Engine
}

func setupAuthTest(t *testing.T) *authTestEnv {
	t.Helper()

	userRepo := new(MockUserRepository)
	roleRepo := new(MockRoleRepository)
	blacklist := newStubBlacklist()
	jwtService := auth.NewJWTService(testJWTConfig())

	authService := appidentity.NewAuthService(
		userRepo,
		roleRepo,
		jwtService,
		blacklist,
		appidentity.DefaultAuthServiceConfig(),
		zap.NewNop(),
	)

	h := NewAuthHandler(authService, nil)
	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api/v1"))

	return &authTestEnv{
		handler:   h,
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		blacklist: blacklist,
		engine:    engine,
	}
}

func postJSON(t *testing.T, engine *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("successful login returns tokens and user info", func(t *testing.T) {
		env := setupAuthTest(t)
		user := newActiveUser(t, "jdoe", "password123")
		env.userRepo.On("FindByUsername", mock.Anything, "jdoe").Return(user, nil)
		env.userRepo.On("Save", mock.Anything, user).Return(nil)

		w := postJSON(t, env.engine, "/api/v1/auth/login", LoginRequest{
			Username: "jdoe",
			Password: "password123",
		})

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				Token TokenResponse    `json:"token"`
				User  AuthUserResponse `json:"user"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Data.Token.AccessToken)
		assert.NotEmpty(t, resp.Data.Token.RefreshToken)
		assert.Equal(t, "Bearer", resp.Data.Token.TokenType)
		assert.Equal(t, "jdoe", resp.Data.User.Username)
	})

	t.Run("wrong password returns 401", func(t *testing.T) {
		env := setupAuthTest(t)
		user := newActiveUser(t, "jdoe", "password123")
		env.userRepo.On("FindByUsername", mock.Anything, "jdoe").Return(user, nil)
		env.userRepo.On("Save", mock.Anything, user).Return(nil)

		w := postJSON(t, env.engine, "/api/v1/auth/login", LoginRequest{
			Username: "jdoe",
			Password: "wrong-password",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
	})

	t.Run("unknown user returns 401 without leaking existence", func(t *testing.T) {
		env := setupAuthTest(t)
		env.userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, shared.ErrNotFound)

		w := postJSON(t, env.engine, "/api/v1/auth/login", LoginRequest{
			Username: "ghost",
			Password: "password123",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
	})

	t.Run("pending account returns 403", func(t *testing.T) {
		env := setupAuthTest(t)
		user, err := identity.NewUser("pending", "password123")
		require.NoError(t, err)
		env.userRepo.On("FindByUsername", mock.Anything, "pending").Return(user, nil)

		w := postJSON(t, env.engine, "/api/v1/auth/login", LoginRequest{
			Username: "pending",
			Password: "password123",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "ACCOUNT_PENDING")
	})

	t.Run("short username fails validation", func(t *testing.T) {
		env := setupAuthTest(t)

		w := postJSON(t, env.engine, "/api/v1/auth/login", LoginRequest{
			Username: "ab",
			Password: "password123",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	t.Run("valid refresh token returns a new pair", func(t *testing.T) {
		env := setupAuthTest(t)
		user := newActiveUser(t, "jdoe", "password123")

		jwtService := auth.NewJWTService(testJWTConfig())
		pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID:   user.ID,
			Username: user.Username,
		})
		require.NoError(t, err)

		env.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		w := postJSON(t, env.engine, "/api/v1/auth/refresh", RefreshTokenRequest{
			RefreshToken: pair.RefreshToken,
		})

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data RefreshTokenResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Data.Token.AccessToken)
		assert.NotEmpty(t, resp.Data.Token.RefreshToken)
	})

	t.Run("garbage refresh token returns 401", func(t *testing.T) {
		env := setupAuthTest(t)

		w := postJSON(t, env.engine, "/api/v1/auth/refresh", RefreshTokenRequest{
			RefreshToken: "not-a-token",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	t.Run("returns the authenticated user", func(t *testing.T) {
		env := setupAuthTest(t)
		user := newActiveUser(t, "jdoe", "password123")
		env.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		engine := gin.New()
		engine.Use(func(c *gin.Context) {
			c.Set(middleware.JWTUserIDKey, user.ID.String())
		})
		env.handler.RegisterRoutes(engine.Group("/api/v1"))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "jdoe")
	})

	t.Run("missing identity returns 401", func(t *testing.T) {
		env := setupAuthTest(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		w := httptest.NewRecorder()
		env.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupAuthTest(t)
	user := newActiveUser(t, "jdoe", "password123")

	jwtService := auth.NewJWTService(testJWTConfig())
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
	})
	require.NoError(t, err)
	claims, err := jwtService.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.JWTClaimsKey, claims)
		c.Set(middleware.JWTUserIDKey, user.ID.String())
	})
	env.handler.RegisterRoutes(engine.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	blacklisted, err := env.blacklist.IsBlacklisted(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, blacklisted, "access token JTI should be revoked after logout")
}
