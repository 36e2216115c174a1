package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mtakagi/task-manager-api/internal/auth"
	"github.com/mtakagi/task-manager-api/internal/database"
	"github.com/mtakagi/task-manager-api/internal/dto"
	"github.com/mtakagi/task-manager-api/internal/middleware"
	"github.com/mtakagi/task-manager-api/internal/models"
	"github.com/mtakagi/task-manager-api/internal/repository"
	"github.com/mtakagi/task-manager-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authHandlerTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
	tokens      *auth.TokenService
}

func setupAuthTestEnv(t *testing.T) authHandlerTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)
	tokens := auth.NewTokenService([]byte("test-secret"), 30*time.Minute)
	handler := NewAuthHandler(authService, tokens)

	r := gin.New()
	r.POST("/users/", handler.Register)
	r.POST("/token", handler.Token)
	r.GET("/users/me/", middleware.RequireAuth(tokens, userRepo), handler.GetCurrentUser)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authHandlerTestEnv{
		db:          db,
		router:      r,
		authService: authService,
		tokens:      tokens,
	}
}

func (env authHandlerTestEnv) registerJSON(t *testing.T, payload map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/users/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.registerJSON(t, map[string]string{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "newuser", response.Username)
	require.Equal(t, "newuser@example.com", response.Email)
	require.NotContains(t, w.Body.String(), "password")
}

func TestAuthHandler_Register_EmailConflict(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.registerJSON(t, map[string]string{
		"username": "alice",
		"email":    "alice@x.com",
		"password": "password1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.registerJSON(t, map[string]string{
		"username": "bob",
		"email":    "alice@x.com",
		"password": "password2",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Email already registered")
}

func TestAuthHandler_Register_UsernameConflict(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.registerJSON(t, map[string]string{
		"username": "alice",
		"email":    "alice@x.com",
		"password": "password1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Username and email both taken; username is reported
	w = env.registerJSON(t, map[string]string{
		"username": "alice",
		"email":    "alice@x.com",
		"password": "password2",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Username already taken")
}

func TestAuthHandler_Register_WhitespaceUsername(t *testing.T) {
	env := setupAuthTestEnv(t)

	// Three spaces satisfy the min=3 binding but trim to nothing; the
	// response must be a client error, not a 500.
	w := env.registerJSON(t, map[string]string{
		"username": "   ",
		"email":    "blank@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Username is required")
}

func TestAuthHandler_Token(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Username: "existing",
		Email:    "existing@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	form := url.Values{}
	form.Set("username", "existing")
	form.Set("password", "supersecret")

	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "bearer", response.TokenType)
	require.NotEmpty(t, response.AccessToken)

	subject, err := env.tokens.Verify(response.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "existing", subject)
}

func TestAuthHandler_Token_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Username: "existing",
		Email:    "existing@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	form := url.Values{}
	form.Set("username", "existing")
	form.Set("password", "wrong")

	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Username: "current-user",
		Email:    "current@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	token, err := env.tokens.Issue(user.Username)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users/me/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.Username, response.Username)
	require.Equal(t, user.ID, response.ID)
}

func TestAuthHandler_GetCurrentUser_NoToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/users/me/", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
