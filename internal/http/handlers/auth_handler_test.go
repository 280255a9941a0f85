package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/proposal-builder/internal/models"
	"github.com/ignatzorin/proposal-builder/internal/repository"
	"github.com/ignatzorin/proposal-builder/internal/service"
)

// memoryUsers — хранилище пользователей в памяти для тестов хэндлеров.
type memoryUsers struct {
	byEmail map[string]*models.User
	byID    map[uuid.UUID]*models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{
		byEmail: make(map[string]*models.User),
		byID:    make(map[uuid.UUID]*models.User),
	}
}

func (m *memoryUsers) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	m.byEmail[user.Email] = user
	m.byID[user.ID] = user
	return nil
}

func (m *memoryUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := m.byEmail[email]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *memoryUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := m.byID[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *memoryUsers) UpdateLastLoginAt(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func newAuthRouter() (*gin.Engine, *service.TokenManager) {
	gin.SetMode(gin.TestMode)
	tokenManager := service.NewTokenManager("access", "refresh", time.Minute, time.Hour)
	handler := NewAuthHandler(service.NewAuthService(newMemoryUsers(), tokenManager))

	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/refresh", handler.Refresh)
	r.GET("/auth/profile", handler.Profile)
	return r, tokenManager
}

func TestAuthHandler_RegisterLoginRefresh(t *testing.T) {
	r, _ := newAuthRouter()

	w := doJSON(t, r, "POST", "/auth/register", gin.H{
		"email":    "ivan@example.com",
		"password": "Password123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var registered struct {
		User   models.User       `json:"user"`
		Tokens service.TokenPair `json:"tokens"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	assert.NotEqual(t, uuid.Nil, registered.User.ID)
	assert.NotEmpty(t, registered.Tokens.AccessToken)

	w = doJSON(t, r, "POST", "/auth/login", gin.H{
		"email":    "ivan@example.com",
		"password": "Password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "POST", "/auth/refresh", gin.H{
		"refresh_token": registered.Tokens.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Register_WeakPassword(t *testing.T) {
	r, _ := newAuthRouter()

	w := doJSON(t, r, "POST", "/auth/register", gin.H{
		"email":    "ivan@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Register_BadEmail(t *testing.T) {
	r, _ := newAuthRouter()

	w := doJSON(t, r, "POST", "/auth/register", gin.H{
		"email":    "не-почта",
		"password": "Password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	r, _ := newAuthRouter()

	w := doJSON(t, r, "POST", "/auth/register", gin.H{
		"email":    "ivan@example.com",
		"password": "Password123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", "/auth/login", gin.H{
		"email":    "ivan@example.com",
		"password": "Password456",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Refresh_InvalidToken(t *testing.T) {
	r, _ := newAuthRouter()

	w := doJSON(t, r, "POST", "/auth/refresh", gin.H{"refresh_token": "мусор"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Profile_Unauthorized(t *testing.T) {
	r, _ := newAuthRouter()

	w := doJSON(t, r, "GET", "/auth/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
