package integration

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"trademini-be/internal/bootstrap"
	"trademini-be/internal/config"
	"trademini-be/internal/dto"
	"trademini-be/internal/model"
	"trademini-be/internal/pkg/serverutils"
	"trademini-be/internal/server"
	"trademini-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminAuth(t *testing.T) {
	// Load .env from root (2 levels up) because tests run in package dir
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
	}
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		t.Skip("DB_CONNECTION_STRING not set, skipping integration test")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)
	srv := server.New(cfg, container)
	app := srv.GetApp()

	// Seed one admin and one regular user with the same password
	pass := "admin123"
	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	hashStr := string(hash)

	adminEmail := "testadmin@example.com"
	adminId := uuid.New()
	admin := model.User{
		Id:           adminId,
		Email:        &adminEmail,
		FullName:     "Test Admin",
		PasswordHash: &hashStr,
		Role:         "admin",
		Status:       "active",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	userEmail := "testuser@example.com"
	userId := uuid.New()
	regular := model.User{
		Id:           userId,
		Email:        &userEmail,
		FullName:     "Test User",
		PasswordHash: &hashStr,
		Role:         "user",
		Status:       "active",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	db.Create(&admin)
	db.Create(&regular)

	defer func() {
		db.Delete(&model.User{}, adminId)
		db.Delete(&model.User{}, userId)
	}()

	t.Run("Login as Admin success", func(t *testing.T) {
		reqBody := dto.LoginRequest{
			Email:    adminEmail,
			Password: pass,
		}
		body, _ := json.Marshal(reqBody)

		req := httptest.NewRequest("POST", "/api/admin/login", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req, -1)

		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.BaseResponse[dto.LoginResponse]
		json.NewDecoder(resp.Body).Decode(&result)

		assert.True(t, result.Success)
		assert.NotEmpty(t, result.Data.AccessToken)
		assert.Equal(t, "admin", result.Data.User.Role)
	})

	t.Run("Login as Regular User denied", func(t *testing.T) {
		reqBody := dto.LoginRequest{
			Email:    userEmail,
			Password: pass,
		}
		body, _ := json.Marshal(reqBody)

		req := httptest.NewRequest("POST", "/api/admin/login", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req, -1)

		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Invalid Password", func(t *testing.T) {
		reqBody := dto.LoginRequest{
			Email:    adminEmail,
			Password: "wrongpassword",
		}
		body, _ := json.Marshal(reqBody)

		req := httptest.NewRequest("POST", "/api/admin/login", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req, -1)

		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Dashboard requires admin token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/admin/dashboard", nil)
		resp, _ := app.Test(req, -1)
		assert.Equal(t, 401, resp.StatusCode)
	})
}
