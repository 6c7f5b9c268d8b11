package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rozgar-connect-server/config"
	"rozgar-connect-server/database"
	"rozgar-connect-server/middleware"
	"rozgar-connect-server/models"
	"rozgar-connect-server/routes"
	"rozgar-connect-server/utils"
)

const testPassword = "Str0ngPass"

// setupRouter gives each test a fresh in-memory database and a router
// wired like production, minus the rate limiters.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Load()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	// A single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	database.DB = db

	router := gin.New()
	api := router.Group("/api/v1")

	routes.RegisterAuthRoutes(api.Group("/auth"))

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	routes.RegisterProtectedAuthRoutes(protected.Group("/auth"))
	routes.RegisterUserRoutes(protected.Group("/users"))
	routes.RegisterDirectoryRoutes(protected)
	routes.RegisterJobRoutes(protected.Group("/jobs"))
	routes.RegisterDashboardJobRoutes(protected)
	routes.RegisterApplicationRoutes(protected.Group("/applications"))
	routes.RegisterHireRequestRoutes(protected.Group("/hire-requests"))
	routes.RegisterNotificationRoutes(protected.Group("/notifications"))
	routes.RegisterReviewRoutes(protected.Group("/reviews"))

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	routes.RegisterAdminRoutes(admin)

	adminOnly := middleware.RequireRole(models.RoleAdmin)
	routes.RegisterSchemeRoutes(api.Group("/schemes"), protected.Group("/schemes", adminOnly))
	routes.RegisterPolicyRoutes(api.Group("/policies"), protected.Group("/policies", adminOnly))

	return router
}

// getDB returns the handle installed by setupRouter.
func getDB(t *testing.T) *gorm.DB {
	t.Helper()
	if database.DB == nil {
		t.Fatal("test database not initialized")
	}
	return database.DB
}

// createTestUser inserts a user directly and returns it.
func createTestUser(t *testing.T, name, email, phone string, role models.UserRole) models.User {
	t.Helper()

	hash, err := utils.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if email != "" {
		user.Email = &email
	}
	if phone != "" {
		user.Phone = &phone
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return user
}

// tokenFor returns a valid bearer token for the user.
func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

// seedOTP stores a hashed one-time code for an identifier.
func seedOTP(t *testing.T, identifier, code string) {
	t.Helper()
	hash, err := utils.HashPassword(code)
	if err != nil {
		t.Fatalf("failed to hash OTP: %v", err)
	}
	otp := models.Otp{
		Identifier: identifier,
		CodeHash:   hash,
		ExpiresAt:  time.Now().Add(5 * time.Minute),
	}
	if err := database.DB.Create(&otp).Error; err != nil {
		t.Fatalf("failed to seed OTP: %v", err)
	}
}

// doJSON performs a request with a JSON body and optional bearer token.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a JSON response into a generic map.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
	}
	return out
}

// countNotifications returns how many notifications of a type a user has.
func countNotifications(t *testing.T, userID uint, ntype string) int64 {
	t.Helper()
	var count int64
	if err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", userID, ntype).
		Count(&count).Error; err != nil {
		t.Fatalf("failed to count notifications: %v", err)
	}
	return count
}
