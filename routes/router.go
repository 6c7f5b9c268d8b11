package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rozgar-connect-server/middleware"
	"rozgar-connect-server/models"
)

// SetupRouter wires middleware and all API routes onto a gin engine
func SetupRouter() *gin.Engine {
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.InputValidationMiddleware())
	router.Use(middleware.AuditLogMiddleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "rozgar-connect-server",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := router.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware())

	// Public routes
	auth := api.Group("/auth")
	auth.Use(middleware.AuthRateLimitMiddleware())
	RegisterAuthRoutes(auth)

	schemesPublic := api.Group("/schemes")
	policiesPublic := api.Group("/policies")

	// Authenticated routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())

	RegisterProtectedAuthRoutes(protected.Group("/auth"))
	RegisterUserRoutes(protected.Group("/users"))
	RegisterDirectoryRoutes(protected)
	RegisterJobRoutes(protected.Group("/jobs"))
	RegisterDashboardJobRoutes(protected)
	RegisterApplicationRoutes(protected.Group("/applications"))
	RegisterHireRequestRoutes(protected.Group("/hire-requests"))
	RegisterNotificationRoutes(protected.Group("/notifications"))
	RegisterReviewRoutes(protected.Group("/reviews"))

	// Admin routes
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	RegisterAdminRoutes(admin)

	adminOnly := middleware.RequireRole(models.RoleAdmin)
	RegisterSchemeRoutes(schemesPublic, protected.Group("/schemes", adminOnly))
	RegisterPolicyRoutes(policiesPublic, protected.Group("/policies", adminOnly))

	return router
}
