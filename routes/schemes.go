package routes

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rozgar-connect-server/database"
	"rozgar-connect-server/models"
	"rozgar-connect-server/services"
)

// RegisterSchemeRoutes registers the welfare scheme catalogue routes
func RegisterSchemeRoutes(public *gin.RouterGroup, admin *gin.RouterGroup) {
	public.GET("", getSchemes)
	admin.POST("/sync", syncSchemes)
}

// getSchemes lists active welfare schemes with optional filters
func getSchemes(c *gin.Context) {
	query := database.DB.Model(&models.Scheme{}).Where("status = ?", "Active")

	if targetGroup := strings.TrimSpace(c.Query("target_group")); targetGroup != "" {
		query = query.Where("target_group = ?", targetGroup)
	}
	if board := strings.TrimSpace(c.Query("board")); board != "" {
		query = query.Where("board = ?", board)
	}
	if schemeType := strings.TrimSpace(c.Query("type")); schemeType != "" {
		query = query.Where("type = ?", schemeType)
	}

	var schemes []models.Scheme
	if err := query.Order("last_checked DESC, title ASC").Find(&schemes).Error; err != nil {
		log.Printf("❌ Failed to fetch schemes: %v", err)
		respondError(c, http.StatusInternalServerError, errServer, "Failed to fetch schemes")
		return
	}

	responses := make([]models.SchemeResponse, 0, len(schemes))
	for _, s := range schemes {
		responses = append(responses, s.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"schemes":     responses,
		"total_count": len(responses),
	})
}

// syncSchemes triggers an on-demand scrape of the welfare boards. Admin only.
func syncSchemes(c *gin.Context) {
	scraper := services.NewSchemeScraperService(database.DB)
	result := scraper.Sync()

	c.JSON(http.StatusOK, gin.H{
		"message":     "Scheme sync completed",
		"total_found": result.TotalFound,
		"added":       result.Added,
		"refreshed":   result.Refreshed,
	})
}
