package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"rozgar-connect-server/database"
	"rozgar-connect-server/models"
)

// RegisterNotificationRoutes registers the notification feed. Clients
// poll these endpoints; there is no push channel.
func RegisterNotificationRoutes(router *gin.RouterGroup) {
	router.GET("", getUserNotifications)
	router.GET("/unread-count", getUnreadCount)
	router.POST("/mark-read/:id", markNotificationAsRead)
	router.POST("/mark-all-read", markAllNotificationsAsRead)
}

// getUserNotifications gets the newest notifications for the
// authenticated user
func getUserNotifications(c *gin.Context) {
	userID := c.GetUint("user_id")

	var notifications []models.Notification
	err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications).Error

	if err != nil {
		log.Printf("❌ Error fetching notifications: %v", err)
		respondError(c, http.StatusInternalServerError, errServer, "Failed to fetch notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"total_count":   len(notifications),
	})
}

// getUnreadCount returns the number of unread notifications
func getUnreadCount(c *gin.Context) {
	userID := c.GetUint("user_id")

	var count int64
	if err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error; err != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to count notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// markNotificationAsRead marks one of the user's notifications as read
func markNotificationAsRead(c *gin.Context) {
	userID := c.GetUint("user_id")
	notificationID := paramUint(c, "id")

	result := database.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to update notification")
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, errNotFound, "Notification not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// markAllNotificationsAsRead marks every unread notification as read
func markAllNotificationsAsRead(c *gin.Context) {
	userID := c.GetUint("user_id")

	result := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, errServer, "Failed to update notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "All notifications marked as read",
		"marked_count": result.RowsAffected,
	})
}
