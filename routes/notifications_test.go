package routes_test

import (
	"fmt"
	"net/http"
	"testing"

	"rozgar-connect-server/models"
)

func seedNotification(t *testing.T, userID uint, ntype string) models.Notification {
	t.Helper()
	n := models.Notification{
		UserID:  userID,
		Type:    ntype,
		Title:   "Test",
		Message: "Test message",
	}
	if err := getDB(t).Create(&n).Error; err != nil {
		t.Fatalf("failed to seed notification: %v", err)
	}
	return n
}

func TestNotificationFeed(t *testing.T) {
	router := setupRouter(t)
	user := createTestUser(t, "Worker", "worker@example.com", "", models.RoleLabour)
	other := createTestUser(t, "Other", "other@example.com", "", models.RoleLabour)
	token := tokenFor(t, user)

	seedNotification(t, user.ID, models.NotificationTypeSystem)
	seedNotification(t, user.ID, models.NotificationTypeHireRequest)
	seedNotification(t, other.ID, models.NotificationTypeSystem)

	w := doJSON(t, router, http.MethodGet, "/api/v1/notifications", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := decodeBody(t, w); body["total_count"].(float64) != 2 {
		t.Errorf("expected only own notifications, got %v", body["total_count"])
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/notifications/unread-count", token, nil)
	if body := decodeBody(t, w); body["unread_count"].(float64) != 2 {
		t.Errorf("expected 2 unread, got %v", body["unread_count"])
	}
}

func TestMarkNotificationRead(t *testing.T) {
	router := setupRouter(t)
	user := createTestUser(t, "Worker", "worker@example.com", "", models.RoleLabour)
	other := createTestUser(t, "Other", "other@example.com", "", models.RoleLabour)
	token := tokenFor(t, user)

	mine := seedNotification(t, user.ID, models.NotificationTypeSystem)
	theirs := seedNotification(t, other.ID, models.NotificationTypeSystem)

	w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/notifications/mark-read/%d", mine.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	// Another user's notification is invisible, not forbidden
	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/notifications/mark-read/%d", theirs.ID), token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for someone else's notification, got %d", w.Code)
	}

	var updated models.Notification
	getDB(t).First(&updated, mine.ID)
	if !updated.Read {
		t.Error("notification not marked read")
	}
	var theirsAfter models.Notification
	getDB(t).First(&theirsAfter, theirs.ID)
	if theirsAfter.Read {
		t.Error("other user's notification was modified")
	}
}

func TestMarkAllNotificationsRead(t *testing.T) {
	router := setupRouter(t)
	user := createTestUser(t, "Worker", "worker@example.com", "", models.RoleLabour)
	token := tokenFor(t, user)

	seedNotification(t, user.ID, models.NotificationTypeSystem)
	seedNotification(t, user.ID, models.NotificationTypeSystem)
	seedNotification(t, user.ID, models.NotificationTypeSystem)

	w := doJSON(t, router, http.MethodPost, "/api/v1/notifications/mark-all-read", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := decodeBody(t, w); body["marked_count"].(float64) != 3 {
		t.Errorf("expected 3 marked, got %v", body["marked_count"])
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/notifications/unread-count", token, nil)
	if body := decodeBody(t, w); body["unread_count"].(float64) != 0 {
		t.Errorf("expected 0 unread after mark-all, got %v", body["unread_count"])
	}
}
