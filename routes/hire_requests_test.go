package routes_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"rozgar-connect-server/models"
)

func sendHireRequest(t *testing.T, router *gin.Engine, contractor, worker models.User) uint {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/hire-requests", tokenFor(t, contractor), map[string]any{
		"worker_id": worker.ID,
		"job_type":  "Daily Wage",
		"message":   "Need help with site work",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("hire request failed: %d %s", w.Code, w.Body.String())
	}
	var hr models.HireRequest
	if err := getDB(t).Where("contractor_id = ? AND worker_id = ?", contractor.ID, worker.ID).First(&hr).Error; err != nil {
		t.Fatalf("hire request row missing: %v", err)
	}
	return hr.ID
}

func TestCreateHireRequest(t *testing.T) {
	router := setupRouter(t)
	contractor := createTestUser(t, "Builder", "builder@example.com", "", models.RoleContractor)
	worker := createTestUser(t, "Worker", "worker@example.com", "9123456780", models.RoleLabour)

	id := sendHireRequest(t, router, contractor, worker)

	var hr models.HireRequest
	getDB(t).First(&hr, id)
	if hr.Status != models.HireRequestStatusPending {
		t.Errorf("expected pending status, got %s", hr.Status)
	}
	if got := countNotifications(t, worker.ID, models.NotificationTypeHireRequest); got != 1 {
		t.Errorf("expected 1 hire request notification, got %d", got)
	}
}

func TestHireRequestRejectsNonLabourTarget(t *testing.T) {
	router := setupRouter(t)
	contractor := createTestUser(t, "Builder", "builder@example.com", "", models.RoleContractor)
	other := createTestUser(t, "Other Builder", "other@example.com", "", models.RoleContractor)

	w := doJSON(t, router, http.MethodPost, "/api/v1/hire-requests", tokenFor(t, contractor), map[string]any{
		"worker_id": other.ID,
		"job_type":  "Daily Wage",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 targeting a contractor, got %d", w.Code)
	}
}

func TestAcceptHireRequestRevealsContact(t *testing.T) {
	router := setupRouter(t)
	contractor := createTestUser(t, "Builder", "builder@example.com", "9000000001", models.RoleContractor)
	worker := createTestUser(t, "Worker", "worker@example.com", "9123456780", models.RoleLabour)
	id := sendHireRequest(t, router, contractor, worker)

	// Pending request hides the worker's phone from the contractor
	w := doJSON(t, router, http.MethodGet, "/api/v1/hire-requests/sent", tokenFor(t, contractor), nil)
	body := decodeBody(t, w)
	sent := body["hire_requests"].([]any)[0].(map[string]any)
	if sent["contact_phone"] != nil {
		t.Errorf("pending request must not expose contact, got %v", sent["contact_phone"])
	}

	w = doJSON(t, router, http.MethodPut,
		fmt.Sprintf("/api/v1/hire-requests/%d/status", id),
		tokenFor(t, worker),
		map[string]any{"status": "accepted"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// No job or application rows come out of the direct-hire flow
	var jobCount, appCount int64
	getDB(t).Model(&models.Job{}).Count(&jobCount)
	getDB(t).Model(&models.Application{}).Count(&appCount)
	if jobCount != 0 || appCount != 0 {
		t.Errorf("hire accept created job/application rows: jobs=%d apps=%d", jobCount, appCount)
	}

	if got := countNotifications(t, contractor.ID, models.NotificationTypeHireAccepted); got != 1 {
		t.Errorf("expected 1 acceptance notification for the contractor, got %d", got)
	}

	// Accepted request exposes the worker's phone to the contractor
	w = doJSON(t, router, http.MethodGet, "/api/v1/hire-requests/sent", tokenFor(t, contractor), nil)
	body = decodeBody(t, w)
	sent = body["hire_requests"].([]any)[0].(map[string]any)
	if sent["contact_phone"] != "9123456780" {
		t.Errorf("expected worker phone on accepted request, got %v", sent["contact_phone"])
	}

	// And the contractor's phone to the worker
	w = doJSON(t, router, http.MethodGet, "/api/v1/hire-requests/received", tokenFor(t, worker), nil)
	body = decodeBody(t, w)
	received := body["hire_requests"].([]any)[0].(map[string]any)
	if received["contact_phone"] != "9000000001" {
		t.Errorf("expected contractor phone on accepted request, got %v", received["contact_phone"])
	}
}

func TestHireRequestSingleResolution(t *testing.T) {
	router := setupRouter(t)
	contractor := createTestUser(t, "Builder", "builder@example.com", "", models.RoleContractor)
	worker := createTestUser(t, "Worker", "worker@example.com", "", models.RoleLabour)
	id := sendHireRequest(t, router, contractor, worker)
	path := fmt.Sprintf("/api/v1/hire-requests/%d/status", id)
	token := tokenFor(t, worker)

	w := doJSON(t, router, http.MethodPut, path, token, map[string]any{"status": "rejected"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPut, path, token, map[string]any{"status": "accepted"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on second resolution, got %d", w.Code)
	}

	if got := countNotifications(t, contractor.ID, models.NotificationTypeHireRejected); got != 1 {
		t.Errorf("expected 1 rejection notification, got %d", got)
	}
}

func TestHireRequestOnlyAddresseeResponds(t *testing.T) {
	router := setupRouter(t)
	contractor := createTestUser(t, "Builder", "builder@example.com", "", models.RoleContractor)
	worker := createTestUser(t, "Worker", "worker@example.com", "", models.RoleLabour)
	bystander := createTestUser(t, "Bystander", "bystander@example.com", "", models.RoleLabour)
	id := sendHireRequest(t, router, contractor, worker)

	w := doJSON(t, router, http.MethodPut,
		fmt.Sprintf("/api/v1/hire-requests/%d/status", id),
		tokenFor(t, bystander),
		map[string]any{"status": "accepted"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-addressee, got %d", w.Code)
	}
}
