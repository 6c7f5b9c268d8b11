package routes_test

import (
	"fmt"
	"net/http"
	"testing"

	"rozgar-connect-server/models"
)

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	router := setupRouter(t)
	labour := createTestUser(t, "Worker", "worker@example.com", "", models.RoleLabour)
	contractor := createTestUser(t, "Builder", "builder@example.com", "", models.RoleContractor)

	for _, user := range []models.User{labour, contractor} {
		w := doJSON(t, router, http.MethodGet, "/api/v1/admin/users", tokenFor(t, user), nil)
		if w.Code != http.StatusForbidden {
			t.Errorf("expected 403 for %s role, got %d", user.Role, w.Code)
		}
	}
}

func TestAdminListUsers(t *testing.T) {
	router := setupRouter(t)
	admin := createTestUser(t, "Admin", "admin@example.com", "", models.RoleAdmin)
	createTestUser(t, "Worker", "worker@example.com", "", models.RoleLabour)
	createTestUser(t, "Builder", "builder@example.com", "", models.RoleContractor)
	token := tokenFor(t, admin)

	w := doJSON(t, router, http.MethodGet, "/api/v1/admin/users", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := decodeBody(t, w); body["total_count"].(float64) != 3 {
		t.Errorf("expected 3 users, got %v", body["total_count"])
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/admin/users?role=labour", token, nil)
	if body := decodeBody(t, w); body["total_count"].(float64) != 1 {
		t.Errorf("expected 1 labour user, got %v", body["total_count"])
	}
}

func TestAdminDeactivateUser(t *testing.T) {
	router := setupRouter(t)
	admin := createTestUser(t, "Admin", "admin@example.com", "", models.RoleAdmin)
	worker := createTestUser(t, "Worker", "worker@example.com", "", models.RoleLabour)
	token := tokenFor(t, admin)

	w := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/admin/users/%d", worker.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.User
	getDB(t).First(&updated, worker.ID)
	if updated.IsActive {
		t.Error("user still active after deactivation")
	}

	// Repeat deactivation finds nothing to change
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/admin/users/%d", worker.ID), token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second deactivation, got %d", w.Code)
	}

	// Admins cannot lock themselves out
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/admin/users/%d", admin.ID), token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for self-deactivation, got %d", w.Code)
	}
}

func TestAdminDashboardStats(t *testing.T) {
	router := setupRouter(t)
	admin := createTestUser(t, "Admin", "admin@example.com", "", models.RoleAdmin)
	contractor := createTestUser(t, "Builder", "builder@example.com", "", models.RoleContractor)
	worker := createTestUser(t, "Worker", "worker@example.com", "", models.RoleLabour)
	job := createTestJob(t, contractor, "Masonry", 650)
	applyAs(t, router, worker, job.ID)

	w := doJSON(t, router, http.MethodGet, "/api/v1/admin/dashboard/stats", tokenFor(t, admin), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	stats := decodeBody(t, w)["stats"].(map[string]any)
	checks := map[string]float64{
		"total_users":        3,
		"total_labour":       1,
		"total_contractors":  1,
		"total_jobs":         1,
		"open_jobs":          1,
		"total_applications": 1,
	}
	for key, want := range checks {
		if got := stats[key].(float64); got != want {
			t.Errorf("%s: expected %v, got %v", key, want, got)
		}
	}
}

func TestPolicies(t *testing.T) {
	router := setupRouter(t)
	admin := createTestUser(t, "Admin", "admin@example.com", "", models.RoleAdmin)
	worker := createTestUser(t, "Worker", "worker@example.com", "", models.RoleLabour)

	// Only admins can publish
	w := doJSON(t, router, http.MethodPost, "/api/v1/policies", tokenFor(t, worker), map[string]any{
		"title":   "Not allowed",
		"content": "Should fail",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin policy post, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/policies", tokenFor(t, admin), map[string]any{
		"title":   "Minimum Wage Update",
		"content": "New rates apply from next month.",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Reading is public
	w = doJSON(t, router, http.MethodGet, "/api/v1/policies", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for public policy read, got %d", w.Code)
	}
	if body := decodeBody(t, w); body["total_count"].(float64) != 1 {
		t.Errorf("expected 1 policy, got %v", body["total_count"])
	}
}
