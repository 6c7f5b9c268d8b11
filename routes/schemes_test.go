package routes_test

import (
	"net/http"
	"testing"

	"rozgar-connect-server/models"
)

func seedScheme(t *testing.T, title string, board models.SchemeBoard, schemeType, targetGroup string) models.Scheme {
	t.Helper()
	scheme := models.Scheme{
		Title:       title,
		Description: "Seeded scheme",
		Type:        schemeType,
		Board:       board,
		TargetGroup: targetGroup,
		Status:      "Active",
	}
	scheme.SetBenefits([]string{"Benefit one"})
	scheme.SetDocuments([]string{"Aadhaar Card"})
	if err := getDB(t).Create(&scheme).Error; err != nil {
		t.Fatalf("failed to seed scheme %q: %v", title, err)
	}
	return scheme
}

func TestGetSchemes(t *testing.T) {
	router := setupRouter(t)

	seedScheme(t, "Housing Assistance", models.BoardGBOCWWB, "Urban", "Labour")
	seedScheme(t, "Rural Pension", models.BoardGRWWB, "Rural", "Labour")
	inactive := seedScheme(t, "Old Scheme", models.BoardGLWB, "General", "Labour")
	getDB(t).Model(&inactive).Update("status", "Inactive")

	// Public, no token required
	w := doJSON(t, router, http.MethodGet, "/api/v1/schemes", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := decodeBody(t, w); body["total_count"].(float64) != 2 {
		t.Errorf("expected 2 active schemes, got %v", body["total_count"])
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/schemes?board=GBOCWWB", "", nil)
	if body := decodeBody(t, w); body["total_count"].(float64) != 1 {
		t.Errorf("board filter: expected 1 scheme, got %v", body["total_count"])
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/schemes?type=Rural", "", nil)
	body := decodeBody(t, w)
	if body["total_count"].(float64) != 1 {
		t.Fatalf("type filter: expected 1 scheme, got %v", body["total_count"])
	}

	// Benefits come back as decoded arrays
	scheme := body["schemes"].([]any)[0].(map[string]any)
	benefits, ok := scheme["benefits"].([]any)
	if !ok || len(benefits) != 1 {
		t.Errorf("expected decoded benefits array, got %v", scheme["benefits"])
	}
}

func TestSchemeSyncRequiresAdmin(t *testing.T) {
	router := setupRouter(t)
	worker := createTestUser(t, "Worker", "worker@example.com", "", models.RoleLabour)

	w := doJSON(t, router, http.MethodPost, "/api/v1/schemes/sync", tokenFor(t, worker), nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin sync, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/schemes/sync", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}
