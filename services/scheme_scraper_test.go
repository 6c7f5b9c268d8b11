package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"rozgar-connect-server/config"
	"rozgar-connect-server/models"
)

const glwbSampleHTML = `<html><body>
<a href="/schemes/housing">Shramik Housing Sahay</a>
<a href="/schemes/medical">Medical Help Yojana</a>
<a href="/">Home</a>
<a href="/contact">Contact Us</a>
<a href="/about">About the board</a>
</body></html>`

const grwwbSampleHTML = `<html><body>
<h3><a href="/rural/pension">Rural Workers Pension Scheme</a></h3>
<h3>Village news without a link</h3>
</body></html>`

func TestLooksLikeScheme(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Shramik Housing Sahay", true},
		{"Medical Help Yojana", true},
		{"Pension Scheme", true},
		{"About the board", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := looksLikeScheme(tc.text); got != tc.want {
			t.Errorf("looksLikeScheme(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestSchemeSync(t *testing.T) {
	db := newTestDB(t)

	glwb := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(glwbSampleHTML))
	}))
	defer glwb.Close()
	grwwb := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(grwwbSampleHTML))
	}))
	defer grwwb.Close()

	config.AppConfig.Schemes.GLWBUrl = glwb.URL
	config.AppConfig.Schemes.GRWWBUrl = grwwb.URL

	svc := NewSchemeScraperService(db)
	result := svc.Sync()

	if result.Added == 0 {
		t.Fatal("expected schemes to be added on first sync")
	}

	// Keyword filter: navigation links never become schemes
	var navCount int64
	db.Model(&models.Scheme{}).Where("title IN ?", []string{"Home", "Contact Us", "About the board"}).Count(&navCount)
	if navCount != 0 {
		t.Errorf("navigation links stored as schemes: %d", navCount)
	}

	var scraped models.Scheme
	if err := db.Where("title = ?", "Shramik Housing Sahay").First(&scraped).Error; err != nil {
		t.Fatalf("scraped scheme missing: %v", err)
	}
	if scraped.Status != "Active" {
		t.Errorf("expected Active status, got %s", scraped.Status)
	}
	if scraped.Link == "" {
		t.Error("expected an absolute link on the scraped scheme")
	}

	// Curated entries ride along with every sync
	var curated models.Scheme
	if err := db.Where("title = ?", "eShram Registration").First(&curated).Error; err != nil {
		t.Fatalf("curated scheme missing: %v", err)
	}

	// Second run refreshes instead of duplicating
	again := svc.Sync()
	if again.Added != 0 {
		t.Errorf("second sync added %d duplicates", again.Added)
	}
	if again.Refreshed == 0 {
		t.Error("second sync refreshed nothing")
	}

	var total, housing int64
	db.Model(&models.Scheme{}).Count(&total)
	db.Model(&models.Scheme{}).Where("title = ?", "Shramik Housing Sahay").Count(&housing)
	if housing != 1 {
		t.Errorf("expected 1 row for the scraped scheme, got %d", housing)
	}
	if total == 0 {
		t.Error("schemes table empty after sync")
	}
}

func TestSchemeSyncSurvivesDeadSource(t *testing.T) {
	db := newTestDB(t)

	config.AppConfig.Schemes.GLWBUrl = "http://127.0.0.1:1/unreachable"
	config.AppConfig.Schemes.GRWWBUrl = "http://127.0.0.1:1/unreachable"

	svc := NewSchemeScraperService(db)
	result := svc.Sync()

	// Curated entries still land even when both boards are down
	if result.Added == 0 {
		t.Error("expected curated schemes despite dead sources")
	}
}
