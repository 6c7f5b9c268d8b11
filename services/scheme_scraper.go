package services

import (
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"gorm.io/gorm"

	"rozgar-connect-server/config"
	"rozgar-connect-server/models"
)

// SchemeScraperService refreshes the welfare scheme listings. Sources
// are best effort: a failed fetch is logged and skipped, and records are
// upserted by exact title so reruns never duplicate.
type SchemeScraperService struct {
	db     *gorm.DB
	client *http.Client
}

// SyncResult summarizes one scraper run
type SyncResult struct {
	TotalFound int `json:"total_found"`
	Added      int `json:"added"`
	Refreshed  int `json:"refreshed"`
}

// NewSchemeScraperService creates a scheme scraper
func NewSchemeScraperService(db *gorm.DB) *SchemeScraperService {
	return &SchemeScraperService{
		db:     db,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

var schemeKeywords = []string{"Scheme", "Sahay", "Yojana"}

var skipTitles = []string{"Home", "Contact", "Disclaimer"}

func looksLikeScheme(text string) bool {
	for _, kw := range schemeKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func isNavigationLink(text string) bool {
	for _, word := range skipTitles {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

// Sync runs the full refresh: both welfare board sites plus the curated
// construction-board and eShram entries.
func (s *SchemeScraperService) Sync() SyncResult {
	log.Println("🔄 Starting welfare scheme sync...")

	var found []models.Scheme
	found = append(found, s.scrapeGLWB()...)
	found = append(found, s.scrapeGRWWB()...)
	found = append(found, curatedConstructionSchemes()...)
	found = append(found, curatedNationalSchemes()...)

	result := SyncResult{TotalFound: len(found)}
	for i := range found {
		added, err := s.upsert(&found[i])
		if err != nil {
			log.Printf("⚠️ Failed to store scheme %q: %v", found[i].Title, err)
			continue
		}
		if added {
			result.Added++
		} else {
			result.Refreshed++
		}
	}

	log.Printf("✅ Scheme sync done: %d found, %d added, %d refreshed",
		result.TotalFound, result.Added, result.Refreshed)
	return result
}

// scrapeGLWB pulls anchor links from the urban welfare board pages.
func (s *SchemeScraperService) scrapeGLWB() []models.Scheme {
	pageURL := config.AppConfig.Schemes.GLWBUrl
	doc, base, err := s.fetch(pageURL)
	if err != nil {
		log.Printf("❌ GLWB scrape failed: %v", err)
		return nil
	}

	var schemes []models.Scheme
	doc.Find("a").Each(func(i int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Text())
		href, ok := sel.Attr("href")
		if title == "" || !ok || !looksLikeScheme(title) || isNavigationLink(title) {
			return
		}

		scheme := models.Scheme{
			Title:       title,
			Description: "Official Welfare Scheme from Gujarat Labour Welfare Board. Click 'View Details' to apply on the official portal.",
			Eligibility: "Registered Worker",
			Type:        "Urban",
			Board:       models.BoardGLWB,
			Link:        absoluteLink(base, href),
		}
		scheme.SetBenefits([]string{"Government Subsidy/Aid", "Direct Bank Transfer"})
		schemes = append(schemes, scheme)
	})

	log.Printf("✅ GLWB: found %d potential schemes", len(schemes))
	return schemes
}

// scrapeGRWWB pulls headings and links from the rural board home page.
func (s *SchemeScraperService) scrapeGRWWB() []models.Scheme {
	pageURL := config.AppConfig.Schemes.GRWWBUrl
	doc, base, err := s.fetch(pageURL)
	if err != nil {
		log.Printf("❌ GRWWB scrape failed: %v", err)
		return nil
	}

	var schemes []models.Scheme
	doc.Find("h3, a").Each(func(i int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" || len(text) <= 10 || !looksLikeScheme(text) {
			return
		}

		href, ok := sel.Attr("href")
		if !ok {
			href, ok = sel.Closest("a").Attr("href")
		}
		if !ok || href == "" {
			return
		}

		title := text
		if len(title) > 100 {
			title = title[:100] + "..."
		}

		scheme := models.Scheme{
			Title:       title,
			Description: "Rural Welfare Scheme. Visit the board website for full eligibility criteria.",
			Eligibility: "Rural/Unorganized Worker",
			Type:        "Rural",
			Board:       models.BoardGRWWB,
			Link:        absoluteLink(base, href),
		}
		scheme.SetBenefits([]string{"Social Security", "Financial Assistance"})
		schemes = append(schemes, scheme)
	})

	log.Printf("✅ GRWWB: found %d potential schemes", len(schemes))
	return schemes
}

func (s *SchemeScraperService) fetch(pageURL string) (*goquery.Document, *url.URL, error) {
	resp, err := s.client.Get(pageURL)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, nil, err
	}
	return doc, base, nil
}

func absoluteLink(base *url.URL, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// upsert stores a scheme keyed by exact title. Existing rows only get
// their last_checked bumped. Returns true when a new row was created.
func (s *SchemeScraperService) upsert(scheme *models.Scheme) (bool, error) {
	scheme.TargetGroup = classifyTargetGroup(scheme.Title)
	scheme.SourceName = sourceHost(scheme.Link)
	scheme.Status = "Active"
	scheme.LastChecked = time.Now()
	if scheme.Documents == "" {
		docs := []string{"Aadhaar Card", "Bank Passbook", "Passport Photo"}
		if scheme.Board == models.BoardGBOCWWB {
			docs = append(docs, "Worker Registration Card")
		}
		scheme.SetDocuments(docs)
	}

	var existing models.Scheme
	err := s.db.Where("title = ?", scheme.Title).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return true, s.db.Create(scheme).Error
	}
	if err != nil {
		return false, err
	}

	return false, s.db.Model(&existing).Update("last_checked", time.Now()).Error
}

func classifyTargetGroup(title string) string {
	lower := strings.ToLower(title)
	if strings.Contains(lower, "contract") || strings.Contains(lower, "establishment") {
		return "Contractor"
	}
	return "Labour"
}

func sourceHost(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}

// curatedConstructionSchemes returns the construction board entries.
// The board portal sits behind session tokens, so the key schemes are
// maintained here and refreshed on every sync.
func curatedConstructionSchemes() []models.Scheme {
	entries := []struct {
		title       string
		benefits    []string
		eligibility string
	}{
		{
			title:       "Construction Worker Housing Assistance",
			benefits:    []string{"Subsidized loans", "Direct financial assistance up to ₹1.5 Lakh"},
			eligibility: "Registered construction worker with valid ID card.",
		},
		{
			title:       "Maternity Benefit (Construction)",
			benefits:    []string{"₹27,000 per delivery (up to 2 children)"},
			eligibility: "Registered female construction worker.",
		},
		{
			title:       "Scholarship for Children",
			benefits:    []string{"₹1,000 to ₹10,000 per year based on class/course"},
			eligibility: "Children of registered construction workers.",
		},
		{
			title:       "Medical Assistance Scheme",
			benefits:    []string{"Reimbursement of medical expenses up to ₹50,000"},
			eligibility: "Hospitalized registered worker.",
		},
	}

	schemes := make([]models.Scheme, 0, len(entries))
	for _, e := range entries {
		scheme := models.Scheme{
			Title:       e.title,
			Description: "Official Construction Board Scheme. Verified from enirmanbocw.gujarat.gov.in.",
			Eligibility: e.eligibility,
			Type:        "Urban",
			Board:       models.BoardGBOCWWB,
			Link:        "https://enirmanbocw.gujarat.gov.in/",
		}
		scheme.SetBenefits(e.benefits)
		schemes = append(schemes, scheme)
	}
	return schemes
}

// curatedNationalSchemes returns the eShram and aggregator entries.
func curatedNationalSchemes() []models.Scheme {
	var schemes []models.Scheme

	s1 := models.Scheme{
		Title:       "eShram Registration",
		Description: "National Database of Unorganized Workers. Essential for accident insurance and future social security.",
		Eligibility: "Any unorganized worker aged 16-59.",
		Type:        "General",
		Board:       models.BoardEShram,
		Link:        "https://eshram.gov.in/",
	}
	s1.SetBenefits([]string{"PM Suraksha Bima Yojana (Accident cover)", "Universal UAN Identity"})
	schemes = append(schemes, s1)

	s2 := models.Scheme{
		Title:       "PM Shram Yogi Maandhan",
		Description: "Voluntary and contributory pension scheme for unorganized workers.",
		Eligibility: "Unorganized workers (18-40 yrs) with monthly income <= ₹15,000.",
		Type:        "General",
		Board:       models.BoardEShram,
		Link:        "https://maandhan.in/",
	}
	s2.SetBenefits([]string{"Min. assured pension of ₹3,000/month after age 60"})
	schemes = append(schemes, s2)

	s3 := models.Scheme{
		Title:       "Mari Yojana (Gujarat Scheme Search)",
		Description: "Official portal to find all government schemes applicable to you.",
		Eligibility: "All Citizens of Gujarat",
		Type:        "General",
		Board:       models.BoardGovt,
		Link:        "https://mariyojana.gujarat.gov.in/",
	}
	s3.SetBenefits([]string{"Single window search", "Check eligibility for 500+ schemes"})
	schemes = append(schemes, s3)

	return schemes
}
