package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// seedScheme is the flat row shape used by the seeder
type seedScheme struct {
	Title       string
	Description string
	Board       string
	Type        string
	TargetGroup string
	Eligibility string
	Benefits    string // JSON array text
	Documents   string // JSON array text
	Link        string
	SourceName  string
}

type seedPolicy struct {
	Title   string
	Content string
}

// seedDatabase inserts curated welfare schemes and starter policies.
// Safe to re-run: it skips any table that already has rows.
func seedDatabase() {
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "")
	dbName := getEnv("DB_NAME", "rozgar_connect_db")
	dbSSLMode := getEnv("DB_SSL_MODE", "disable")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}
	log.Println("✅ Successfully connected to database")

	seedSchemes(db)
	seedPolicies(db)

	log.Println("🌱 Seeding finished")
}

func seedSchemes(db *sql.DB) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schemes").Scan(&count); err != nil {
		log.Fatal("Failed to count schemes:", err)
	}
	if count > 0 {
		log.Printf("⏭️ Schemes table already has %d rows, skipping", count)
		return
	}

	schemes := []seedScheme{
		{
			Title:       "Shramik Annapurna Yojana",
			Description: "Subsidised meals for registered construction workers at on-site distribution points.",
			Board:       "GBOCWWB",
			Type:        "Urban",
			TargetGroup: "Labour",
			Eligibility: "Registered construction worker with E-Nirman card.",
			Benefits:    `["Full meal at ₹5","Available at construction sites"]`,
			Documents:   `["E-Nirman card"]`,
			Link:        "https://sanman.gujarat.gov.in/",
			SourceName:  "sanman.gujarat.gov.in",
		},
		{
			Title:       "Dhanvantari Arogya Rath",
			Description: "Mobile medical vans providing free primary healthcare to construction workers near work sites.",
			Board:       "GBOCWWB",
			Type:        "Urban",
			TargetGroup: "Labour",
			Eligibility: "Registered construction worker.",
			Benefits:    `["Free consultation and medicines","Referral support"]`,
			Documents:   `["E-Nirman card"]`,
			Link:        "https://sanman.gujarat.gov.in/",
			SourceName:  "sanman.gujarat.gov.in",
		},
		{
			Title:       "Shramik Parivahan Yojana",
			Description: "Transport allowance for registered construction workers commuting to distant work sites.",
			Board:       "GBOCWWB",
			Type:        "Urban",
			TargetGroup: "Labour",
			Eligibility: "Registered construction worker.",
			Benefits:    `["Travel subsidy for work commute"]`,
			Documents:   `["E-Nirman card","Bank Passbook"]`,
			Link:        "https://sanman.gujarat.gov.in/",
			SourceName:  "sanman.gujarat.gov.in",
		},
		{
			Title:       "Education Assistance for Workers Children",
			Description: "Annual education assistance for children of registered construction workers from primary to higher studies.",
			Board:       "GBOCWWB",
			Type:        "General",
			TargetGroup: "Labour",
			Eligibility: "Children of registered construction workers.",
			Benefits:    `["Annual assistance from ₹500 to ₹40,000 by course level"]`,
			Documents:   `["E-Nirman card","Bonafide certificate","Bank Passbook"]`,
			Link:        "https://sanman.gujarat.gov.in/",
			SourceName:  "sanman.gujarat.gov.in",
		},
		{
			Title:       "eShram Registration",
			Description: "National Database of Unorganized Workers. Essential for accident insurance and future social security.",
			Board:       "eShram",
			Type:        "General",
			TargetGroup: "Labour",
			Eligibility: "Any unorganized worker aged 16-59.",
			Benefits:    `["PM Suraksha Bima Yojana (Accident cover)","Universal UAN Identity"]`,
			Documents:   `["Aadhaar Card","Bank Passbook","Mobile number linked to Aadhaar"]`,
			Link:        "https://eshram.gov.in/",
			SourceName:  "eshram.gov.in",
		},
		{
			Title:       "PM Shram Yogi Maandhan",
			Description: "Voluntary and contributory pension scheme for unorganized workers.",
			Board:       "eShram",
			Type:        "General",
			TargetGroup: "Labour",
			Eligibility: "Unorganized workers (18-40 yrs) with monthly income <= ₹15,000.",
			Benefits:    `["Min. assured pension of ₹3,000/month after age 60"]`,
			Documents:   `["Aadhaar Card","Savings bank account / Jan Dhan account"]`,
			Link:        "https://maandhan.in/",
			SourceName:  "maandhan.in",
		},
		{
			Title:       "Mari Yojana (Gujarat Scheme Search)",
			Description: "Official portal to find all government schemes applicable to you.",
			Board:       "Govt",
			Type:        "General",
			TargetGroup: "Labour",
			Eligibility: "All Citizens of Gujarat",
			Benefits:    `["Single window search","Check eligibility for 500+ schemes"]`,
			Documents:   `["Aadhaar Card"]`,
			Link:        "https://mariyojana.gujarat.gov.in/",
			SourceName:  "mariyojana.gujarat.gov.in",
		},
	}

	now := time.Now()
	inserted := 0
	for _, s := range schemes {
		_, err := db.Exec(`
			INSERT INTO schemes (title, description, benefits, eligibility, type, link, board, target_group, documents, status, source_name, last_checked, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'Active', $10, $11, $11)
			ON CONFLICT (title) DO NOTHING`,
			s.Title, s.Description, s.Benefits, s.Eligibility, s.Type, s.Link, s.Board, s.TargetGroup, s.Documents, s.SourceName, now)
		if err != nil {
			log.Printf("❌ Failed to insert scheme %q: %v", s.Title, err)
			continue
		}
		inserted++
	}
	log.Printf("✅ Seeded %d schemes", inserted)
}

func seedPolicies(db *sql.DB) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM policies").Scan(&count); err != nil {
		log.Fatal("Failed to count policies:", err)
	}
	if count > 0 {
		log.Printf("⏭️ Policies table already has %d rows, skipping", count)
		return
	}

	policies := []seedPolicy{
		{
			Title:   "Welcome to Rozgar Connect",
			Content: "Rozgar Connect links daily-wage workers and contractors directly. Keep your profile updated so contractors can find you for the right work.",
		},
		{
			Title:   "Minimum Wage Notification",
			Content: "All jobs posted on the platform must offer at least the state-notified minimum wage for the trade. Listings below minimum wage may be removed.",
		},
		{
			Title:   "E-Nirman Card Registration Drive",
			Content: "Construction workers are encouraged to register for the E-Nirman card to access board welfare schemes listed in the Schemes section.",
		},
	}

	now := time.Now()
	inserted := 0
	for _, p := range policies {
		_, err := db.Exec(`
			INSERT INTO policies (title, content, date_posted)
			VALUES ($1, $2, $3)`,
			p.Title, p.Content, now)
		if err != nil {
			log.Printf("❌ Failed to insert policy %q: %v", p.Title, err)
			continue
		}
		inserted++
	}
	log.Printf("✅ Seeded %d policies", inserted)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
