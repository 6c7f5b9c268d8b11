package jobs

import (
	"log"
	"time"

	"rozgar-connect-server/config"
	"rozgar-connect-server/database"
	"rozgar-connect-server/services"
)

// SchemeSyncJob keeps the welfare scheme catalogue fresh
type SchemeSyncJob struct {
	stopChan chan bool
}

// NewSchemeSyncJob creates a new scheme sync job
func NewSchemeSyncJob() *SchemeSyncJob {
	return &SchemeSyncJob{
		stopChan: make(chan bool),
	}
}

// Start begins the scheme sync job
func (j *SchemeSyncJob) Start() {
	go j.run()
	log.Println("🚀 Scheme sync job started")
}

// Stop stops the scheme sync job
func (j *SchemeSyncJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Scheme sync job stopped")
}

// run executes the scheme sync job
func (j *SchemeSyncJob) run() {
	interval := time.Duration(config.AppConfig.Schemes.IntervalHours) * time.Hour

	// Run once shortly after startup so a fresh database has schemes
	// without waiting a full interval.
	startup := time.NewTimer(30 * time.Second)
	defer startup.Stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-startup.C:
			j.syncSchemes()
		case <-ticker.C:
			j.syncSchemes()
		case <-j.stopChan:
			return
		}
	}
}

// syncSchemes runs one scrape cycle
func (j *SchemeSyncJob) syncSchemes() {
	scraper := services.NewSchemeScraperService(database.DB)
	result := scraper.Sync()
	log.Printf("📋 Scheme sync finished: found=%d added=%d refreshed=%d",
		result.TotalFound, result.Added, result.Refreshed)
}
