package jobs

import (
	"log"
	"time"

	"rozgar-connect-server/database"
	"rozgar-connect-server/services"
)

// OtpCleanupJob removes expired one-time passwords
type OtpCleanupJob struct {
	stopChan chan bool
}

// NewOtpCleanupJob creates a new OTP cleanup job
func NewOtpCleanupJob() *OtpCleanupJob {
	return &OtpCleanupJob{
		stopChan: make(chan bool),
	}
}

// Start begins the OTP cleanup job
func (j *OtpCleanupJob) Start() {
	go j.run()
	log.Println("🚀 OTP cleanup job started")
}

// Stop stops the OTP cleanup job
func (j *OtpCleanupJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 OTP cleanup job stopped")
}

// run executes the OTP cleanup job
func (j *OtpCleanupJob) run() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.cleanup()
		case <-j.stopChan:
			return
		}
	}
}

// cleanup deletes OTP rows past their expiry
func (j *OtpCleanupJob) cleanup() {
	otpService := services.NewOTPService(database.DB)
	if err := otpService.CleanupExpired(); err != nil {
		log.Printf("❌ OTP cleanup failed: %v", err)
	}
}
