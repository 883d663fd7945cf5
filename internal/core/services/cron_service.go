package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// LongOpenLoanDays is the age at which an open loan shows up in the
// daily sweep
const LongOpenLoanDays = 30

// CronService runs scheduled background jobs
type CronService struct {
	reportService *ReportService
	cron          *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(reportService *ReportService) *CronService {
	return &CronService{
		reportService: reportService,
		cron:          cron.New(),
	}
}

// Start registers and starts all scheduled jobs
func (s *CronService) Start() {
	// Long-open loan sweep: 08:30 daily
	if _, err := s.cron.AddFunc("30 8 * * *", s.sweepLongOpenLoans); err != nil {
		log.Printf("❌ Failed to schedule loan sweep: %v", err)
		return
	}

	s.cron.Start()
	log.Println("✅ CronService started (loan sweep at 08:30 daily)")
}

// Stop stops all scheduled jobs
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 CronService stopped")
}

// sweepLongOpenLoans logs loans that have been out too long so staff
// can chase them up
func (s *CronService) sweepLongOpenLoans() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	loans, err := s.reportService.LongOpenLoans(ctx, LongOpenLoanDays)
	if err != nil {
		log.Printf("❌ Loan sweep query error: %v", err)
		return
	}

	if len(loans) == 0 {
		log.Println("✅ Loan sweep: no loans open longer than 30 days")
		return
	}

	log.Printf("⚠️ Loan sweep: %d loans open longer than %d days", len(loans), LongOpenLoanDays)
	for _, loan := range loans {
		email := ""
		if loan.User != nil {
			email = loan.User.Email
		}
		log.Printf("   loan %s (copy %d, user %s) open since %s",
			loan.Reference, loan.CopyID, email, loan.StartDate.Format("2006-01-02"))
	}
}
