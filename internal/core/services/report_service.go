package services

import (
	"context"
	"time"

	"openshelf/internal/adapters/persistence/models"
	"openshelf/internal/adapters/persistence/repositories"
)

// ReportService aggregates lending statistics for the overview
// endpoint and the daily cron sweep
type ReportService struct {
	copyRepo repositories.CopyRepository
	loanRepo repositories.LoanRepository
}

// NewReportService creates a new report service
func NewReportService(copyRepo repositories.CopyRepository, loanRepo repositories.LoanRepository) *ReportService {
	return &ReportService{
		copyRepo: copyRepo,
		loanRepo: loanRepo,
	}
}

// Overview represents lending statistics
type Overview struct {
	CopiesAvailable int64 `json:"copies_available"`
	CopiesBorrowed  int64 `json:"copies_borrowed"`
	OpenLoans       int64 `json:"open_loans"`
}

// GetOverview returns current lending statistics
func (s *ReportService) GetOverview(ctx context.Context) (*Overview, error) {
	available, err := s.copyRepo.CountByStatus(ctx, models.CopyStatusAvailable)
	if err != nil {
		return nil, err
	}

	borrowed, err := s.copyRepo.CountByStatus(ctx, models.CopyStatusBorrowed)
	if err != nil {
		return nil, err
	}

	open, err := s.loanRepo.CountOpen(ctx)
	if err != nil {
		return nil, err
	}

	return &Overview{
		CopiesAvailable: available,
		CopiesBorrowed:  borrowed,
		OpenLoans:       open,
	}, nil
}

// LongOpenLoans lists loans that have been open longer than the given
// number of days
func (s *ReportService) LongOpenLoans(ctx context.Context, days int) ([]*models.Loan, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	return s.loanRepo.ListOpenOlderThan(ctx, cutoff)
}
