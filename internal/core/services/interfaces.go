package services

import (
	"context"

	"openshelf/internal/adapters/persistence/models"
)

// LendingService defines the loan lifecycle interface consumed by the
// HTTP layer
type LendingService interface {
	BorrowCopy(ctx context.Context, librarySlug string, bookID uint, email string) (*models.Loan, error)
	BorrowCopyByID(ctx context.Context, copyID uint, email string) (*models.Loan, error)
	ReturnCopy(ctx context.Context, loanID uint) (*models.Loan, error)
	GetByID(ctx context.Context, id uint) (*models.Loan, error)
	GetByReference(ctx context.Context, reference string) (*models.Loan, error)
	List(ctx context.Context, page, limit int) ([]*models.Loan, int64, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Loan, error)
}
