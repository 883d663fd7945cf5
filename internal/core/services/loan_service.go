package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"openshelf/internal/adapters/persistence/models"
	"openshelf/internal/adapters/persistence/repositories"
	"openshelf/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoanService handles the two lending state transitions: borrowing a
// copy and returning it. All state lives in the repositories; the
// service only enforces the preconditions and flips copy status in
// lockstep with loan open/closed state.
type LoanService struct {
	copyRepo repositories.CopyRepository
	userRepo repositories.UserRepository
	loanRepo repositories.LoanRepository

	// copyLocks serializes the check-then-act sequence per copy id so
	// two concurrent borrows cannot both see the same copy as AVAILABLE.
	copyLocks sync.Map
}

// NewLoanService creates a new loan service
func NewLoanService(
	copyRepo repositories.CopyRepository,
	userRepo repositories.UserRepository,
	loanRepo repositories.LoanRepository,
) *LoanService {
	return &LoanService{
		copyRepo: copyRepo,
		userRepo: userRepo,
		loanRepo: loanRepo,
	}
}

func (s *LoanService) lockCopy(copyID uint) *sync.Mutex {
	mu, _ := s.copyLocks.LoadOrStore(copyID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// BorrowCopy borrows any available copy of a book at a library.
// When several copies are available the one with the lowest id wins
// (the repository orders the result set by id).
func (s *LoanService) BorrowCopy(ctx context.Context, librarySlug string, bookID uint, email string) (*models.Loan, error) {
	copies, err := s.copyRepo.FindAvailable(ctx, librarySlug, bookID)
	if err != nil {
		return nil, err
	}
	if len(copies) == 0 {
		return nil, domain.ErrCopyNotAvailable
	}

	user, err := s.findUser(ctx, email)
	if err != nil {
		return nil, err
	}

	return s.borrow(ctx, copies[0].ID, user)
}

// BorrowCopyByID borrows one specific copy. A missing copy id surfaces
// the same way as a borrowed one: the caller only learns that the copy
// is not available.
func (s *LoanService) BorrowCopyByID(ctx context.Context, copyID uint, email string) (*models.Loan, error) {
	cp, err := s.copyRepo.GetByID(ctx, copyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCopyNotAvailable
		}
		return nil, err
	}
	if !cp.IsAvailable() {
		return nil, domain.ErrCopyNotAvailable
	}

	user, err := s.findUser(ctx, email)
	if err != nil {
		return nil, err
	}

	return s.borrow(ctx, cp.ID, user)
}

// findUser resolves a borrower by email
func (s *LoanService) findUser(ctx context.Context, email string) (*models.User, error) {
	users, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return users[0], nil
}

// borrow performs the AVAILABLE -> BORROWED transition and persists
// the new open loan. The copy status is re-read under the per-copy
// lock: between the candidate query and here another request may have
// taken the copy.
func (s *LoanService) borrow(ctx context.Context, copyID uint, user *models.User) (*models.Loan, error) {
	mu := s.lockCopy(copyID)
	mu.Lock()
	defer mu.Unlock()

	cp, err := s.copyRepo.GetByID(ctx, copyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCopyNotAvailable
		}
		return nil, err
	}
	if !cp.IsAvailable() {
		return nil, domain.ErrCopyNotAvailable
	}

	cp.Status = models.CopyStatusBorrowed
	if err := s.copyRepo.Update(ctx, cp); err != nil {
		return nil, err
	}

	loan := &models.Loan{
		Reference: uuid.NewString(),
		CopyID:    cp.ID,
		UserID:    user.ID,
		StartDate: time.Now(),
		Copy:      cp,
		User:      user,
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		// put the copy back so a failed borrow leaves no visible mutation
		cp.Status = models.CopyStatusAvailable
		if rbErr := s.copyRepo.Update(ctx, cp); rbErr != nil {
			log.Printf("❌ Failed to restore copy %d after borrow failure: %v", cp.ID, rbErr)
		}
		return nil, err
	}

	return loan, nil
}

// ReturnCopy closes an open loan and makes its copy available again.
// Returning an already-closed loan is a no-op: the loan comes back
// unchanged and nothing is re-saved.
func (s *LoanService) ReturnCopy(ctx context.Context, loanID uint) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotExists
		}
		return nil, err
	}

	if !loan.IsOpen() {
		return loan, nil
	}

	mu := s.lockCopy(loan.CopyID)
	mu.Lock()
	defer mu.Unlock()

	// re-read under the lock: a concurrent return may have closed the
	// loan between the first read and here, and the copy may already be
	// out again on a newer loan
	loan, err = s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotExists
		}
		return nil, err
	}
	if !loan.IsOpen() {
		return loan, nil
	}

	cp := loan.Copy
	if cp == nil {
		cp, err = s.copyRepo.GetByID(ctx, loan.CopyID)
		if err != nil {
			return nil, err
		}
	}

	prevStatus := cp.Status
	cp.Status = models.CopyStatusAvailable
	if err := s.copyRepo.Update(ctx, cp); err != nil {
		return nil, err
	}

	now := time.Now()
	loan.EndDate = &now
	if err := s.loanRepo.Update(ctx, loan); err != nil {
		loan.EndDate = nil
		cp.Status = prevStatus
		if rbErr := s.copyRepo.Update(ctx, cp); rbErr != nil {
			log.Printf("❌ Failed to restore copy %d after return failure: %v", cp.ID, rbErr)
		}
		return nil, err
	}

	return loan, nil
}

// GetByID gets a loan by ID
func (s *LoanService) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotExists
		}
		return nil, err
	}
	return loan, nil
}

// GetByReference gets a loan by its reference
func (s *LoanService) GetByReference(ctx context.Context, reference string) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotExists
		}
		return nil, err
	}
	return loan, nil
}

// List lists loans with pagination
func (s *LoanService) List(ctx context.Context, page, limit int) ([]*models.Loan, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit
	return s.loanRepo.List(ctx, offset, limit)
}

// ListByUser lists a user's loans
func (s *LoanService) ListByUser(ctx context.Context, userID uint) ([]*models.Loan, error) {
	return s.loanRepo.ListByUser(ctx, userID)
}
