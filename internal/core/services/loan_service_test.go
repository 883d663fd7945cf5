package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"openshelf/internal/adapters/persistence/models"
	"openshelf/internal/core/domain"
	"openshelf/internal/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func availableCopy(id uint) *models.Copy {
	return &models.Copy{
		ID:        id,
		BookID:    1,
		LibraryID: 1,
		Status:    models.CopyStatusAvailable,
	}
}

func testUser() *models.User {
	return &models.User{ID: 7, Email: "reader@example.com", Name: "Reader"}
}

func newLoanService() (*services.LoanService, *mockCopyRepo, *mockUserRepo, *mockLoanRepo) {
	copyRepo := new(mockCopyRepo)
	userRepo := new(mockUserRepo)
	loanRepo := new(mockLoanRepo)
	return services.NewLoanService(copyRepo, userRepo, loanRepo), copyRepo, userRepo, loanRepo
}

func TestBorrowCopy(t *testing.T) {
	ctx := context.Background()

	t.Run("borrows an available copy and opens a loan", func(t *testing.T) {
		svc, copyRepo, userRepo, loanRepo := newLoanService()
		cp := availableCopy(3)

		copyRepo.On("FindAvailable", ctx, "central", uint(1)).Return([]*models.Copy{cp}, nil)
		copyRepo.On("GetByID", ctx, uint(3)).Return(cp, nil)
		copyRepo.On("Update", ctx, cp).Return(nil)
		userRepo.On("FindByEmail", ctx, "reader@example.com").Return([]*models.User{testUser()}, nil)
		loanRepo.On("Create", ctx, mock.AnythingOfType("*models.Loan")).Return(nil)

		before := time.Now()
		loan, err := svc.BorrowCopy(ctx, "central", 1, "reader@example.com")

		require.NoError(t, err)
		assert.Equal(t, models.CopyStatusBorrowed, cp.Status)
		assert.Equal(t, uint(3), loan.CopyID)
		assert.Equal(t, uint(7), loan.UserID)
		assert.NotEmpty(t, loan.Reference)
		assert.Nil(t, loan.EndDate)
		assert.False(t, loan.StartDate.Before(before))
		loanRepo.AssertExpectations(t)
	})

	t.Run("picks the lowest-id copy when several are available", func(t *testing.T) {
		svc, copyRepo, userRepo, loanRepo := newLoanService()
		first := availableCopy(2)
		second := availableCopy(5)

		copyRepo.On("FindAvailable", ctx, "central", uint(1)).Return([]*models.Copy{first, second}, nil)
		copyRepo.On("GetByID", ctx, uint(2)).Return(first, nil)
		copyRepo.On("Update", ctx, first).Return(nil)
		userRepo.On("FindByEmail", ctx, "reader@example.com").Return([]*models.User{testUser()}, nil)
		loanRepo.On("Create", ctx, mock.AnythingOfType("*models.Loan")).Return(nil)

		loan, err := svc.BorrowCopy(ctx, "central", 1, "reader@example.com")

		require.NoError(t, err)
		assert.Equal(t, uint(2), loan.CopyID)
		assert.Equal(t, models.CopyStatusAvailable, second.Status)
	})

	t.Run("no copy available", func(t *testing.T) {
		svc, copyRepo, userRepo, loanRepo := newLoanService()

		copyRepo.On("FindAvailable", ctx, "central", uint(1)).Return([]*models.Copy{}, nil)

		loan, err := svc.BorrowCopy(ctx, "central", 1, "reader@example.com")

		assert.ErrorIs(t, err, domain.ErrCopyNotAvailable)
		assert.Nil(t, loan)
		userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
		copyRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		loanRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown borrower leaves the copy untouched", func(t *testing.T) {
		svc, copyRepo, userRepo, loanRepo := newLoanService()
		cp := availableCopy(3)

		copyRepo.On("FindAvailable", ctx, "central", uint(1)).Return([]*models.Copy{cp}, nil)
		userRepo.On("FindByEmail", ctx, "ghost@example.com").Return([]*models.User{}, nil)

		loan, err := svc.BorrowCopy(ctx, "central", 1, "ghost@example.com")

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.Nil(t, loan)
		assert.Equal(t, models.CopyStatusAvailable, cp.Status)
		copyRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		loanRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("copy taken between candidate query and lock", func(t *testing.T) {
		svc, copyRepo, userRepo, loanRepo := newLoanService()
		stale := availableCopy(3)
		current := availableCopy(3)
		current.Status = models.CopyStatusBorrowed

		copyRepo.On("FindAvailable", ctx, "central", uint(1)).Return([]*models.Copy{stale}, nil)
		userRepo.On("FindByEmail", ctx, "reader@example.com").Return([]*models.User{testUser()}, nil)
		copyRepo.On("GetByID", ctx, uint(3)).Return(current, nil)

		_, err := svc.BorrowCopy(ctx, "central", 1, "reader@example.com")

		assert.ErrorIs(t, err, domain.ErrCopyNotAvailable)
		copyRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		loanRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("loan create failure restores the copy", func(t *testing.T) {
		svc, copyRepo, userRepo, loanRepo := newLoanService()
		cp := availableCopy(3)
		boom := errors.New("insert failed")

		copyRepo.On("FindAvailable", ctx, "central", uint(1)).Return([]*models.Copy{cp}, nil)
		copyRepo.On("GetByID", ctx, uint(3)).Return(cp, nil)
		copyRepo.On("Update", ctx, cp).Return(nil)
		userRepo.On("FindByEmail", ctx, "reader@example.com").Return([]*models.User{testUser()}, nil)
		loanRepo.On("Create", ctx, mock.AnythingOfType("*models.Loan")).Return(boom)

		_, err := svc.BorrowCopy(ctx, "central", 1, "reader@example.com")

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, models.CopyStatusAvailable, cp.Status)
		copyRepo.AssertNumberOfCalls(t, "Update", 2)
	})
}

func TestBorrowCopyByID(t *testing.T) {
	ctx := context.Background()

	t.Run("borrows the requested copy", func(t *testing.T) {
		svc, copyRepo, userRepo, loanRepo := newLoanService()
		cp := availableCopy(9)

		copyRepo.On("GetByID", ctx, uint(9)).Return(cp, nil)
		copyRepo.On("Update", ctx, cp).Return(nil)
		userRepo.On("FindByEmail", ctx, "reader@example.com").Return([]*models.User{testUser()}, nil)
		loanRepo.On("Create", ctx, mock.AnythingOfType("*models.Loan")).Return(nil)

		loan, err := svc.BorrowCopyByID(ctx, 9, "reader@example.com")

		require.NoError(t, err)
		assert.Equal(t, uint(9), loan.CopyID)
		assert.Equal(t, models.CopyStatusBorrowed, cp.Status)
	})

	t.Run("missing copy reads as not available", func(t *testing.T) {
		svc, copyRepo, _, _ := newLoanService()

		copyRepo.On("GetByID", ctx, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.BorrowCopyByID(ctx, 404, "reader@example.com")

		assert.ErrorIs(t, err, domain.ErrCopyNotAvailable)
	})

	t.Run("already borrowed copy", func(t *testing.T) {
		svc, copyRepo, userRepo, loanRepo := newLoanService()
		cp := availableCopy(9)
		cp.Status = models.CopyStatusBorrowed

		copyRepo.On("GetByID", ctx, uint(9)).Return(cp, nil)

		_, err := svc.BorrowCopyByID(ctx, 9, "reader@example.com")

		assert.ErrorIs(t, err, domain.ErrCopyNotAvailable)
		userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
		loanRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestReturnCopy(t *testing.T) {
	ctx := context.Background()

	t.Run("closes an open loan and frees the copy", func(t *testing.T) {
		svc, copyRepo, _, loanRepo := newLoanService()
		cp := availableCopy(3)
		cp.Status = models.CopyStatusBorrowed
		loan := &models.Loan{
			ID:        12,
			Reference: "ref-12",
			CopyID:    3,
			UserID:    7,
			StartDate: time.Now().Add(-48 * time.Hour),
			Copy:      cp,
		}

		loanRepo.On("GetByID", ctx, uint(12)).Return(loan, nil)
		copyRepo.On("Update", ctx, cp).Return(nil)
		loanRepo.On("Update", ctx, loan).Return(nil)

		before := time.Now()
		returned, err := svc.ReturnCopy(ctx, 12)

		require.NoError(t, err)
		assert.Equal(t, models.CopyStatusAvailable, cp.Status)
		require.NotNil(t, returned.EndDate)
		assert.False(t, returned.EndDate.Before(before))
		copyRepo.AssertExpectations(t)
		loanRepo.AssertExpectations(t)
	})

	t.Run("unknown loan", func(t *testing.T) {
		svc, copyRepo, _, loanRepo := newLoanService()

		loanRepo.On("GetByID", ctx, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.ReturnCopy(ctx, 404)

		assert.ErrorIs(t, err, domain.ErrLoanNotExists)
		copyRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		loanRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("returning a closed loan saves nothing", func(t *testing.T) {
		svc, copyRepo, _, loanRepo := newLoanService()
		ended := time.Now().Add(-24 * time.Hour)
		cp := availableCopy(3)
		loan := &models.Loan{
			ID:        12,
			Reference: "ref-12",
			CopyID:    3,
			UserID:    7,
			StartDate: time.Now().Add(-72 * time.Hour),
			EndDate:   &ended,
			Copy:      cp,
		}

		loanRepo.On("GetByID", ctx, uint(12)).Return(loan, nil)

		returned, err := svc.ReturnCopy(ctx, 12)

		require.NoError(t, err)
		assert.Equal(t, loan, returned)
		assert.True(t, ended.Equal(*returned.EndDate))
		copyRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		loanRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("loan closed between lookup and lock saves nothing", func(t *testing.T) {
		svc, copyRepo, _, loanRepo := newLoanService()
		ended := time.Now()
		openSnapshot := &models.Loan{
			ID: 12, CopyID: 3, UserID: 7,
			StartDate: time.Now().Add(-48 * time.Hour),
			Copy:      availableCopy(3),
		}
		closedSnapshot := &models.Loan{
			ID: 12, CopyID: 3, UserID: 7,
			StartDate: openSnapshot.StartDate,
			EndDate:   &ended,
			Copy:      availableCopy(3),
		}

		loanRepo.On("GetByID", ctx, uint(12)).Return(openSnapshot, nil).Once()
		loanRepo.On("GetByID", ctx, uint(12)).Return(closedSnapshot, nil).Once()

		returned, err := svc.ReturnCopy(ctx, 12)

		require.NoError(t, err)
		assert.Equal(t, closedSnapshot, returned)
		copyRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		loanRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("concurrent returns of the same loan persist once", func(t *testing.T) {
		svc, copyRepo, _, loanRepo := newLoanService()
		cp := availableCopy(3)
		cp.Status = models.CopyStatusBorrowed
		loan := &models.Loan{
			ID: 12, CopyID: 3, UserID: 7,
			StartDate: time.Now().Add(-48 * time.Hour),
			Copy:      cp,
		}

		// the shared pointer stands in for DB visibility: once one
		// return persists EndDate, the re-read under the lock sees it
		loanRepo.On("GetByID", ctx, uint(12)).Return(loan, nil)
		copyRepo.On("Update", ctx, cp).Return(nil)
		loanRepo.On("Update", ctx, loan).Return(nil)

		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.ReturnCopy(ctx, 12)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, models.CopyStatusAvailable, cp.Status)
		copyRepo.AssertNumberOfCalls(t, "Update", 1)
		loanRepo.AssertNumberOfCalls(t, "Update", 1)
	})

	t.Run("loan update failure restores the copy", func(t *testing.T) {
		svc, copyRepo, _, loanRepo := newLoanService()
		cp := availableCopy(3)
		cp.Status = models.CopyStatusBorrowed
		loan := &models.Loan{ID: 12, CopyID: 3, UserID: 7, StartDate: time.Now(), Copy: cp}
		boom := errors.New("update failed")

		loanRepo.On("GetByID", ctx, uint(12)).Return(loan, nil)
		copyRepo.On("Update", ctx, cp).Return(nil)
		loanRepo.On("Update", ctx, loan).Return(boom)

		_, err := svc.ReturnCopy(ctx, 12)

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, models.CopyStatusBorrowed, cp.Status)
		assert.Nil(t, loan.EndDate)
		copyRepo.AssertNumberOfCalls(t, "Update", 2)
	})
}

func TestLoanList(t *testing.T) {
	ctx := context.Background()

	t.Run("clamps page and limit", func(t *testing.T) {
		svc, _, _, loanRepo := newLoanService()

		loanRepo.On("List", ctx, 0, 10).Return([]*models.Loan{}, int64(0), nil)

		_, _, err := svc.List(ctx, 0, 0)

		require.NoError(t, err)
		loanRepo.AssertCalled(t, "List", ctx, 0, 10)
	})

	t.Run("caps oversized limit", func(t *testing.T) {
		svc, _, _, loanRepo := newLoanService()

		loanRepo.On("List", ctx, 100, 100).Return([]*models.Loan{}, int64(0), nil)

		_, _, err := svc.List(ctx, 2, 500)

		require.NoError(t, err)
		loanRepo.AssertCalled(t, "List", ctx, 100, 100)
	})
}
