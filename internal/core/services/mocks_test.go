package services_test

import (
	"context"
	"time"

	"openshelf/internal/adapters/persistence/models"

	"github.com/stretchr/testify/mock"
)

// mockCopyRepo is a testify mock for repositories.CopyRepository
type mockCopyRepo struct {
	mock.Mock
}

func (m *mockCopyRepo) Create(ctx context.Context, c *models.Copy) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCopyRepo) GetByID(ctx context.Context, id uint) (*models.Copy, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Copy), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCopyRepo) FindAvailable(ctx context.Context, librarySlug string, bookID uint) ([]*models.Copy, error) {
	args := m.Called(ctx, librarySlug, bookID)
	if v := args.Get(0); v != nil {
		return v.([]*models.Copy), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCopyRepo) ListByLibrary(ctx context.Context, librarySlug string) ([]*models.Copy, error) {
	args := m.Called(ctx, librarySlug)
	if v := args.Get(0); v != nil {
		return v.([]*models.Copy), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCopyRepo) List(ctx context.Context, offset, limit int) ([]*models.Copy, int64, error) {
	args := m.Called(ctx, offset, limit)
	if v := args.Get(0); v != nil {
		return v.([]*models.Copy), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *mockCopyRepo) Update(ctx context.Context, c *models.Copy) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCopyRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCopyRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// mockUserRepo is a testify mock for repositories.UserRepository
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) ([]*models.User, error) {
	args := m.Called(ctx, email)
	if v := args.Get(0); v != nil {
		return v.([]*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	args := m.Called(ctx, offset, limit)
	if v := args.Get(0); v != nil {
		return v.([]*models.User), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// mockLoanRepo is a testify mock for repositories.LoanRepository
type mockLoanRepo struct {
	mock.Mock
}

func (m *mockLoanRepo) Create(ctx context.Context, loan *models.Loan) error {
	return m.Called(ctx, loan).Error(0)
}

func (m *mockLoanRepo) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Loan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLoanRepo) GetByReference(ctx context.Context, reference string) (*models.Loan, error) {
	args := m.Called(ctx, reference)
	if v := args.Get(0); v != nil {
		return v.(*models.Loan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLoanRepo) Update(ctx context.Context, loan *models.Loan) error {
	return m.Called(ctx, loan).Error(0)
}

func (m *mockLoanRepo) List(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error) {
	args := m.Called(ctx, offset, limit)
	if v := args.Get(0); v != nil {
		return v.([]*models.Loan), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *mockLoanRepo) ListByUser(ctx context.Context, userID uint) ([]*models.Loan, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]*models.Loan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLoanRepo) FindOpenByCopy(ctx context.Context, copyID uint) ([]*models.Loan, error) {
	args := m.Called(ctx, copyID)
	if v := args.Get(0); v != nil {
		return v.([]*models.Loan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockLoanRepo) CountOpen(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLoanRepo) ListOpenOlderThan(ctx context.Context, cutoff time.Time) ([]*models.Loan, error) {
	args := m.Called(ctx, cutoff)
	if v := args.Get(0); v != nil {
		return v.([]*models.Loan), args.Error(1)
	}
	return nil, args.Error(1)
}
