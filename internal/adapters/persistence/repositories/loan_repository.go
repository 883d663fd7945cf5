package repositories

import (
	"context"
	"time"

	"openshelf/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// loanRepository implements LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Copy").
		Preload("Copy.Book").
		Preload("Copy.Library").
		Preload("User")
}

// Create creates a new loan. Associations are omitted: the copy and
// user rows already exist and are persisted through their own repos.
func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(loan).Error
}

// GetByID gets a loan by ID with copy and user preloaded
func (r *loanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.preloaded(ctx).Where("id = ?", id).First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// GetByReference gets a loan by its public reference
func (r *loanRepository) GetByReference(ctx context.Context, reference string) (*models.Loan, error) {
	var loan models.Loan
	err := r.preloaded(ctx).Where("reference = ?", reference).First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// Update updates a loan
func (r *loanRepository) Update(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(loan).Error
}

// List lists loans with pagination, newest first
func (r *loanRepository) List(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error) {
	var loans []*models.Loan
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Loan{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.preloaded(ctx).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&loans).Error; err != nil {
		return nil, 0, err
	}

	return loans, total, nil
}

// ListByUser lists a user's loans, newest first
func (r *loanRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.preloaded(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&loans).Error
	return loans, err
}

// FindOpenByCopy finds open loans referencing a copy. The lending
// invariant keeps this at zero or one row.
func (r *loanRepository) FindOpenByCopy(ctx context.Context, copyID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.preloaded(ctx).
		Where("copy_id = ? AND end_date IS NULL", copyID).
		Find(&loans).Error
	return loans, err
}

// CountOpen counts open loans
func (r *loanRepository) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Loan{}).Where("end_date IS NULL").Count(&count).Error
	return count, err
}

// ListOpenOlderThan lists open loans that started before the cutoff
func (r *loanRepository) ListOpenOlderThan(ctx context.Context, cutoff time.Time) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.preloaded(ctx).
		Where("end_date IS NULL AND start_date < ?", cutoff).
		Order("start_date ASC").
		Find(&loans).Error
	return loans, err
}
