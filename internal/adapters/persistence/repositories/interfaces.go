package repositories

import (
	"context"
	"time"

	"openshelf/internal/adapters/persistence/models"
)

// LibraryRepository defines library repository interface
type LibraryRepository interface {
	Create(ctx context.Context, library *models.Library) error
	GetByID(ctx context.Context, id uint) (*models.Library, error)
	GetBySlug(ctx context.Context, slug string) (*models.Library, error)
	List(ctx context.Context) ([]*models.Library, error)
	Update(ctx context.Context, library *models.Library) error
	Delete(ctx context.Context, id uint) error
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}

// BookRepository defines book repository interface
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id uint) (*models.Book, error)
	List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error)
	Search(ctx context.Context, query string, limit int) ([]*models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id uint) error
}

// CopyRepository defines copy repository interface
type CopyRepository interface {
	Create(ctx context.Context, copy *models.Copy) error
	GetByID(ctx context.Context, id uint) (*models.Copy, error)
	FindAvailable(ctx context.Context, librarySlug string, bookID uint) ([]*models.Copy, error)
	ListByLibrary(ctx context.Context, librarySlug string) ([]*models.Copy, error)
	List(ctx context.Context, offset, limit int) ([]*models.Copy, int64, error)
	Update(ctx context.Context, copy *models.Copy) error
	Delete(ctx context.Context, id uint) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) ([]*models.User, error)
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// LoanRepository defines loan repository interface
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, id uint) (*models.Loan, error)
	GetByReference(ctx context.Context, reference string) (*models.Loan, error)
	Update(ctx context.Context, loan *models.Loan) error
	List(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Loan, error)
	FindOpenByCopy(ctx context.Context, copyID uint) ([]*models.Loan, error)
	CountOpen(ctx context.Context) (int64, error)
	ListOpenOlderThan(ctx context.Context, cutoff time.Time) ([]*models.Loan, error)
}
