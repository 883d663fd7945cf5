package repositories

import (
	"context"

	"openshelf/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// bookRepository implements BookRepository interface
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// Create creates a new book
func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// GetByID gets a book by ID
func (r *bookRepository) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// List lists books with pagination
func (r *bookRepository) List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error) {
	var books []*models.Book
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&books).Error; err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

// Search searches books by title or author
func (r *bookRepository) Search(ctx context.Context, query string, limit int) ([]*models.Book, error) {
	var books []*models.Book
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("title LIKE ? OR author LIKE ?", pattern, pattern).
		Limit(limit).
		Find(&books).Error
	return books, err
}

// Update updates a book
func (r *bookRepository) Update(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

// Delete deletes a book
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Book{}, id).Error
}
