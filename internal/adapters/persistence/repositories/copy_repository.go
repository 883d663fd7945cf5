package repositories

import (
	"context"

	"openshelf/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// copyRepository implements CopyRepository interface
type copyRepository struct {
	db *gorm.DB
}

// NewCopyRepository creates a new copy repository
func NewCopyRepository(db *gorm.DB) CopyRepository {
	return &copyRepository{db: db}
}

// Create creates a new copy
func (r *copyRepository) Create(ctx context.Context, c *models.Copy) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// GetByID gets a copy by ID with book and library preloaded
func (r *copyRepository) GetByID(ctx context.Context, id uint) (*models.Copy, error) {
	var copy models.Copy
	err := r.db.WithContext(ctx).
		Preload("Book").
		Preload("Library").
		Where("id = ?", id).
		First(&copy).Error
	if err != nil {
		return nil, err
	}
	return &copy, nil
}

// FindAvailable finds AVAILABLE copies of a book at a library,
// ordered by id so the lowest id is always picked first
func (r *copyRepository) FindAvailable(ctx context.Context, librarySlug string, bookID uint) ([]*models.Copy, error) {
	var copies []*models.Copy
	err := r.db.WithContext(ctx).
		Preload("Book").
		Preload("Library").
		Joins("JOIN libraries ON libraries.id = copies.library_id").
		Where("libraries.slug = ? AND copies.book_id = ? AND copies.status = ?",
			librarySlug, bookID, models.CopyStatusAvailable).
		Order("copies.id ASC").
		Find(&copies).Error
	return copies, err
}

// ListByLibrary lists all copies held by a library
func (r *copyRepository) ListByLibrary(ctx context.Context, librarySlug string) ([]*models.Copy, error) {
	var copies []*models.Copy
	err := r.db.WithContext(ctx).
		Preload("Book").
		Preload("Library").
		Joins("JOIN libraries ON libraries.id = copies.library_id").
		Where("libraries.slug = ?", librarySlug).
		Order("copies.id ASC").
		Find(&copies).Error
	return copies, err
}

// List lists copies with pagination
func (r *copyRepository) List(ctx context.Context, offset, limit int) ([]*models.Copy, int64, error) {
	var copies []*models.Copy
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Copy{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Book").
		Preload("Library").
		Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&copies).Error; err != nil {
		return nil, 0, err
	}

	return copies, total, nil
}

// Update updates a copy
func (r *copyRepository) Update(ctx context.Context, c *models.Copy) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Delete deletes a copy
func (r *copyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Copy{}, id).Error
}

// CountByStatus counts copies in a given status
func (r *copyRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Copy{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
