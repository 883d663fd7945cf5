package repositories

import (
	"context"

	"openshelf/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// libraryRepository implements LibraryRepository interface
type libraryRepository struct {
	db *gorm.DB
}

// NewLibraryRepository creates a new library repository
func NewLibraryRepository(db *gorm.DB) LibraryRepository {
	return &libraryRepository{db: db}
}

// Create creates a new library
func (r *libraryRepository) Create(ctx context.Context, library *models.Library) error {
	return r.db.WithContext(ctx).Create(library).Error
}

// GetByID gets a library by ID
func (r *libraryRepository) GetByID(ctx context.Context, id uint) (*models.Library, error) {
	var library models.Library
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&library).Error
	if err != nil {
		return nil, err
	}
	return &library, nil
}

// GetBySlug gets a library by slug
func (r *libraryRepository) GetBySlug(ctx context.Context, slug string) (*models.Library, error) {
	var library models.Library
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&library).Error
	if err != nil {
		return nil, err
	}
	return &library, nil
}

// List lists all libraries
func (r *libraryRepository) List(ctx context.Context) ([]*models.Library, error) {
	var libraries []*models.Library
	err := r.db.WithContext(ctx).Order("slug ASC").Find(&libraries).Error
	return libraries, err
}

// Update updates a library
func (r *libraryRepository) Update(ctx context.Context, library *models.Library) error {
	return r.db.WithContext(ctx).Save(library).Error
}

// Delete deletes a library
func (r *libraryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Library{}, id).Error
}

// ExistsBySlug checks if a library slug exists
func (r *libraryRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Library{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
