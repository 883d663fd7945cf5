package config

import (
	"log"

	"openshelf/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders. Seeding is for development only; each
// seeder skips silently when data already exists.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedLibraries(); err != nil {
		return err
	}
	if err := s.seedCatalog(); err != nil {
		return err
	}
	if err := s.seedUsers(); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

func (s *Seeder) seedLibraries() error {
	var count int64
	s.db.Model(&models.Library{}).Count(&count)
	if count > 0 {
		return nil
	}

	libraries := []models.Library{
		{Slug: "central", Name: "Central Library"},
		{Slug: "riverside", Name: "Riverside Branch"},
	}

	for i := range libraries {
		if err := s.db.Create(&libraries[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d libraries", len(libraries))
	return nil
}

func (s *Seeder) seedCatalog() error {
	var count int64
	s.db.Model(&models.Book{}).Count(&count)
	if count > 0 {
		return nil
	}

	var central, riverside models.Library
	if err := s.db.Where("slug = ?", "central").First(&central).Error; err != nil {
		return err
	}
	if err := s.db.Where("slug = ?", "riverside").First(&riverside).Error; err != nil {
		return err
	}

	books := []models.Book{
		{Title: "The Pragmatic Programmer", Author: "Andrew Hunt"},
		{Title: "Refactoring", Author: "Martin Fowler"},
		{Title: "The Mythical Man-Month", Author: "Frederick Brooks"},
	}

	for i := range books {
		if err := s.db.Create(&books[i]).Error; err != nil {
			return err
		}

		// two copies at central, one at riverside
		copies := []models.Copy{
			{BookID: books[i].ID, LibraryID: central.ID, Status: models.CopyStatusAvailable},
			{BookID: books[i].ID, LibraryID: central.ID, Status: models.CopyStatusAvailable},
			{BookID: books[i].ID, LibraryID: riverside.ID, Status: models.CopyStatusAvailable},
		}
		for j := range copies {
			if err := s.db.Create(&copies[j]).Error; err != nil {
				return err
			}
		}
	}

	log.Printf("✅ Seeded %d books with copies", len(books))
	return nil
}

func (s *Seeder) seedUsers() error {
	var count int64
	s.db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return nil
	}

	users := []models.User{
		{Email: "ana@example.com", Name: "Ana Reader"},
		{Email: "bruno@example.com", Name: "Bruno Costa"},
	}

	for i := range users {
		if err := s.db.Create(&users[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d users", len(users))
	return nil
}
