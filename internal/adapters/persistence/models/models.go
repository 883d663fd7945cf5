package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Catalog Tables
// ============================================================

// Library represents a branch that holds copies
type Library struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Slug      string    `gorm:"uniqueIndex;size:50;not null" json:"slug"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Library) TableName() string {
	return "libraries"
}

// Book represents a work, independent of physical copies
type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null;index" json:"title"`
	Author    string    `gorm:"size:100;not null" json:"author"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// Copy Status
const (
	CopyStatusAvailable = "AVAILABLE"
	CopyStatusBorrowed  = "BORROWED"
)

// Copy represents one lendable instance of a Book at a Library
type Copy struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookID    uint      `gorm:"not null;index" json:"book_id"`
	LibraryID uint      `gorm:"not null;index" json:"library_id"`
	Status    string    `gorm:"size:20;not null;default:'AVAILABLE'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Book    *Book    `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Library *Library `gorm:"foreignKey:LibraryID" json:"library,omitempty"`
}

func (Copy) TableName() string {
	return "copies"
}

// IsAvailable reports whether the copy can be borrowed right now.
func (c *Copy) IsAvailable() bool {
	return c.Status == CopyStatusAvailable
}

// User represents a borrower, identified by email
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Name      string    `gorm:"size:100" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// ============================================================
// Lending Tables
// ============================================================

// Loan represents one borrow transaction. EndDate unset means the loan
// is open and the copy is still out. Loans are never deleted; closing
// a loan only sets EndDate.
type Loan struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Reference string     `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	CopyID    uint       `gorm:"not null;index" json:"copy_id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	StartDate time.Time  `gorm:"not null" json:"start_date"`
	EndDate   *time.Time `gorm:"index" json:"end_date"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Copy *Copy `gorm:"foreignKey:CopyID" json:"copy,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

// IsOpen reports whether the copy is still out.
func (l *Loan) IsOpen() bool {
	return l.EndDate == nil
}

// LoanResponse DTO
type LoanResponse struct {
	ID          uint       `json:"id"`
	Reference   string     `json:"reference"`
	CopyID      uint       `json:"copy_id"`
	BookTitle   string     `json:"book_title,omitempty"`
	LibrarySlug string     `json:"library_slug,omitempty"`
	UserID      uint       `json:"user_id"`
	UserEmail   string     `json:"user_email,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Open        bool       `json:"open"`
}

func (l *Loan) ToResponse() *LoanResponse {
	resp := &LoanResponse{
		ID:        l.ID,
		Reference: l.Reference,
		CopyID:    l.CopyID,
		UserID:    l.UserID,
		StartDate: l.StartDate,
		EndDate:   l.EndDate,
		Open:      l.IsOpen(),
	}

	if l.Copy != nil {
		if l.Copy.Book != nil {
			resp.BookTitle = l.Copy.Book.Title
		}
		if l.Copy.Library != nil {
			resp.LibrarySlug = l.Copy.Library.Slug
		}
	}
	if l.User != nil {
		resp.UserEmail = l.User.Email
	}

	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates/updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Library{},
		&Book{},
		&Copy{},
		&User{},
		&Loan{},
	)
}
