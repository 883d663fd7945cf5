package handlers

import (
	"openshelf/internal/adapters/persistence/models"
	"openshelf/internal/adapters/persistence/repositories"
	"openshelf/internal/pkg/pagination"
	"openshelf/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookHandler handles book catalog endpoints
type BookHandler struct {
	bookRepo repositories.BookRepository
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookRepo repositories.BookRepository) *BookHandler {
	return &BookHandler{
		bookRepo: bookRepo,
	}
}

// List lists books
// @Summary List books
// @Description List books with pagination; use q to search by title or author
// @Tags Books
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param q query string false "Search query"
// @Success 200 {object} response.Response
// @Router /books [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	if q := c.Query("q"); q != "" {
		books, err := h.bookRepo.Search(c.Context(), q, pagination.MaxLimit)
		if err != nil {
			return response.InternalServerError(c, "Failed to search books")
		}
		return response.Success(c, "Books retrieved successfully", fiber.Map{
			"books": books,
		})
	}

	params := pagination.GetParams(c)
	books, total, err := h.bookRepo.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list books")
	}

	return response.Success(c, "Books retrieved successfully", pagination.NewResponse(books, params, total))
}

// GetByID gets a book by ID
// @Summary Get book
// @Description Get a book by ID
// @Tags Books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [get]
func (h *BookHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	book, err := h.bookRepo.GetByID(c.Context(), id)
	if err != nil {
		return response.NotFound(c, "Book not found")
	}

	return response.Success(c, "Book retrieved successfully", fiber.Map{
		"book": book,
	})
}

// CreateBookRequest represents create book request
type CreateBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Create creates a new book
// @Summary Create book
// @Description Add a new book to the catalog
// @Tags Books
// @Accept json
// @Produce json
// @Param body body CreateBookRequest true "Book data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /books [post]
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var req CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Title == "" {
		return response.BadRequest(c, "Title is required")
	}
	if req.Author == "" {
		return response.BadRequest(c, "Author is required")
	}

	book := &models.Book{
		Title:  req.Title,
		Author: req.Author,
	}
	if err := h.bookRepo.Create(c.Context(), book); err != nil {
		return response.InternalServerError(c, "Failed to create book")
	}

	return response.Created(c, "Book created successfully", fiber.Map{
		"book": book,
	})
}

// UpdateBookRequest represents update book request
type UpdateBookRequest struct {
	Title  *string `json:"title,omitempty"`
	Author *string `json:"author,omitempty"`
}

// Update updates a book
// @Summary Update book
// @Description Update a book's title or author
// @Tags Books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param body body UpdateBookRequest true "Book data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [put]
func (h *BookHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	book, err := h.bookRepo.GetByID(c.Context(), id)
	if err != nil {
		return response.NotFound(c, "Book not found")
	}

	var req UpdateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}

	if err := h.bookRepo.Update(c.Context(), book); err != nil {
		return response.InternalServerError(c, "Failed to update book")
	}

	return response.Success(c, "Book updated successfully", fiber.Map{
		"book": book,
	})
}

// Delete deletes a book
// @Summary Delete book
// @Description Remove a book from the catalog
// @Tags Books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	if _, err := h.bookRepo.GetByID(c.Context(), id); err != nil {
		return response.NotFound(c, "Book not found")
	}

	if err := h.bookRepo.Delete(c.Context(), id); err != nil {
		return response.InternalServerError(c, "Failed to delete book")
	}

	return response.Success(c, "Book deleted successfully", nil)
}
