package handlers

import (
	"openshelf/internal/adapters/persistence/models"
	"openshelf/internal/adapters/persistence/repositories"
	"openshelf/internal/pkg/pagination"
	"openshelf/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CopyHandler handles copy endpoints
type CopyHandler struct {
	copyRepo    repositories.CopyRepository
	bookRepo    repositories.BookRepository
	libraryRepo repositories.LibraryRepository
	loanRepo    repositories.LoanRepository
}

// NewCopyHandler creates a new copy handler
func NewCopyHandler(
	copyRepo repositories.CopyRepository,
	bookRepo repositories.BookRepository,
	libraryRepo repositories.LibraryRepository,
	loanRepo repositories.LoanRepository,
) *CopyHandler {
	return &CopyHandler{
		copyRepo:    copyRepo,
		bookRepo:    bookRepo,
		libraryRepo: libraryRepo,
		loanRepo:    loanRepo,
	}
}

// List lists copies
// @Summary List copies
// @Description List all copies with pagination
// @Tags Copies
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /copies [get]
func (h *CopyHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	copies, total, err := h.copyRepo.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list copies")
	}

	return response.Success(c, "Copies retrieved successfully", pagination.NewResponse(copies, params, total))
}

// GetByID gets a copy by ID, including the open loan if the copy is
// currently out
// @Summary Get copy
// @Description Get a copy by ID with its current open loan, if any
// @Tags Copies
// @Accept json
// @Produce json
// @Param id path int true "Copy ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /copies/{id} [get]
func (h *CopyHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid copy ID")
	}

	cp, err := h.copyRepo.GetByID(c.Context(), id)
	if err != nil {
		return response.NotFound(c, "Copy not found")
	}

	result := fiber.Map{
		"copy": cp,
	}

	if cp.Status == models.CopyStatusBorrowed {
		openLoans, err := h.loanRepo.FindOpenByCopy(c.Context(), cp.ID)
		if err == nil && len(openLoans) > 0 {
			result["open_loan"] = openLoans[0].ToResponse()
		}
	}

	return response.Success(c, "Copy retrieved successfully", result)
}

// CreateCopyRequest represents create copy request
type CreateCopyRequest struct {
	BookID      uint   `json:"book_id"`
	LibrarySlug string `json:"library_slug"`
}

// Create registers a new copy of a book at a library. New copies
// always start AVAILABLE.
// @Summary Create copy
// @Description Register a new copy of a book at a library branch
// @Tags Copies
// @Accept json
// @Produce json
// @Param body body CreateCopyRequest true "Copy data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /copies [post]
func (h *CopyHandler) Create(c *fiber.Ctx) error {
	var req CreateCopyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.BookID == 0 || req.LibrarySlug == "" {
		return response.BadRequest(c, "Book ID and library slug are required")
	}

	book, err := h.bookRepo.GetByID(c.Context(), req.BookID)
	if err != nil {
		return response.NotFound(c, "Book not found")
	}

	library, err := h.libraryRepo.GetBySlug(c.Context(), req.LibrarySlug)
	if err != nil {
		return response.NotFound(c, "Library not found")
	}

	cp := &models.Copy{
		BookID:    book.ID,
		LibraryID: library.ID,
		Status:    models.CopyStatusAvailable,
	}
	if err := h.copyRepo.Create(c.Context(), cp); err != nil {
		return response.InternalServerError(c, "Failed to create copy")
	}

	return response.Created(c, "Copy created successfully", fiber.Map{
		"copy": cp,
	})
}

// Delete removes a copy. Borrowed copies cannot be removed while a
// loan is open on them.
// @Summary Delete copy
// @Description Remove a copy from circulation
// @Tags Copies
// @Accept json
// @Produce json
// @Param id path int true "Copy ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /copies/{id} [delete]
func (h *CopyHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid copy ID")
	}

	cp, err := h.copyRepo.GetByID(c.Context(), id)
	if err != nil {
		return response.NotFound(c, "Copy not found")
	}

	if cp.Status == models.CopyStatusBorrowed {
		return response.Conflict(c, "Copy is currently borrowed")
	}

	if err := h.copyRepo.Delete(c.Context(), cp.ID); err != nil {
		return response.InternalServerError(c, "Failed to delete copy")
	}

	return response.Success(c, "Copy deleted successfully", nil)
}
