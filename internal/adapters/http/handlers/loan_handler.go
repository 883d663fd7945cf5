package handlers

import (
	"errors"
	"strconv"

	"openshelf/internal/adapters/persistence/models"
	"openshelf/internal/core/domain"
	"openshelf/internal/core/services"
	"openshelf/internal/pkg/pagination"
	"openshelf/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles lending endpoints
type LoanHandler struct {
	loanService services.LendingService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService services.LendingService) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
	}
}

// BorrowRequest represents a borrow request. Either copy_id or the
// library_slug/book_id pair selects the copy.
type BorrowRequest struct {
	CopyID      uint   `json:"copy_id,omitempty"`
	LibrarySlug string `json:"library_slug,omitempty"`
	BookID      uint   `json:"book_id,omitempty"`
	UserEmail   string `json:"user_email"`
}

// Borrow borrows a copy and opens a loan
// @Summary Borrow a copy
// @Description Borrow a specific copy (copy_id) or any available copy of a book at a library (library_slug + book_id)
// @Tags Loans
// @Accept json
// @Produce json
// @Param body body BorrowRequest true "Borrow data"
// @Success 201 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 412 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /loans [post]
func (h *LoanHandler) Borrow(c *fiber.Ctx) error {
	var req BorrowRequest
	// a body that cannot be parsed at all is a generic failure, not a
	// validation failure
	if err := c.BodyParser(&req); err != nil {
		return response.InternalServerError(c, "Invalid loan payload")
	}

	if req.UserEmail == "" {
		return response.PreconditionFailed(c, "User email is required")
	}
	if req.CopyID == 0 && (req.LibrarySlug == "" || req.BookID == 0) {
		return response.PreconditionFailed(c, "Either copy_id or library_slug and book_id are required")
	}

	result, err := h.borrow(c, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCopyNotAvailable):
			return response.Conflict(c, "Copy is not available")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.Unauthorized(c, "User not found")
		default:
			return response.InternalServerError(c, "Failed to borrow copy")
		}
	}

	return response.Created(c, "Copy borrowed successfully", fiber.Map{
		"loan": result.ToResponse(),
	})
}

func (h *LoanHandler) borrow(c *fiber.Ctx, req *BorrowRequest) (*models.Loan, error) {
	if req.CopyID != 0 {
		return h.loanService.BorrowCopyByID(c.Context(), req.CopyID, req.UserEmail)
	}
	return h.loanService.BorrowCopy(c.Context(), req.LibrarySlug, req.BookID, req.UserEmail)
}

// Return closes an open loan
// @Summary Return a copy
// @Description Close an open loan; the copy becomes available again. Returning an already-closed loan is a no-op.
// @Tags Loans
// @Accept json
// @Produce json
// @Param id path int true "Loan ID"
// @Success 204 "No Content"
// @Failure 428 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /loans/{id}/return [patch]
func (h *LoanHandler) Return(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.InternalServerError(c, "Invalid loan ID")
	}

	if _, err := h.loanService.ReturnCopy(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrLoanNotExists) {
			return response.PreconditionRequired(c, "Loan does not exist")
		}
		return response.InternalServerError(c, "Failed to return copy")
	}

	return response.NoContent(c)
}

// List lists loans
// @Summary List loans
// @Description List all loans, newest first
// @Tags Loans
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	loans, total, err := h.loanService.List(c.Context(), params.Page, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	result := make([]interface{}, 0, len(loans))
	for _, l := range loans {
		result = append(result, l.ToResponse())
	}

	return response.Success(c, "Loans retrieved successfully", pagination.NewResponse(result, params, total))
}

// GetByReference gets a loan by its reference
// @Summary Get loan by reference
// @Description Look up a loan by the reference issued at borrow time
// @Tags Loans
// @Accept json
// @Produce json
// @Param reference path string true "Loan reference"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/reference/{reference} [get]
func (h *LoanHandler) GetByReference(c *fiber.Ctx) error {
	reference := c.Params("reference")
	if reference == "" {
		return response.BadRequest(c, "Loan reference is required")
	}

	loan, err := h.loanService.GetByReference(c.Context(), reference)
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotExists) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to get loan")
	}

	return response.Success(c, "Loan retrieved successfully", fiber.Map{
		"loan": loan.ToResponse(),
	})
}

// GetByID gets a loan by ID
// @Summary Get loan by ID
// @Description Get a specific loan
// @Tags Loans
// @Accept json
// @Produce json
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [get]
func (h *LoanHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotExists) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to get loan")
	}

	return response.Success(c, "Loan retrieved successfully", fiber.Map{
		"loan": loan.ToResponse(),
	})
}
