package handlers

import (
	"strconv"

	"openshelf/internal/adapters/persistence/models"
	"openshelf/internal/adapters/persistence/repositories"
	"openshelf/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LibraryHandler handles library branch endpoints
type LibraryHandler struct {
	libraryRepo repositories.LibraryRepository
	copyRepo    repositories.CopyRepository
}

// NewLibraryHandler creates a new library handler
func NewLibraryHandler(libraryRepo repositories.LibraryRepository, copyRepo repositories.CopyRepository) *LibraryHandler {
	return &LibraryHandler{
		libraryRepo: libraryRepo,
		copyRepo:    copyRepo,
	}
}

// List lists all libraries
// @Summary List libraries
// @Description Get all library branches
// @Tags Libraries
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /libraries [get]
func (h *LibraryHandler) List(c *fiber.Ctx) error {
	libraries, err := h.libraryRepo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list libraries")
	}

	return response.Success(c, "Libraries retrieved successfully", fiber.Map{
		"libraries": libraries,
	})
}

// GetBySlug gets a library by slug
// @Summary Get library
// @Description Get a library branch by slug
// @Tags Libraries
// @Accept json
// @Produce json
// @Param slug path string true "Library slug"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /libraries/{slug} [get]
func (h *LibraryHandler) GetBySlug(c *fiber.Ctx) error {
	library, err := h.libraryRepo.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return response.NotFound(c, "Library not found")
	}

	return response.Success(c, "Library retrieved successfully", fiber.Map{
		"library": library,
	})
}

// GetCopies lists copies held by a library
// @Summary List library copies
// @Description Get all copies held by a library branch
// @Tags Libraries
// @Accept json
// @Produce json
// @Param slug path string true "Library slug"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /libraries/{slug}/copies [get]
func (h *LibraryHandler) GetCopies(c *fiber.Ctx) error {
	slug := c.Params("slug")

	if _, err := h.libraryRepo.GetBySlug(c.Context(), slug); err != nil {
		return response.NotFound(c, "Library not found")
	}

	copies, err := h.copyRepo.ListByLibrary(c.Context(), slug)
	if err != nil {
		return response.InternalServerError(c, "Failed to list copies")
	}

	return response.Success(c, "Copies retrieved successfully", fiber.Map{
		"copies": copies,
	})
}

// CreateLibraryRequest represents create library request
type CreateLibraryRequest struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Create creates a new library
// @Summary Create library
// @Description Create a new library branch
// @Tags Libraries
// @Accept json
// @Produce json
// @Param body body CreateLibraryRequest true "Library data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /libraries [post]
func (h *LibraryHandler) Create(c *fiber.Ctx) error {
	var req CreateLibraryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Slug == "" || req.Name == "" {
		return response.BadRequest(c, "Slug and name are required")
	}

	exists, err := h.libraryRepo.ExistsBySlug(c.Context(), req.Slug)
	if err != nil {
		return response.InternalServerError(c, "Failed to create library")
	}
	if exists {
		return response.Conflict(c, "Library slug already exists")
	}

	library := &models.Library{
		Slug: req.Slug,
		Name: req.Name,
	}
	if err := h.libraryRepo.Create(c.Context(), library); err != nil {
		return response.InternalServerError(c, "Failed to create library")
	}

	return response.Created(c, "Library created successfully", fiber.Map{
		"library": library,
	})
}

// UpdateLibraryRequest represents update library request
type UpdateLibraryRequest struct {
	Name string `json:"name"`
}

// Update updates a library
// @Summary Update library
// @Description Update a library branch name
// @Tags Libraries
// @Accept json
// @Produce json
// @Param slug path string true "Library slug"
// @Param body body UpdateLibraryRequest true "Library data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /libraries/{slug} [put]
func (h *LibraryHandler) Update(c *fiber.Ctx) error {
	library, err := h.libraryRepo.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return response.NotFound(c, "Library not found")
	}

	var req UpdateLibraryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	library.Name = req.Name
	if err := h.libraryRepo.Update(c.Context(), library); err != nil {
		return response.InternalServerError(c, "Failed to update library")
	}

	return response.Success(c, "Library updated successfully", fiber.Map{
		"library": library,
	})
}

// Delete deletes a library
// @Summary Delete library
// @Description Delete a library branch
// @Tags Libraries
// @Accept json
// @Produce json
// @Param slug path string true "Library slug"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /libraries/{slug} [delete]
func (h *LibraryHandler) Delete(c *fiber.Ctx) error {
	library, err := h.libraryRepo.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return response.NotFound(c, "Library not found")
	}

	if err := h.libraryRepo.Delete(c.Context(), library.ID); err != nil {
		return response.InternalServerError(c, "Failed to delete library")
	}

	return response.Success(c, "Library deleted successfully", nil)
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	return uint(id), err
}
