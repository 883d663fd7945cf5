package handlers

import (
	"strconv"

	"openshelf/internal/core/services"
	"openshelf/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles reporting endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Overview returns lending statistics
// @Summary Lending overview
// @Description Copy and loan counts across all branches
// @Tags Reports
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /reports/overview [get]
func (h *ReportHandler) Overview(c *fiber.Ctx) error {
	overview, err := h.reportService.GetOverview(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to build overview")
	}

	return response.Success(c, "Overview retrieved successfully", overview)
}

// LongOpenLoans returns loans open longer than the given number of days
// @Summary Long-open loans
// @Description Loans that have been out longer than the given number of days (default 30)
// @Tags Reports
// @Accept json
// @Produce json
// @Param days query int false "Age in days" default(30)
// @Success 200 {object} response.Response
// @Router /reports/long-open-loans [get]
func (h *ReportHandler) LongOpenLoans(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", strconv.Itoa(services.LongOpenLoanDays)))
	if err != nil || days < 1 {
		days = services.LongOpenLoanDays
	}

	loans, err := h.reportService.LongOpenLoans(c.Context(), days)
	if err != nil {
		return response.InternalServerError(c, "Failed to list long-open loans")
	}

	result := make([]interface{}, 0, len(loans))
	for _, l := range loans {
		result = append(result, l.ToResponse())
	}

	return response.Success(c, "Long-open loans retrieved successfully", fiber.Map{
		"days":  days,
		"loans": result,
	})
}
