package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/billsphere/billing_backend/internal/core/ports/services"
	"github.com/billsphere/billing_backend/internal/dto"
	"github.com/billsphere/billing_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fiscalYearHandler handles HTTP requests related to fiscal years.
type fiscalYearHandler struct {
	fiscalYearService portssvc.FiscalYearSvcFacade
}

func newFiscalYearHandler(fs portssvc.FiscalYearSvcFacade) *fiscalYearHandler {
	return &fiscalYearHandler{
		fiscalYearService: fs,
	}
}

// registerFiscalYearRoutes registers fiscal year routes nested under a specific company.
func registerFiscalYearRoutes(rg *gin.RouterGroup, fiscalYearService portssvc.FiscalYearSvcFacade) {
	h := newFiscalYearHandler(fiscalYearService)

	years := rg.Group("/fiscal-years")
	{
		years.POST("", h.createFiscalYear)
		years.GET("", h.listFiscalYears)
		years.GET("/:fiscal_year_id", h.getFiscalYear)
		years.POST("/:fiscal_year_id/close", h.closeFiscalYear)
	}
}

// createFiscalYear godoc
// @Summary Open a fiscal year
// @Description Opens a new fiscal year. The date range must not overlap an existing year.
// @Tags fiscal-years
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   fiscal_year body dto.CreateFiscalYearRequest true "Fiscal year details"
// @Success 201 {object} dto.FiscalYearResponse
// @Failure 400 {object} ErrorResponse "Invalid or overlapping date range"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/fiscal-years [post]
func (h *fiscalYearHandler) createFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	fy, err := h.fiscalYearService.CreateFiscalYear(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create fiscal year")
		return
	}

	logger.Info("Fiscal year opened", slog.String("fiscal_year_id", fy.FiscalYearID), slog.String("name", fy.Name))
	c.JSON(http.StatusCreated, dto.ToFiscalYearResponse(fy))
}

// listFiscalYears godoc
// @Summary List fiscal years
// @Description Retrieves all fiscal years of a company, newest first.
// @Tags fiscal-years
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {object} dto.ListFiscalYearsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/fiscal-years [get]
func (h *fiscalYearHandler) listFiscalYears(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	years, err := h.fiscalYearService.ListFiscalYears(c.Request.Context(), companyID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list fiscal years")
		return
	}

	c.JSON(http.StatusOK, dto.ToListFiscalYearsResponse(years))
}

// getFiscalYear godoc
// @Summary Get a fiscal year by ID
// @Description Retrieves a single fiscal year within a company.
// @Tags fiscal-years
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   fiscal_year_id path string true "Fiscal Year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Fiscal year not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/fiscal-years/{fiscal_year_id} [get]
func (h *fiscalYearHandler) getFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	fiscalYearID := c.Param("fiscal_year_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	fy, err := h.fiscalYearService.GetFiscalYearByID(c.Request.Context(), companyID, fiscalYearID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve fiscal year")
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}

// closeFiscalYear godoc
// @Summary Close a fiscal year
// @Description Closes a fiscal year, freezing its entries (requires owner role).
// @Tags fiscal-years
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   fiscal_year_id path string true "Fiscal Year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 400 {object} ErrorResponse "Already closed"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Fiscal year not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/fiscal-years/{fiscal_year_id}/close [post]
func (h *fiscalYearHandler) closeFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	fiscalYearID := c.Param("fiscal_year_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	fy, err := h.fiscalYearService.CloseFiscalYear(c.Request.Context(), companyID, fiscalYearID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to close fiscal year")
		return
	}

	logger.Info("Fiscal year closed", slog.String("fiscal_year_id", fiscalYearID))
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}
