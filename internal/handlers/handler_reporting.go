package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/billsphere/billing_backend/internal/core/domain"
	portssvc "github.com/billsphere/billing_backend/internal/core/ports/services"
	"github.com/billsphere/billing_backend/internal/dto"
	"github.com/billsphere/billing_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for company-wide due reports.
type reportingHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newReportingHandler(ls portssvc.LedgerSvcFacade) *reportingHandler {
	return &reportingHandler{
		ledgerService: ls,
	}
}

// registerReportingRoutes registers report routes nested under a specific company.
func registerReportingRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newReportingHandler(ledgerService)

	reports := rg.Group("/reports")
	{
		reports.GET("/due-list", h.getDueList)
	}
}

// getDueList godoc
// @Summary Generate the due list report
// @Description Computes the per-party dues for every active party of one role:
// @Description receivables for CUSTOMER, payables for SUPPLIER.
// @Tags reports
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   role query string false "Party role (CUSTOMER or SUPPLIER)" default(CUSTOMER)
// @Success 200 {object} dto.DueListResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/reports/due-list [get]
func (h *reportingHandler) getDueList(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	role := domain.PartyRole(c.DefaultQuery("role", string(domain.RoleCustomer)))
	if role != domain.RoleCustomer && role != domain.RoleSupplier {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "role must be CUSTOMER or SUPPLIER"})
		return
	}

	dues, err := h.ledgerService.DueList(c.Request.Context(), companyID, role, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate due list")
		return
	}

	logger.Info("Due list generated",
		slog.String("company_id", companyID),
		slog.String("role", string(role)),
		slog.Int("parties", len(dues)))
	c.JSON(http.StatusOK, dto.ToDueListResponse(dues, role, time.Now()))
}
