package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/billsphere/billing_backend/internal/core/ports/services"
	"github.com/billsphere/billing_backend/internal/dto"
	"github.com/billsphere/billing_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// saleHandler handles HTTP requests related to sales invoices.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func newSaleHandler(ss portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{
		saleService: ss,
	}
}

// registerSaleRoutes registers sale routes nested under a specific company.
func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("", h.listSales)
		sales.GET("/:sale_id", h.getSale)
		sales.DELETE("/:sale_id", h.deleteSale)
	}
}

// createSale godoc
// @Summary Record a sales invoice
// @Description Records a sales invoice against a customer. The entry is assigned
// @Description to the fiscal year containing its date.
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   sale body dto.CreateSaleRequest true "Sale details"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Duplicate invoice number"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/sales [post]
func (h *saleHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record sale")
		return
	}

	logger.Info("Sale recorded", slog.String("sale_id", sale.SaleID), slog.String("invoice_number", sale.InvoiceNumber))
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

// listSales godoc
// @Summary List sales
// @Description Retrieves a paginated list of a company's sales, newest first.
// @Tags sales
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListSalesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/sales [get]
func (h *saleHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit, nextToken := parseListQuery(c)

	sales, newToken, err := h.saleService.ListSales(c.Request.Context(), companyID, limit, nextToken, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list sales")
		return
	}

	c.JSON(http.StatusOK, dto.ToListSalesResponse(sales, newToken))
}

// getSale godoc
// @Summary Get a sale by ID
// @Description Retrieves a single sale entry within a company.
// @Tags sales
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   sale_id path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Sale not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/sales/{sale_id} [get]
func (h *saleHandler) getSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	saleID := c.Param("sale_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	sale, err := h.saleService.GetSaleByID(c.Request.Context(), companyID, saleID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve sale")
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// deleteSale godoc
// @Summary Delete a sale
// @Description Deletes a sale entry. Entries in closed fiscal years cannot be deleted.
// @Tags sales
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   sale_id path string true "Sale ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Fiscal year closed"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Sale not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/sales/{sale_id} [delete]
func (h *saleHandler) deleteSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	saleID := c.Param("sale_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), companyID, saleID, userID); err != nil {
		respondWithError(c, logger, err, "Failed to delete sale")
		return
	}

	logger.Info("Sale deleted", slog.String("sale_id", saleID))
	c.Status(http.StatusNoContent)
}
