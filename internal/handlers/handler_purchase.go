package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/billsphere/billing_backend/internal/core/ports/services"
	"github.com/billsphere/billing_backend/internal/dto"
	"github.com/billsphere/billing_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// purchaseHandler handles HTTP requests related to purchase bills.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
}

func newPurchaseHandler(ps portssvc.PurchaseSvcFacade) *purchaseHandler {
	return &purchaseHandler{
		purchaseService: ps,
	}
}

// registerPurchaseRoutes registers purchase routes nested under a specific company.
func registerPurchaseRoutes(rg *gin.RouterGroup, purchaseService portssvc.PurchaseSvcFacade) {
	h := newPurchaseHandler(purchaseService)

	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.createPurchase)
		purchases.GET("", h.listPurchases)
		purchases.GET("/:purchase_id", h.getPurchase)
		purchases.DELETE("/:purchase_id", h.deletePurchase)
	}
}

// createPurchase godoc
// @Summary Record a purchase bill
// @Description Records a purchase bill against a supplier. The entry is assigned
// @Description to the fiscal year containing its date.
// @Tags purchases
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   purchase body dto.CreatePurchaseRequest true "Purchase details"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/purchases [post]
func (h *purchaseHandler) createPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record purchase")
		return
	}

	logger.Info("Purchase recorded", slog.String("purchase_id", purchase.PurchaseID), slog.String("bill_number", purchase.BillNumber))
	c.JSON(http.StatusCreated, dto.ToPurchaseResponse(purchase))
}

// listPurchases godoc
// @Summary List purchases
// @Description Retrieves a paginated list of a company's purchases, newest first.
// @Tags purchases
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListPurchasesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/purchases [get]
func (h *purchaseHandler) listPurchases(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit, nextToken := parseListQuery(c)

	purchases, newToken, err := h.purchaseService.ListPurchases(c.Request.Context(), companyID, limit, nextToken, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list purchases")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPurchasesResponse(purchases, newToken))
}

// getPurchase godoc
// @Summary Get a purchase by ID
// @Description Retrieves a single purchase entry within a company.
// @Tags purchases
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   purchase_id path string true "Purchase ID"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Purchase not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/purchases/{purchase_id} [get]
func (h *purchaseHandler) getPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	purchaseID := c.Param("purchase_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	purchase, err := h.purchaseService.GetPurchaseByID(c.Request.Context(), companyID, purchaseID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve purchase")
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseResponse(purchase))
}

// deletePurchase godoc
// @Summary Delete a purchase
// @Description Deletes a purchase entry. Entries in closed fiscal years cannot be deleted.
// @Tags purchases
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   purchase_id path string true "Purchase ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Fiscal year closed"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Purchase not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/purchases/{purchase_id} [delete]
func (h *purchaseHandler) deletePurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	purchaseID := c.Param("purchase_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.purchaseService.DeletePurchase(c.Request.Context(), companyID, purchaseID, userID); err != nil {
		respondWithError(c, logger, err, "Failed to delete purchase")
		return
	}

	logger.Info("Purchase deleted", slog.String("purchase_id", purchaseID))
	c.Status(http.StatusNoContent)
}
