package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/billsphere/billing_backend/internal/core/domain"
	portssvc "github.com/billsphere/billing_backend/internal/core/ports/services"
	"github.com/billsphere/billing_backend/internal/dto"
	"github.com/billsphere/billing_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// partyHandler handles HTTP requests related to customers and suppliers.
type partyHandler struct {
	partyService portssvc.PartySvcFacade
}

func newPartyHandler(ps portssvc.PartySvcFacade) *partyHandler {
	return &partyHandler{
		partyService: ps,
	}
}

// registerPartyRoutes registers party routes nested under a specific company.
func registerPartyRoutes(rg *gin.RouterGroup, partyService portssvc.PartySvcFacade) {
	h := newPartyHandler(partyService)

	parties := rg.Group("/parties")
	{
		parties.POST("", h.createParty)
		parties.GET("", h.listParties)
		parties.GET("/:party_id", h.getParty)
		parties.PUT("/:party_id", h.updateParty)
		parties.DELETE("/:party_id", h.deactivateParty)
	}
}

// parseListQuery reads the shared limit/nextToken pagination query parameters.
func parseListQuery(c *gin.Context) (int, *string) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}
	return limit, nextToken
}

// createParty godoc
// @Summary Create a party
// @Description Creates a customer or supplier with an optional opening balance.
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   party body dto.CreatePartyRequest true "Party details"
// @Success 201 {object} dto.PartyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/parties [post]
func (h *partyHandler) createParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	party, err := h.partyService.CreateParty(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create party")
		return
	}

	logger.Info("Party created", slog.String("party_id", party.PartyID), slog.String("role", string(party.Role)))
	c.JSON(http.StatusCreated, dto.ToPartyResponse(party))
}

// listParties godoc
// @Summary List parties
// @Description Retrieves a paginated list of a company's parties, optionally filtered by role.
// @Tags parties
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   role query string false "Filter by role (CUSTOMER or SUPPLIER)"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListPartiesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/parties [get]
func (h *partyHandler) listParties(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var role *domain.PartyRole
	if roleStr := c.Query("role"); roleStr != "" {
		r := domain.PartyRole(roleStr)
		if r != domain.RoleCustomer && r != domain.RoleSupplier {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "role must be CUSTOMER or SUPPLIER"})
			return
		}
		role = &r
	}

	limit, nextToken := parseListQuery(c)

	parties, newToken, err := h.partyService.ListParties(c.Request.Context(), companyID, role, limit, nextToken, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list parties")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPartiesResponse(parties, newToken))
}

// getParty godoc
// @Summary Get a party by ID
// @Description Retrieves a single party within a company.
// @Tags parties
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   party_id path string true "Party ID"
// @Success 200 {object} dto.PartyResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Party not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/parties/{party_id} [get]
func (h *partyHandler) getParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	partyID := c.Param("party_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	party, err := h.partyService.GetPartyByID(c.Request.Context(), companyID, partyID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve party")
		return
	}

	c.JSON(http.StatusOK, dto.ToPartyResponse(party))
}

// updateParty godoc
// @Summary Update a party
// @Description Updates a party's contact and credit fields. Role and opening balance are immutable.
// @Tags parties
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   party_id path string true "Party ID"
// @Param   party body dto.UpdatePartyRequest true "Party details to update"
// @Success 200 {object} dto.PartyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Party not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/parties/{party_id} [put]
func (h *partyHandler) updateParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	partyID := c.Param("party_id")

	var req dto.UpdatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	party, err := h.partyService.UpdateParty(c.Request.Context(), companyID, partyID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update party")
		return
	}

	logger.Info("Party updated", slog.String("party_id", partyID))
	c.JSON(http.StatusOK, dto.ToPartyResponse(party))
}

// deactivateParty godoc
// @Summary Deactivate a party
// @Description Soft-deletes a party. Its entries stay intact for statements.
// @Tags parties
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   party_id path string true "Party ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Party not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/parties/{party_id} [delete]
func (h *partyHandler) deactivateParty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	partyID := c.Param("party_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.partyService.DeactivateParty(c.Request.Context(), companyID, partyID, userID); err != nil {
		respondWithError(c, logger, err, "Failed to deactivate party")
		return
	}

	logger.Info("Party deactivated", slog.String("party_id", partyID))
	c.Status(http.StatusNoContent)
}
