package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/billsphere/billing_backend/internal/core/ports/services"
	"github.com/billsphere/billing_backend/internal/dto"
	"github.com/billsphere/billing_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles party statement and summary requests.
type ledgerHandler struct {
	ledgerService     portssvc.LedgerSvcFacade
	fiscalYearService portssvc.FiscalYearReaderSvc
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade, fys portssvc.FiscalYearReaderSvc) *ledgerHandler {
	return &ledgerHandler{
		ledgerService:     ls,
		fiscalYearService: fys,
	}
}

// RegisterLedgerRoutes registers statement and summary routes nested under a
// specific company's parties.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, fiscalYearService portssvc.FiscalYearReaderSvc) {
	h := newLedgerHandler(ledgerService, fiscalYearService)

	party := rg.Group("/parties/:party_id")
	{
		party.GET("/statement", h.getPartyStatement)
		party.GET("/summary", h.getPartySummary)
	}
}

// getPartyStatement godoc
// @Summary Get a party's statement
// @Description Builds the running-balance statement of a party for the requested
// @Description date window. Entries before the window fold into the opening balance.
// @Tags ledger
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   party_id path string true "Party ID"
// @Param   from query string false "Window start (YYYY-MM-DD); defaults to the active fiscal year"
// @Param   to query string false "Window end, inclusive (YYYY-MM-DD); defaults to the active fiscal year"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} ErrorResponse "Missing or malformed window"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Party not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/parties/{party_id}/statement [get]
func (h *ledgerHandler) getPartyStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	partyID := c.Param("party_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	fromStr := c.Query("from")
	toStr := c.Query("to")

	var from, to time.Time
	switch {
	case fromStr == "" && toStr == "":
		// No window requested: default to the fiscal year covering today.
		fy, err := h.fiscalYearService.GetFiscalYearForDate(c.Request.Context(), companyID, time.Now())
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No open fiscal year covers today; provide from and to query parameters"})
			return
		}
		from, to = fy.StartDate, fy.EndDate
	case fromStr == "" || toStr == "":
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "from and to query parameters must be provided together"})
		return
	default:
		var err error
		from, err = time.Parse("2006-01-02", fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid from date. Use YYYY-MM-DD"})
			return
		}
		to, err = time.Parse("2006-01-02", toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid to date. Use YYYY-MM-DD"})
			return
		}
	}

	party, result, err := h.ledgerService.PartyStatement(c.Request.Context(), companyID, partyID, from, to, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to build statement")
		return
	}

	logger.Info("Statement built",
		slog.String("party_id", partyID),
		slog.String("from", from.Format("2006-01-02")),
		slog.String("to", to.Format("2006-01-02")),
		slog.Int("rows", len(result.Rows)))
	c.JSON(http.StatusOK, dto.ToStatementResponse(party, result, from, to))
}

// getPartySummary godoc
// @Summary Get a party's summary
// @Description Aggregates the party's full history into totals and the amount due.
// @Tags ledger
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   party_id path string true "Party ID"
// @Success 200 {object} dto.PartySummaryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Party not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/parties/{party_id}/summary [get]
func (h *ledgerHandler) getPartySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	partyID := c.Param("party_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	party, summary, err := h.ledgerService.PartySummary(c.Request.Context(), companyID, partyID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to build summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToPartySummaryResponse(party, summary))
}
