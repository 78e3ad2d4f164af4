package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/billsphere/billing_backend/internal/core/ports/services"
	"github.com/billsphere/billing_backend/internal/dto"
	"github.com/billsphere/billing_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// notificationHandler handles HTTP requests related to company notifications.
type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

func newNotificationHandler(ns portssvc.NotificationSvcFacade) *notificationHandler {
	return &notificationHandler{
		notificationService: ns,
	}
}

// registerNotificationRoutes registers notification routes nested under a specific company.
func registerNotificationRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := newNotificationHandler(notificationService)

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
		notifications.POST("/:notification_id/read", h.markRead)
	}
}

// listNotifications godoc
// @Summary List notifications
// @Description Retrieves a paginated list of a company's notifications, newest first.
// @Tags notifications
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   unreadOnly query bool false "Only unread notifications" default(false)
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListNotificationsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	unreadOnly := c.DefaultQuery("unreadOnly", "false") == "true"
	limit, nextToken := parseListQuery(c)

	notifications, newToken, err := h.notificationService.ListNotifications(c.Request.Context(), companyID, unreadOnly, limit, nextToken, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list notifications")
		return
	}

	c.JSON(http.StatusOK, dto.ToListNotificationsResponse(notifications, newToken))
}

// markRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   notification_id path string true "Notification ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Notification not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{company_id}/notifications/{notification_id}/read [post]
func (h *notificationHandler) markRead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	notificationID := c.Param("notification_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), companyID, notificationID, userID); err != nil {
		respondWithError(c, logger, err, "Failed to mark notification read")
		return
	}

	logger.Info("Notification marked read", slog.String("notification_id", notificationID))
	c.Status(http.StatusNoContent)
}
