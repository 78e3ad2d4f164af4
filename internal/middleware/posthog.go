package middleware

import (
	"net/http"
	"strings"

	"github.com/billsphere/billing_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// untrackedPaths are health and documentation endpoints with no analytics value.
var untrackedPaths = map[string]bool{
	"/":       true,
	"/health": true,
}

// PosthogMiddleware tracks successful authenticated API calls as analytics
// events. Failed requests and anonymous traffic are not reported.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || untrackedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// Only requests that passed AuthMiddleware carry a user to attribute
		// the event to.
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}

		// Route template, not the concrete URL, so statements for different
		// parties aggregate into one event name.
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}
