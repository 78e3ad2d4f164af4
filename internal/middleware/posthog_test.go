package middleware_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/billsphere/billing_backend/internal/middleware"
	"github.com/billsphere/billing_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newAnalyticsTestRouter(wrapper *utils.PosthogClientWrapper) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.PosthogMiddleware(wrapper))
	r.GET("/api/v1/companies/:company_id/parties", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": []string{}})
	})
	return r
}

func TestInitializePosthogClient_EmptyKeyDisablesTracking(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	wrapper := utils.InitializePosthogClient("", logger)

	assert.NotNil(t, wrapper)
	assert.False(t, wrapper.IsInitialized())

	// A disabled wrapper must absorb calls without panicking.
	wrapper.Enqueue("user-1", "api_v1_parties", map[string]any{"method": "GET"})
	wrapper.Close()
}

func TestPosthogMiddleware_DisabledClientPassesRequestThrough(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	router := newAnalyticsTestRouter(utils.InitializePosthogClient("", logger))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/companies/company-1/parties", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPosthogMiddleware_NilClientPassesRequestThrough(t *testing.T) {
	router := newAnalyticsTestRouter(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/companies/company-1/parties", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
