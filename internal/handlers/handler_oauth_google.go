package handlers

import (
	"log/slog"
	"net/http"

	"github.com/billsphere/billing_backend/internal/core/domain"
	portssvc "github.com/billsphere/billing_backend/internal/core/ports/services"
	"github.com/billsphere/billing_backend/internal/middleware"
	"github.com/billsphere/billing_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
)

const oauthStateCookieName = "oauth_state"

// googleOAuthHandler handles the Google OAuth login flows: the redirect flow for
// browsers and the code-exchange flow for SPA frontends.
type googleOAuthHandler struct {
	auth         *authHandler
	oauthService portssvc.GoogleOAuthHandlerSvcFacade
}

// registerGoogleOAuthRoutes registers the Google OAuth routes under the auth group.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := &googleOAuthHandler{
		auth:         newAuthHandler(services.User, services.Token, cfg),
		oauthService: services.GoogleOAuth,
	}

	google := rg.Group("/google")
	{
		google.GET("/login", h.loginGoogle)
		google.GET("/callback", h.callbackGoogle)
		google.POST("/exchange-code", h.exchangeCodeGoogle)
	}
}

// exchangeCodeRequest is the body of the /google/exchange-code endpoint.
type exchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// loginGoogle godoc
// @Summary Start Google OAuth login
// @Description Redirects the browser to the Google consent screen. A state
// @Description cookie is set for CSRF protection.
// @Tags oauth
// @Success 307 "Redirect to Google"
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *googleOAuthHandler) loginGoogle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	state, err := h.oauthService.GenerateStateString(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start login"})
		return
	}

	c.SetCookie(oauthStateCookieName, state, 300, "/api/v1/auth/google", "", h.auth.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauthService.GetGoogleLoginURL(c.Request.Context(), state))
}

// callbackGoogle godoc
// @Summary Google OAuth callback
// @Description Completes the redirect flow: validates state, exchanges the code,
// @Description resolves the user and redirects to the frontend with tokens issued.
// @Tags oauth
// @Success 302 "Redirect to frontend"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *googleOAuthHandler) callbackGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	expectedState, err := c.Cookie(oauthStateCookieName)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.Warn("OAuth state mismatch on Google callback")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookieName, "", -1, "/api/v1/auth/google", "", h.auth.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code missing"})
		return
	}

	token, err := h.oauthService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange code with Google", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Failed to exchange authorization code"})
		return
	}

	info, err := h.oauthService.GetUserInfo(ctx, token)
	if err != nil {
		logger.Error("Failed to fetch Google user info", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch user info"})
		return
	}

	user, err := h.auth.userService.FindOrCreateGoogleUser(ctx, info)
	if err != nil {
		respondWithError(c, logger, err, "Failed to process Google login")
		return
	}

	resp, err := h.auth.issueTokens(c, user)
	if err != nil {
		logger.Error("Failed to issue tokens after Google login", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate tokens"})
		return
	}

	logger.Info("Google login completed", slog.String("user_id", user.UserID))
	c.Redirect(http.StatusFound, h.auth.cfg.FrontendBaseURL+"/oauth/callback#accessToken="+resp.AccessToken)
}

// exchangeCodeGoogle godoc
// @Summary Exchange Google authorization code for tokens
// @Description Exchanges a code obtained by the frontend for an application
// @Description access/refresh token pair. The Google ID token is validated here.
// @Tags oauth
// @Accept json
// @Produce json
// @Param code body exchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req exchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	token, err := h.oauthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.Warn("Failed to exchange code with Google", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired authorization code"})
		return
	}

	idTokenString, ok := token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token missing from Google token response")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve ID token from Google"})
		return
	}

	payload, err := h.oauthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	emailVerified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || payload.Subject == "" {
		logger.Error("Essential claims missing from Google ID token")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Essential user information missing from Google token"})
		return
	}

	user, err := h.auth.userService.FindOrCreateGoogleUser(ctx, &domain.GoogleUserInfo{
		ID:            payload.Subject,
		Email:         email,
		VerifiedEmail: emailVerified,
		Name:          name,
	})
	if err != nil {
		respondWithError(c, logger, err, "Failed to process Google login")
		return
	}

	resp, err := h.auth.issueTokens(c, user)
	if err != nil {
		logger.Error("Failed to issue tokens after code exchange", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate tokens"})
		return
	}

	logger.Info("Google code exchange completed", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, resp)
}
