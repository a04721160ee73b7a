package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskvault/internal/application"
	"taskvault/internal/interface/middleware"
	"taskvault/pkg/helpers"
	"taskvault/pkg/response"
	"taskvault/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookieManager(cookieDomain, cookieSecure)}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	profile, pair, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status, msg := statusFromErr(err)
		if status == http.StatusInternalServerError && h.Logger != nil {
			h.Logger.WithError(err).Error("register failed")
		}
		response.Fail(c, status, msg, nil)
		return
	}

	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.OK(c, http.StatusCreated, gin.H{"user": profile, "access_token": pair.AccessToken},
		"registered", gin.H{"access_expires_at": pair.AccessTokenExpiry})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	profile, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status, msg := statusFromErr(err)
		if status == http.StatusInternalServerError && h.Logger != nil {
			h.Logger.WithError(err).Error("login failed")
		}
		response.Fail(c, status, msg, nil)
		return
	}

	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.OK(c, http.StatusOK, gin.H{"user": profile, "access_token": pair.AccessToken},
		"login successful", gin.H{"access_expires_at": pair.AccessTokenExpiry})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Fail(c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		status, msg := statusFromErr(err)
		response.Fail(c, status, msg, nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.OK[any](c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed",
		gin.H{"access_expires_at": pair.AccessTokenExpiry})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Logout(c.Request.Context(), uid); err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Warn("session drop failed")
	}
	h.Cookies.Clear(c)
	response.OK[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}
