package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskvault/internal/application"
	"taskvault/internal/interface/middleware"
	"taskvault/pkg/response"
	"taskvault/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,pwd"`
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	profile, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		status, msg := statusFromErr(err)
		response.Fail(c, status, msg, nil)
		return
	}
	response.OK(c, http.StatusOK, profile, "profile", nil)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	profile, err := h.Svc.UpdateProfile(c.Request.Context(), uid, application.UpdateProfileInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		status, msg := statusFromErr(err)
		if status == http.StatusInternalServerError && h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", uid).Error("profile update failed")
		}
		response.Fail(c, status, msg, nil)
		return
	}
	response.OK(c, http.StatusOK, profile, "profile updated", nil)
}
