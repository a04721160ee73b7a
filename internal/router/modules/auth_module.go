package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"taskvault/internal/container"
	handlers "taskvault/internal/interface/http"
	"taskvault/internal/interface/middleware"
	"taskvault/pkg/helpers"
)

// AuthModule wires the auth handlers and JWT middleware into routes.
// Public: POST /api/register, /api/login, /api/refresh (rate limited).
// Protected: POST /api/logout.
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	registerLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIP())
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP())
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP())

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(rdb, m.JWT))
	auth.POST("/logout", m.Handler.Logout)
}
