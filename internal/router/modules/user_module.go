package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"taskvault/internal/container"
	handlers "taskvault/internal/interface/http"
	"taskvault/internal/interface/middleware"
	"taskvault/pkg/helpers"
)

// UserModule exposes the authenticated profile endpoints:
// GET /api/users/me, PUT /api/users/me.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	users := rg.Group("/users")
	users.Use(middleware.Auth(rdb, m.JWT))
	users.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID()))

	users.GET("/me", m.Handler.GetProfile)
	users.PUT("/me", m.Handler.UpdateProfile)
}
