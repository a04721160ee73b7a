package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"taskvault/internal/container"
	handlers "taskvault/internal/interface/http"
	"taskvault/internal/interface/middleware"
	"taskvault/pkg/helpers"
)

// TaskModule exposes the owner-scoped task endpoints under /api/tasks.
// Every route requires a resolved identity.
type TaskModule struct {
	Handler *handlers.TaskHandler
	JWT     *helpers.JWTManager
}

func NewTaskModule(h *handlers.TaskHandler, jwt *helpers.JWTManager) *TaskModule {
	return &TaskModule{Handler: h, JWT: jwt}
}

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	tasks := rg.Group("/tasks")
	tasks.Use(middleware.Auth(rdb, m.JWT))
	tasks.Use(middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByUserID()))

	tasks.GET("", m.Handler.List)
	tasks.POST("", m.Handler.Create)
	tasks.GET("/search", m.Handler.Search)
	tasks.GET("/:id", m.Handler.Get)
	tasks.PUT("/:id", m.Handler.Update)
	tasks.DELETE("/:id", m.Handler.Delete)
}
