package router

import (
	"taskvault/internal/application"
	"taskvault/internal/container"
	pginfra "taskvault/internal/infrastructure/postgres"
	handlers "taskvault/internal/interface/http"
	"taskvault/internal/router/modules"
)

// InitModules builds the feature modules from the container singletons and
// registers them with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()

	userRepo := pginfra.NewUserRepository(pool)
	taskRepo := pginfra.NewTaskRepository(pool)

	userSvc := application.NewUserService(userRepo, container.GetHasher(), logger)
	authSvc := application.NewAuthService(userSvc, jwt, container.GetRedis(), container.GetRabbitPub(), logger)
	taskSvc := application.NewTaskService(taskRepo, logger, container.GetES(), cfg.ESTasksIndex)

	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	userHandler := handlers.NewUserHandler(userSvc, logger)
	taskHandler := handlers.NewTaskHandler(taskSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, jwt))
	r.Add(modules.NewUserModule(userHandler, jwt))
	r.Add(modules.NewTaskModule(taskHandler, jwt))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
