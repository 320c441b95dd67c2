package router

import (
	"github.com/bankhub/banking-api/internal/application"
	"github.com/bankhub/banking-api/internal/container"
	handlers "github.com/bankhub/banking-api/internal/interface/http"
	"github.com/bankhub/banking-api/internal/interface/middleware"
	"github.com/bankhub/banking-api/internal/router/modules"
)

// InitModules wires the services and handlers from the container
// singletons and registers all feature modules. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	repos := container.GetRepositories()
	uow := container.GetUnitOfWork()

	accountSvc := application.NewAccountService(repos, uow, logger)
	userSvc := application.NewUserService(repos, uow, accountSvc, logger)

	// caller identity is resolved once here and carried through the context
	r.Use(middleware.Authenticate(cfg.AdminSecurityKey, userSvc))

	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger)))
	r.Add(modules.NewAccountModule(handlers.NewAccountHandler(accountSvc, logger)))
	r.Add(modules.NewTransferModule(handlers.NewTransferHandler(accountSvc, logger)))
	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(container.GetPGPool(), container.GetRedis())))
}
