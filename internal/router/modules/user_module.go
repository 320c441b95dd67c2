package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bankhub/banking-api/internal/container"
	"github.com/bankhub/banking-api/internal/domain/entity"
	handlers "github.com/bankhub/banking-api/internal/interface/http"
	"github.com/bankhub/banking-api/internal/interface/middleware"
)

// UserModule wires the user routes and their authorization rules:
// provisioning is admin-key only, reads are credential-path only.
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	createLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())
	listLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByPrincipal())

	rg.POST("/user", createLimiter, middleware.RequireRole(entity.RoleAdmin), m.Handler.Create)
	rg.GET("/user/list", listLimiter, middleware.RequireRole(entity.RoleUser), m.Handler.List)
	rg.GET("/user/me", middleware.RequireRole(entity.RoleUser), m.Handler.Me)
}
