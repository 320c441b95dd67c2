package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bankhub/banking-api/internal/container"
	handlers "github.com/bankhub/banking-api/internal/interface/http"
	"github.com/bankhub/banking-api/internal/interface/middleware"
)

// HealthModule exposes a public liveness endpoint reporting storage
// reachability.
type HealthModule struct {
	Handler *handlers.HealthHandler
}

func NewHealthModule(h *handlers.HealthHandler) *HealthModule {
	return &HealthModule{Handler: h}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP())
	rg.GET("/health", limiter, m.Handler.Check)
}
