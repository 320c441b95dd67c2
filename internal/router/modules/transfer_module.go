package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bankhub/banking-api/internal/container"
	"github.com/bankhub/banking-api/internal/domain/entity"
	handlers "github.com/bankhub/banking-api/internal/interface/http"
	"github.com/bankhub/banking-api/internal/interface/middleware"
)

type TransferModule struct {
	Handler *handlers.TransferHandler
}

func NewTransferModule(h *handlers.TransferHandler) *TransferModule {
	return &TransferModule{Handler: h}
}

func (m *TransferModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByPrincipal())
	rg.POST("/transfer", limiter, middleware.RequireRole(entity.RoleUser), m.Handler.Transfer)
}
