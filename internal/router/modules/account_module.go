package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bankhub/banking-api/internal/container"
	"github.com/bankhub/banking-api/internal/domain/entity"
	handlers "github.com/bankhub/banking-api/internal/interface/http"
	"github.com/bankhub/banking-api/internal/interface/middleware"
)

// AccountModule wires the account read and balance-change routes.
// All of them require the credential path; ownership of the account id
// is enforced by the ledger, not here.
type AccountModule struct {
	Handler *handlers.AccountHandler
}

func NewAccountModule(h *handlers.AccountHandler) *AccountModule {
	return &AccountModule{Handler: h}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/account")
	grp.Use(
		middleware.RequireRole(entity.RoleUser),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByPrincipal()),
	)
	{
		grp.GET("/:id", m.Handler.Get)
		grp.POST("/deposit/:id", m.Handler.Deposit)
		grp.POST("/withdraw/:id", m.Handler.Withdraw)
	}
}
