package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bankhub/banking-api/internal/application"
	"github.com/bankhub/banking-api/internal/interface/middleware"
	"github.com/bankhub/banking-api/pkg/response"
	"github.com/bankhub/banking-api/pkg/validation"
)

type AccountHandler struct {
	Svc    *application.AccountService
	Logger *logrus.Logger
}

func NewAccountHandler(svc *application.AccountService, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger}
}

type balanceChangeRequest struct {
	Amount int64 `json:"amount"`
}

func accountID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid account id", nil)
		return 0, false
	}
	return id, true
}

// Get GET /api/account/:id returns the caller's account. Another user's
// account id resolves to not-found, never forbidden.
func (h *AccountHandler) Get(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	p, _ := middleware.PrincipalFrom(c)
	acc, err := h.Svc.GetAccount(c.Request.Context(), p.ID, id)
	if err != nil {
		renderError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toAccountView(acc), "account", nil)
}

// Deposit POST /api/account/deposit/:id
func (h *AccountHandler) Deposit(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	var req balanceChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, _ := middleware.PrincipalFrom(c)
	acc, err := h.Svc.Deposit(c.Request.Context(), p.ID, id, req.Amount)
	if err != nil {
		renderError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toAccountView(acc), "deposit applied", nil)
}

// Withdraw POST /api/account/withdraw/:id
func (h *AccountHandler) Withdraw(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	var req balanceChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, _ := middleware.PrincipalFrom(c)
	acc, err := h.Svc.Withdraw(c.Request.Context(), p.ID, id, req.Amount)
	if err != nil {
		renderError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toAccountView(acc), "withdrawal applied", nil)
}
