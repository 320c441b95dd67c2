package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bankhub/banking-api/internal/application"
	"github.com/bankhub/banking-api/internal/interface/middleware"
	"github.com/bankhub/banking-api/pkg/response"
	"github.com/bankhub/banking-api/pkg/validation"
)

type TransferHandler struct {
	Svc    *application.AccountService
	Logger *logrus.Logger
}

func NewTransferHandler(svc *application.AccountService, logger *logrus.Logger) *TransferHandler {
	return &TransferHandler{Svc: svc, Logger: logger}
}

type transferRequest struct {
	FromAccountID int64 `json:"from_account_id" binding:"required"`
	ToUserID      int64 `json:"to_user_id" binding:"required"`
	ToAccountID   int64 `json:"to_account_id" binding:"required"`
	Amount        int64 `json:"amount"`
}

// Transfer POST /api/transfer moves funds from the caller's account to
// another user's account; the service enforces source ownership.
func (h *TransferHandler) Transfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, _ := middleware.PrincipalFrom(c)
	err := h.Svc.Transfer(c.Request.Context(), p.ID, application.TransferRequest{
		FromAccountID: req.FromAccountID,
		ToUserID:      req.ToUserID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
	})
	if err != nil {
		renderError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "transfer completed", nil)
}
