package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bankhub/banking-api/internal/application"
	"github.com/bankhub/banking-api/internal/domain/entity"
	"github.com/bankhub/banking-api/internal/interface/middleware"
	"github.com/bankhub/banking-api/pkg/response"
	"github.com/bankhub/banking-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

// Create POST /api/user (admin key only). Role is optional and
// defaults to user.
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	role, _ := entity.ParseRole(req.Role)
	u, accounts, err := h.Svc.CreateUser(c.Request.Context(), req.Username, req.Password, role)
	if err != nil {
		renderError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toUserView(u, accounts), "user created", nil)
}

// List GET /api/user/list returns id and username for every user.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		renderError(c, h.Logger, err)
		return
	}
	out := make([]UserSummaryView, 0, len(users))
	for _, u := range users {
		out = append(out, UserSummaryView{ID: u.ID, Username: u.Username})
	}
	response.Success(c, http.StatusOK, out, "users", nil)
}

// Me GET /api/user/me returns the caller's own profile with accounts.
func (h *UserHandler) Me(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	u, accounts, err := h.Svc.GetUser(c.Request.Context(), p.ID)
	if err != nil {
		renderError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u, accounts), "profile", nil)
}
