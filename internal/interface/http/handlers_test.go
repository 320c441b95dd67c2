package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankhub/banking-api/internal/application"
	"github.com/bankhub/banking-api/internal/domain/entity"
	"github.com/bankhub/banking-api/internal/infrastructure/memory"
	"github.com/bankhub/banking-api/internal/interface/middleware"
	"github.com/bankhub/banking-api/pkg/validation"
)

const adminKey = "test-admin-key"

type env struct {
	router *gin.Engine
	store  *memory.Store
	users  *application.UserService
}

// newEnv wires the full request path over the in-memory store: the
// access gate, role checks per route, and the real services. Rate
// limiting is the only middleware left out.
func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := memory.NewStore()
	repos := store.Repositories()
	uow := store.UnitOfWork()
	accountSvc := application.NewAccountService(repos, uow, logger)
	userSvc := application.NewUserService(repos, uow, accountSvc, logger)

	userHandler := NewUserHandler(userSvc, logger)
	accountHandler := NewAccountHandler(accountSvc, logger)
	transferHandler := NewTransferHandler(accountSvc, logger)

	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.Authenticate(adminKey, userSvc))

	api.POST("/user", middleware.RequireRole(entity.RoleAdmin), userHandler.Create)
	api.GET("/user/list", middleware.RequireRole(entity.RoleUser), userHandler.List)
	api.GET("/user/me", middleware.RequireRole(entity.RoleUser), userHandler.Me)

	acc := api.Group("/account", middleware.RequireRole(entity.RoleUser))
	acc.GET("/:id", accountHandler.Get)
	acc.POST("/deposit/:id", accountHandler.Deposit)
	acc.POST("/withdraw/:id", accountHandler.Withdraw)

	api.POST("/transfer", middleware.RequireRole(entity.RoleUser), transferHandler.Transfer)

	return &env{router: r, store: store, users: userSvc}
}

type creds struct {
	username string
	password string
	admin    bool
}

func asAdmin() creds               { return creds{admin: true} }
func asUser(name, pw string) creds { return creds{username: name, password: pw} }

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func (e *env) do(t *testing.T, method, path string, body any, c creds) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.admin {
		req.Header.Set(middleware.AdminKeyHeader, adminKey)
	} else if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var out envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

// register provisions a user through the admin route and returns its view.
func (e *env) register(t *testing.T, username, password string) UserView {
	t.Helper()
	w, env := e.do(t, http.MethodPost, "/api/user", gin.H{"username": username, "password": password}, asAdmin())
	require.Equal(t, http.StatusCreated, w.Code, "register %s: %s", username, w.Body.String())
	var view UserView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	return view
}

func (v UserView) account(t *testing.T, currency string) AccountView {
	t.Helper()
	for _, a := range v.Accounts {
		if a.Currency == currency {
			return a
		}
	}
	t.Fatalf("no %s account", currency)
	return AccountView{}
}

func TestCreateUserHappyPath(t *testing.T) {
	e := newEnv(t)
	view := e.register(t, "alice", "password123")

	assert.Equal(t, "alice", view.Username)
	require.Len(t, view.Accounts, 3)
	for _, a := range view.Accounts {
		assert.Equal(t, int64(1), a.Amount)
	}
	assert.ElementsMatch(t,
		[]string{"USD", "EUR", "RUB"},
		[]string{view.Accounts[0].Currency, view.Accounts[1].Currency, view.Accounts[2].Currency})
}

func TestCreateUserAuthorization(t *testing.T) {
	e := newEnv(t)
	e.register(t, "alice", "password123")
	payload := gin.H{"username": "mallory", "password": "password123"}

	// no credentials
	w, _ := e.do(t, http.MethodPost, "/api/user", payload, creds{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// user credentials cannot provision users
	w, _ = e.do(t, http.MethodPost, "/api/user", payload, asUser("alice", "password123"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateUserDuplicate(t *testing.T) {
	e := newEnv(t)
	e.register(t, "carol", "password123")

	w, env := e.do(t, http.MethodPost, "/api/user", gin.H{"username": "carol", "password": "password123"}, asAdmin())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "user already exists", env.Message)

	// the listing is unchanged
	w, env = e.do(t, http.MethodGet, "/api/user/list", nil, asUser("carol", "password123"))
	require.Equal(t, http.StatusOK, w.Code)
	var list []UserSummaryView
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)
}

func TestCreateUserValidation(t *testing.T) {
	e := newEnv(t)

	w, env := e.do(t, http.MethodPost, "/api/user", gin.H{"username": "al", "password": "short"}, asAdmin())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid payload", env.Message)

	w, _ = e.do(t, http.MethodPost, "/api/user", gin.H{"username": "dave", "password": "password123", "role": "root"}, asAdmin())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDepositAndWithdraw(t *testing.T) {
	e := newEnv(t)
	alice := e.register(t, "alice", "password123")
	usd := alice.account(t, "USD")
	who := asUser("alice", "password123")

	w, env := e.do(t, http.MethodPost, fmt.Sprintf("/api/account/deposit/%d", usd.ID), gin.H{"amount": 100}, who)
	require.Equal(t, http.StatusOK, w.Code)
	var acc AccountView
	require.NoError(t, json.Unmarshal(env.Data, &acc))
	assert.Equal(t, int64(101), acc.Amount)

	w, env = e.do(t, http.MethodPost, fmt.Sprintf("/api/account/withdraw/%d", usd.ID), gin.H{"amount": 100}, who)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &acc))
	assert.Equal(t, int64(1), acc.Amount)

	w, env = e.do(t, http.MethodGet, fmt.Sprintf("/api/account/%d", usd.ID), nil, who)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &acc))
	assert.Equal(t, int64(1), acc.Amount)
}

func TestWithdrawInsufficient(t *testing.T) {
	e := newEnv(t)
	alice := e.register(t, "alice", "password123")
	eur := alice.account(t, "EUR")

	w, env := e.do(t, http.MethodPost, fmt.Sprintf("/api/account/withdraw/%d", eur.ID), gin.H{"amount": 2}, asUser("alice", "password123"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "cannot withdraw 2 EUR", env.Message)
}

func TestNegativeAmount(t *testing.T) {
	e := newEnv(t)
	alice := e.register(t, "alice", "password123")
	usd := alice.account(t, "USD")

	w, env := e.do(t, http.MethodPost, fmt.Sprintf("/api/account/deposit/%d", usd.ID), gin.H{"amount": -5}, asUser("alice", "password123"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "amount should be more than 0", env.Message)
}

func TestForeignAccountIsNotFound(t *testing.T) {
	e := newEnv(t)
	e.register(t, "alice", "password123")
	bob := e.register(t, "bob", "password123")
	bobUSD := bob.account(t, "USD")

	// alice probing bob's account id sees not-found, not forbidden
	w, env := e.do(t, http.MethodGet, fmt.Sprintf("/api/account/%d", bobUSD.ID), nil, asUser("alice", "password123"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "account not found", env.Message)

	w, _ = e.do(t, http.MethodPost, fmt.Sprintf("/api/account/deposit/%d", bobUSD.ID), gin.H{"amount": 5}, asUser("alice", "password123"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvalidAccountID(t *testing.T) {
	e := newEnv(t)
	e.register(t, "alice", "password123")

	w, env := e.do(t, http.MethodGet, "/api/account/abc", nil, asUser("alice", "password123"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid account id", env.Message)
}

func TestTransferBetweenUsers(t *testing.T) {
	e := newEnv(t)
	alice := e.register(t, "alice", "password123")
	bob := e.register(t, "bob", "password123")
	srcUSD := alice.account(t, "USD")
	dstUSD := bob.account(t, "USD")
	who := asUser("alice", "password123")

	_, _ = e.do(t, http.MethodPost, fmt.Sprintf("/api/account/deposit/%d", srcUSD.ID), gin.H{"amount": 100}, who)

	w, env := e.do(t, http.MethodPost, "/api/transfer", gin.H{
		"from_account_id": srcUSD.ID,
		"to_user_id":      bob.ID,
		"to_account_id":   dstUSD.ID,
		"amount":          40,
	}, who)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "transfer completed", env.Message)

	var acc AccountView
	w, env = e.do(t, http.MethodGet, fmt.Sprintf("/api/account/%d", srcUSD.ID), nil, who)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &acc))
	assert.Equal(t, int64(61), acc.Amount)

	w, env = e.do(t, http.MethodGet, fmt.Sprintf("/api/account/%d", dstUSD.ID), nil, asUser("bob", "password123"))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &acc))
	assert.Equal(t, int64(41), acc.Amount)
}

func TestTransferWrongCurrency(t *testing.T) {
	e := newEnv(t)
	alice := e.register(t, "alice", "password123")
	bob := e.register(t, "bob", "password123")

	w, env := e.do(t, http.MethodPost, "/api/transfer", gin.H{
		"from_account_id": alice.account(t, "USD").ID,
		"to_user_id":      bob.ID,
		"to_account_id":   bob.account(t, "EUR").ID,
		"amount":          1,
	}, asUser("alice", "password123"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "account currencies should be same", env.Message)
}

func TestTransferFromForeignAccount(t *testing.T) {
	e := newEnv(t)
	alice := e.register(t, "alice", "password123")
	bob := e.register(t, "bob", "password123")

	w, env := e.do(t, http.MethodPost, "/api/transfer", gin.H{
		"from_account_id": bob.account(t, "USD").ID,
		"to_user_id":      alice.ID,
		"to_account_id":   alice.account(t, "USD").ID,
		"amount":          1,
	}, asUser("alice", "password123"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "account not found", env.Message)
}

func TestTransferValidation(t *testing.T) {
	e := newEnv(t)
	e.register(t, "alice", "password123")

	w, env := e.do(t, http.MethodPost, "/api/transfer", gin.H{"amount": 1}, asUser("alice", "password123"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid payload", env.Message)
}

func TestUserListAndMe(t *testing.T) {
	e := newEnv(t)
	e.register(t, "alice", "password123")
	e.register(t, "bob", "password123")
	who := asUser("alice", "password123")

	w, env := e.do(t, http.MethodGet, "/api/user/list", nil, who)
	require.Equal(t, http.StatusOK, w.Code)
	var list []UserSummaryView
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 2)
	assert.Equal(t, "alice", list[0].Username)
	assert.Equal(t, "bob", list[1].Username)

	// the admin principal is synthetic and has no listing access
	w, _ = e.do(t, http.MethodGet, "/api/user/list", nil, asAdmin())
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = e.do(t, http.MethodGet, "/api/user/me", nil, who)
	require.Equal(t, http.StatusOK, w.Code)
	var me UserView
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "alice", me.Username)
	assert.Len(t, me.Accounts, 3)
}

func TestAccountRoutesRequireAuthentication(t *testing.T) {
	e := newEnv(t)
	alice := e.register(t, "alice", "password123")
	usd := alice.account(t, "USD")

	w, _ := e.do(t, http.MethodGet, fmt.Sprintf("/api/account/%d", usd.ID), nil, creds{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = e.do(t, http.MethodGet, fmt.Sprintf("/api/account/%d", usd.ID), nil, asAdmin())
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = e.do(t, http.MethodGet, fmt.Sprintf("/api/account/%d", usd.ID), nil, asUser("alice", "wrongpassword"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
