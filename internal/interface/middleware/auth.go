package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bankhub/banking-api/internal/domain/entity"
	"github.com/bankhub/banking-api/pkg/response"
)

// AdminKeyHeader carries the static secret granting the synthetic admin
// identity. It is only honored for user provisioning routes.
const AdminKeyHeader = "X-SECURITY-ADMIN-KEY"

// AdminID is the sentinel id of the synthetic admin principal; it is never
// looked up in the user directory.
const AdminID int64 = -1

const ctxPrincipalKey = "principal"

// Principal is the resolved caller identity, carried explicitly through
// request handling. Exactly one of two shapes occurs: the synthetic admin
// (ID = AdminID) or a real user with role user.
type Principal struct {
	ID       int64
	Username string
	Role     entity.Role
}

// Authenticator resolves username+password credentials to a user identity.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*entity.User, error)
}

// Authenticate resolves the caller identity once at the transport boundary
// and stores it in the Gin context. Two paths are admissible: the admin-key
// header and HTTP basic credentials. A request matching neither proceeds
// unauthenticated; RequireRole rejects it at the route.
func Authenticate(adminKey string, users Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := c.GetHeader(AdminKeyHeader); key != "" && adminKey != "" {
			if subtle.ConstantTimeCompare([]byte(key), []byte(adminKey)) == 1 {
				c.Set(ctxPrincipalKey, Principal{ID: AdminID, Username: "admin", Role: entity.RoleAdmin})
				c.Next()
				return
			}
		}
		if username, password, ok := c.Request.BasicAuth(); ok {
			u, err := users.Authenticate(c.Request.Context(), username, password)
			if err != nil {
				response.AbortError(c, http.StatusUnauthorized, "invalid credentials", nil)
				return
			}
			// credential-path callers always act with role user,
			// regardless of what is stored on the record
			c.Set(ctxPrincipalKey, Principal{ID: u.ID, Username: u.Username, Role: entity.RoleUser})
		}
		c.Next()
	}
}

// RequireRole enforces the static per-route authorization table: missing
// principal is unauthenticated (401), a principal with the wrong role is
// forbidden (403).
func RequireRole(role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			response.AbortError(c, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		if p.Role != role {
			response.AbortError(c, http.StatusForbidden, "forbidden", nil)
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the caller identity resolved by Authenticate.
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(ctxPrincipalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
