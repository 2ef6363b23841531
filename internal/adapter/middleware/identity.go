package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"p2p-lending-ledger/pkg/id"
	"p2p-lending-ledger/pkg/logger"
)

const (
	HeaderUserID    = "X-User-Id"
	HeaderUserRole  = "X-User-Role"
	HeaderRequestID = "X-Request-Id"
	HeaderRequestAt = "X-Request-At"

	ctxUserID = "identity.user_id"
	ctxRole   = "identity.role"
)

// Role is the caller role asserted by the gateway.
type Role string

const (
	RoleBorrower Role = "borrower"
	RoleLender   Role = "lender"
	RoleReviewer Role = "reviewer"
)

func parseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleBorrower, RoleLender, RoleReviewer:
		return r, true
	}
	return "", false
}

// Identity re-validates the caller headers set by the gateway and stores
// them on the echo context.
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header
			userID := strings.TrimSpace(h.Get(HeaderUserID))
			if userID == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing " + HeaderUserID})
			}
			if !reHex32.MatchString(userID) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid " + HeaderUserID})
			}
			role, ok := parseRole(h.Get(HeaderUserRole))
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid " + HeaderUserRole})
			}
			c.Set(ctxUserID, userID)
			c.Set(ctxRole, role)
			return next(c)
		}
	}
}

// RequireRole must run after Identity.
func RequireRole(roles ...Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := RoleOf(c)
			for _, r := range roles {
				if r == got {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "role not allowed"})
		}
	}
}

func UserID(c echo.Context) string {
	v, _ := c.Get(ctxUserID).(string)
	return v
}

func RoleOf(c echo.Context) Role {
	v, _ := c.Get(ctxRole).(Role)
	return v
}

// RequestContext tags the request context with the caller's X-Request-Id
// (or a fresh one) and logs every completed request.
func RequestContext(log *zap.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			rid := strings.ToLower(strings.TrimSpace(req.Header.Get(HeaderRequestID)))
			if !validReqID(rid) {
				rid = id.NewID32()
			}
			c.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), rid)))
			c.Response().Header().Set(HeaderRequestID, rid)

			start := nowUTC()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			log.Info("request",
				zap.String("request_id", rid),
				zap.String("method", req.Method),
				zap.String("route", c.Path()),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", nowUTC().Sub(start)),
			)
			return nil
		}
	}
}
