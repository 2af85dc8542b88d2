package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sbworks/marketplace/internal/core/domain"
)

// RBAC enforces usertype-based access control. It must run after Auth.
func RBAC(allowed ...domain.Usertype) echo.MiddlewareFunc {
	set := make(map[domain.Usertype]struct{}, len(allowed))
	for _, u := range allowed {
		set[u] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, _ := c.Get(SessionKey).(domain.Session)
			if _, ok := set[session.Usertype]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
