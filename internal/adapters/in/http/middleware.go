package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// BearerAuth requires a non-empty bearer token on every request it guards.
// The token is not verified against anything; presence is the whole contract.
func BearerAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return writeError(ctx, http.StatusUnauthorized, CodeUnauthorized, "missing or empty bearer token")
			}
			return next(ctx)
		}
	}
}
