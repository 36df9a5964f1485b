package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CORS opens the API to browser clients from any origin, answering
// preflight OPTIONS requests with 200 and no body.  The header set is
// the one the existing front-end was built against; echo's builtin CORS
// middleware is not used because it answers preflights with 204.
func CORS() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", "POST, GET, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Max-Age", "3600")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Access-Control-Allow-Headers, Authorization, X-Requested-With")
			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusOK)
			}
			return next(c)
		}
	}
}
