// Package middleware contains the reusable HTTP middleware applied in
// front of the handlers: token authentication, role gating, CORS and
// rate limiting.
package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gestion-scolaire/api-notes/internal/token"
)

// claimsKey is the echo context key under which verified claims are stored.
const claimsKey = "claims"

// Auth returns an Echo middleware that validates a Bearer session token
// and injects the verified claims into the request context.  Protected
// handlers read them back via ClaimsFrom.  Verification failures map to
// 401 with the codec's message; missing tokens get the legacy wording
// clients already match on.
func Auth(codec *token.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": "Access denied. Token not provided.",
				})
			}
			raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

			claims, err := codec.Verify(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"success": false,
					"message": err.Error(),
				})
			}

			c.Set(claimsKey, claims)
			// String form of the user id feeds the rate limiter key.
			c.Set("user_id", strconv.FormatInt(claims.ID, 10))
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims stored by Auth.  The boolean is false
// when the request did not pass through the Auth middleware.
func ClaimsFrom(c echo.Context) (token.Claims, bool) {
	claims, ok := c.Get(claimsKey).(token.Claims)
	return claims, ok
}
