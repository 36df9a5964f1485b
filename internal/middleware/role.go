package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole returns a middleware function that enforces that the
// authenticated user has one of the specified roles.  Roles correspond
// to the type_utilisateur claim (eleve, professeur, admin).  It assumes
// Auth already ran and stored the claims in the context; requests whose
// role is not in the allowed set are rejected with 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	// Build a set of allowed roles for constant-time lookups.
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok || !allowed[claims.Type] {
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false,
					"message": "Insufficient permissions",
				})
			}
			return next(c)
		}
	}
}
