package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gestion-scolaire/api-notes/internal/service"
)

// dbTimeout bounds every request's database work.
const dbTimeout = 5 * time.Second

// errMissingClaims covers the case where a route was registered without
// the auth middleware in front of it.
var errMissingClaims = &service.Error{
	Status:  http.StatusUnauthorized,
	Message: "Access denied. Token not provided.",
}

func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// fail writes the error envelope for a service failure.  Service errors
// carry their own status and client-safe message; anything else is logged
// and reported as a generic 500 so internals never reach the client.
func fail(c echo.Context, err error) error {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		return c.JSON(svcErr.Status, echo.Map{
			"success": false,
			"message": svcErr.Message,
		})
	}
	log.Printf("handler: %s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"success": false,
		"message": "Internal server error.",
	})
}
