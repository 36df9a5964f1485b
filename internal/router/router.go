// Package router defines how HTTP routes are registered for the API.
package router

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/gestion-scolaire/api-notes/internal/config"
	"github.com/gestion-scolaire/api-notes/internal/handler"
	"github.com/gestion-scolaire/api-notes/internal/middleware"
	"github.com/gestion-scolaire/api-notes/internal/token"
)

// Deps groups everything route registration needs.
type Deps struct {
	Auth      *handler.AuthHandler
	Notes     *handler.NotesHandler
	Health    *handler.HealthHandler
	Codec     *token.Codec
	RateLimit config.RateLimitConfig
	Redis     *redis.Client
}

// Register wires the error handler, global middleware and every route on
// the provided Echo instance.
func Register(e *echo.Echo, d Deps) {
	e.HTTPErrorHandler = errorHandler
	e.Use(middleware.CORS())

	// The limiter runs per route, after Auth on protected routes, so its
	// bucket key can include the authenticated user id.
	rl := middleware.NewTokenBucket(d.RateLimit, d.Redis)

	e.GET("/", handler.Index, rl)
	e.GET("/healthz", d.Health.Health, rl)
	e.POST("/login", d.Auth.Login, rl)

	// Every grade route requires a valid token; write and class routes
	// additionally require a teaching or admin role.
	auth := middleware.Auth(d.Codec)
	staff := middleware.RequireRole(token.RoleProfesseur, token.RoleAdmin)

	e.GET("/eleve_notes", d.Notes.StudentGrades, auth, rl,
		middleware.RequireRole(token.RoleEleve, token.RoleProfesseur, token.RoleAdmin))
	e.GET("/classe_notes", d.Notes.ClassGrades, auth, rl, staff)
	e.POST("/ajouter_note", d.Notes.AddNote, auth, rl, staff)
	e.PUT("/modifier_note", d.Notes.ModifyNote, auth, rl, staff)
}

// errorHandler converts framework-level failures (unknown route, wrong
// method, panics surfaced as HTTPError) into the standard envelope so
// clients never see Echo's default body.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	message := "Internal server error."

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch code {
		case http.StatusNotFound:
			message = "Route not found."
		case http.StatusMethodNotAllowed:
			message = "Method not allowed."
		default:
			if s, ok := he.Message.(string); ok {
				message = s
			}
		}
	}
	_ = c.JSON(code, echo.Map{"success": false, "message": message})
}
