package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports process liveness and database reachability.
type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health handles GET /healthz.  The database check uses a short deadline
// so a stalled pool reports unhealthy instead of hanging the probe.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	if err := h.db.PingContext(ctx); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, echo.Map{
		"success": code == http.StatusOK,
		"status":  status,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Index handles GET /, a minimal self-describing route list.
func Index(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "API de gestion des notes",
		"routes": []string{
			"POST /login",
			"GET /eleve_notes",
			"GET /classe_notes",
			"POST /ajouter_note",
			"PUT /modifier_note",
			"GET /healthz",
		},
	})
}
