package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gestion-scolaire/api-notes/internal/middleware"
	"github.com/gestion-scolaire/api-notes/internal/queue"
	"github.com/gestion-scolaire/api-notes/internal/repository"
	"github.com/gestion-scolaire/api-notes/internal/service"
	"github.com/gestion-scolaire/api-notes/internal/token"
)

type gradeService interface {
	StudentGrades(ctx context.Context, claims token.Claims, idEleveParam string) (*service.StudentGradesResult, error)
	ClassGrades(ctx context.Context, claims token.Claims, idParam string) (*service.ClassGradesResult, error)
	AddGrade(ctx context.Context, claims token.Claims, in service.AddNoteInput) (*repository.NoteRecord, error)
	ModifyGrade(ctx context.Context, claims token.Claims, in service.ModifyNoteInput) (*repository.NoteRecord, error)
}

// auditPublisher matches queue.PublishNoteRecorded so tests can capture
// events without a broker.
type auditPublisher func(ctx context.Context, event queue.NoteRecordedEvent) error

// NotesHandler exposes the grade read and write endpoints.
type NotesHandler struct {
	grades  gradeService
	publish auditPublisher
}

// NewNotesHandler wires the handler; a nil publish disables audit events.
func NewNotesHandler(grades gradeService, publish auditPublisher) *NotesHandler {
	if publish == nil {
		publish = func(context.Context, queue.NoteRecordedEvent) error { return nil }
	}
	return &NotesHandler{grades: grades, publish: publish}
}

// StudentGrades handles GET /eleve_notes.
func (h *NotesHandler) StudentGrades(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return fail(c, errMissingClaims)
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	res, err := h.grades.StudentGrades(ctx, claims, c.QueryParam("id_eleve"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"moyenne":      res.Moyenne,
		"nombre_notes": res.NombreNotes,
		"notes":        res.Notes,
	})
}

// ClassGrades handles GET /classe_notes.
func (h *NotesHandler) ClassGrades(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return fail(c, errMissingClaims)
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	res, err := h.grades.ClassGrades(ctx, claims, c.QueryParam("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":        true,
		"classe":         res.Classe,
		"moyenne_classe": res.MoyenneClasse,
		"nombre_eleves":  res.NombreEleves,
		"nombre_notes":   res.NombreNotes,
		"eleves":         res.Eleves,
	})
}

type addNoteRequest struct {
	IDEleve     *int64   `json:"id_eleve"`
	IDMatiere   *int64   `json:"id_matiere"`
	Valeur      *float64 `json:"valeur"`
	Commentaire *string  `json:"commentaire"`
	Date        string   `json:"date"`
}

// AddNote handles POST /ajouter_note.
func (h *NotesHandler) AddNote(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return fail(c, errMissingClaims)
	}
	var req addNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Champs requis: id_eleve, id_matiere, valeur, date",
		})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	rec, err := h.grades.AddGrade(ctx, claims, service.AddNoteInput{
		IDEleve:     req.IDEleve,
		IDMatiere:   req.IDMatiere,
		Valeur:      req.Valeur,
		Commentaire: req.Commentaire,
		Date:        req.Date,
	})
	if err != nil {
		return fail(c, err)
	}
	h.audit(claims, rec, queue.ActionCreated)
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Note added successfully.",
		"note":    rec,
	})
}

type modifyNoteRequest struct {
	ID          *int64   `json:"id"`
	Valeur      *float64 `json:"valeur"`
	Commentaire *string  `json:"commentaire"`
	Date        *string  `json:"date"`
}

// ModifyNote handles PUT /modifier_note.
func (h *NotesHandler) ModifyNote(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return fail(c, errMissingClaims)
	}
	var req modifyNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "ID de note requis",
		})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	rec, err := h.grades.ModifyGrade(ctx, claims, service.ModifyNoteInput{
		ID:          req.ID,
		Valeur:      req.Valeur,
		Commentaire: req.Commentaire,
		Date:        req.Date,
	})
	if err != nil {
		return fail(c, err)
	}
	h.audit(claims, rec, queue.ActionUpdated)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Note updated successfully.",
		"note":    rec,
	})
}

// audit publishes a best-effort event after a successful write.  A fresh
// context is used so a broker stall cannot outlive the request budget by
// much, and publish errors are already logged by the publisher.
func (h *NotesHandler) audit(claims token.Claims, rec *repository.NoteRecord, action string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = h.publish(ctx, queue.NoteRecordedEvent{
		NoteID:       rec.ID,
		IDEleve:      rec.IDEleve,
		IDMatiere:    rec.IDMatiere,
		IDProfesseur: claims.ID,
		Action:       action,
		Valeur:       rec.Valeur,
		Date:         rec.Date,
		RecordedAt:   time.Now().UTC().Format(time.RFC3339),
	})
}
