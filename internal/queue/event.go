// Package queue defines the grade audit events exchanged over the message
// broker, with a best-effort publisher and a background consumer that
// materializes the audit log.
package queue

// NoteRecordedEvent is published whenever a grade is created or updated.
// It carries enough information for downstream consumers to build an
// audit trail without querying the primary database.
type NoteRecordedEvent struct {
	NoteID       int64   `json:"note_id"`
	IDEleve      int64   `json:"id_eleve"`
	IDMatiere    int64   `json:"id_matiere"`
	IDProfesseur int64   `json:"id_professeur"` // acting user, may be an admin
	Action       string  `json:"action"`        // "created" or "updated"
	Valeur       float64 `json:"valeur"`
	Date         string  `json:"date"`
	RecordedAt   string  `json:"recorded_at"`
}

// Actions carried by NoteRecordedEvent.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)
