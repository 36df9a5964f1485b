package repository

import (
	"context"
	"database/sql"

	"github.com/gestion-scolaire/api-notes/internal/model"
)

// MatiereRepo reads subjects.  Subject ownership (the one teacher allowed
// to grade it) is carried by the id_professeur column.
type MatiereRepo struct{ DB *sql.DB }

func NewMatiereRepo(db *sql.DB) *MatiereRepo { return &MatiereRepo{DB: db} }

// GetByID fetches a subject by id.  sql.ErrNoRows when absent.
func (r *MatiereRepo) GetByID(ctx context.Context, id int64) (model.Matiere, error) {
	var m model.Matiere
	var desc sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, nom, description, id_professeur FROM Matiere WHERE id=? LIMIT 1",
		id).Scan(&m.ID, &m.Nom, &desc, &m.IDProfesseur)
	if err != nil {
		return m, err
	}
	m.Description = desc.String
	return m, nil
}
