package repository

import (
	"context"
	"database/sql"

	"github.com/gestion-scolaire/api-notes/internal/model"
)

// ClasseRepo reads classes and their enrolled students.
type ClasseRepo struct{ DB *sql.DB }

func NewClasseRepo(db *sql.DB) *ClasseRepo { return &ClasseRepo{DB: db} }

// EleveRecord is a student summary as returned inside class listings.
type EleveRecord struct {
	ID     int64  `json:"id"`
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
	Email  string `json:"email"`
}

// GetByID fetches a class by id.  sql.ErrNoRows when the class is absent.
func (r *ClasseRepo) GetByID(ctx context.Context, id int64) (model.Classe, error) {
	var c model.Classe
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, nom FROM Classes WHERE id=? LIMIT 1", id).Scan(&c.ID, &c.Nom)
	return c, err
}

// ListEleves returns the students enrolled in a class, ordered by surname
// then first name.  An empty class yields an empty slice.
func (r *ClasseRepo) ListEleves(ctx context.Context, idClasse int64) ([]EleveRecord, error) {
	const q = `SELECT u.id, u.nom, u.prenom, u.email
	           FROM Utilisateurs u
	           JOIN Eleves_Classes ec ON u.id = ec.id_eleve
	           WHERE ec.id_classe = ?
	           ORDER BY u.nom, u.prenom`
	rows, err := r.DB.QueryContext(ctx, q, idClasse)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	eleves := make([]EleveRecord, 0)
	for rows.Next() {
		var e EleveRecord
		if err := rows.Scan(&e.ID, &e.Nom, &e.Prenom, &e.Email); err != nil {
			return nil, err
		}
		eleves = append(eleves, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return eleves, nil
}
