package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/gestion-scolaire/api-notes/internal/model"
)

// UtilisateurRepo reads accounts from the Utilisateurs table.  Accounts
// are provisioned externally, so there is no Create or Update here.
type UtilisateurRepo struct{ DB *sql.DB }

func NewUtilisateurRepo(db *sql.DB) *UtilisateurRepo { return &UtilisateurRepo{DB: db} }

// GetByEmail fetches a user by normalized email.
func (r *UtilisateurRepo) GetByEmail(ctx context.Context, email string) (model.Utilisateur, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.Utilisateur
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, nom, prenom, email, mot_de_passe, type_utilisateur FROM Utilisateurs WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Nom, &u.Prenom, &u.Email, &u.MotDePasse, &u.Type)
	return u, err
}

// EleveExists reports whether id references an existing user with the
// eleve role.  Grade writes must target students only.
func (r *UtilisateurRepo) EleveExists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM Utilisateurs WHERE id=? AND type_utilisateur='eleve' LIMIT 1",
		id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
