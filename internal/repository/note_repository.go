package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/gestion-scolaire/api-notes/internal/model"
)

// NoteRepo provides reads and writes over the Notes table along with the
// joined detail shapes the API returns.  All access is per-statement;
// each write touches exactly one row so no transactions are needed.
type NoteRepo struct {
	db *sql.DB
}

// NewNoteRepo returns a new NoteRepo bound to the given database.
func NewNoteRepo(db *sql.DB) *NoteRepo { return &NoteRepo{db: db} }

// NoteDetail is a grade enriched with its subject and the grading
// teacher, as returned by the student-grades endpoint.  The teacher join
// is a LEFT JOIN: a subject may reference a removed account, in which
// case both name fields are null.
type NoteDetail struct {
	ID          int64   `json:"id"`
	Valeur      float64 `json:"valeur"`
	Commentaire *string `json:"commentaire"`
	Date        string  `json:"date"`
	Matiere     struct {
		Nom         string `json:"nom"`
		Description string `json:"description"`
	} `json:"matiere"`
	Professeur struct {
		Nom    *string `json:"nom"`
		Prenom *string `json:"prenom"`
	} `json:"professeur"`
}

// ClasseNote is the lighter grade shape used inside class listings.
type ClasseNote struct {
	ID          int64   `json:"id"`
	Valeur      float64 `json:"valeur"`
	Commentaire *string `json:"commentaire"`
	Date        string  `json:"date"`
	Matiere     struct {
		ID  int64  `json:"id"`
		Nom string `json:"nom"`
	} `json:"matiere"`
}

// NoteRecord is the joined shape returned after a create or update.  The
// foreign keys are kept for audit events but excluded from the response.
type NoteRecord struct {
	ID          int64   `json:"id"`
	IDEleve     int64   `json:"-"`
	IDMatiere   int64   `json:"-"`
	Valeur      float64 `json:"valeur"`
	Commentaire *string `json:"commentaire"`
	Date        string  `json:"date"`
	Eleve       struct {
		Nom    string `json:"nom"`
		Prenom string `json:"prenom"`
	} `json:"eleve"`
	Matiere struct {
		Nom string `json:"nom"`
	} `json:"matiere"`
}

// ListDetailsForEleve returns all grades of a student, most recent first,
// each enriched with subject and grading teacher information.
func (r *NoteRepo) ListDetailsForEleve(ctx context.Context, idEleve int64) ([]NoteDetail, error) {
	const q = `SELECT n.id, n.valeur, n.commentaire, n.date,
	                  m.nom, m.description,
	                  u.nom, u.prenom
	           FROM Notes n
	           JOIN Matiere m ON n.id_matiere = m.id
	           LEFT JOIN Utilisateurs u ON m.id_professeur = u.id
	           WHERE n.id_eleve = ?
	           ORDER BY n.date DESC`
	rows, err := r.db.QueryContext(ctx, q, idEleve)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]NoteDetail, 0)
	for rows.Next() {
		var d NoteDetail
		var commentaire, desc, profNom, profPrenom sql.NullString
		if err := rows.Scan(&d.ID, &d.Valeur, &commentaire, &d.Date,
			&d.Matiere.Nom, &desc, &profNom, &profPrenom); err != nil {
			return nil, err
		}
		if commentaire.Valid {
			c := commentaire.String
			d.Commentaire = &c
		}
		d.Matiere.Description = desc.String
		if profNom.Valid {
			n := profNom.String
			d.Professeur.Nom = &n
		}
		if profPrenom.Valid {
			p := profPrenom.String
			d.Professeur.Prenom = &p
		}
		notes = append(notes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

// ListClasseNotes returns a student's grades with subject id and name
// only, for class roster listings.  Ordered by date descending for
// deterministic output.
func (r *NoteRepo) ListClasseNotes(ctx context.Context, idEleve int64) ([]ClasseNote, error) {
	const q = `SELECT n.id, n.valeur, n.commentaire, n.date, m.id, m.nom
	           FROM Notes n
	           JOIN Matiere m ON n.id_matiere = m.id
	           WHERE n.id_eleve = ?
	           ORDER BY n.date DESC`
	rows, err := r.db.QueryContext(ctx, q, idEleve)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]ClasseNote, 0)
	for rows.Next() {
		var n ClasseNote
		var commentaire sql.NullString
		if err := rows.Scan(&n.ID, &n.Valeur, &commentaire, &n.Date,
			&n.Matiere.ID, &n.Matiere.Nom); err != nil {
			return nil, err
		}
		if commentaire.Valid {
			c := commentaire.String
			n.Commentaire = &c
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

// Insert creates a grade row and returns its generated id.
func (r *NoteRepo) Insert(ctx context.Context, n model.Note) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO Notes (id_eleve, id_matiere, valeur, commentaire, date) VALUES (?,?,?,?,?)",
		n.IDEleve, n.IDMatiere, n.Valeur, n.Commentaire, n.Date)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateFields updates only the provided fields of a grade.  Nil
// arguments leave the corresponding column untouched.  Callers must
// ensure at least one field is set.
func (r *NoteRepo) UpdateFields(ctx context.Context, id int64, valeur *float64, commentaire, date *string) error {
	sets := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)
	if valeur != nil {
		sets = append(sets, "valeur = ?")
		args = append(args, *valeur)
	}
	if commentaire != nil {
		sets = append(sets, "commentaire = ?")
		args = append(args, *commentaire)
	}
	if date != nil {
		sets = append(sets, "date = ?")
		args = append(args, *date)
	}
	args = append(args, id)
	_, err := r.db.ExecContext(ctx,
		"UPDATE Notes SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	return err
}

// GetWithProfesseur fetches a grade together with the id of the teacher
// owning its subject, for ownership checks.  sql.ErrNoRows when absent.
func (r *NoteRepo) GetWithProfesseur(ctx context.Context, id int64) (model.Note, int64, error) {
	const q = `SELECT n.id, n.id_eleve, n.id_matiere, n.valeur, n.commentaire, n.date, m.id_professeur
	           FROM Notes n
	           JOIN Matiere m ON n.id_matiere = m.id
	           WHERE n.id = ?`
	var n model.Note
	var commentaire sql.NullString
	var idProf int64
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&n.ID, &n.IDEleve, &n.IDMatiere, &n.Valeur, &commentaire, &n.Date, &idProf)
	if err != nil {
		return n, 0, err
	}
	if commentaire.Valid {
		c := commentaire.String
		n.Commentaire = &c
	}
	return n, idProf, nil
}

// GetRecord fetches the joined shape of a grade for write responses.
func (r *NoteRepo) GetRecord(ctx context.Context, id int64) (NoteRecord, error) {
	const q = `SELECT n.id, n.id_eleve, n.id_matiere, n.valeur, n.commentaire, n.date,
	                  u.nom, u.prenom, m.nom
	           FROM Notes n
	           JOIN Utilisateurs u ON n.id_eleve = u.id
	           JOIN Matiere m ON n.id_matiere = m.id
	           WHERE n.id = ?`
	var rec NoteRecord
	var commentaire sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&rec.ID, &rec.IDEleve, &rec.IDMatiere, &rec.Valeur, &commentaire, &rec.Date,
		&rec.Eleve.Nom, &rec.Eleve.Prenom, &rec.Matiere.Nom)
	if err != nil {
		return rec, err
	}
	if commentaire.Valid {
		c := commentaire.String
		rec.Commentaire = &c
	}
	return rec, nil
}

// ProfesseurTeachesEleve reports whether the teacher has at least one
// grade in a subject they own for this student.  The check is based on
// grading history (joined through enrollments), not on class rosters: a
// teacher who never graded a student cannot see that student's grades.
func (r *NoteRepo) ProfesseurTeachesEleve(ctx context.Context, idProf, idEleve int64) (bool, error) {
	const q = `SELECT 1
	           FROM Matiere m
	           JOIN Notes n ON m.id = n.id_matiere
	           JOIN Eleves_Classes ec ON n.id_eleve = ec.id_eleve
	           WHERE m.id_professeur = ? AND ec.id_eleve = ?
	           LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, idProf, idEleve).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ProfesseurTeachesClasse reports whether one of the teacher's subjects
// has at least one grade for a student enrolled in the class.  Same
// history-based semantics as ProfesseurTeachesEleve.
func (r *NoteRepo) ProfesseurTeachesClasse(ctx context.Context, idProf, idClasse int64) (bool, error) {
	const q = `SELECT 1
	           FROM Matiere m
	           JOIN Notes n ON m.id = n.id_matiere
	           JOIN Eleves_Classes ec ON n.id_eleve = ec.id_eleve
	           WHERE m.id_professeur = ? AND ec.id_classe = ?
	           LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, idProf, idClasse).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
