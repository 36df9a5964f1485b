package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/gestion-scolaire/api-notes/internal/model"
	"github.com/gestion-scolaire/api-notes/internal/repository"
	"github.com/gestion-scolaire/api-notes/internal/token"
	"github.com/gestion-scolaire/api-notes/internal/utils"
)

// ClasseStore is the class access the grade service needs.
type ClasseStore interface {
	GetByID(ctx context.Context, id int64) (model.Classe, error)
	ListEleves(ctx context.Context, idClasse int64) ([]repository.EleveRecord, error)
}

// MatiereStore is the subject access the grade service needs.
type MatiereStore interface {
	GetByID(ctx context.Context, id int64) (model.Matiere, error)
}

// NoteStore is the grade access the grade service needs.
type NoteStore interface {
	ListDetailsForEleve(ctx context.Context, idEleve int64) ([]repository.NoteDetail, error)
	ListClasseNotes(ctx context.Context, idEleve int64) ([]repository.ClasseNote, error)
	Insert(ctx context.Context, n model.Note) (int64, error)
	UpdateFields(ctx context.Context, id int64, valeur *float64, commentaire, date *string) error
	GetWithProfesseur(ctx context.Context, id int64) (model.Note, int64, error)
	GetRecord(ctx context.Context, id int64) (repository.NoteRecord, error)
	ProfesseurTeachesEleve(ctx context.Context, idProf, idEleve int64) (bool, error)
	ProfesseurTeachesClasse(ctx context.Context, idProf, idClasse int64) (bool, error)
}

// GradeService implements every grade read and write.  Role gating
// happens in middleware; the row-level ownership rules live here because
// they need relationship queries, not just the role.
type GradeService struct {
	users    UtilisateurStore
	classes  ClasseStore
	matieres MatiereStore
	notes    NoteStore
}

func NewGradeService(users UtilisateurStore, classes ClasseStore, matieres MatiereStore, notes NoteStore) *GradeService {
	return &GradeService{users: users, classes: classes, matieres: matieres, notes: notes}
}

// round2 rounds to two decimals, as grade averages are displayed.
func round2(v float64) float64 { return math.Round(v*100) / 100 }

// validValeur checks the grade scale, 0 to 20 inclusive.
func validValeur(v float64) bool { return v >= 0 && v <= 20 }

// StudentGradesResult is the response of the student-grades operation.
type StudentGradesResult struct {
	Moyenne     float64
	NombreNotes int
	Notes       []repository.NoteDetail
}

// StudentGrades resolves the effective target student and returns their
// grades with the average.  Students always read their own grades; a
// student naming a different id is a bad request (documented policy,
// the ownership joins below never run for them).  Teachers must have
// graded the student at least once in a subject they own; admins may
// read anyone.
func (s *GradeService) StudentGrades(ctx context.Context, claims token.Claims, idEleveParam string) (*StudentGradesResult, error) {
	var target int64
	switch claims.Type {
	case token.RoleEleve:
		if idEleveParam != "" {
			id, err := strconv.ParseInt(idEleveParam, 10, 64)
			if err != nil || id != claims.ID {
				return nil, badRequest("Un élève ne peut consulter que ses propres notes")
			}
		}
		target = claims.ID
	case token.RoleProfesseur, token.RoleAdmin:
		id, err := strconv.ParseInt(idEleveParam, 10, 64)
		if idEleveParam == "" || err != nil {
			return nil, badRequest("ID élève manquant ou permissions insuffisantes")
		}
		if claims.Type == token.RoleProfesseur {
			teaches, err := s.notes.ProfesseurTeachesEleve(ctx, claims.ID, id)
			if err != nil {
				return nil, err
			}
			if !teaches {
				return nil, forbidden("Vous n'enseignez pas à cet élève")
			}
		}
		target = id
	default:
		return nil, forbidden("Permissions insuffisantes")
	}

	notes, err := s.notes.ListDetailsForEleve(ctx, target)
	if err != nil {
		return nil, err
	}
	var sum float64
	for _, n := range notes {
		sum += n.Valeur
	}
	res := &StudentGradesResult{NombreNotes: len(notes), Notes: notes}
	if len(notes) > 0 {
		res.Moyenne = round2(sum / float64(len(notes)))
	}
	return res, nil
}

// ClasseInfo is the class summary included in class listings.
type ClasseInfo struct {
	ID  int64  `json:"id"`
	Nom string `json:"nom"`
}

// EleveNotes is one student's row in a class listing.
type EleveNotes struct {
	repository.EleveRecord
	Moyenne     float64                 `json:"moyenne"`
	NombreNotes int                     `json:"nombre_notes"`
	Notes       []repository.ClasseNote `json:"notes"`
}

// ClassGradesResult is the response of the class-grades operation.
type ClassGradesResult struct {
	Classe        ClasseInfo
	MoyenneClasse float64
	NombreEleves  int
	NombreNotes   int
	Eleves        []EleveNotes
}

// ClassGrades returns every enrolled student of a class with their grades
// and averages.  The class-wide average is computed over the flattened
// list of all grades, not as an average of the per-student averages.
func (s *GradeService) ClassGrades(ctx context.Context, claims token.Claims, idParam string) (*ClassGradesResult, error) {
	idClasse, err := strconv.ParseInt(idParam, 10, 64)
	if idParam == "" || err != nil {
		return nil, badRequest("ID de classe requis")
	}
	if claims.Type == token.RoleProfesseur {
		teaches, err := s.notes.ProfesseurTeachesClasse(ctx, claims.ID, idClasse)
		if err != nil {
			return nil, err
		}
		if !teaches {
			return nil, forbidden("Vous n'enseignez pas à cette classe")
		}
	}
	classe, err := s.classes.GetByID(ctx, idClasse)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("Classe non trouvée")
		}
		return nil, err
	}
	records, err := s.classes.ListEleves(ctx, idClasse)
	if err != nil {
		return nil, err
	}

	eleves := make([]EleveNotes, 0, len(records))
	var classSum float64
	classCount := 0
	for _, rec := range records {
		notes, err := s.notes.ListClasseNotes(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
		var sum float64
		for _, n := range notes {
			sum += n.Valeur
		}
		e := EleveNotes{EleveRecord: rec, NombreNotes: len(notes), Notes: notes}
		if len(notes) > 0 {
			e.Moyenne = round2(sum / float64(len(notes)))
		}
		classSum += sum
		classCount += len(notes)
		eleves = append(eleves, e)
	}

	res := &ClassGradesResult{
		Classe:       ClasseInfo{ID: classe.ID, Nom: classe.Nom},
		NombreEleves: len(eleves),
		NombreNotes:  classCount,
		Eleves:       eleves,
	}
	if classCount > 0 {
		res.MoyenneClasse = round2(classSum / float64(classCount))
	}
	return res, nil
}

// AddNoteInput carries the add-grade request body.  Pointer fields
// distinguish missing from zero.
type AddNoteInput struct {
	IDEleve     *int64
	IDMatiere   *int64
	Valeur      *float64
	Commentaire *string
	Date        string
}

// AddGrade validates and inserts a new grade, returning the fully joined
// created record.  Teachers may only grade subjects they own; a subject
// that does not exist looks the same to them as one they do not own.
func (s *GradeService) AddGrade(ctx context.Context, claims token.Claims, in AddNoteInput) (*repository.NoteRecord, error) {
	if in.IDEleve == nil || in.IDMatiere == nil || in.Valeur == nil || strings.TrimSpace(in.Date) == "" {
		return nil, badRequest("Champs requis: id_eleve, id_matiere, valeur, date")
	}
	if !validValeur(*in.Valeur) {
		return nil, badRequest("La note doit être entre 0 et 20")
	}

	matiere, err := s.matieres.GetByID(ctx, *in.IDMatiere)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if claims.Type == token.RoleProfesseur {
			return nil, forbidden("Vous n'enseignez pas cette matière")
		}
		return nil, notFound("Subject not found.")
	case err != nil:
		return nil, err
	case claims.Type == token.RoleProfesseur && matiere.IDProfesseur != claims.ID:
		return nil, forbidden("Vous n'enseignez pas cette matière")
	}

	exists, err := s.users.EleveExists(ctx, *in.IDEleve)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound("Student not found.")
	}

	note := model.Note{
		IDEleve:   *in.IDEleve,
		IDMatiere: *in.IDMatiere,
		Valeur:    *in.Valeur,
		Date:      utils.Sanitize(in.Date),
	}
	if in.Commentaire != nil {
		c := utils.Sanitize(*in.Commentaire)
		note.Commentaire = &c
	}
	id, err := s.notes.Insert(ctx, note)
	if err != nil {
		return nil, err
	}
	rec, err := s.notes.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ModifyNoteInput carries the modify-grade request body.
type ModifyNoteInput struct {
	ID          *int64
	Valeur      *float64
	Commentaire *string
	Date        *string
}

// ModifyGrade updates only the provided fields of an existing grade and
// returns the joined updated record.  Teachers may only modify grades of
// subjects they own; admins bypass the ownership check.
func (s *GradeService) ModifyGrade(ctx context.Context, claims token.Claims, in ModifyNoteInput) (*repository.NoteRecord, error) {
	if in.ID == nil {
		return nil, badRequest("ID de note requis")
	}
	if in.Valeur == nil && in.Commentaire == nil && in.Date == nil {
		return nil, badRequest("No fields to update. Provide at least one of: valeur, commentaire, date.")
	}
	if in.Valeur != nil && !validValeur(*in.Valeur) {
		return nil, badRequest("La note doit être entre 0 et 20")
	}

	_, idProf, err := s.notes.GetWithProfesseur(ctx, *in.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("Note not found.")
		}
		return nil, err
	}
	if claims.Type == token.RoleProfesseur && idProf != claims.ID {
		return nil, forbidden("Vous n'avez pas la permission de modifier cette note")
	}

	commentaire, date := in.Commentaire, in.Date
	if commentaire != nil {
		c := utils.Sanitize(*commentaire)
		commentaire = &c
	}
	if date != nil {
		d := utils.Sanitize(*date)
		date = &d
	}
	if err := s.notes.UpdateFields(ctx, *in.ID, in.Valeur, commentaire, date); err != nil {
		return nil, err
	}
	rec, err := s.notes.GetRecord(ctx, *in.ID)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
