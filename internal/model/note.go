package model

// Note is a grade row from the `Notes` table.  Values are constrained to
// the [0, 20] range by the service layer before any write.  Notes are
// created and updated by teachers (or admins) and never deleted.
//
// Fields:
//  ID          - primary key identifier.
//  IDEleve     - graded student.
//  IDMatiere   - subject the grade belongs to.
//  Valeur      - grade value, 0 to 20 inclusive.
//  Commentaire - optional teacher comment (nullable).
//  Date        - grading date as stored (YYYY-MM-DD).
type Note struct {
	ID          int64   // Notes.id
	IDEleve     int64   // Notes.id_eleve
	IDMatiere   int64   // Notes.id_matiere
	Valeur      float64 // Notes.valeur
	Commentaire *string // Notes.commentaire (nullable)
	Date        string  // Notes.date
}
