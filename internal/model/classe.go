package model

// Classe represents a school class from the `Classes` table.  Students
// are attached to classes through the Eleves_Classes join table.
//
// Fields:
//  ID  - primary key identifier.
//  Nom - display name of the class.
type Classe struct {
	ID  int64  // Classes.id
	Nom string // Classes.nom
}

// EleveClasse maps a student to a class (`Eleves_Classes` table).  The
// relation is many-to-many: a student may be enrolled in several classes.
type EleveClasse struct {
	IDEleve  int64 // Eleves_Classes.id_eleve
	IDClasse int64 // Eleves_Classes.id_classe
}
