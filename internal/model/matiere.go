package model

// Matiere represents a taught subject (`Matiere` table).  Each subject
// belongs to exactly one teacher, who is the only non-admin user allowed
// to grade it.
//
// Fields:
//  ID           - primary key identifier.
//  Nom          - subject name.
//  Description  - free-form description.
//  IDProfesseur - user ID of the owning teacher.
type Matiere struct {
	ID           int64  // Matiere.id
	Nom          string // Matiere.nom
	Description  string // Matiere.description
	IDProfesseur int64  // Matiere.id_professeur
}
