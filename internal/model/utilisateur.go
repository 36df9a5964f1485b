package model

// Utilisateur represents an account as stored in the `Utilisateurs`
// table.  Accounts are provisioned externally; this service only reads
// them.  The json tags are omitted because these structs are used by the
// repository layer; handlers define separate response types.
//
// Fields:
//  ID         - primary key identifier of the user.
//  Nom        - surname.
//  Prenom     - first name.
//  Email      - unique email address used for login.
//  MotDePasse - bcrypt hashed password.
//  Type       - role name: eleve, professeur or admin.
type Utilisateur struct {
	ID         int64  // Utilisateurs.id
	Nom        string // Utilisateurs.nom
	Prenom     string // Utilisateurs.prenom
	Email      string // Utilisateurs.email
	MotDePasse string // Utilisateurs.mot_de_passe
	Type       string // Utilisateurs.type_utilisateur
}
