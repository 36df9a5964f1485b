package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/gestion-scolaire/api-notes/internal/model"
	"github.com/gestion-scolaire/api-notes/internal/token"
	"github.com/gestion-scolaire/api-notes/internal/utils"
)

// UtilisateurStore is the account access the services need.
type UtilisateurStore interface {
	GetByEmail(ctx context.Context, email string) (model.Utilisateur, error)
	EleveExists(ctx context.Context, id int64) (bool, error)
}

// AuthService verifies credentials and mints session tokens.
type AuthService struct {
	users UtilisateurStore
	codec *token.Codec
}

func NewAuthService(users UtilisateurStore, codec *token.Codec) *AuthService {
	return &AuthService{users: users, codec: codec}
}

// LoginResult is the user summary plus a fresh token.
type LoginResult struct {
	Claims token.Claims
	Token  string
}

// Login looks the user up by email and compares the password against the
// stored bcrypt hash.  Unknown email and wrong password return the same
// message so the response does not reveal which part failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, badRequest("Email and password are required.")
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, unauthorized("Invalid credentials.")
		}
		return nil, err
	}
	if !utils.VerifyPassword(u.MotDePasse, password) {
		return nil, unauthorized("Invalid credentials.")
	}
	claims := token.Claims{
		ID:     u.ID,
		Nom:    u.Nom,
		Prenom: u.Prenom,
		Email:  u.Email,
		Type:   u.Type,
	}
	tok, err := s.codec.Issue(claims)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Claims: claims, Token: tok}, nil
}
