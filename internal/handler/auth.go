package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestion-scolaire/api-notes/internal/service"
)

type loginService interface {
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
}

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	auth loginService
}

func NewAuthHandler(auth loginService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /login.  The response repeats the user summary next
// to the token because clients render the name without decoding it.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "Email and password are required.",
		})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	res, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":          true,
		"message":          "Successful login.",
		"id":               res.Claims.ID,
		"nom":              res.Claims.Nom,
		"prenom":           res.Claims.Prenom,
		"email":            res.Claims.Email,
		"type_utilisateur": res.Claims.Type,
		"token":            res.Token,
	})
}
