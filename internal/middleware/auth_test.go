package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gestion-scolaire/api-notes/internal/token"
)

func runWith(t *testing.T, mw echo.MiddlewareFunc, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/eleve_notes", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	h := mw(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec
}

func TestAuthMissingToken(t *testing.T) {
	codec := token.NewCodec("secret", 3600)
	for _, hdr := range []string{"", "Basic abc", "bearer lowercase-prefix"} {
		rec := runWith(t, Auth(codec), hdr)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status=%d, want 401", hdr, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Token not provided") {
			t.Fatalf("header %q: unexpected body %s", hdr, rec.Body.String())
		}
	}
}

func TestAuthInvalidToken(t *testing.T) {
	codec := token.NewCodec("secret", 3600)
	rec := runWith(t, Auth(codec), "Bearer not.a.token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid token signature") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthValidTokenInjectsClaims(t *testing.T) {
	codec := token.NewCodec("secret", 3600)
	tok, err := codec.Issue(token.Claims{ID: 5, Type: token.RoleEleve})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/eleve_notes", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got token.Claims
	h := Auth(codec)(func(c echo.Context) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			t.Fatal("claims missing from context")
		}
		got = claims
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK || got.ID != 5 {
		t.Fatalf("status=%d claims=%+v", rec.Code, got)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	run := func(claims *token.Claims, roles ...string) int {
		req := httptest.NewRequest(http.MethodGet, "/classe_notes", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if claims != nil {
			c.Set("claims", *claims)
		}
		h := RequireRole(roles...)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
		if err := h(c); err != nil {
			t.Fatalf("handler: %v", err)
		}
		return rec.Code
	}

	prof := token.Claims{ID: 9, Type: token.RoleProfesseur}
	eleve := token.Claims{ID: 5, Type: token.RoleEleve}

	if code := run(&prof, token.RoleProfesseur, token.RoleAdmin); code != http.StatusOK {
		t.Fatalf("allowed role: status=%d", code)
	}
	if code := run(&eleve, token.RoleProfesseur, token.RoleAdmin); code != http.StatusForbidden {
		t.Fatalf("disallowed role: status=%d", code)
	}
	if code := run(nil, token.RoleProfesseur); code != http.StatusForbidden {
		t.Fatalf("missing claims: status=%d", code)
	}
}
