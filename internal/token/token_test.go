package token

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"
)

func fixedCodec(secret string, ttl int, at time.Time) *Codec {
	c := NewCodec(secret, ttl)
	c.now = func() time.Time { return at }
	return c
}

var someone = Claims{
	ID:     7,
	Nom:    "Martin",
	Prenom: "Claire",
	Email:  "claire.martin@ecole.fr",
	Type:   RoleProfesseur,
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	c := NewCodec("secret", 3600)
	tok, err := c.Issue(someone)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	got, err := c.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != someone {
		t.Fatalf("claims mismatch: got %+v", got)
	}
}

func TestWireFormat(t *testing.T) {
	at := time.Unix(1700000000, 0)
	c := fixedCodec("secret", 3600, at)
	tok, err := c.Issue(someone)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("want 3 segments, got %d", len(parts))
	}
	// Segments are standard base64 with padding, not base64url.
	hdr, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		t.Fatalf("header not std base64: %v", err)
	}
	if string(hdr) != `{"alg":"HS256","typ":"JWT"}` {
		t.Fatalf("unexpected header: %s", hdr)
	}
	body, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("payload not std base64: %v", err)
	}
	want := `{"iat":1700000000,"exp":1700003600,"data":{"id":7,"nom":"Martin","prenom":"Claire","email":"claire.martin@ecole.fr","type_utilisateur":"professeur"}}`
	if string(body) != want {
		t.Fatalf("payload mismatch:\n got %s\nwant %s", body, want)
	}
	if _, err := base64.StdEncoding.DecodeString(parts[2]); err != nil {
		t.Fatalf("signature not std base64: %v", err)
	}
}

func TestFailureMessages(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{ErrMalformedToken, "Invalid token format"},
		{ErrBadSignature, "Invalid token signature"},
		{ErrExpired, "Token has expired"},
	}
	for _, c := range cases {
		if got := c.err.Error(); got != c.want {
			t.Errorf("message %q, want %q", got, c.want)
		}
	}
}

func TestVerifyMalformed(t *testing.T) {
	c := NewCodec("secret", 3600)
	for _, tok := range []string{"", "abc", "a.b", "a.b.c.d"} {
		if _, err := c.Verify(tok); err != ErrMalformedToken {
			t.Fatalf("token %q: want ErrMalformedToken, got %v", tok, err)
		}
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	c := NewCodec("secret", 3600)
	tok, err := c.Issue(someone)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	// Flip one byte of the signature segment.
	b := []byte(tok)
	b[len(b)-5] ^= 0x01
	if _, err := c.Verify(string(b)); err != ErrBadSignature {
		t.Fatalf("want ErrBadSignature, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	tok, err := NewCodec("secret-a", 3600).Issue(someone)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewCodec("secret-b", 3600).Verify(tok); err != ErrBadSignature {
		t.Fatalf("want ErrBadSignature, got %v", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	issued := time.Unix(1700000000, 0)
	c := fixedCodec("secret", 3600, issued)
	tok, err := c.Issue(someone)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	// Signature stays valid; only the clock moved past exp.
	c.now = func() time.Time { return issued.Add(3601 * time.Second) }
	if _, err := c.Verify(tok); err != ErrExpired {
		t.Fatalf("want ErrExpired, got %v", err)
	}
	// At exactly exp the token is still accepted (exp < now fails).
	c.now = func() time.Time { return issued.Add(3600 * time.Second) }
	if _, err := c.Verify(tok); err != nil {
		t.Fatalf("token at exact expiry rejected: %v", err)
	}
}
