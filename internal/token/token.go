// Package token implements the session token scheme used by the API.  A
// token is three dot-separated segments: a base64 header, a base64 JSON
// payload and a base64 HMAC-SHA256 signature computed over the first two
// segments.  The encoding is standard base64 with padding, which is what
// existing clients of this API expect; this is deliberately NOT a
// standards-compliant JWT even though the header says HS256/JWT.  The
// algorithm is fixed: there is no negotiation and no unsigned fallback.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Verification failure modes.  Middleware maps all of them to HTTP 401.
// The wording, capitalization included, is what existing clients match on.
var (
	ErrMalformedToken = errors.New("Invalid token format")
	ErrBadSignature   = errors.New("Invalid token signature")
	ErrExpired        = errors.New("Token has expired")
)

// Claims is the identity data carried inside a token.  Field names and
// order match the wire payload produced by the previous implementation.
type Claims struct {
	ID     int64  `json:"id"`
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
	Email  string `json:"email"`
	Type   string `json:"type_utilisateur"`
}

// payload is the full signed body: issued-at, expiry and the claims.
type payload struct {
	Iat  int64  `json:"iat"`
	Exp  int64  `json:"exp"`
	Data Claims `json:"data"`
}

// Roles stored in Claims.Type.
const (
	RoleEleve      = "eleve"
	RoleProfesseur = "professeur"
	RoleAdmin      = "admin"
)

// Codec issues and verifies tokens with a shared secret and fixed TTL.
// Both operations are pure computation; nothing is persisted and there is
// no server-side revocation.  The now function exists so tests can control
// expiry; NewCodec wires time.Now.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec returns a Codec signing with secret, issuing tokens valid for
// ttlSeconds from issuance.
func NewCodec(secret string, ttlSeconds int) *Codec {
	return &Codec{
		secret: []byte(secret),
		ttl:    time.Duration(ttlSeconds) * time.Second,
		now:    time.Now,
	}
}

// header is constant: the scheme supports exactly one algorithm.
const header = `{"alg":"HS256","typ":"JWT"}`

// Issue builds and signs a token for the given claims.
func (c *Codec) Issue(data Claims) (string, error) {
	iat := c.now().Unix()
	body, err := json.Marshal(payload{
		Iat:  iat,
		Exp:  iat + int64(c.ttl/time.Second),
		Data: data,
	})
	if err != nil {
		return "", err
	}
	h64 := base64.StdEncoding.EncodeToString([]byte(header))
	p64 := base64.StdEncoding.EncodeToString(body)
	return h64 + "." + p64 + "." + c.sign(h64+"."+p64), nil
}

// Verify checks a token's structure, signature and expiry, in that order,
// and returns the embedded claims.  The signature is always validated
// before the payload is trusted.
func (c *Codec) Verify(tok string) (Claims, error) {
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		return Claims{}, ErrMalformedToken
	}
	want := c.sign(parts[0] + "." + parts[1])
	if !hmac.Equal([]byte(parts[2]), []byte(want)) {
		return Claims{}, ErrBadSignature
	}
	raw, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return Claims{}, ErrMalformedToken
	}
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Claims{}, ErrMalformedToken
	}
	if p.Exp < c.now().Unix() {
		return Claims{}, ErrExpired
	}
	return p.Data, nil
}

// sign returns base64(HMAC-SHA256(input)) keyed with the codec secret.
func (c *Codec) sign(input string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(input))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
