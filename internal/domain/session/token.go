package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token formats reported by Inspect.
const (
	FormatNone   = "none"
	FormatJWT    = "jwt"
	FormatOpaque = "opaque"
)

// TokenInfo describes the current token without verifying it. Only the
// backend can verify the signature; this is for display.
type TokenInfo struct {
	Format    string     `json:"format"`
	Subject   string     `json:"subject,omitempty"`
	Issuer    string     `json:"issuer,omitempty"`
	IssuedAt  *time.Time `json:"issuedAt,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Expired reports whether the token carries an expiry before now.
func (i TokenInfo) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && !now.Before(*i.ExpiresAt)
}

// Inspect decodes the token's claims when it is a JWT.
func (s *Store) Inspect() TokenInfo {
	token, ok := s.Token()
	if !ok {
		return TokenInfo{Format: FormatNone}
	}
	return inspect(token)
}

func inspect(token string) TokenInfo {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{Format: FormatOpaque}
	}

	info := TokenInfo{Format: FormatJWT}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if iss, err := claims.GetIssuer(); err == nil {
		info.Issuer = iss
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		t := iat.Time
		info.IssuedAt = &t
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		info.ExpiresAt = &t
	}
	return info
}
