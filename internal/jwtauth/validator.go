// Package jwtauth validates the HS256 bearer tokens issued by the platform's
// identity service. Token issuance lives with that service; this engine only
// verifies.
package jwtauth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	dErrors "kyntel/pkg/domain-errors"
)

// Claims are the claims this engine cares about on an access token.
type Claims struct {
	jwt.RegisteredClaims
}

// Validator checks token signatures and expiry against a shared signing key.
type Validator struct {
	signingKey []byte
}

// New constructs a Validator for the given HS256 signing key.
func New(signingKey string) *Validator {
	return &Validator{signingKey: []byte(signingKey)}
}

// ValidateToken verifies the token and returns its subject claim.
func (v *Validator) ValidateToken(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return v.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	return claims.Subject, nil
}
