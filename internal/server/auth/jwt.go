// Package auth issues and verifies the HS256 bearer tokens that guard the
// catalog's write routes.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/scpcatalog/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the editor name in the standard subject claim.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken signs a token for subject valid for validityDuration.
func GenerateToken(subject string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
	})

	return token.SignedString(secretKey)
}

// SubjectFromToken verifies tokenString and returns its subject.
// Expired tokens yield common.ErrTokenExpired, anything else that fails
// verification yields common.ErrInvalidToken.
func SubjectFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
