package util

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMalformedToken = errors.New("malformed token")

// TokenInfo is the subset of access-token claims the storefront cares
// about.
type TokenInfo struct {
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// InspectToken decodes the claims without verifying the signature. The
// storefront never holds the backend's signing secret; the backend is the
// authority and the claims are used for expiry diagnostics only.
func InspectToken(token string) (*TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	info := &TokenInfo{}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if email, ok := claims["email"].(string); ok {
		info.Email = email
	}
	return info, nil
}

// IsTokenExpired reports whether the token carries an exp claim in the
// past. Tokens without an exp claim are treated as unexpired.
func IsTokenExpired(token string) bool {
	info, err := InspectToken(token)
	if err != nil {
		return false
	}
	if info.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(info.ExpiresAt)
}
