package session

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Claims is the payload the backend embeds in an access token. The portal
// never verifies the signature - the backend is the verifier - it only needs
// the identity fields and the expiry for its own bookkeeping.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwtlib.RegisteredClaims
}

// DecodeToken extracts the claims from a raw access token without verifying
// its signature. Malformed tokens (wrong segment count, bad base64, non-JSON
// payload) yield nil rather than an error - the caller treats nil as
// "no identity".
func DecodeToken(raw string) *Claims {
	var claims Claims
	if _, _, err := jwtlib.NewParser().ParseUnverified(raw, &claims); err != nil {
		return nil
	}
	return &claims
}

// IsExpired reports whether the token's embedded expiry is in the past.
// Undecodable tokens are treated as expired. A token without an exp claim is
// treated as not expired, matching the backend's contract that every issued
// access token carries one.
func IsExpired(raw string) bool {
	claims := DecodeToken(raw)
	if claims == nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.UnixMilli() < time.Now().UnixMilli()
}
