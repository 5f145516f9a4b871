package utils

import (
	"errors" // Sentinel error
	"fmt"    // Error formatting
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed payload, expired token or garbage input.
var ErrInvalidToken = errors.New("invalid or expired token")

// GenerateJWT creates a signed token whose subject is the username
func GenerateJWT(username, secret string, ttl time.Duration) (string, error) {
	// Set token claims
	claims := jwt.RegisteredClaims{
		Subject:   username,                                // Username as subject claim
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)), // Token expiry
		IssuedAt:  jwt.NewNumericDate(time.Now()),          // Issued at current time
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT validates a token string and returns the subject (username).
// All failure modes collapse to ErrInvalidToken.
func ParseJWT(tokenStr, secret string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		// Reject tokens signed with anything but HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil // Return the secret key for validation
	})
	// Check for parsing errors (covers bad signature and expiry)
	if err != nil {
		return "", ErrInvalidToken
	}
	// Validate token and extract claims
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
