// Package auth mints and verifies session tokens.
//
// A token is an HS256 JWT binding a user id to a fresh session id.
// Signature validity alone does not make a token usable: the store
// keeps the set of active tokens, and logout / admin removal revoke
// them there. The JWT layer is only the opaque signer/verifier.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Claims struct {
	UserID    int64  `json:"u_id"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed token for a user. The uuid session id
// makes every login distinct, so logging in twice yields two
// independently revocable tokens.
func GenerateToken(userID int64, secret string) (string, error) {
	claims := Claims{
		UserID:    userID,
		SessionID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: "dreams",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// ParseToken verifies the signature and extracts the claims. Tokens
// carry no expiry; revocation happens through the active-session set.
func ParseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(token *jwt.Token) (any, error) {
			// Reject anything not signed with HMAC before the signature
			// check runs (algorithm-confusion guard).
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
