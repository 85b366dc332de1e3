// Package identity verifies bearer tokens issued by the external identity
// provider. The service never authenticates users itself; it only checks
// signatures and claims on tokens the provider minted.
package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

const RoleOwner = "owner"

// Identity is the authenticated caller as asserted by the provider.
type Identity struct {
	UserID uint
	Role   string
}

type tokenClaims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier validates a raw bearer token and returns the caller's identity.
type Verifier interface {
	Verify(rawToken string) (Identity, error)
}

// JWTVerifier checks HMAC-signed tokens against the provider's shared secret.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret []byte) *JWTVerifier {
	return &JWTVerifier{secret: secret}
}

func (verifier *JWTVerifier) Verify(rawToken string) (Identity, error) {
	if rawToken == "" {
		return Identity{}, ErrMissingToken
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return verifier.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return Identity{}, ErrTokenExpired
	}
	if claims.UserID == 0 {
		return Identity{}, ErrInvalidToken
	}

	role := claims.Role
	if role == "" {
		role = RoleOwner
	}
	return Identity{UserID: claims.UserID, Role: role}, nil
}
