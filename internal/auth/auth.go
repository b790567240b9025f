// Package auth verifies the bearer tokens issued by the external identity
// provider. The rest of the service only consumes the yes/no decision and the
// principal identifier.
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Principal identifies a verified caller.
type Principal struct {
	Subject string
	Email   string
}

// Verifier checks a raw bearer token and returns the principal it belongs to.
type Verifier interface {
	Verify(token string) (Principal, error)
}

var ErrInvalidToken = errors.New("invalid token")

// JWTVerifier validates HS256 tokens signed with a shared secret.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(token string) (Principal, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return Principal{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Principal{}, ErrInvalidToken
	}
	email, _ := claims["email"].(string)

	return Principal{Subject: sub, Email: email}, nil
}
