// Package auth verifies the bearer tokens presented to the authorizer.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CLAIM_USER_ID  = "userId"
	CLAIM_USERNAME = "username"
	BEARER_PREFIX  = "Bearer "
)

var ErrMissingToken = errors.New("missing bearer token")

type Identity struct {
	UserId   int64
	Username string
}

type Claims struct {
	UserId   int64  `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issue signs an HS256 token for identity, valid for ttl.
func Issue(identity Identity, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserId:   identity.UserId,
		Username: identity.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func Verify(tokenString string, secret []byte) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserId <= 0 {
		return nil, errors.New("token does not carry a user")
	}
	return &Identity{
		UserId:   claims.UserId,
		Username: claims.Username,
	}, nil
}

// FromHeader extracts the token from an Authorization header value.
func FromHeader(header string) (string, error) {
	if !strings.HasPrefix(header, BEARER_PREFIX) {
		return "", ErrMissingToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BEARER_PREFIX))
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
