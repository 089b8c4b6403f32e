// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-survey/models"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingSecret = errors.New("token secret is required")
)

const issuer = "quickly-survey"

// Claims is the bearer token payload. Subject is the account id.
type Claims struct {
	Staff bool `json:"staff,omitempty"`
	jwt.RegisteredClaims
}

// GenerateIdentityKey returns a random 128-bit key for an actor or session.
func GenerateIdentityKey() string {
	return uuid.NewString()
}

// IssueToken signs a token for accountID. Staff tokens grant the admin role.
func IssueToken(secret, accountID string, staff bool, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	if accountID == "" {
		return "", fmt.Errorf("%w: account id is required", ErrInvalidToken)
	}

	now := time.Now()
	claims := Claims{
		Staff: staff,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies a token and returns the requester it names.
func ParseToken(secret, token string) (models.Requester, error) {
	if secret == "" {
		return models.Requester{}, ErrMissingSecret
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Requester{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return models.Requester{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	role := models.RoleAuthenticated
	if claims.Staff {
		role = models.RoleAdmin
	}
	return models.Requester{AccountID: claims.Subject, Role: role}, nil
}
