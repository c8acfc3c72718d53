package services

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/models"

	"github.com/dgrijalva/jwt-go"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 30 * 24 * time.Hour

// Claims is the payload of an identity token. The subject holds the user ID.
type Claims struct {
	Role models.Role `json:"role"`
	jwt.StandardClaims
}

// TokenService issues and verifies HS256 identity tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService signing with secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    TokenTTL,
		now:    time.Now,
	}
}

// Issue returns a signed token binding the user's ID and role.
func (s *TokenService) Issue(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		Role: user.Role,
		StandardClaims: jwt.StandardClaims{
			Subject:   user.ID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Verify checks the token's signature and expiry and returns the user ID and
// role it carries.
func (s *TokenService) Verify(tokenString string) (string, models.Role, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		var verr *jwt.ValidationError
		// A forged token that is also past expiry stays malformed.
		if errors.As(err, &verr) && verr.Errors == jwt.ValidationErrorExpired {
			return "", "", ErrExpiredCredential
		}
		return "", "", fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}
	if !token.Valid || claims.Subject == "" || !claims.Role.Valid() {
		return "", "", ErrMalformedCredential
	}
	return claims.Subject, claims.Role, nil
}
