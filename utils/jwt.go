package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// ErrInvalidIdentity is returned for tokens without a usable subject or role.
var ErrInvalidIdentity = errors.New("invalid identity token")

// GenerateToken signs an identity token for subject acting as role.
// The identity provider is the real issuer; this exists for tooling and tests.
func GenerateToken(secret []byte, subject, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(secret []byte, tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
}

// ExtractIdentity returns the caller id ("sub") and role claims of a valid token.
func ExtractIdentity(secret []byte, tokenString string) (string, string, error) {
	token, err := ValidateToken(secret, tokenString)
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", ErrInvalidIdentity
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || role == "" {
		return "", "", ErrInvalidIdentity
	}
	return sub, role, nil
}
