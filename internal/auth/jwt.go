package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// adminSubject is the only principal this API knows about. There are no user
// accounts; the token just proves the holder presented the admin password to
// /admin/login recently.
const adminSubject = "admin"

// GenerateAdminToken creates a signed admin session token valid for 72 hours.
func GenerateAdminToken(secret string) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret not configured")
	}
	claims := jwt.MapClaims{
		"sub": adminSubject,
		"exp": time.Now().Add(72 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAdminToken checks the signature, expiry, and subject of a token.
func ValidateAdminToken(secret, tokenString string) error {
	if secret == "" {
		return errors.New("jwt secret not configured")
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return errors.New("invalid token")
	}
	if sub, _ := claims["sub"].(string); sub != adminSubject {
		return errors.New("invalid subject claim")
	}
	return nil
}
