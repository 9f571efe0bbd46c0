package utils

import (
	"errors"
	"time"

	"rentora/config"

	"github.com/golang-jwt/jwt"
)

// GenerateToken creates a signed JWT with the given subject and role. The
// token expires after the specified duration.
func GenerateToken(subject, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ExtractCallerFromToken validates the token and returns the caller id and
// role claims.
func ExtractCallerFromToken(tokenString string) (callerID, role string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}
	callerID, _ = claims["sub"].(string)
	role, _ = claims["role"].(string)
	if callerID == "" || role == "" {
		return "", "", errors.New("token missing sub or role")
	}
	return callerID, role, nil
}
