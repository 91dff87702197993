package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"bookwise/config"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for any token that fails signature, expiry or type checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the session identity. Type separates access from refresh tokens.
type Claims struct {
	Email string `json:"email"`
	Type  string `json:"typ"`
	jwt.StandardClaims
}

func secretKey() []byte {
	return []byte(config.AppConfig.JWTSecret)
}

// GenerateToken creates a signed HS256 token for the subject and returns it with its expiry.
func GenerateToken(subject, email, tokenType string, duration time.Duration) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(duration)
	claims := Claims{
		Email: email,
		Type:  tokenType,
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			Id:        uuid.New().String(),
			IssuedAt:  now.Unix(),
			ExpiresAt: exp.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secretKey())
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseToken validates signature and expiry and checks the token type.
func ParseToken(tokenString, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.Type != wantType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
