package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/domain"
)

var jwtSecret []byte

func InitJWT() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET is not set")
	}
	jwtSecret = []byte(secret)
}

// SetJWTSecret overrides the signing key. Used by tests and by config-driven
// startup paths that do not read the environment directly.
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

const tokenTTL = 24 * time.Hour

func GenerateJWT(userID int64, role domain.Role) (string, error) {
	now := time.Now().Unix()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(tokenTTL).Unix(),
		"iat":     now,
		"nbf":     now,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseJWT validates the token and returns the actor it identifies.
func ParseJWT(tokenString string) (domain.Actor, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return domain.Actor{}, domain.ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Actor{}, domain.ErrUnauthenticated
	}

	now := time.Now().Unix()
	if exp, ok := claims["exp"].(float64); ok && int64(exp) < now {
		return domain.Actor{}, domain.ErrUnauthenticated
	}
	if nbf, ok := claims["nbf"].(float64); ok && int64(nbf) > now {
		return domain.Actor{}, domain.ErrUnauthenticated
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return domain.Actor{}, domain.ErrUnauthenticated
	}
	role := domain.RoleUser
	if r, ok := claims["role"].(string); ok && domain.Role(r).Valid() {
		role = domain.Role(r)
	}

	return domain.Actor{ID: int64(userID), Role: role}, nil
}
