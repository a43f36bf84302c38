package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleType set user access tier
type RoleType string

const (
	// RoleAdmin is the admin role
	RoleAdmin RoleType = "admin"
	// RoleConsumer is the consumer role
	RoleConsumer RoleType = "consumer"
)

// IsValid check role is a known tier
func (r RoleType) IsValid() bool {
	return r == RoleAdmin || r == RoleConsumer
}

// Claims structure for custom claims in JWT
type Claims struct {
	UserID string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Role   RoleType `json:"role"`
	jwt.RegisteredClaims
}

// tokens stay valid for 30 days
const tokenExpiration = 30 * 24 * time.Hour

var jwtSecret []byte

// SetSecret install the signing secret loaded from configuration
func SetSecret(secret []byte) {
	jwtSecret = secret
}

// GenerateJWT generates a JWT token
func GenerateJWT(userID, name, email string, role RoleType, issuer string) (string, error) {
	if len(jwtSecret) == 0 {
		return "", errors.New("token secret is not configured")
	}

	claims := Claims{
		UserID: userID,
		Name:   name,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseJWT parses a JWT and extracts the Claims
func ParseJWT(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Check if the signing method is HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})

	if err != nil {
		// invalid signature, expired, malformed, etc.
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
