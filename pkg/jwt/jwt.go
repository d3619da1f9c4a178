package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims standard JWT claims plus the session fields.
// Role travels in the token so RequireRole can decide without a DB lookup.
type Claims struct {
	jwt.RegisteredClaims
	UserID     string `json:"user_id"`
	WorkshopID string `json:"workshop_id,omitempty"`
	Role       string `json:"role"` // "owner" | "manager"
	Email      string `json:"email,omitempty"`
}

// Identity the values a token carries about its holder.
type Identity struct {
	UserID     string
	WorkshopID string
	Role       string
	Email      string
}

// Generate signs an HS256 token for the identity.
func Generate(secret, issuer string, expMinutes int, id Identity) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: empty secret")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:     id.UserID,
		WorkshopID: id.WorkshopID,
		Role:       id.Role,
		Email:      id.Email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse validates the token and returns the identity it carries.
// Invalid, expired or wrongly signed tokens return an error.
func Parse(secret, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, fmt.Errorf("jwt: empty secret")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("invalid claims")
	}
	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	return Identity{
		UserID:     userID,
		WorkshopID: claims.WorkshopID,
		Role:       claims.Role,
		Email:      claims.Email,
	}, nil
}
