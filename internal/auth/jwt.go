package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kashih222/Ecomerce-Web-Task-3-at-Ekel-AI/pkg/middleware"
)

// Claims are the JWT claims an access token carries: the user id and role the
// auth gates attach to request context.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies access tokens with an HMAC secret.
type JWTManager struct {
	secret []byte
	expiry time.Duration
}

// NewJWTManager creates a manager with the given signing secret and token
// lifetime.
func NewJWTManager(secret string, expiry time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Generate creates a signed HS256 token for the given user.
func (m *JWTManager) Generate(userID, role string) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			Issuer:    "storefront",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify parses a token, checks its signature and expiry, and returns the
// claims.
func (m *JWTManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

// Verifier adapts the manager to the middleware auth gates.
func Verifier(m *JWTManager) middleware.TokenVerifier {
	return func(token string) (*middleware.Identity, error) {
		claims, err := m.Verify(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Identity{UserID: claims.UserID, Role: claims.Role}, nil
	}
}
