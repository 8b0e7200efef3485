package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a wrong admin key
var ErrInvalidCredentials = errors.New("invalid credentials")

const operatorSubject = "operator"

// AuthService issues and validates operator API tokens
type AuthService struct {
	adminKeyHash []byte
	jwtSecret    []byte
	tokenExpiry  time.Duration
}

// JWTClaims represents the claims in an operator token
type JWTClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// NewAuthService creates a new authentication service
func NewAuthService(adminKeyHash, jwtSecret string) *AuthService {
	return &AuthService{
		adminKeyHash: []byte(adminKeyHash),
		jwtSecret:    []byte(jwtSecret),
		tokenExpiry:  12 * time.Hour,
	}
}

// HashAdminKey returns the bcrypt hash to put in ADMIN_KEY_HASH
func HashAdminKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login checks the admin key and returns a signed token
func (a *AuthService) Login(key string) (string, error) {
	if len(a.adminKeyHash) == 0 || len(a.jwtSecret) == 0 {
		return "", ErrNotConfigured
	}
	if err := bcrypt.CompareHashAndPassword(a.adminKeyHash, []byte(key)); err != nil {
		return "", ErrInvalidCredentials
	}
	return a.GenerateToken()
}

// GenerateToken creates a new operator token
func (a *AuthService) GenerateToken() (string, error) {
	now := time.Now()
	claims := JWTClaims{
		Role: operatorSubject,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   operatorSubject,
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "sleeper-league-bot",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

// ValidateToken validates a token and returns its claims
func (a *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	if len(a.jwtSecret) == 0 {
		return nil, ErrNotConfigured
	}
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid && claims.Role == operatorSubject {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
