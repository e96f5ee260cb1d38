package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kavara/backend/internal/infrastructure/config"
	"golang.org/x/crypto/bcrypt"
)

// Common errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInvalidClaims      = errors.New("invalid token claims")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Claims represents the admin JWT claims
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Token represents an issued admin token
type Token struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"` // Bearer
}

// JWTService issues and validates admin tokens. The storefront has a
// single back-office account defined in configuration.
type JWTService struct {
	secret        []byte
	expiration    time.Duration
	issuer        string
	adminUsername string
	adminPassHash []byte
}

// NewJWTService creates a new JWT service
func NewJWTService(jwtCfg config.JWTConfig, adminCfg config.AdminConfig) *JWTService {
	return &JWTService{
		secret:        []byte(jwtCfg.Secret),
		expiration:    jwtCfg.TokenExpiration,
		issuer:        jwtCfg.Issuer,
		adminUsername: adminCfg.Username,
		adminPassHash: []byte(adminCfg.PasswordHash),
	}
}

// Login verifies the credentials against the configured admin account
// and issues a token on success.
func (s *JWTService) Login(username, password string) (*Token, error) {
	if username != s.adminUsername {
		// keep timing uniform for unknown usernames
		_ = bcrypt.CompareHashAndPassword(s.adminPassHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.adminPassHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.GenerateToken(username)
}

// GenerateToken issues a signed admin token
func (s *JWTService) GenerateToken(username string) (*Token, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiration)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   username,
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: username,
		Role:     "admin",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &Token{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
	}, nil
}

// ValidateToken validates a token string and returns its claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.Username == "" {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}

// HashPassword returns the bcrypt hash for a password. Used by the
// operator tooling that prepares admin.password_hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
