package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	// TokenTypeAccess marks short-lived tokens used to authenticate requests.
	TokenTypeAccess = "access"
	// TokenTypeRefresh marks long-lived tokens used only to mint new access
	// tokens.
	TokenTypeRefresh = "refresh"
)

// ErrWrongTokenType is returned when a token of one kind is presented where
// the other kind is required.
var ErrWrongTokenType = errors.New("wrong token type")

// Claims represents JWT claims carrying the user identity and token kind.
type Claims struct {
	UserID    uint   `json:"user_id"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTService creates a new JWT service with the given secret and expiry
// policies.
func NewJWTService(secret string, accessTTL, refreshTTL time.Duration) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// GenerateAccessToken mints a new access token for the user.
func (s *JWTService) GenerateAccessToken(userID uint) (string, error) {
	return s.generate(userID, TokenTypeAccess, s.accessTTL, "")
}

// GenerateRefreshToken mints a new refresh token for the user. Refresh tokens
// carry a unique JTI; they are never persisted or revoked.
func (s *JWTService) GenerateRefreshToken(userID uint) (string, error) {
	return s.generate(userID, TokenTypeRefresh, s.refreshTTL, uuid.New().String())
}

func (s *JWTService) generate(userID uint, tokenType string, ttl time.Duration, jti string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken validates a JWT token of the expected kind and returns its
// claims.
func (s *JWTService) ValidateToken(tokenString, expectedType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.TokenType != expectedType {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}
