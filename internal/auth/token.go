package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/todo-service/internal/domain"
)

// BearerPrefix is the mandatory scheme marker, case-sensitive with a single space.
const BearerPrefix = "Bearer "

// TokenManager issues and verifies HS256 bearer tokens. It holds no mutable state
// and is safe for concurrent use.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager around an already validated signing key.
func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 60 * time.Minute
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &TokenManager{secret: key, ttl: ttl, now: time.Now}
}

// Claims describes JWT payload.
type Claims struct {
	Email    string          `json:"email"`
	UserRole domain.UserRole `json:"userRole"`
	jwt.RegisteredClaims
}

// Identity returns the caller described by the claims.
func (c *Claims) Identity() domain.Identity {
	return domain.Identity{Subject: c.Subject, Email: c.Email, Role: c.UserRole}
}

// CreateToken signs a token for the subject and returns it with the bearer prefix.
func (tm *TokenManager) CreateToken(subject, email string, role domain.UserRole) (string, error) {
	issuedAt := tm.now()
	claims := &Claims{
		Email:    email,
		UserRole: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(tm.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", err
	}
	return BearerPrefix + signed, nil
}

// StripScheme removes the bearer prefix from an Authorization header value.
func StripScheme(header string) (string, error) {
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", ErrMalformedScheme
	}
	raw := header[len(BearerPrefix):]
	if raw == "" {
		return "", ErrMalformedScheme
	}
	return raw, nil
}

// ParseToken verifies the signature and expiry of a raw token and returns its claims.
// Expired tokens with a valid signature yield ErrExpiredToken, everything else ErrInvalidToken.
func (tm *TokenManager) ParseToken(raw string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)

	parsed, err := parser.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, fmt.Errorf("%w: %v", ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", ErrInvalidToken)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	if claims.UserRole != domain.UserRoleUser && claims.UserRole != domain.UserRoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.UserRole)
	}
	return claims, nil
}

// Authenticate strips the scheme from a header value and parses the token.
func (tm *TokenManager) Authenticate(header string) (*Claims, error) {
	if header == "" {
		return nil, ErrMissingToken
	}
	raw, err := StripScheme(header)
	if err != nil {
		return nil, err
	}
	return tm.ParseToken(raw)
}
