package service

import (
	"errors"
	"fmt"
	"time"

	"wallet-service/internal/core/domain"
	"wallet-service/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is the JWT payload. Type keeps refresh tokens off access-only routes.
type tokenClaims struct {
	Type domain.TokenKind `json:"typ"`
	jwt.RegisteredClaims
}

// JWTTokenService implements ports.TokenService using HMAC-signed JWTs.
type JWTTokenService struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	now        func() time.Time
}

// NewJWTTokenService creates a new JWT token service.
// Only the HMAC family (HS256, HS384, HS512) is accepted.
func NewJWTTokenService(secret, algorithm string, accessTTL, refreshTTL time.Duration, issuer string) (*JWTTokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}

	return &JWTTokenService{
		secret:     []byte(secret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		issuer:     issuer,
		now:        time.Now,
	}, nil
}

// IssueAccessToken creates a short-lived token for API calls.
func (s *JWTTokenService) IssueAccessToken(subject string) (string, time.Time, error) {
	return s.issue(subject, domain.TokenKindAccess, s.accessTTL)
}

// IssueRefreshToken creates a long-lived token accepted only by the refresh endpoint.
func (s *JWTTokenService) IssueRefreshToken(subject string) (string, time.Time, error) {
	return s.issue(subject, domain.TokenKindRefresh, s.refreshTTL)
}

func (s *JWTTokenService) issue(subject string, kind domain.TokenKind, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(ttl)

	claims := tokenClaims{
		Type: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Verify parses and validates a JWT of the given kind, returning the claims.
// Every failure wraps ports.ErrInvalidToken.
func (s *JWTTokenService) Verify(tokenString string, kind domain.TokenKind) (*ports.TokenClaims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject claim", ports.ErrInvalidToken)
	}
	if claims.Type != kind {
		return nil, fmt.Errorf("%w: expected %s token, got %q", ports.ErrInvalidToken, kind, claims.Type)
	}

	return &ports.TokenClaims{
		Subject:   claims.Subject,
		Kind:      claims.Type,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
