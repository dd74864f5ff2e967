package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wallet-service/internal/core/domain"
	"wallet-service/internal/core/ports"
	"wallet-service/pkg/apperror"

	"github.com/rs/zerolog"
)

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	userRepo ports.UserRepository
	hashSvc  ports.HashService
	tokenSvc ports.TokenService
	log      zerolog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	userRepo ports.UserRepository,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	log zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo: userRepo,
		hashSvc:  hashSvc,
		tokenSvc: tokenSvc,
		log:      log,
	}
}

// Authenticate checks an email/password pair against the credential store.
func (s *AuthServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, bool, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, apperror.InternalError(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		// Unknown emails pay for a hash comparison too.
		s.compareDummy(password)
		return nil, false, nil
	}

	valid, err := s.hashSvc.Verify(password, user.HashedPassword)
	if err != nil {
		return nil, false, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		return nil, false, nil
	}
	return user, true, nil
}

// Login validates credentials and returns an access/refresh token pair.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	user, ok, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.log.Info().Str("email", email).Msg("login rejected")
		return nil, apperror.ErrInvalidCredentials()
	}

	access, accessExp, err := s.tokenSvc.IssueAccessToken(user.Email)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("issue access token: %w", err))
	}
	refresh, refreshExp, err := s.tokenSvc.IssueRefreshToken(user.Email)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("issue refresh token: %w", err))
	}

	return &domain.TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token.
// The subject must still exist.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.tokenSvc.Verify(refreshToken, domain.TokenKindRefresh)
	if err != nil {
		return "", time.Time{}, apperror.ErrInvalidRefreshToken().WithCause(err)
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		return "", time.Time{}, apperror.ErrUnknownSubject()
	}

	token, expiresAt, err := s.tokenSvc.IssueAccessToken(user.Email)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("issue access token: %w", err))
	}
	return token, expiresAt, nil
}

// CurrentUser resolves the user behind an access token.
func (s *AuthServiceImpl) CurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.tokenSvc.Verify(accessToken, domain.TokenKindAccess)
	if err != nil {
		return nil, apperror.ErrInvalidToken().WithCause(err)
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken()
	}
	return user, nil
}

func (s *AuthServiceImpl) compareDummy(password string) {
	s.dummyOnce.Do(func() {
		hash, err := s.hashSvc.Hash("wallet-service-dummy-password")
		if err != nil {
			s.log.Warn().Err(err).Msg("failed to prepare dummy password hash")
			return
		}
		s.dummyHash = hash
	})
	if s.dummyHash == "" {
		return
	}
	_, _ = s.hashSvc.Verify(password, s.dummyHash)
}
