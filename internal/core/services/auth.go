package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/docquery-labs/docquery-core/internal/core/domain"
	"github.com/docquery-labs/docquery-core/internal/core/ports/driven"
	"github.com/docquery-labs/docquery-core/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// ownerSubject is the single identity behind the shared password. Keeping
// the subject stable means a re-login keeps its conversation session.
const ownerSubject = "owner"

// authService implements password login with a single configured password.
// When no password is configured the service is disabled and the API runs
// open, which is the common self-hosted setup.
type authService struct {
	adapter      driven.AuthAdapter
	passwordHash string
	tokenTTL     time.Duration
}

// NewAuthService creates an AuthService. password may be empty to disable
// authentication entirely.
func NewAuthService(adapter driven.AuthAdapter, password string, tokenTTL time.Duration) (driving.AuthService, error) {
	svc := &authService{adapter: adapter, tokenTTL: tokenTTL}
	if password != "" {
		hash, err := adapter.HashPassword(password)
		if err != nil {
			return nil, err
		}
		svc.passwordHash = hash
	}
	return svc, nil
}

// Enabled reports whether a password is configured
func (s *authService) Enabled() bool {
	return s.passwordHash != ""
}

// Login verifies the password and issues a signed token
func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if !s.Enabled() {
		return nil, domain.ErrUnauthorized
	}
	if !s.adapter.VerifyPassword(req.Password, s.passwordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)
	token, err := s.adapter.GenerateToken(&domain.TokenClaims{
		Subject:   ownerSubject,
		SessionID: uuid.NewString(),
		IssuedAt:  now.Unix(),
		ExpiresAt: expiresAt.Unix(),
	})
	if err != nil {
		return nil, err
	}

	return &domain.LoginResponse{Token: token, ExpiresAt: expiresAt.Unix()}, nil
}

// ValidateToken validates a token and returns the auth context
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	claims, err := s.adapter.ParseToken(token)
	if err != nil {
		return nil, err
	}
	if time.Now().Unix() >= claims.ExpiresAt {
		return nil, domain.ErrTokenExpired
	}
	return &domain.AuthContext{Subject: claims.Subject, SessionID: claims.SessionID}, nil
}
