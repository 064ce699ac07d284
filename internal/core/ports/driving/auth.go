package driving

import (
	"context"

	"github.com/docquery-labs/docquery-core/internal/core/domain"
)

// AuthService handles password login and token validation for the thin
// HTTP layer. Authentication is optional: when no password is configured
// the service reports Enabled() == false and the API is open.
type AuthService interface {
	// Login verifies the password and issues an access token
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)

	// ValidateToken validates a token and returns the auth context
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)

	// Enabled reports whether authentication is configured
	Enabled() bool
}
