package ports

import (
	"context"

	"github.com/gatherly/eventhub/internal/core/domain"
)

// LoginInput carries the credentials from the transport layer.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult is the successful login payload. ExpiresIn is the token
// lifetime in milliseconds.
type LoginResult struct {
	Token     string
	Type      string
	Username  string
	Role      string
	ExpiresIn int64
}

type AuthService interface {
	Login(ctx context.Context, rctx domain.RequestContext, in LoginInput) (*LoginResult, error)
	// Logout closes the caller's open login session. Succeeds even when no
	// open session remains.
	Logout(ctx context.Context, rctx domain.RequestContext) error
}
