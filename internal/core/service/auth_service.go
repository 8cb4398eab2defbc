package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gatherly/eventhub/internal/core/domain"
	"github.com/gatherly/eventhub/internal/core/ports"
	"github.com/gatherly/eventhub/internal/pkg/password"
	"github.com/gatherly/eventhub/internal/pkg/token"
)

// AuthService implements login and logout.
type AuthService struct {
	users  ports.UserRepository
	logins ports.LoginRecorder
	tokens *token.Manager
	hasher *password.Hasher
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, logins ports.LoginRecorder, tokens *token.Manager, hasher *password.Hasher, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, logins: logins, tokens: tokens, hasher: hasher, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, rctx domain.RequestContext, in ports.LoginInput) (*ports.LoginResult, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		if isNotFound(err) {
			// Burn a bcrypt comparison so unknown usernames take as long
			// as wrong passwords.
			s.hasher.Verify(in.Password, password.DummyHash)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Active {
		s.logger.Warn().Str("username", in.Username).Msg("login rejected: account deactivated")
		return nil, domain.ErrAccountDeactivated
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		s.logger.Warn().Str("username", in.Username).Str("ip", rctx.IP).Msg("login failed: bad password")
		if err := s.logins.RecordFailedLogin(ctx, user, rctx); err != nil {
			return nil, err
		}
		return nil, domain.ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(user.Username, user.Role.Name, time.Now())
	if err != nil {
		return nil, domain.Internal(err, "failed to issue token")
	}

	if err := s.logins.RecordLogin(ctx, user, rctx, tok); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Str("role", user.Role.Name).Msg("login succeeded")
	return &ports.LoginResult{
		Token:     tok,
		Type:      "Bearer",
		Username:  user.Username,
		Role:      user.Role.Name,
		ExpiresIn: s.tokens.TTL().Milliseconds(),
	}, nil
}

// Logout pairs the caller's bearer token with its open login row and closes
// it. Best-effort: an unknown token is not an error.
func (s *AuthService) Logout(ctx context.Context, rctx domain.RequestContext) error {
	if err := s.logins.RecordLogout(ctx, rctx.Token); err != nil {
		return err
	}
	s.logger.Info().Str("username", rctx.Caller.Username).Msg("logout recorded")
	return nil
}
