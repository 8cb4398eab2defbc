package ports

import (
	"context"

	"github.com/gatherly/eventhub/internal/core/domain"
)

// CreateUserInput carries all data needed to register a new user.
type CreateUserInput struct {
	Username    string
	Email       string
	Password    string
	FullName    string
	Phone       string
	DateOfBirth domain.Date
	RoleID      uint
}

// UpdateUserInput mirrors CreateUserInput for full updates. Password is
// optional; when empty the stored hash is kept.
type UpdateUserInput struct {
	Username    string
	Email       string
	Password    string
	FullName    string
	Phone       string
	DateOfBirth domain.Date
	RoleID      uint
}

type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

type ResetPasswordInput struct {
	NewPassword     string
	ConfirmPassword string
}

type UserService interface {
	Create(ctx context.Context, rctx domain.RequestContext, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, rctx domain.RequestContext, id uint, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, rctx domain.RequestContext, id uint) error
	Activate(ctx context.Context, rctx domain.RequestContext, id uint) (*domain.User, error)
	Deactivate(ctx context.Context, rctx domain.RequestContext, id uint) (*domain.User, error)

	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// GetAll returns one page of users. Page is 1-based.
	GetAll(ctx context.Context, page, size int) ([]*domain.User, error)
	GetActive(ctx context.Context) ([]*domain.User, error)

	ChangeMyPassword(ctx context.Context, rctx domain.RequestContext, in ChangePasswordInput) error
	ResetPassword(ctx context.Context, rctx domain.RequestContext, id uint, in ResetPasswordInput) error
}
