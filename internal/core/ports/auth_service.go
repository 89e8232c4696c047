package ports

import (
	"context"

	"github.com/cars-g/reporting-api/internal/core/domain"
)

// RegisterInput carries the fields of a new local account.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// AuthResult is a signed credential and the profile it belongs to.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService covers sign-up, sign-in and the caller's own profile.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Session creates the profile on first sign-in, otherwise refreshes lastActive.
	Session(ctx context.Context, identity domain.Identity) (*domain.User, error)
	Profile(ctx context.Context, caller domain.Caller) (*domain.User, error)
	UpdateProfile(ctx context.Context, caller domain.Caller, upd ProfileUpdate) (*domain.User, error)
}

// AccessGuard turns a bearer credential into a request principal.
type AccessGuard interface {
	// Identify only verifies the credential.
	Identify(ctx context.Context, token string) (*domain.Identity, error)
	// Authenticate verifies the credential and loads the caller's profile.
	// Returns domain.ErrProfileNotFound when no profile exists yet.
	Authenticate(ctx context.Context, token string) (domain.Caller, error)
}
