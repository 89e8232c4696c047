package ports

import (
	"context"

	"github.com/cars-g/reporting-api/internal/core/domain"
)

// CredentialRepository persists the sign-in secrets of the built-in identity provider.
type CredentialRepository interface {
	// Create stores a new credential. Returns domain.ErrEmailTaken when the
	// email is already registered.
	Create(ctx context.Context, c *domain.Credential) error
	// FindByEmail returns domain.ErrUserNotFound when no credential matches.
	FindByEmail(ctx context.Context, email string) (*domain.Credential, error)
}
