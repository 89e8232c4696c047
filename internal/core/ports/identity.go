package ports

import (
	"context"

	"github.com/cars-g/reporting-api/internal/core/domain"
)

// IdentityVerifier validates a bearer credential. It returns domain.ErrUnauthorized
// for a missing, malformed or expired credential.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}

// TokenIssuer signs credentials that IdentityVerifier accepts.
type TokenIssuer interface {
	Issue(identity domain.Identity) (string, error)
}
