package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cars-g/reporting-api/internal/core/domain"
	"github.com/cars-g/reporting-api/internal/core/ports"
)

type accessGuard struct {
	verifier ports.IdentityVerifier
	users    ports.UserRepository
}

// NewAccessGuard returns an AccessGuard backed by verifier and the profile store.
func NewAccessGuard(verifier ports.IdentityVerifier, users ports.UserRepository) ports.AccessGuard {
	return &accessGuard{verifier: verifier, users: users}
}

func (g *accessGuard) Identify(ctx context.Context, token string) (*domain.Identity, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: access token required", domain.ErrUnauthorized)
	}
	identity, err := g.verifier.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return identity, nil
}

func (g *accessGuard) Authenticate(ctx context.Context, token string) (domain.Caller, error) {
	identity, err := g.Identify(ctx, token)
	if err != nil {
		return domain.Caller{}, err
	}

	user, err := g.users.FindByID(ctx, identity.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Caller{}, domain.ErrProfileNotFound
		}
		return domain.Caller{}, fmt.Errorf("load profile: %w", err)
	}
	return domain.CallerFromUser(user), nil
}
