package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cars-g/reporting-api/internal/core/domain"
	"github.com/cars-g/reporting-api/internal/core/ports"
)

const minPasswordLength = 6

var emailRule = validator.New()

// AuthService implements registration, login and the caller's own profile.
type AuthService struct {
	credentials ports.CredentialRepository
	users       ports.UserRepository
	issuer      ports.TokenIssuer
	log         zerolog.Logger
}

func NewAuthService(
	credentials ports.CredentialRepository,
	users ports.UserRepository,
	issuer ports.TokenIssuer,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{credentials: credentials, users: users, issuer: issuer, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	displayName := strings.TrimSpace(in.DisplayName)
	if err := emailRule.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: a valid email is required", domain.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}
	if displayName == "" {
		displayName = strings.SplitN(email, "@", 2)[0]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cred := &domain.Credential{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		CreatedAt:    now,
	}
	if err := s.credentials.Create(ctx, cred); err != nil {
		return nil, err
	}

	user := domain.NewUser(cred.ID, displayName, email, "", now)
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	token, err := s.issuer.Issue(identityOf(cred))
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	cred, err := s.credentials.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.bootstrap(ctx, identityOf(cred))
	if err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(identityOf(cred))
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Session(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	return s.bootstrap(ctx, identity)
}

func (s *AuthService) Profile(ctx context.Context, caller domain.Caller) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, caller domain.Caller, upd ports.ProfileUpdate) (*domain.User, error) {
	upd.DisplayName = strings.TrimSpace(upd.DisplayName)
	upd.PhotoURL = strings.TrimSpace(upd.PhotoURL)

	user, err := s.users.UpdateProfile(ctx, caller.ID, upd, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return user, nil
}

// bootstrap creates the profile of a first sign-in, otherwise refreshes lastActive.
func (s *AuthService) bootstrap(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	now := time.Now().UTC()

	user, err := s.users.FindByID(ctx, identity.Subject)
	switch {
	case err == nil:
		if err := s.users.Touch(ctx, user.ID, now); err != nil {
			s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to refresh last active")
		} else {
			user.LastActive = now
		}
		return user, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	displayName := identity.Name
	if displayName == "" {
		displayName = strings.SplitN(identity.Email, "@", 2)[0]
	}
	user = domain.NewUser(identity.Subject, displayName, identity.Email, identity.Picture, now)
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("profile created on first sign-in")
	return user, nil
}

func identityOf(c *domain.Credential) domain.Identity {
	return domain.Identity{Subject: c.ID, Email: c.Email, Name: c.DisplayName}
}
