package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cars-g/reporting-api/internal/api/metrics"
	"github.com/cars-g/reporting-api/internal/core/domain"
	"github.com/cars-g/reporting-api/internal/core/ports"
)

const (
	callerKey   = "caller"
	identityKey = "identity"
)

// Auth resolves the bearer credential into a caller and rejects banned callers.
func Auth(guard ports.AccessGuard) echo.MiddlewareFunc {
	return authenticate(guard, false)
}

// AuthAllowBanned is Auth without the ban check. It guards the profile reads
// a banned user still needs to see why they are locked out.
func AuthAllowBanned(guard ports.AccessGuard) echo.MiddlewareFunc {
	return authenticate(guard, true)
}

func authenticate(guard ports.AccessGuard, allowBanned bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("unauthorized").Inc()
				return err
			}

			caller, err := guard.Authenticate(c.Request().Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrUnauthorized):
					metrics.AuthRejectionsTotal.WithLabelValues("unauthorized").Inc()
				case errors.Is(err, domain.ErrProfileNotFound):
					metrics.AuthRejectionsTotal.WithLabelValues("profile_not_found").Inc()
				}
				return err
			}
			if caller.Banned && !allowBanned {
				metrics.AuthRejectionsTotal.WithLabelValues("banned").Inc()
				return domain.ErrBanned
			}

			SetCaller(c, caller)
			return next(c)
		}
	}
}

// Identify only verifies the credential; the caller may not have a profile yet.
func Identify(guard ports.AccessGuard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("unauthorized").Inc()
				return err
			}

			identity, err := guard.Identify(c.Request().Context(), token)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("unauthorized").Inc()
				return err
			}

			SetIdentity(c, *identity)
			return next(c)
		}
	}
}

// SetCaller stores the request principal on c.
func SetCaller(c echo.Context, caller domain.Caller) {
	c.Set(callerKey, caller)
}

// SetIdentity stores a verified identity that has no profile requirement.
func SetIdentity(c echo.Context, identity domain.Identity) {
	c.Set(identityKey, identity)
}

// CallerFrom returns the caller set by Auth.
func CallerFrom(c echo.Context) (domain.Caller, bool) {
	caller, ok := c.Get(callerKey).(domain.Caller)
	return caller, ok
}

// IdentityFrom returns the identity set by Identify.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(domain.Identity)
	return identity, ok
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
// A missing header yields an empty token, which the guard rejects.
func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", fmt.Errorf("%w: invalid authorization header", domain.ErrUnauthorized)
	}
	return strings.TrimSpace(parts[1]), nil
}
