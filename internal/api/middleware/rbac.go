package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/cars-g/reporting-api/internal/core/domain"
)

// Require fails fast when the caller's role cannot satisfy rule. Only the role
// parts of the rule are checked here; relation grants need the loaded resource
// and stay with the services.
func Require(rule domain.Rule) echo.MiddlewareFunc {
	roleOnly := domain.Rule{MinRole: rule.MinRole, AdminOnly: rule.AdminOnly}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, ok := CallerFrom(c)
			if !ok {
				return domain.ErrUnauthorized
			}
			if err := domain.Authorize(caller.Role, domain.RelationNone, roleOnly); err != nil {
				return err
			}
			return next(c)
		}
	}
}
