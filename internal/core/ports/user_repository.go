package ports

import (
	"context"
	"time"

	"github.com/cars-g/reporting-api/internal/core/domain"
)

// ListUsersFilter carries the query parameters for listing profiles.
type ListUsersFilter struct {
	Role   string // optional: exact role match
	Limit  int
	Offset int
}

// ProfileUpdate holds the self-editable profile fields. Empty fields are left unchanged.
type ProfileUpdate struct {
	DisplayName string
	PhotoURL    string
}

// UserRepository defines persistence operations for user profiles.
// Lookups of an absent id return domain.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate, at time.Time) (*domain.User, error)
	Touch(ctx context.Context, id string, at time.Time) error
	UpdateRole(ctx context.Context, id string, role domain.Role, at time.Time) error
	SetBanned(ctx context.Context, id string, banned bool, at time.Time) error
	// List returns a page ordered by creation descending and the total match count.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	// TopByPoints returns at most limit profiles ordered by points descending.
	TopByPoints(ctx context.Context, limit int) ([]*domain.User, error)
}
