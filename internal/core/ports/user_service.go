package ports

import (
	"context"

	"github.com/cars-g/reporting-api/internal/core/domain"
)

// ListUsersInput carries the admin list parameters.
type ListUsersInput struct {
	Role   string
	Limit  int
	Offset int
}

// UserList is a page of profiles with the total number of matches.
type UserList struct {
	Users []*domain.User
	Total int64
}

// LeaderboardEntry is the public view of a profile. It never carries email.
type LeaderboardEntry struct {
	ID          string
	DisplayName string
	Points      int
	Role        domain.Role
	PhotoURL    string
}

// AdjustPointsInput is a manual points change. Points may be negative.
type AdjustPointsInput struct {
	Points int
	Reason string
}

// UserService defines profile administration and the points ledger use cases.
type UserService interface {
	List(ctx context.Context, caller domain.Caller, in ListUsersInput) (*UserList, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	Get(ctx context.Context, caller domain.Caller, id string) (*domain.User, error)
	UpdateRole(ctx context.Context, caller domain.Caller, id, role string) error
	SetBanned(ctx context.Context, caller domain.Caller, id string, banned bool) error
	AdjustPoints(ctx context.Context, caller domain.Caller, id string, in AdjustPointsInput) (*domain.LedgerEntry, error)
	PointsHistory(ctx context.Context, caller domain.Caller, id string, limit int) ([]*domain.LedgerEntry, error)
	Stats(ctx context.Context, caller domain.Caller, id string) (*domain.ReportStats, error)
}

// ReconcileService compares persisted points with the figure derived from
// resolved reports. It never rewrites points.
type ReconcileService interface {
	Reconcile(ctx context.Context) ([]domain.PointsDrift, error)
}
