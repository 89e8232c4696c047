package ports

import (
	"context"
	"time"

	"github.com/cars-g/reporting-api/internal/core/domain"
)

// ListReportsFilter carries all query parameters for listing reports.
// Empty fields do not filter.
type ListReportsFilter struct {
	OwnerID  string
	PatrolID string
	Status   string
	Limit    int // 0 = no limit
	Offset   int
}

// ReportRepository defines persistence operations for reports.
// Mutations of an absent id return domain.ErrReportNotFound.
type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) error
	FindByID(ctx context.Context, id string) (*domain.Report, error)
	// List returns reports ordered by creation descending and the total match count.
	List(ctx context.Context, filter ListReportsFilter) ([]*domain.Report, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReportStatus, at time.Time) error
	Assign(ctx context.Context, id, patrolID string, at time.Time) error
	UpdatePriority(ctx context.Context, id string, priority int, at time.Time) error
	AddProofImages(ctx context.Context, id string, urls []string, at time.Time) error
	// CountResolvedByOwner maps each owner id to its number of resolved reports.
	CountResolvedByOwner(ctx context.Context) (map[string]int, error)
}
