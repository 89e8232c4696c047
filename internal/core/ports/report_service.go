package ports

import (
	"context"

	"github.com/cars-g/reporting-api/internal/core/domain"
)

// CreateReportInput carries the fields a reporter submits.
type CreateReportInput struct {
	Title       string
	Description string
	Category    string
	IsAnonymous bool
	Location    *domain.Location
	ImageURLs   []string
}

// ListReportsInput carries the admin list parameters.
type ListReportsInput struct {
	Status string
	Limit  int
	Offset int
}

// ReportList is a page of reports with the total number of matches.
type ReportList struct {
	Reports []*domain.Report
	Total   int64
}

// StatusChange describes the outcome of a status update.
type StatusChange struct {
	ReportID      string
	Status        domain.ReportStatus
	PointsAwarded bool
}

// ReportService defines the report lifecycle use cases. Every method enforces
// access with domain.Authorize.
type ReportService interface {
	Create(ctx context.Context, caller domain.Caller, in CreateReportInput) (*domain.Report, error)
	Get(ctx context.Context, caller domain.Caller, id string) (*domain.Report, error)
	ListMine(ctx context.Context, caller domain.Caller) ([]*domain.Report, error)
	ListAssigned(ctx context.Context, caller domain.Caller) ([]*domain.Report, error)
	ListAll(ctx context.Context, caller domain.Caller, in ListReportsInput) (*ReportList, error)
	UpdateStatus(ctx context.Context, caller domain.Caller, id, status string) (*StatusChange, error)
	Assign(ctx context.Context, caller domain.Caller, id, patrolID string) error
	UpdatePriority(ctx context.Context, caller domain.Caller, id string, priority int) error
	AttachProof(ctx context.Context, caller domain.Caller, id string, urls []string) error
}
