package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cars-g/reporting-api/internal/core/domain"
	"github.com/cars-g/reporting-api/internal/core/ports"
)

type reportService struct {
	reports ports.ReportRepository
	users   ports.UserRepository
	ledger  ports.PointsLedger
	strict  bool
	log     zerolog.Logger
}

// NewReportService returns a ReportService. With strict set, status updates
// must follow domain.CanTransition.
func NewReportService(
	reports ports.ReportRepository,
	users ports.UserRepository,
	ledger ports.PointsLedger,
	strict bool,
	log zerolog.Logger,
) ports.ReportService {
	return &reportService{
		reports: reports,
		users:   users,
		ledger:  ledger,
		strict:  strict,
		log:     log,
	}
}

func (s *reportService) Create(ctx context.Context, caller domain.Caller, in ports.CreateReportInput) (*domain.Report, error) {
	if err := domain.Authorize(caller.Role, domain.RelationNone, domain.RuleAuthenticated); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	category := strings.TrimSpace(in.Category)
	if title == "" || description == "" || category == "" || in.Location == nil {
		return nil, fmt.Errorf("%w: missing required fields", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	images := in.ImageURLs
	if images == nil {
		images = []string{}
	}
	report := &domain.Report{
		ID:            uuid.NewString(),
		CaseNumber:    domain.FormatCaseNumber(now, rand.Intn(1000)),
		Title:         title,
		Description:   description,
		Category:      category,
		IsAnonymous:   in.IsAnonymous,
		Location:      *in.Location,
		ImageURLs:     images,
		Status:        domain.StatusVerifying,
		PriorityLevel: domain.MinPriority,
		UserID:        caller.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.reports.Create(ctx, report); err != nil {
		s.log.Error().Err(err).Msg("failed to create report")
		return nil, err
	}

	s.log.Info().
		Str("report_id", report.ID).
		Str("case_number", report.CaseNumber).
		Str("user_id", caller.ID).
		Msg("report created")
	return report, nil
}

func (s *reportService) Get(ctx context.Context, caller domain.Caller, id string) (*domain.Report, error) {
	return s.loadAuthorized(ctx, caller, id, domain.RuleReportAccess)
}

func (s *reportService) ListMine(ctx context.Context, caller domain.Caller) ([]*domain.Report, error) {
	if err := domain.Authorize(caller.Role, domain.RelationNone, domain.RuleAuthenticated); err != nil {
		return nil, err
	}
	reports, _, err := s.reports.List(ctx, ports.ListReportsFilter{OwnerID: caller.ID})
	return reports, err
}

func (s *reportService) ListAssigned(ctx context.Context, caller domain.Caller) ([]*domain.Report, error) {
	if err := domain.Authorize(caller.Role, domain.RelationNone, domain.RulePatrol); err != nil {
		return nil, err
	}
	reports, _, err := s.reports.List(ctx, ports.ListReportsFilter{PatrolID: caller.ID})
	return reports, err
}

func (s *reportService) ListAll(ctx context.Context, caller domain.Caller, in ports.ListReportsInput) (*ports.ReportList, error) {
	if err := domain.Authorize(caller.Role, domain.RelationNone, domain.RuleAdmin); err != nil {
		return nil, err
	}
	if in.Status != "" && !domain.ReportStatus(in.Status).Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, in.Status)
	}

	limit, offset := clampPage(in.Limit, in.Offset, defaultPageSize)
	reports, total, err := s.reports.List(ctx, ports.ListReportsFilter{
		Status: in.Status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	return &ports.ReportList{Reports: reports, Total: total}, nil
}

// UpdateStatus writes the new status. A move into resolved goes through the
// ledger, which awards the owner ResolutionReward points the first time.
func (s *reportService) UpdateStatus(ctx context.Context, caller domain.Caller, id, status string) (*ports.StatusChange, error) {
	next := domain.ReportStatus(status)
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}

	report, err := s.loadAuthorized(ctx, caller, id, domain.RuleReportAccess)
	if err != nil {
		return nil, err
	}

	if s.strict && !domain.CanTransition(report.Status, next) {
		return nil, fmt.Errorf("%w: %w (from %s to %s)", domain.ErrInvalidInput, domain.ErrInvalidTransition, report.Status, next)
	}

	now := time.Now().UTC()
	change := &ports.StatusChange{ReportID: id, Status: next}
	if next != domain.StatusResolved {
		if err := s.reports.UpdateStatus(ctx, id, next, now); err != nil {
			return nil, fmt.Errorf("update status: %w", err)
		}
	} else {
		// The status write and the award commit together.
		awarded, err := s.ledger.AwardResolution(ctx, id, now, &domain.LedgerEntry{
			ID:        uuid.NewString(),
			UserID:    report.UserID,
			Points:    domain.ResolutionReward,
			Reason:    domain.ReasonReportResolved,
			ReportID:  id,
			Timestamp: now,
			AddedBy:   caller.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("resolve report: %w", err)
		}
		change.PointsAwarded = awarded
	}

	s.log.Info().
		Str("report_id", id).
		Str("from", string(report.Status)).
		Str("to", string(next)).
		Str("actor", caller.ID).
		Bool("points_awarded", change.PointsAwarded).
		Msg("report status updated")
	return change, nil
}

func (s *reportService) Assign(ctx context.Context, caller domain.Caller, id, patrolID string) error {
	if err := domain.Authorize(caller.Role, domain.RelationNone, domain.RuleAdmin); err != nil {
		return err
	}
	patrolID = strings.TrimSpace(patrolID)
	if patrolID == "" {
		return fmt.Errorf("%w: patrol user id is required", domain.ErrInvalidInput)
	}

	patrol, err := s.users.FindByID(ctx, patrolID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if patrol == nil || patrol.Role != domain.RolePatrol {
		return fmt.Errorf("%w: invalid patrol user", domain.ErrInvalidInput)
	}

	if err := s.reports.Assign(ctx, id, patrolID, time.Now().UTC()); err != nil {
		return err
	}
	s.log.Info().Str("report_id", id).Str("patrol_id", patrolID).Str("actor", caller.ID).Msg("report assigned")
	return nil
}

func (s *reportService) UpdatePriority(ctx context.Context, caller domain.Caller, id string, priority int) error {
	if err := domain.Authorize(caller.Role, domain.RelationNone, domain.RuleAdmin); err != nil {
		return err
	}
	if !domain.ValidPriority(priority) {
		return fmt.Errorf("%w: priority level must be between %d and %d", domain.ErrInvalidInput, domain.MinPriority, domain.MaxPriority)
	}
	return s.reports.UpdatePriority(ctx, id, priority, time.Now().UTC())
}

func (s *reportService) AttachProof(ctx context.Context, caller domain.Caller, id string, urls []string) error {
	cleaned := make([]string, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			cleaned = append(cleaned, u)
		}
	}
	if len(cleaned) == 0 {
		return fmt.Errorf("%w: at least one image url is required", domain.ErrInvalidInput)
	}

	if _, err := s.loadAuthorized(ctx, caller, id, domain.RuleProofUpload); err != nil {
		return err
	}
	if err := s.reports.AddProofImages(ctx, id, cleaned, time.Now().UTC()); err != nil {
		return err
	}
	s.log.Info().Str("report_id", id).Int("images", len(cleaned)).Str("actor", caller.ID).Msg("proof images attached")
	return nil
}

// loadAuthorized fetches a report and checks rule against the caller's
// relation to it. A missing report wins over a forbidden one.
func (s *reportService) loadAuthorized(ctx context.Context, caller domain.Caller, id string, rule domain.Rule) (*domain.Report, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(caller.Role, report.RelationTo(caller.ID), rule); err != nil {
		return nil, err
	}
	return report, nil
}
