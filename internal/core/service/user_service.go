package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cars-g/reporting-api/internal/core/domain"
	"github.com/cars-g/reporting-api/internal/core/ports"
)

const defaultLeaderboardSize = 10

type userService struct {
	users   ports.UserRepository
	reports ports.ReportRepository
	ledger  ports.PointsLedger
	log     zerolog.Logger
}

// NewUserService returns a UserService implementation.
func NewUserService(
	users ports.UserRepository,
	reports ports.ReportRepository,
	ledger ports.PointsLedger,
	log zerolog.Logger,
) ports.UserService {
	return &userService{users: users, reports: reports, ledger: ledger, log: log}
}

func (s *userService) List(ctx context.Context, caller domain.Caller, in ports.ListUsersInput) (*ports.UserList, error) {
	if err := domain.Authorize(caller.Role, domain.RelationNone, domain.RuleAdmin); err != nil {
		return nil, err
	}
	if in.Role != "" && !domain.Role(in.Role).Valid() {
		return nil, fmt.Errorf("%w: invalid role", domain.ErrInvalidInput)
	}

	limit, offset := clampPage(in.Limit, in.Offset, defaultPageSize)
	users, total, err := s.users.List(ctx, ports.ListUsersFilter{Role: in.Role, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ports.UserList{Users: users, Total: total}, nil
}

func (s *userService) Leaderboard(ctx context.Context, limit int) ([]ports.LeaderboardEntry, error) {
	limit, _ = clampPage(limit, 0, defaultLeaderboardSize)

	users, err := s.users.TopByPoints(ctx, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]ports.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, ports.LeaderboardEntry{
			ID:          u.ID,
			DisplayName: u.DisplayName,
			Points:      u.Points,
			Role:        u.Role,
			PhotoURL:    u.PhotoURL,
		})
	}
	return entries, nil
}

func (s *userService) Get(ctx context.Context, caller domain.Caller, id string) (*domain.User, error) {
	if err := domain.Authorize(caller.Role, domain.SubjectRelation(caller.ID, id), domain.RuleSubjectAccess); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}

// UpdateRole changes a profile's role. Granting superAdmin, or changing the
// role of an existing superAdmin, requires a superAdmin caller.
func (s *userService) UpdateRole(ctx context.Context, caller domain.Caller, id, role string) error {
	if err := domain.Authorize(caller.Role, domain.RelationNone, domain.RuleAdmin); err != nil {
		return err
	}
	next := domain.Role(role)
	if !next.Valid() {
		return fmt.Errorf("%w: invalid role", domain.ErrInvalidInput)
	}
	if next == domain.RoleSuperAdmin && caller.Role != domain.RoleSuperAdmin {
		return fmt.Errorf("%w: only superAdmin can assign superAdmin role", domain.ErrForbidden)
	}

	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleSuperAdmin && caller.Role != domain.RoleSuperAdmin {
		return fmt.Errorf("%w: only superAdmin can change a superAdmin", domain.ErrForbidden)
	}

	if err := s.users.UpdateRole(ctx, id, next, time.Now().UTC()); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Str("from", string(target.Role)).Str("to", role).Str("actor", caller.ID).Msg("user role updated")
	return nil
}

func (s *userService) SetBanned(ctx context.Context, caller domain.Caller, id string, banned bool) error {
	if err := domain.Authorize(caller.Role, domain.RelationNone, domain.RuleAdmin); err != nil {
		return err
	}

	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleSuperAdmin {
		return fmt.Errorf("%w: cannot ban superAdmin", domain.ErrForbidden)
	}

	if err := s.users.SetBanned(ctx, id, banned, time.Now().UTC()); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Bool("banned", banned).Str("actor", caller.ID).Msg("user ban status updated")
	return nil
}

func (s *userService) AdjustPoints(ctx context.Context, caller domain.Caller, id string, in ports.AdjustPointsInput) (*domain.LedgerEntry, error) {
	if err := domain.Authorize(caller.Role, domain.RelationNone, domain.RuleAdmin); err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = domain.ReasonManualAdjustment
	}
	entry := &domain.LedgerEntry{
		ID:        uuid.NewString(),
		UserID:    id,
		Points:    in.Points,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
		AddedBy:   caller.ID,
	}
	if err := s.ledger.Adjust(ctx, entry); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", id).Int("points", in.Points).Str("reason", reason).Str("actor", caller.ID).Msg("points adjusted")
	return entry, nil
}

func (s *userService) PointsHistory(ctx context.Context, caller domain.Caller, id string, limit int) ([]*domain.LedgerEntry, error) {
	if err := domain.Authorize(caller.Role, domain.SubjectRelation(caller.ID, id), domain.RuleSubjectAccess); err != nil {
		return nil, err
	}
	limit, _ = clampPage(limit, 0, defaultPageSize)
	return s.ledger.History(ctx, id, limit)
}

// Stats aggregates the subject's reports. TotalPoints is derived from resolved
// reports and may differ from the persisted points.
func (s *userService) Stats(ctx context.Context, caller domain.Caller, id string) (*domain.ReportStats, error) {
	if err := domain.Authorize(caller.Role, domain.SubjectRelation(caller.ID, id), domain.RuleSubjectAccess); err != nil {
		return nil, err
	}
	reports, _, err := s.reports.List(ctx, ports.ListReportsFilter{OwnerID: id})
	if err != nil {
		return nil, err
	}
	stats := domain.ComputeStats(reports)
	return &stats, nil
}
