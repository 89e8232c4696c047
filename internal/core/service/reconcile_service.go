package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cars-g/reporting-api/internal/core/domain"
	"github.com/cars-g/reporting-api/internal/core/ports"
)

const reconcileBatchSize = 100

type reconcileService struct {
	users   ports.UserRepository
	reports ports.ReportRepository
	log     zerolog.Logger
}

// NewReconcileService returns a ReconcileService implementation.
func NewReconcileService(users ports.UserRepository, reports ports.ReportRepository, log zerolog.Logger) ports.ReconcileService {
	return &reconcileService{users: users, reports: reports, log: log}
}

// Reconcile walks every profile and reports those whose persisted points
// differ from ResolutionReward times their resolved reports. Points are
// never rewritten.
func (s *reconcileService) Reconcile(ctx context.Context) ([]domain.PointsDrift, error) {
	resolved, err := s.reports.CountResolvedByOwner(ctx)
	if err != nil {
		return nil, err
	}

	var drift []domain.PointsDrift
	for offset := 0; ; offset += reconcileBatchSize {
		users, _, err := s.users.List(ctx, ports.ListUsersFilter{Limit: reconcileBatchSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			derived := resolved[u.ID] * domain.ResolutionReward
			if u.Points != derived {
				drift = append(drift, domain.PointsDrift{UserID: u.ID, Persisted: u.Points, Derived: derived})
				s.log.Warn().
					Str("user_id", u.ID).
					Int("persisted", u.Points).
					Int("derived", derived).
					Msg("points drift detected")
			}
		}
		if len(users) < reconcileBatchSize {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	s.log.Info().Int("drifted", len(drift)).Msg("points reconciliation finished")
	return drift, nil
}
