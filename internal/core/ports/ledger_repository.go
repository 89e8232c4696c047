package ports

import (
	"context"
	"time"

	"github.com/cars-g/reporting-api/internal/core/domain"
)

// PointsLedger applies points changes together with their audit entries.
// Every method that changes points does so in one transaction with the
// ledger append, so neither write can succeed alone.
type PointsLedger interface {
	// Adjust increments entry.UserID's points by entry.Points and appends entry.
	// Returns domain.ErrUserNotFound when the profile does not exist.
	Adjust(ctx context.Context, entry *domain.LedgerEntry) error

	// AwardResolution moves the report to resolved and, in the same
	// transaction, flips its pointsAwarded guard, increments the owner's
	// points and appends entry. When the report was already rewarded only the
	// status is written and it reports false. Nothing is written on error.
	AwardResolution(ctx context.Context, reportID string, at time.Time, entry *domain.LedgerEntry) (bool, error)

	// History returns at most limit entries for userID, newest first.
	History(ctx context.Context, userID string, limit int) ([]*domain.LedgerEntry, error)
}
