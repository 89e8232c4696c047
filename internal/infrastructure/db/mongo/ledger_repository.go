package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cars-g/reporting-api/internal/core/domain"
)

// PointsLedger implements ports.PointsLedger. Each points change runs in one
// transaction with its points_log entry, so it needs a replica set.
type PointsLedger struct {
	client  *mongo.Client
	users   *mongo.Collection
	reports *mongo.Collection
	log     *mongo.Collection
}

func NewPointsLedger(client *mongo.Client, db *mongo.Database) *PointsLedger {
	return &PointsLedger{
		client:  client,
		users:   db.Collection(collectionUsers),
		reports: db.Collection(collectionReports),
		log:     db.Collection(collectionPointsLog),
	}
}

func (l *PointsLedger) Adjust(ctx context.Context, entry *domain.LedgerEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return withTransaction(ctx, l.client, func(sc mongo.SessionContext) error {
		return l.apply(sc, entry)
	})
}

func (l *PointsLedger) AwardResolution(ctx context.Context, reportID string, at time.Time, entry *domain.LedgerEntry) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	awarded := false
	err := withTransaction(ctx, l.client, func(sc mongo.SessionContext) error {
		awarded = false

		res, err := l.reports.UpdateOne(sc,
			bson.M{"_id": reportID},
			bson.M{"$set": bson.M{"status": domain.StatusResolved, "updatedAt": at}},
		)
		if err != nil {
			return fmt.Errorf("resolve report: %w", err)
		}
		if res.MatchedCount == 0 {
			return domain.ErrReportNotFound
		}

		res, err = l.reports.UpdateOne(sc,
			bson.M{"_id": reportID, "pointsAwarded": bson.M{"$ne": true}},
			bson.M{"$set": bson.M{"pointsAwarded": true}},
		)
		if err != nil {
			return fmt.Errorf("flip award guard: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil
		}

		if err := l.apply(sc, entry); err != nil {
			return err
		}
		awarded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return awarded, nil
}

// apply increments the profile's points and appends entry within sc.
func (l *PointsLedger) apply(sc mongo.SessionContext, entry *domain.LedgerEntry) error {
	res, err := l.users.UpdateOne(sc,
		bson.M{"_id": entry.UserID},
		bson.M{
			"$inc": bson.M{"points": entry.Points},
			"$set": bson.M{"updatedAt": entry.Timestamp},
		},
	)
	if err != nil {
		return fmt.Errorf("increment points: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}

	if _, err := l.log.InsertOne(sc, entry); err != nil {
		return fmt.Errorf("append points log: %w", err)
	}
	return nil
}

func (l *PointsLedger) History(ctx context.Context, userID string, limit int) ([]*domain.LedgerEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := l.log.Find(ctx, bson.M{"userId": userID}, findOptions("timestamp", -1, limit, 0))
	if err != nil {
		return nil, fmt.Errorf("points history: %w", err)
	}
	entries := make([]*domain.LedgerEntry, 0)
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode points history: %w", err)
	}
	return entries, nil
}
