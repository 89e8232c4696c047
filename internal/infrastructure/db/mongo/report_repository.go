package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cars-g/reporting-api/internal/core/domain"
	"github.com/cars-g/reporting-api/internal/core/ports"
)

// ReportRepository implements ports.ReportRepository over the reports collection.
type ReportRepository struct {
	col *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{col: db.Collection(collectionReports)}
}

// Create inserts a new report document.
func (r *ReportRepository) Create(ctx context.Context, rep *domain.Report) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, rep); err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *ReportRepository) FindByID(ctx context.Context, id string) (*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rep domain.Report
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rep); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("find report: %w", err)
	}
	return &rep, nil
}

// List returns reports ordered by creation descending.
func (r *ReportRepository) List(ctx context.Context, f ports.ListReportsFilter) ([]*domain.Report, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.OwnerID != "" {
		filter["userId"] = f.OwnerID
	}
	if f.PatrolID != "" {
		filter["patrolUserId"] = f.PatrolID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	cur, err := r.col.Find(ctx, filter, findOptions("createdAt", -1, f.Limit, f.Offset))
	if err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}
	reports := make([]*domain.Report, 0)
	if err := cur.All(ctx, &reports); err != nil {
		return nil, 0, fmt.Errorf("decode reports: %w", err)
	}
	return reports, total, nil
}

func (r *ReportRepository) UpdateStatus(ctx context.Context, id string, status domain.ReportStatus, at time.Time) error {
	return r.update(ctx, id, bson.M{"$set": bson.M{"status": status, "updatedAt": at}})
}

func (r *ReportRepository) Assign(ctx context.Context, id, patrolID string, at time.Time) error {
	return r.update(ctx, id, bson.M{"$set": bson.M{"patrolUserId": patrolID, "updatedAt": at}})
}

func (r *ReportRepository) UpdatePriority(ctx context.Context, id string, priority int, at time.Time) error {
	return r.update(ctx, id, bson.M{"$set": bson.M{"priorityLevel": priority, "updatedAt": at}})
}

func (r *ReportRepository) AddProofImages(ctx context.Context, id string, urls []string, at time.Time) error {
	return r.update(ctx, id, bson.M{
		"$push": bson.M{"proofImages": bson.M{"$each": urls}},
		"$set":  bson.M{"updatedAt": at},
	})
}

func (r *ReportRepository) update(ctx context.Context, id string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update report: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

// CountResolvedByOwner groups resolved reports by owner.
func (r *ReportRepository) CountResolvedByOwner(ctx context.Context) (map[string]int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": domain.StatusResolved}}},
		{{Key: "$group", Value: bson.M{"_id": "$userId", "count": bson.M{"$sum": 1}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count resolved: %w", err)
	}

	var rows []struct {
		UserID string `bson:"_id"`
		Count  int    `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode resolved counts: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.UserID] = row.Count
	}
	return counts, nil
}
