package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cars-g/reporting-api/internal/core/domain"
	"github.com/cars-g/reporting-api/internal/core/ports"
)

// MessageRepository implements ports.MessageRepository over the messages collection.
type MessageRepository struct {
	col *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{col: db.Collection(collectionMessages)}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *MessageRepository) List(ctx context.Context, f ports.MessageFilter) ([]*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	switch {
	case f.SenderID != "" && f.IncludeAdminReplies:
		filter["$or"] = bson.A{bson.M{"userId": f.SenderID}, bson.M{"isAdminReply": true}}
	case f.SenderID != "":
		filter["userId"] = f.SenderID
	}

	cur, err := r.col.Find(ctx, filter, findOptions("createdAt", 1, f.Limit, f.Offset))
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	messages := make([]*domain.Message, 0)
	if err := cur.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return messages, nil
}

// DistinctSenders orders senders by their latest message, newest first.
func (r *MessageRepository) DistinctSenders(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$userId", "last": bson.M{"$max": "$createdAt"}}}},
		{{Key: "$sort", Value: bson.D{{Key: "last", Value: -1}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("distinct senders: %w", err)
	}

	var rows []struct {
		UserID string `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode senders: %w", err)
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.UserID)
	}
	return ids, nil
}

func (r *MessageRepository) LatestBySender(ctx context.Context, senderID string) (*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var m domain.Message
	if err := r.col.FindOne(ctx, bson.M{"userId": senderID}, opts).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("latest message: %w", err)
	}
	return &m, nil
}

// Delete is best-effort: an absent id is not an error.
func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}
