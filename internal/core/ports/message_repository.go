package ports

import (
	"context"

	"github.com/cars-g/reporting-api/internal/core/domain"
)

// MessageFilter selects chat messages. An empty SenderID matches every sender.
// IncludeAdminReplies widens a sender-scoped query with all admin replies.
type MessageFilter struct {
	SenderID            string
	IncludeAdminReplies bool
	Limit               int
	Offset              int
}

// MessageRepository defines persistence operations for chat messages.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	// List returns messages ordered by creation ascending.
	List(ctx context.Context, filter MessageFilter) ([]*domain.Message, error)
	// DistinctSenders returns every sender id, most recently active first.
	DistinctSenders(ctx context.Context) ([]string, error)
	// LatestBySender returns domain.ErrMessageNotFound when the sender has no messages.
	LatestBySender(ctx context.Context, senderID string) (*domain.Message, error)
	// Delete removes a message. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}
