package ports

import (
	"context"

	"github.com/cars-g/reporting-api/internal/core/domain"
)

// ListMessagesInput carries pagination for the message list.
type ListMessagesInput struct {
	Limit  int
	Offset int
}

// ChatService defines the messaging use cases.
type ChatService interface {
	// List returns every message to admins, and the caller's own messages
	// plus all admin replies to everyone else.
	List(ctx context.Context, caller domain.Caller, in ListMessagesInput) ([]*domain.Message, error)
	Send(ctx context.Context, caller domain.Caller, text string) (*domain.Message, error)
	Conversation(ctx context.Context, caller domain.Caller, userID string, limit int) ([]*domain.Message, error)
	Conversations(ctx context.Context, caller domain.Caller) ([]domain.ConversationSummary, error)
	Delete(ctx context.Context, caller domain.Caller, id string) error
	MarkRead(ctx context.Context, caller domain.Caller, userID string) error
}
