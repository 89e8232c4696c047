package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cars-g/reporting-api/internal/core/domain"
	"github.com/cars-g/reporting-api/internal/core/ports"
)

const (
	defaultConversationSize = 100
	unknownDisplayName      = "Unknown User"
)

type chatService struct {
	messages ports.MessageRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

// NewChatService returns a ChatService implementation.
func NewChatService(messages ports.MessageRepository, users ports.UserRepository, log zerolog.Logger) ports.ChatService {
	return &chatService{messages: messages, users: users, log: log}
}

func (s *chatService) List(ctx context.Context, caller domain.Caller, in ports.ListMessagesInput) ([]*domain.Message, error) {
	if err := domain.Authorize(caller.Role, domain.RelationNone, domain.RuleAuthenticated); err != nil {
		return nil, err
	}

	limit, offset := clampPage(in.Limit, in.Offset, defaultPageSize)
	filter := ports.MessageFilter{Limit: limit, Offset: offset}
	if !caller.Role.IsAdmin() {
		filter.SenderID = caller.ID
		filter.IncludeAdminReplies = true
	}
	return s.messages.List(ctx, filter)
}

func (s *chatService) Send(ctx context.Context, caller domain.Caller, text string) (*domain.Message, error) {
	if err := domain.Authorize(caller.Role, domain.RelationNone, domain.RuleAuthenticated); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message text is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(text) > domain.MaxMessageLength {
		return nil, fmt.Errorf("%w: message too long (max %d characters)", domain.ErrInvalidInput, domain.MaxMessageLength)
	}

	msg := &domain.Message{
		ID:              uuid.NewString(),
		Text:            text,
		UserID:          caller.ID,
		UserDisplayName: caller.DisplayName,
		UserRole:        caller.Role,
		IsAdminReply:    caller.Role.IsAdmin(),
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *chatService) Conversation(ctx context.Context, caller domain.Caller, userID string, limit int) ([]*domain.Message, error) {
	if err := domain.Authorize(caller.Role, domain.RelationNone, domain.RuleAdmin); err != nil {
		return nil, err
	}
	limit, _ = clampPage(limit, 0, defaultConversationSize)
	return s.messages.List(ctx, ports.MessageFilter{SenderID: userID, Limit: limit})
}

// Conversations builds one summary per distinct sender. Presence is not
// tracked, so IsOnline is always false.
func (s *chatService) Conversations(ctx context.Context, caller domain.Caller) ([]domain.ConversationSummary, error) {
	if err := domain.Authorize(caller.Role, domain.RelationNone, domain.RuleAdmin); err != nil {
		return nil, err
	}

	senders, err := s.messages.DistinctSenders(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.ConversationSummary, 0, len(senders))
	for _, id := range senders {
		summary := domain.ConversationSummary{
			UserID:          id,
			UserDisplayName: unknownDisplayName,
			UserRole:        domain.RoleUser,
		}

		user, err := s.users.FindByID(ctx, id)
		switch {
		case err == nil:
			summary.UserDisplayName = user.DisplayName
			summary.UserRole = user.Role
		case !errors.Is(err, domain.ErrUserNotFound):
			return nil, err
		}

		last, err := s.messages.LatestBySender(ctx, id)
		switch {
		case err == nil:
			summary.LastMessage = &domain.LastMessage{Text: last.Text, CreatedAt: last.CreatedAt}
		case !errors.Is(err, domain.ErrMessageNotFound):
			return nil, err
		}

		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *chatService) Delete(ctx context.Context, caller domain.Caller, id string) error {
	if err := domain.Authorize(caller.Role, domain.RelationNone, domain.RuleAdmin); err != nil {
		return err
	}
	if err := s.messages.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("message_id", id).Str("actor", caller.ID).Msg("message deleted")
	return nil
}

// MarkRead is accepted but not persisted; messages carry no read state.
func (s *chatService) MarkRead(_ context.Context, caller domain.Caller, _ string) error {
	return domain.Authorize(caller.Role, domain.RelationNone, domain.RuleAdmin)
}
