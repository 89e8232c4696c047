package handler

import (
	"time"

	"github.com/cars-g/reporting-api/internal/core/domain"
)

// sendMessageRequest carries no tags: the service owns the trim and length rules.
type sendMessageRequest struct {
	Text string `json:"text"`
}

type sendMessageResponse struct {
	ID              string      `json:"id"`
	Text            string      `json:"text"`
	UserID          string      `json:"userId"`
	UserDisplayName string      `json:"userDisplayName"`
	UserRole        domain.Role `json:"userRole"`
	IsAdminReply    bool        `json:"isAdminReply"`
	CreatedAt       time.Time   `json:"createdAt"`
	Message         string      `json:"message"`
}

type messagesResponse struct {
	Messages []*domain.Message `json:"messages"`
}

type conversationsResponse struct {
	Conversations []domain.ConversationSummary `json:"conversations"`
}
