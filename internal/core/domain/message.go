package domain

import "time"

// MaxMessageLength bounds the trimmed text of a chat message.
const MaxMessageLength = 1000

// Message is an immutable chat entry. Its sender fields are a snapshot taken
// at send time.
type Message struct {
	ID              string    `json:"id" bson:"_id"`
	Text            string    `json:"text" bson:"text"`
	UserID          string    `json:"userId" bson:"userId"`
	UserDisplayName string    `json:"userDisplayName" bson:"userDisplayName"`
	UserRole        Role      `json:"userRole" bson:"userRole"`
	IsAdminReply    bool      `json:"isAdminReply" bson:"isAdminReply"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
}

// ConversationSummary is the admin view of one sender's thread.
type ConversationSummary struct {
	UserID          string       `json:"userId"`
	UserDisplayName string       `json:"userDisplayName"`
	UserRole        Role         `json:"userRole"`
	LastMessage     *LastMessage `json:"lastMessage"`
	IsOnline        bool         `json:"isOnline"`
}

// LastMessage is the preview shown in a conversation summary.
type LastMessage struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
