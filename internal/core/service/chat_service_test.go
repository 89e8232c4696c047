package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cars-g/reporting-api/internal/core/domain"
	"github.com/cars-g/reporting-api/internal/core/ports"
)

func TestChatService_Send(t *testing.T) {
	svc := NewChatService(&stubMessageRepo{}, newStubUserRepo(), discardLogger)
	ctx := context.Background()

	cases := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"empty", "", true},
		{"whitespace only", "   \n\t", true},
		{"too long", strings.Repeat("x", 1001), true},
		{"exactly max", strings.Repeat("x", 1000), false},
		{"single char", "a", false},
		{"trimmed within bounds", "  " + strings.Repeat("y", 1000) + "  ", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Send(ctx, domain.Caller{ID: "alice", Role: domain.RoleUser}, tc.text)
			if tc.wantErr && !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestChatService_Send_AdminReplyFlag(t *testing.T) {
	repo := &stubMessageRepo{}
	svc := NewChatService(repo, newStubUserRepo(), discardLogger)

	for _, role := range []domain.Role{domain.RoleUser, domain.RolePatrol, domain.RoleAdmin, domain.RoleSuperAdmin} {
		msg, err := svc.Send(context.Background(), domain.Caller{ID: "x", DisplayName: "X", Role: role}, "  hello  ")
		if err != nil {
			t.Fatalf("role %s: %v", role, err)
		}
		if msg.IsAdminReply != role.IsAdmin() {
			t.Errorf("role %s: isAdminReply=%v", role, msg.IsAdminReply)
		}
		if msg.Text != "hello" || msg.UserRole != role || msg.UserDisplayName != "X" {
			t.Errorf("role %s: unexpected snapshot %+v", role, msg)
		}
	}
}

func seedMessages(repo *stubMessageRepo) {
	base := time.Now().UTC()
	repo.messages = []*domain.Message{
		{ID: "m1", UserID: "alice", Text: "help", CreatedAt: base},
		{ID: "m2", UserID: "bob", Text: "hi", CreatedAt: base.Add(time.Second)},
		{ID: "m3", UserID: "admin", Text: "on it", IsAdminReply: true, UserRole: domain.RoleAdmin, CreatedAt: base.Add(2 * time.Second)},
		{ID: "m4", UserID: "alice", Text: "thanks", CreatedAt: base.Add(3 * time.Second)},
	}
}

func TestChatService_List_Visibility(t *testing.T) {
	repo := &stubMessageRepo{}
	seedMessages(repo)
	svc := NewChatService(repo, newStubUserRepo(), discardLogger)
	ctx := context.Background()

	mine, err := svc.List(ctx, domain.Caller{ID: "alice", Role: domain.RoleUser}, ports.ListMessagesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var ids []string
	for _, m := range mine {
		ids = append(ids, m.ID)
	}
	if strings.Join(ids, ",") != "m1,m3,m4" {
		t.Fatalf("expected own messages plus admin replies, got %v", ids)
	}

	all, err := svc.List(ctx, domain.Caller{ID: "admin", Role: domain.RoleAdmin}, ports.ListMessagesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("admin should see all 4 messages, got %d", len(all))
	}
}

func TestChatService_AdminOnlyOperations(t *testing.T) {
	repo := &stubMessageRepo{}
	seedMessages(repo)
	svc := NewChatService(repo, newStubUserRepo(), discardLogger)
	ctx := context.Background()
	patrol := domain.Caller{ID: "p", Role: domain.RolePatrol}

	if _, err := svc.Conversation(ctx, patrol, "alice", 0); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("conversation: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Conversations(ctx, patrol); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("conversations: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, patrol, "m1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("delete: expected ErrForbidden, got %v", err)
	}
	if err := svc.MarkRead(ctx, patrol, "alice"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("mark read: expected ErrForbidden, got %v", err)
	}
}

func TestChatService_Conversation(t *testing.T) {
	repo := &stubMessageRepo{}
	seedMessages(repo)
	svc := NewChatService(repo, newStubUserRepo(), discardLogger)

	msgs, err := svc.Conversation(context.Background(), domain.Caller{ID: "admin", Role: domain.RoleAdmin}, "alice", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 2 || msgs[0].ID != "m1" || msgs[1].ID != "m4" {
		t.Fatalf("expected alice's messages in ascending order, got %+v", msgs)
	}
}

func TestChatService_Conversations(t *testing.T) {
	repo := &stubMessageRepo{}
	seedMessages(repo)
	users := newStubUserRepo(testUser("alice", domain.RoleUser), testUser("admin", domain.RoleAdmin))
	svc := NewChatService(repo, users, discardLogger)

	summaries, err := svc.Conversations(context.Background(), domain.Caller{ID: "admin", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("expected 3 senders, got %d", len(summaries))
	}

	byID := make(map[string]domain.ConversationSummary)
	for _, s := range summaries {
		byID[s.UserID] = s
		if s.IsOnline {
			t.Errorf("%s: presence is never reported online", s.UserID)
		}
	}
	if byID["alice"].LastMessage == nil || byID["alice"].LastMessage.Text != "thanks" {
		t.Errorf("expected alice's last message to be 'thanks', got %+v", byID["alice"].LastMessage)
	}
	if byID["bob"].UserDisplayName != "Unknown User" || byID["bob"].UserRole != domain.RoleUser {
		t.Errorf("missing profile should fall back to Unknown User, got %+v", byID["bob"])
	}
}

func TestChatService_Delete_BestEffort(t *testing.T) {
	repo := &stubMessageRepo{}
	seedMessages(repo)
	svc := NewChatService(repo, newStubUserRepo(), discardLogger)
	admin := domain.Caller{ID: "admin", Role: domain.RoleSuperAdmin}

	if err := svc.Delete(context.Background(), admin, "m1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(context.Background(), admin, "does-not-exist"); err != nil {
		t.Fatalf("deleting an absent id must succeed, got %v", err)
	}
	if len(repo.messages) != 3 {
		t.Fatalf("expected 3 remaining messages, got %d", len(repo.messages))
	}
}
