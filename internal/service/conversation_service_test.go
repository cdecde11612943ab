package service

import (
	"context"
	"testing"
	"time"

	"tuiter/internal/domain"
)

func TestConversationServiceDirect(t *testing.T) {
	repo := newFakeMessageRepo()
	messages := NewMessageService(repo, nil)
	svc := NewConversationService(messages, nil)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.messages["m1"] = domain.Message{ID: "m1", SenderID: "alice", RecipientID: "bob", Body: "hello", SentOn: base}
	repo.messages["m2"] = domain.Message{ID: "m2", SenderID: "bob", RecipientID: "alice", Body: "hi", SentOn: base.Add(time.Minute)}

	msgs, err := svc.Direct(context.Background(), "alice", "bob")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(msgs) != 2 || msgs[0].Body != "hi" || msgs[1].Body != "hello" {
		t.Fatalf("expected newest-first conversation, got %v", msgs)
	}
}

func TestConversationServiceGroup(t *testing.T) {
	repo := newFakeGroupMessageRepo()
	groupMessages := NewGroupMessageService(repo, nil, &staticGuard{})
	svc := NewConversationService(nil, groupMessages)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.messages["m1"] = domain.GroupMessage{ID: "m1", GroupID: "g1", SenderID: "alice", Body: "primero", SentOn: base}
	repo.messages["m2"] = domain.GroupMessage{ID: "m2", GroupID: "g1", SenderID: "bob", Body: "segundo", SentOn: base.Add(time.Minute)}

	msgs, err := svc.Group(context.Background(), "g1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(msgs) != 2 || msgs[0].Body != "primero" {
		t.Fatalf("expected chronological group conversation, got %v", msgs)
	}
}

func TestConversationServiceNotConfigured(t *testing.T) {
	svc := NewConversationService(nil, nil)

	if _, err := svc.Direct(context.Background(), "a", "b"); err != ErrConversationServiceNotConfigured {
		t.Fatalf("expected ErrConversationServiceNotConfigured, got %v", err)
	}
	if _, err := svc.Group(context.Background(), "g1"); err != ErrConversationServiceNotConfigured {
		t.Fatalf("expected ErrConversationServiceNotConfigured, got %v", err)
	}
}
