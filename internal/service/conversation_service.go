package service

import (
	"context"
	"errors"

	"tuiter/internal/domain"
)

// ConversationService es la capa fina de composición que resuelve una
// conversación sin exponer qué store la respalda: un par de usuarios
// va al store de mensajes directos, un grupo al de mensajes de grupo.
type ConversationService struct {
	messages      *MessageService
	groupMessages *GroupMessageService
}

var ErrConversationServiceNotConfigured = errors.New("conversation service not configured")

func NewConversationService(messages *MessageService, groupMessages *GroupMessageService) *ConversationService {
	return &ConversationService{
		messages:      messages,
		groupMessages: groupMessages,
	}
}

// Direct devuelve la conversación entre dos usuarios, más reciente
// primero.
func (s *ConversationService) Direct(ctx context.Context, userA, userB string) ([]domain.Message, error) {
	if s == nil || s.messages == nil {
		return nil, ErrConversationServiceNotConfigured
	}
	return s.messages.Between(ctx, userA, userB)
}

// Group devuelve la conversación del grupo en orden cronológico.
func (s *ConversationService) Group(ctx context.Context, groupID string) ([]domain.GroupMessage, error) {
	if s == nil || s.groupMessages == nil {
		return nil, ErrConversationServiceNotConfigured
	}
	return s.groupMessages.ForGroup(ctx, groupID)
}
