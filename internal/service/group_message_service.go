package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"tuiter/internal/domain"
	"tuiter/internal/repository"
)

// MembershipGuard decide si un usuario pertenece a un grupo. La
// implementación base es GroupService; puede envolverse con una caché.
type MembershipGuard interface {
	IsMember(ctx context.Context, userID, groupID string) (bool, error)
}

// GroupMessageService encapsula la lógica de mensajes de grupo. El
// envío verifica membresía antes de persistir; entre el chequeo y la
// escritura hay una ventana de carrera aceptada (consistencia débil,
// sin aislamiento serializable).
type GroupMessageService struct {
	repo     repository.GroupMessageRepository
	guard    MembershipGuard
	populate userPopulator
}

var (
	ErrGroupMessageServiceNotConfigured = errors.New("group message service not configured")
	ErrGroupMessageInvalidInput         = errors.New("group message invalid input")
	ErrGroupMessageNotFound             = errors.New("group message not found")
	ErrNotGroupMember                   = errors.New("sender is not a group member")
)

func NewGroupMessageService(repo repository.GroupMessageRepository, users repository.UserRepository, guard MembershipGuard) *GroupMessageService {
	return &GroupMessageService{
		repo:     repo,
		guard:    guard,
		populate: userPopulator{users: users},
	}
}

// Send verifica la membresía del remitente y persiste el mensaje con
// sent_on asignado por el servidor.
func (s *GroupMessageService) Send(ctx context.Context, senderID, groupID, body string) (domain.GroupMessage, error) {
	if s == nil || s.repo == nil || s.guard == nil {
		return domain.GroupMessage{}, ErrGroupMessageServiceNotConfigured
	}

	senderID = strings.TrimSpace(senderID)
	groupID = strings.TrimSpace(groupID)
	body = strings.TrimSpace(body)
	if senderID == "" || groupID == "" || body == "" {
		return domain.GroupMessage{}, ErrGroupMessageInvalidInput
	}

	member, err := s.guard.IsMember(ctx, senderID, groupID)
	if err != nil {
		return domain.GroupMessage{}, err
	}
	if !member {
		return domain.GroupMessage{}, ErrNotGroupMember
	}

	msg := domain.GroupMessage{
		ID:       uuid.NewString(),
		GroupID:  groupID,
		SenderID: senderID,
		Body:     body,
		SentOn:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return domain.GroupMessage{}, err
	}
	s.populate.groupMessage(ctx, &msg)
	return msg, nil
}

func (s *GroupMessageService) Get(ctx context.Context, id string) (domain.GroupMessage, error) {
	if s == nil || s.repo == nil {
		return domain.GroupMessage{}, ErrGroupMessageServiceNotConfigured
	}
	msg, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if errors.Is(err, repository.ErrNotFound) {
		return domain.GroupMessage{}, ErrGroupMessageNotFound
	}
	if err != nil {
		return domain.GroupMessage{}, err
	}
	s.populate.groupMessage(ctx, &msg)
	return msg, nil
}

// Delete es idempotente: borrar un id ausente también es éxito.
func (s *GroupMessageService) Delete(ctx context.Context, id string) error {
	if s == nil || s.repo == nil {
		return ErrGroupMessageServiceNotConfigured
	}
	return s.repo.DeleteByID(ctx, strings.TrimSpace(id))
}

// ForGroup devuelve la conversación del grupo en orden cronológico.
func (s *GroupMessageService) ForGroup(ctx context.Context, groupID string) ([]domain.GroupMessage, error) {
	if s == nil || s.repo == nil {
		return nil, ErrGroupMessageServiceNotConfigured
	}
	groupID = strings.TrimSpace(groupID)
	if groupID == "" {
		return []domain.GroupMessage{}, nil
	}
	msgs, err := s.repo.ListForGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	s.populate.groupMessages(ctx, msgs)
	return msgs, nil
}

// MostRecent devuelve el último mensaje del grupo, o nil sin error
// cuando el grupo no tiene mensajes.
func (s *GroupMessageService) MostRecent(ctx context.Context, groupID string) (*domain.GroupMessage, error) {
	if s == nil || s.repo == nil {
		return nil, ErrGroupMessageServiceNotConfigured
	}
	msg, err := s.repo.GetMostRecent(ctx, strings.TrimSpace(groupID))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.populate.groupMessage(ctx, &msg)
	return &msg, nil
}
