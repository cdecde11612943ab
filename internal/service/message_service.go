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

// MessageService encapsula la lógica de mensajes directos entre
// usuarios.
type MessageService struct {
	repo     repository.MessageRepository
	populate userPopulator
}

var (
	ErrMessageServiceNotConfigured = errors.New("message service not configured")
	ErrMessageInvalidInput         = errors.New("message invalid input")
	ErrMessageNotFound             = errors.New("message not found")
)

func NewMessageService(repo repository.MessageRepository, users repository.UserRepository) *MessageService {
	return &MessageService{
		repo:     repo,
		populate: userPopulator{users: users},
	}
}

// Send valida y persiste un mensaje directo. El sent_on lo asigna
// siempre el servidor; nunca viene del cliente.
func (s *MessageService) Send(ctx context.Context, senderID, recipientID, body string, attachment domain.AttachmentKind) (domain.Message, error) {
	if s == nil || s.repo == nil {
		return domain.Message{}, ErrMessageServiceNotConfigured
	}

	senderID = strings.TrimSpace(senderID)
	recipientID = strings.TrimSpace(recipientID)
	body = strings.TrimSpace(body)

	if senderID == "" || recipientID == "" || body == "" {
		return domain.Message{}, ErrMessageInvalidInput
	}
	switch attachment {
	case "", domain.AttachmentPDF, domain.AttachmentJPG:
	default:
		return domain.Message{}, ErrMessageInvalidInput
	}

	msg := domain.Message{
		ID:          uuid.NewString(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
		Attachment:  attachment,
		SentOn:      time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return domain.Message{}, err
	}
	s.populate.message(ctx, &msg)
	return msg, nil
}

func (s *MessageService) Get(ctx context.Context, id string) (domain.Message, error) {
	if s == nil || s.repo == nil {
		return domain.Message{}, ErrMessageServiceNotConfigured
	}
	msg, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Message{}, ErrMessageNotFound
	}
	if err != nil {
		return domain.Message{}, err
	}
	s.populate.message(ctx, &msg)
	return msg, nil
}

// Update aplica un patch sobre body y attachment; la identidad del
// mensaje es inmutable.
func (s *MessageService) Update(ctx context.Context, id string, patch domain.MessagePatch) error {
	if s == nil || s.repo == nil {
		return ErrMessageServiceNotConfigured
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrMessageInvalidInput
	}
	if patch.Body != nil {
		body := strings.TrimSpace(*patch.Body)
		if body == "" {
			return ErrMessageInvalidInput
		}
		patch.Body = &body
	}
	if patch.Attachment != nil {
		switch *patch.Attachment {
		case domain.AttachmentPDF, domain.AttachmentJPG:
		default:
			return ErrMessageInvalidInput
		}
	}

	err := s.repo.Update(ctx, id, patch)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMessageNotFound
	}
	return err
}

// Delete es idempotente: borrar un id ausente también es éxito.
func (s *MessageService) Delete(ctx context.Context, id string) error {
	if s == nil || s.repo == nil {
		return ErrMessageServiceNotConfigured
	}
	return s.repo.DeleteByID(ctx, strings.TrimSpace(id))
}

func (s *MessageService) All(ctx context.Context) ([]domain.Message, error) {
	if s == nil || s.repo == nil {
		return nil, ErrMessageServiceNotConfigured
	}
	msgs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	s.populate.messages(ctx, msgs)
	return msgs, nil
}

func (s *MessageService) SentBy(ctx context.Context, userID string) ([]domain.Message, error) {
	if s == nil || s.repo == nil {
		return nil, ErrMessageServiceNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return []domain.Message{}, nil
	}
	msgs, err := s.repo.ListSentBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.populate.messages(ctx, msgs)
	return msgs, nil
}

func (s *MessageService) ReceivedBy(ctx context.Context, userID string) ([]domain.Message, error) {
	if s == nil || s.repo == nil {
		return nil, ErrMessageServiceNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return []domain.Message{}, nil
	}
	msgs, err := s.repo.ListReceivedBy(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.populate.messages(ctx, msgs)
	return msgs, nil
}

// Between devuelve la conversación entre dos usuarios, más reciente
// primero, sin importar quién envió cada mensaje.
func (s *MessageService) Between(ctx context.Context, userA, userB string) ([]domain.Message, error) {
	if s == nil || s.repo == nil {
		return nil, ErrMessageServiceNotConfigured
	}
	userA = strings.TrimSpace(userA)
	userB = strings.TrimSpace(userB)
	if userA == "" || userB == "" {
		return nil, ErrMessageInvalidInput
	}
	msgs, err := s.repo.ListBetween(ctx, userA, userB)
	if err != nil {
		return nil, err
	}
	s.populate.messages(ctx, msgs)
	return msgs, nil
}

func (s *MessageService) PurgeSentBy(ctx context.Context, userID string) (int64, error) {
	if s == nil || s.repo == nil {
		return 0, ErrMessageServiceNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, ErrMessageInvalidInput
	}
	return s.repo.DeleteAllSentBy(ctx, userID)
}

func (s *MessageService) PurgeReceivedBy(ctx context.Context, userID string) (int64, error) {
	if s == nil || s.repo == nil {
		return 0, ErrMessageServiceNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, ErrMessageInvalidInput
	}
	return s.repo.DeleteAllReceivedBy(ctx, userID)
}
