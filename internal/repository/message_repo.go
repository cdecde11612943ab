package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tuiter/internal/domain"
)

// MessageRepository define el contrato de persistencia para mensajes
// directos entre dos usuarios.
type MessageRepository interface {
	Create(ctx context.Context, msg domain.Message) error
	GetByID(ctx context.Context, id string) (domain.Message, error)
	Update(ctx context.Context, id string, patch domain.MessagePatch) error
	DeleteByID(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]domain.Message, error)
	ListSentBy(ctx context.Context, userID string) ([]domain.Message, error)
	ListReceivedBy(ctx context.Context, userID string) ([]domain.Message, error)
	// ListBetween devuelve los mensajes intercambiados entre ambos
	// usuarios en cualquiera de las dos direcciones, del más reciente
	// al más antiguo.
	ListBetween(ctx context.Context, userA, userB string) ([]domain.Message, error)
	DeleteAllSentBy(ctx context.Context, userID string) (int64, error)
	DeleteAllReceivedBy(ctx context.Context, userID string) (int64, error)
}

// PgMessageRepository implementa MessageRepository usando pgxpool.
type PgMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

func (r *PgMessageRepository) Create(ctx context.Context, msg domain.Message) error {
	const query = `
		INSERT INTO messages (id, sender_id, recipient_id, body, attachment, sent_on)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	var attachment interface{}
	if msg.Attachment != "" {
		attachment = string(msg.Attachment)
	}

	_, err := r.pool.Exec(ctx, query,
		msg.ID,
		msg.SenderID,
		msg.RecipientID,
		msg.Body,
		attachment,
		msg.SentOn,
	)
	return err
}

func (r *PgMessageRepository) GetByID(ctx context.Context, id string) (domain.Message, error) {
	const query = `
		SELECT id, sender_id, recipient_id, body, attachment, sent_on
		FROM messages
		WHERE id = $1
	`
	msg, err := scanMessageRow(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Message{}, ErrNotFound
	}
	return msg, err
}

func (r *PgMessageRepository) Update(ctx context.Context, id string, patch domain.MessagePatch) error {
	const query = `
		UPDATE messages
		SET body = COALESCE($2, body), attachment = COALESCE($3, attachment)
		WHERE id = $1
	`

	var attachment *string
	if patch.Attachment != nil {
		value := string(*patch.Attachment)
		attachment = &value
	}

	tag, err := r.pool.Exec(ctx, query, id, patch.Body, attachment)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgMessageRepository) DeleteByID(ctx context.Context, id string) error {
	const query = `DELETE FROM messages WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *PgMessageRepository) ListAll(ctx context.Context) ([]domain.Message, error) {
	const query = `
		SELECT id, sender_id, recipient_id, body, attachment, sent_on
		FROM messages
		ORDER BY sent_on DESC
	`
	return r.queryMessages(ctx, query)
}

func (r *PgMessageRepository) ListSentBy(ctx context.Context, userID string) ([]domain.Message, error) {
	const query = `
		SELECT id, sender_id, recipient_id, body, attachment, sent_on
		FROM messages
		WHERE sender_id = $1
		ORDER BY sent_on DESC
	`
	return r.queryMessages(ctx, query, userID)
}

func (r *PgMessageRepository) ListReceivedBy(ctx context.Context, userID string) ([]domain.Message, error) {
	const query = `
		SELECT id, sender_id, recipient_id, body, attachment, sent_on
		FROM messages
		WHERE recipient_id = $1
		ORDER BY sent_on DESC
	`
	return r.queryMessages(ctx, query, userID)
}

func (r *PgMessageRepository) ListBetween(ctx context.Context, userA, userB string) ([]domain.Message, error) {
	// El filtro cubre ambas direcciones del intercambio; un filtro de
	// una sola dirección rompe la simetría de la conversación.
	const query = `
		SELECT id, sender_id, recipient_id, body, attachment, sent_on
		FROM messages
		WHERE (sender_id = $1 AND recipient_id = $2)
		   OR (sender_id = $2 AND recipient_id = $1)
		ORDER BY sent_on DESC
	`
	return r.queryMessages(ctx, query, userA, userB)
}

func (r *PgMessageRepository) DeleteAllSentBy(ctx context.Context, userID string) (int64, error) {
	const query = `DELETE FROM messages WHERE sender_id = $1`
	tag, err := r.pool.Exec(ctx, query, userID)
	return tag.RowsAffected(), err
}

func (r *PgMessageRepository) DeleteAllReceivedBy(ctx context.Context, userID string) (int64, error) {
	const query = `DELETE FROM messages WHERE recipient_id = $1`
	tag, err := r.pool.Exec(ctx, query, userID)
	return tag.RowsAffected(), err
}

func (r *PgMessageRepository) queryMessages(ctx context.Context, query string, args ...interface{}) ([]domain.Message, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		msg, err := scanMessageRow(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

func scanMessageRow(row pgx.Row) (domain.Message, error) {
	var msg domain.Message
	var attachment *string

	err := row.Scan(
		&msg.ID,
		&msg.SenderID,
		&msg.RecipientID,
		&msg.Body,
		&attachment,
		&msg.SentOn,
	)
	if err != nil {
		return domain.Message{}, err
	}
	if attachment != nil {
		msg.Attachment = domain.AttachmentKind(*attachment)
	}
	return msg, nil
}
