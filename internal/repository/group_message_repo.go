package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tuiter/internal/domain"
)

// GroupMessageRepository define el contrato de persistencia para
// mensajes de grupo.
type GroupMessageRepository interface {
	Create(ctx context.Context, msg domain.GroupMessage) error
	GetByID(ctx context.Context, id string) (domain.GroupMessage, error)
	DeleteByID(ctx context.Context, id string) error
	// ListForGroup devuelve los mensajes del grupo en orden
	// cronológico ascendente.
	ListForGroup(ctx context.Context, groupID string) ([]domain.GroupMessage, error)
	// GetMostRecent devuelve el mensaje con mayor sent_on del grupo, o
	// ErrNotFound si el grupo no tiene mensajes.
	GetMostRecent(ctx context.Context, groupID string) (domain.GroupMessage, error)
	DeleteAllForGroup(ctx context.Context, groupID string) (int64, error)
}

// PgGroupMessageRepository implementa GroupMessageRepository usando pgxpool.
type PgGroupMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgGroupMessageRepository(pool *pgxpool.Pool) *PgGroupMessageRepository {
	return &PgGroupMessageRepository{pool: pool}
}

func (r *PgGroupMessageRepository) Create(ctx context.Context, msg domain.GroupMessage) error {
	const query = `
		INSERT INTO group_messages (id, group_id, sender_id, body, sent_on)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		msg.ID,
		msg.GroupID,
		msg.SenderID,
		msg.Body,
		msg.SentOn,
	)
	return err
}

func (r *PgGroupMessageRepository) GetByID(ctx context.Context, id string) (domain.GroupMessage, error) {
	const query = `
		SELECT id, group_id, sender_id, body, sent_on
		FROM group_messages
		WHERE id = $1
	`
	var msg domain.GroupMessage
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&msg.ID,
		&msg.GroupID,
		&msg.SenderID,
		&msg.Body,
		&msg.SentOn,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.GroupMessage{}, ErrNotFound
	}
	return msg, err
}

func (r *PgGroupMessageRepository) DeleteByID(ctx context.Context, id string) error {
	const query = `DELETE FROM group_messages WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *PgGroupMessageRepository) ListForGroup(ctx context.Context, groupID string) ([]domain.GroupMessage, error) {
	const query = `
		SELECT id, group_id, sender_id, body, sent_on
		FROM group_messages
		WHERE group_id = $1
		ORDER BY sent_on ASC
	`
	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.GroupMessage
	for rows.Next() {
		var msg domain.GroupMessage
		if err := rows.Scan(&msg.ID, &msg.GroupID, &msg.SenderID, &msg.Body, &msg.SentOn); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *PgGroupMessageRepository) GetMostRecent(ctx context.Context, groupID string) (domain.GroupMessage, error) {
	const query = `
		SELECT id, group_id, sender_id, body, sent_on
		FROM group_messages
		WHERE group_id = $1
		ORDER BY sent_on DESC
		LIMIT 1
	`
	var msg domain.GroupMessage
	err := r.pool.QueryRow(ctx, query, groupID).Scan(
		&msg.ID,
		&msg.GroupID,
		&msg.SenderID,
		&msg.Body,
		&msg.SentOn,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.GroupMessage{}, ErrNotFound
	}
	return msg, err
}

func (r *PgGroupMessageRepository) DeleteAllForGroup(ctx context.Context, groupID string) (int64, error) {
	const query = `DELETE FROM group_messages WHERE group_id = $1`
	tag, err := r.pool.Exec(ctx, query, groupID)
	return tag.RowsAffected(), err
}
