package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tuiter/internal/domain"
)

// GroupRepository define el contrato de persistencia para grupos y su
// conjunto de miembros.
type GroupRepository interface {
	Create(ctx context.Context, group domain.Group) error
	GetByID(ctx context.Context, id string) (domain.Group, error)
	Update(ctx context.Context, id string, patch domain.GroupPatch) error
	// DeleteByID es idempotente: borrar un id inexistente no es error.
	DeleteByID(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]domain.Group, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Group, error)
}

// PgGroupRepository implementa GroupRepository usando pgxpool.
type PgGroupRepository struct {
	pool *pgxpool.Pool
}

func NewPgGroupRepository(pool *pgxpool.Pool) *PgGroupRepository {
	return &PgGroupRepository{pool: pool}
}

func (r *PgGroupRepository) Create(ctx context.Context, group domain.Group) error {
	const query = `
		INSERT INTO groups (id, name, member_ids, created_on)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query,
		group.ID,
		group.Name,
		group.MemberIDs,
		group.CreatedOn,
	)
	return err
}

func (r *PgGroupRepository) GetByID(ctx context.Context, id string) (domain.Group, error) {
	const query = `
		SELECT id, name, member_ids, created_on
		FROM groups
		WHERE id = $1
	`
	var g domain.Group
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&g.ID,
		&g.Name,
		&g.MemberIDs,
		&g.CreatedOn,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Group{}, ErrNotFound
	}
	return g, err
}

func (r *PgGroupRepository) Update(ctx context.Context, id string, patch domain.GroupPatch) error {
	const query = `
		UPDATE groups
		SET name = COALESCE($2, name),
		    member_ids = COALESCE($3, member_ids)
		WHERE id = $1
	`

	var memberIDs interface{}
	if patch.MemberIDs != nil {
		memberIDs = patch.MemberIDs
	}

	tag, err := r.pool.Exec(ctx, query, id, patch.Name, memberIDs)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgGroupRepository) DeleteByID(ctx context.Context, id string) error {
	const query = `DELETE FROM groups WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *PgGroupRepository) ListAll(ctx context.Context) ([]domain.Group, error) {
	const query = `
		SELECT id, name, member_ids, created_on
		FROM groups
		ORDER BY created_on ASC
	`
	return r.queryGroups(ctx, query)
}

func (r *PgGroupRepository) ListForUser(ctx context.Context, userID string) ([]domain.Group, error) {
	// Orden estable por fecha de creación para paginación futura.
	const query = `
		SELECT id, name, member_ids, created_on
		FROM groups
		WHERE $1 = ANY(member_ids)
		ORDER BY created_on ASC
	`
	return r.queryGroups(ctx, query, userID)
}

func (r *PgGroupRepository) queryGroups(ctx context.Context, query string, args ...interface{}) ([]domain.Group, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.MemberIDs, &g.CreatedOn); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}
