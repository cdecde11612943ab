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

// GroupService encapsula la lógica de grupos y su membresía, y actúa
// como guardia de membresía para los mensajes de grupo.
type GroupService struct {
	groups        repository.GroupRepository
	groupMessages repository.GroupMessageRepository
	populate      userPopulator
}

var (
	ErrGroupServiceNotConfigured = errors.New("group service not configured")
	ErrGroupInvalidInput         = errors.New("group invalid input")
	ErrGroupNotFound             = errors.New("group not found")
)

func NewGroupService(groups repository.GroupRepository, groupMessages repository.GroupMessageRepository, users repository.UserRepository) *GroupService {
	return &GroupService{
		groups:        groups,
		groupMessages: groupMessages,
		populate:      userPopulator{users: users},
	}
}

// Create arma la membresía como la unión de los ids recibidos y el
// creador, sin duplicados; el creador siempre queda dentro.
func (s *GroupService) Create(ctx context.Context, creatorID string, memberIDs []string, name string) (domain.Group, error) {
	if s == nil || s.groups == nil {
		return domain.Group{}, ErrGroupServiceNotConfigured
	}

	creatorID = strings.TrimSpace(creatorID)
	name = strings.TrimSpace(name)
	if creatorID == "" || name == "" {
		return domain.Group{}, ErrGroupInvalidInput
	}

	members := dedupeIDs(append(memberIDs, creatorID))
	if len(members) == 0 {
		return domain.Group{}, ErrGroupInvalidInput
	}

	group := domain.Group{
		ID:        uuid.NewString(),
		Name:      name,
		MemberIDs: members,
		CreatedOn: time.Now().UTC(),
	}

	if err := s.groups.Create(ctx, group); err != nil {
		return domain.Group{}, err
	}
	return group, nil
}

func (s *GroupService) Get(ctx context.Context, id string) (domain.Group, error) {
	if s == nil || s.groups == nil {
		return domain.Group{}, ErrGroupServiceNotConfigured
	}
	group, err := s.groups.GetByID(ctx, strings.TrimSpace(id))
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Group{}, ErrGroupNotFound
	}
	if err != nil {
		return domain.Group{}, err
	}
	s.populate.groupMembers(ctx, &group)
	return group, nil
}

// Update renombra y/o reemplaza la membresía. El conjunto de miembros
// nunca puede quedar vacío.
func (s *GroupService) Update(ctx context.Context, id string, patch domain.GroupPatch) error {
	if s == nil || s.groups == nil {
		return ErrGroupServiceNotConfigured
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrGroupInvalidInput
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return ErrGroupInvalidInput
		}
		patch.Name = &name
	}
	if patch.MemberIDs != nil {
		members := dedupeIDs(patch.MemberIDs)
		if len(members) == 0 {
			return ErrGroupInvalidInput
		}
		patch.MemberIDs = members
	}

	err := s.groups.Update(ctx, id, patch)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrGroupNotFound
	}
	return err
}

// Delete borra el grupo y, en un segundo paso explícito, sus mensajes.
// No hay transacción entre ambos borrados; repetir la operación es
// inocuo porque los dos son idempotentes.
func (s *GroupService) Delete(ctx context.Context, id string) error {
	if s == nil || s.groups == nil || s.groupMessages == nil {
		return ErrGroupServiceNotConfigured
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrGroupInvalidInput
	}
	if _, err := s.groupMessages.DeleteAllForGroup(ctx, id); err != nil {
		return err
	}
	return s.groups.DeleteByID(ctx, id)
}

func (s *GroupService) All(ctx context.Context) ([]domain.Group, error) {
	if s == nil || s.groups == nil {
		return nil, ErrGroupServiceNotConfigured
	}
	return s.groups.ListAll(ctx)
}

// ForUser lista los grupos del usuario; con withLatest adjunta el
// mensaje más reciente de cada grupo para vistas de resumen.
func (s *GroupService) ForUser(ctx context.Context, userID string, withLatest bool) ([]domain.GroupSummary, error) {
	if s == nil || s.groups == nil {
		return nil, ErrGroupServiceNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return []domain.GroupSummary{}, nil
	}

	groups, err := s.groups.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.GroupSummary, 0, len(groups))
	for _, group := range groups {
		summary := domain.GroupSummary{Group: group}
		if withLatest && s.groupMessages != nil {
			latest, err := s.groupMessages.GetMostRecent(ctx, group.ID)
			switch {
			case err == nil:
				s.populate.groupMessage(ctx, &latest)
				summary.LatestMessage = &latest
			case errors.Is(err, repository.ErrNotFound):
				// Grupo sin mensajes: el resumen sale sin preview.
			default:
				return nil, err
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// IsMember indica si el usuario pertenece al grupo. Un grupo
// inexistente cuenta como no-membresía, no como error.
func (s *GroupService) IsMember(ctx context.Context, userID, groupID string) (bool, error) {
	if s == nil || s.groups == nil {
		return false, ErrGroupServiceNotConfigured
	}
	userID = strings.TrimSpace(userID)
	groupID = strings.TrimSpace(groupID)
	if userID == "" || groupID == "" {
		return false, nil
	}

	group, err := s.groups.GetByID(ctx, groupID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return group.HasMember(userID), nil
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
