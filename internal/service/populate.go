package service

import (
	"context"

	"tuiter/internal/domain"
	"tuiter/internal/repository"
)

// userPopulator resuelve referencias a usuarios en el lado de lectura.
// Un lookup fallido nunca tumba la lectura principal: el mensaje sale
// con los ids pelados.
type userPopulator struct {
	users repository.UserRepository
}

func (p userPopulator) user(ctx context.Context, id string) *domain.User {
	if p.users == nil || id == "" {
		return nil
	}
	u, err := p.users.GetByID(ctx, id)
	if err != nil {
		return nil
	}
	return &u
}

func (p userPopulator) message(ctx context.Context, msg *domain.Message) {
	msg.Sender = p.user(ctx, msg.SenderID)
	msg.Recipient = p.user(ctx, msg.RecipientID)
}

func (p userPopulator) messages(ctx context.Context, msgs []domain.Message) {
	for i := range msgs {
		p.message(ctx, &msgs[i])
	}
}

func (p userPopulator) groupMessage(ctx context.Context, msg *domain.GroupMessage) {
	msg.Sender = p.user(ctx, msg.SenderID)
}

func (p userPopulator) groupMessages(ctx context.Context, msgs []domain.GroupMessage) {
	for i := range msgs {
		p.groupMessage(ctx, &msgs[i])
	}
}

func (p userPopulator) groupMembers(ctx context.Context, g *domain.Group) {
	var members []domain.User
	for _, id := range g.MemberIDs {
		if u := p.user(ctx, id); u != nil {
			members = append(members, *u)
		}
	}
	g.Members = members
}
