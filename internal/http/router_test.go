package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tuiter/internal/domain"
	"tuiter/internal/repository"
	"tuiter/internal/service"
)

type fakeMessageRepo struct {
	messages map[string]domain.Message
}

func (f *fakeMessageRepo) Create(_ context.Context, msg domain.Message) error {
	f.messages[msg.ID] = msg
	return nil
}

func (f *fakeMessageRepo) GetByID(_ context.Context, id string) (domain.Message, error) {
	msg, ok := f.messages[id]
	if !ok {
		return domain.Message{}, repository.ErrNotFound
	}
	return msg, nil
}

func (f *fakeMessageRepo) Update(_ context.Context, id string, patch domain.MessagePatch) error {
	msg, ok := f.messages[id]
	if !ok {
		return repository.ErrNotFound
	}
	if patch.Body != nil {
		msg.Body = *patch.Body
	}
	if patch.Attachment != nil {
		msg.Attachment = *patch.Attachment
	}
	f.messages[id] = msg
	return nil
}

func (f *fakeMessageRepo) DeleteByID(_ context.Context, id string) error {
	delete(f.messages, id)
	return nil
}

func (f *fakeMessageRepo) ListAll(_ context.Context) ([]domain.Message, error) {
	return f.filter(func(domain.Message) bool { return true }), nil
}

func (f *fakeMessageRepo) ListSentBy(_ context.Context, userID string) ([]domain.Message, error) {
	return f.filter(func(m domain.Message) bool { return m.SenderID == userID }), nil
}

func (f *fakeMessageRepo) ListReceivedBy(_ context.Context, userID string) ([]domain.Message, error) {
	return f.filter(func(m domain.Message) bool { return m.RecipientID == userID }), nil
}

func (f *fakeMessageRepo) ListBetween(_ context.Context, userA, userB string) ([]domain.Message, error) {
	return f.filter(func(m domain.Message) bool {
		return (m.SenderID == userA && m.RecipientID == userB) ||
			(m.SenderID == userB && m.RecipientID == userA)
	}), nil
}

func (f *fakeMessageRepo) DeleteAllSentBy(_ context.Context, userID string) (int64, error) {
	var count int64
	for id, m := range f.messages {
		if m.SenderID == userID {
			delete(f.messages, id)
			count++
		}
	}
	return count, nil
}

func (f *fakeMessageRepo) DeleteAllReceivedBy(_ context.Context, userID string) (int64, error) {
	var count int64
	for id, m := range f.messages {
		if m.RecipientID == userID {
			delete(f.messages, id)
			count++
		}
	}
	return count, nil
}

func (f *fakeMessageRepo) filter(keep func(domain.Message) bool) []domain.Message {
	var out []domain.Message
	for _, m := range f.messages {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SentOn.After(out[j].SentOn) })
	return out
}

type fakeGroupRepo struct {
	groups map[string]domain.Group
}

func (f *fakeGroupRepo) Create(_ context.Context, group domain.Group) error {
	f.groups[group.ID] = group
	return nil
}

func (f *fakeGroupRepo) GetByID(_ context.Context, id string) (domain.Group, error) {
	g, ok := f.groups[id]
	if !ok {
		return domain.Group{}, repository.ErrNotFound
	}
	return g, nil
}

func (f *fakeGroupRepo) Update(_ context.Context, id string, patch domain.GroupPatch) error {
	g, ok := f.groups[id]
	if !ok {
		return repository.ErrNotFound
	}
	if patch.Name != nil {
		g.Name = *patch.Name
	}
	if patch.MemberIDs != nil {
		g.MemberIDs = patch.MemberIDs
	}
	f.groups[id] = g
	return nil
}

func (f *fakeGroupRepo) DeleteByID(_ context.Context, id string) error {
	delete(f.groups, id)
	return nil
}

func (f *fakeGroupRepo) ListAll(_ context.Context) ([]domain.Group, error) {
	return f.filter(func(domain.Group) bool { return true }), nil
}

func (f *fakeGroupRepo) ListForUser(_ context.Context, userID string) ([]domain.Group, error) {
	return f.filter(func(g domain.Group) bool { return g.HasMember(userID) }), nil
}

func (f *fakeGroupRepo) filter(keep func(domain.Group) bool) []domain.Group {
	var out []domain.Group
	for _, g := range f.groups {
		if keep(g) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedOn.Before(out[j].CreatedOn) })
	return out
}

type fakeGroupMessageRepo struct {
	messages map[string]domain.GroupMessage
}

func (f *fakeGroupMessageRepo) Create(_ context.Context, msg domain.GroupMessage) error {
	f.messages[msg.ID] = msg
	return nil
}

func (f *fakeGroupMessageRepo) GetByID(_ context.Context, id string) (domain.GroupMessage, error) {
	m, ok := f.messages[id]
	if !ok {
		return domain.GroupMessage{}, repository.ErrNotFound
	}
	return m, nil
}

func (f *fakeGroupMessageRepo) DeleteByID(_ context.Context, id string) error {
	delete(f.messages, id)
	return nil
}

func (f *fakeGroupMessageRepo) ListForGroup(_ context.Context, groupID string) ([]domain.GroupMessage, error) {
	var out []domain.GroupMessage
	for _, m := range f.messages {
		if m.GroupID == groupID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SentOn.Before(out[j].SentOn) })
	return out, nil
}

func (f *fakeGroupMessageRepo) GetMostRecent(_ context.Context, groupID string) (domain.GroupMessage, error) {
	var latest *domain.GroupMessage
	for id := range f.messages {
		m := f.messages[id]
		if m.GroupID != groupID {
			continue
		}
		if latest == nil || m.SentOn.After(latest.SentOn) {
			latest = &m
		}
	}
	if latest == nil {
		return domain.GroupMessage{}, repository.ErrNotFound
	}
	return *latest, nil
}

func (f *fakeGroupMessageRepo) DeleteAllForGroup(_ context.Context, groupID string) (int64, error) {
	var count int64
	for id, m := range f.messages {
		if m.GroupID == groupID {
			delete(f.messages, id)
			count++
		}
	}
	return count, nil
}

type fakeUserRepo struct {
	users map[string]domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return u, nil
}

type testEnv struct {
	router        *gin.Engine
	messages      *fakeMessageRepo
	groups        *fakeGroupRepo
	groupMessages *fakeGroupMessageRepo
	users         *fakeUserRepo
}

func newTestEnv(t *testing.T, jwtSvc *service.JWTService) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		messages:      &fakeMessageRepo{messages: map[string]domain.Message{}},
		groups:        &fakeGroupRepo{groups: map[string]domain.Group{}},
		groupMessages: &fakeGroupMessageRepo{messages: map[string]domain.GroupMessage{}},
		users:         &fakeUserRepo{users: map[string]domain.User{}},
	}

	logger := zap.NewNop()
	groupSvc := service.NewGroupService(env.groups, env.groupMessages, env.users)
	messageSvc := service.NewMessageService(env.messages, env.users)
	groupMessageSvc := service.NewGroupMessageService(env.groupMessages, env.users, groupSvc)
	conversationSvc := service.NewConversationService(messageSvc, groupMessageSvc)

	messageH := NewMessageHandler(logger, messageSvc, conversationSvc)
	groupH := NewGroupHandler(logger, groupSvc)
	groupMessageH := NewGroupMessageHandler(logger, groupMessageSvc, groupSvc, conversationSvc)

	env.router = NewRouter(logger, jwtSvc, messageH, groupH, groupMessageH)
	return env
}

func (env *testEnv) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
}
