package http

import (
	"net/http"
	"testing"

	"tuiter/internal/domain"
)

func TestGroupMessageHandlerSend_MembershipGate(t *testing.T) {
	env := newTestEnv(t, nil)

	env.groups.groups["g1"] = domain.Group{ID: "g1", Name: "equipo", MemberIDs: []string{"alice", "bob"}}

	w := env.do(t, http.MethodPost, "/users/alice/group-messages/g1", `{"body":"hi"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for member, got %d: %s", w.Code, w.Body.String())
	}

	// carol no es miembro: rechazada sin tocar la conversación.
	w = env.do(t, http.MethodPost, "/users/carol/group-messages/g1", `{"body":"intruso"}`, "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-member, got %d", w.Code)
	}

	w = env.do(t, http.MethodGet, "/group-messages/g1", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Messages []domain.GroupMessage `json:"messages"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Messages) != 1 || resp.Messages[0].Body != "hi" {
		t.Fatalf("expected conversation with only the member's message, got %v", resp.Messages)
	}
}

func TestGroupMessageHandlerSend_MissingGroup(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/users/alice/group-messages/missing", `{"body":"hola"}`, "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for missing group, got %d", w.Code)
	}
}

func TestGroupMessageHandlerResolve(t *testing.T) {
	env := newTestEnv(t, nil)

	env.groups.groups["g1"] = domain.Group{ID: "g1", Name: "equipo", MemberIDs: []string{"alice"}}
	env.groupMessages.messages["m1"] = domain.GroupMessage{ID: "m1", GroupID: "g1", SenderID: "alice", Body: "hola"}

	// Id de grupo: responde la conversación completa.
	w := env.do(t, http.MethodGet, "/group-messages/g1", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var list struct {
		Messages []domain.GroupMessage `json:"messages"`
	}
	decodeBody(t, w, &list)
	if len(list.Messages) != 1 {
		t.Fatalf("expected 1 message in conversation, got %v", list.Messages)
	}

	// Id de mensaje: responde el mensaje individual.
	w = env.do(t, http.MethodGet, "/group-messages/m1", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var single struct {
		Message domain.GroupMessage `json:"message"`
	}
	decodeBody(t, w, &single)
	if single.Message.Body != "hola" {
		t.Fatalf("expected individual message, got %v", single.Message)
	}

	w = env.do(t, http.MethodGet, "/group-messages/unknown", "", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGroupMessageHandlerDelete_Idempotent(t *testing.T) {
	env := newTestEnv(t, nil)

	env.groupMessages.messages["m1"] = domain.GroupMessage{ID: "m1", GroupID: "g1", SenderID: "alice", Body: "hola"}

	w := env.do(t, http.MethodDelete, "/group-messages/m1", "", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	w = env.do(t, http.MethodDelete, "/group-messages/m1", "", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on repeated delete, got %d", w.Code)
	}
}
