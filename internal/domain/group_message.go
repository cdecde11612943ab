package domain

import "time"

// GroupMessage representa un mensaje enviado a un grupo. El remitente
// debía ser miembro del grupo al momento del envío; la membresía no se
// revalida retroactivamente.
type GroupMessage struct {
	ID       string    `json:"id"`
	GroupID  string    `json:"group_id"`
	SenderID string    `json:"sender_id"`
	Body     string    `json:"body"`
	SentOn   time.Time `json:"sent_on"`

	Sender *User `json:"sender,omitempty"`
}

// GroupSummary combina un grupo con su mensaje más reciente para
// vistas de listado.
type GroupSummary struct {
	Group         Group         `json:"group"`
	LatestMessage *GroupMessage `json:"latest_message,omitempty"`
}
