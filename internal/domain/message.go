package domain

import "time"

// AttachmentKind etiqueta el tipo de adjunto de un mensaje directo.
type AttachmentKind string

const (
	AttachmentPDF AttachmentKind = "pdf"
	AttachmentJPG AttachmentKind = "jpg"
)

// Message representa un mensaje directo entre dos usuarios. La
// identidad (id, sender_id, sent_on) es inmutable tras la creación;
// solo body y attachment admiten update.
type Message struct {
	ID          string         `json:"id"`
	SenderID    string         `json:"sender_id"`
	RecipientID string         `json:"recipient_id"`
	Body        string         `json:"body"`
	Attachment  AttachmentKind `json:"attachment,omitempty"`
	SentOn      time.Time      `json:"sent_on"`

	// Poblados en lecturas cuando el lookup de usuarios responde;
	// en caso contrario quedan nil y los ids bastan.
	Sender    *User `json:"sender,omitempty"`
	Recipient *User `json:"recipient,omitempty"`
}

// MessagePatch describe una actualización parcial de un mensaje.
type MessagePatch struct {
	Body       *string         `json:"body,omitempty"`
	Attachment *AttachmentKind `json:"attachment,omitempty"`
}
