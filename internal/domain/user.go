package domain

import "time"

// User es una entidad externa al subsistema de mensajería; solo se
// consulta por id para poblar respuestas.
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
