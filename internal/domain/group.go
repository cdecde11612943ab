package domain

import "time"

// Group representa un grupo de mensajería. MemberIDs nunca está vacío
// ni contiene duplicados; el creador forma parte del conjunto inicial.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	MemberIDs []string  `json:"member_ids"`
	CreatedOn time.Time `json:"created_on"`

	Members []User `json:"members,omitempty"`
}

// GroupPatch describe una actualización parcial de un grupo:
// renombrar y/o reemplazar la membresía.
type GroupPatch struct {
	Name      *string  `json:"name,omitempty"`
	MemberIDs []string `json:"member_ids,omitempty"`
}

// HasMember indica si el usuario pertenece al grupo.
func (g Group) HasMember(userID string) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
