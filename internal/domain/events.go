package domain

import "time"

const (
	ResourceDish  = "dish"
	ResourceOrder = "order"

	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// Event is published after a mutation has been applied to a store.
type Event struct {
	Type       string    `json:"type"` // e.g. "dish.created"
	Resource   string    `json:"resource"`
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

func NewEvent(resource, kind, id string, data any) Event {
	return Event{
		Type:       resource + "." + kind,
		Resource:   resource,
		ID:         id,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}
