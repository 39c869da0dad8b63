package domain

import (
	"context"
	"time"
)

// Response is one invitee's availability answers for an event. Availability
// is positionally aligned to the owning event's Dates: Availability[i]
// answers Dates[i]. Names are not unique; the same name may submit again.
// swagger:model Response
type Response struct {
	ID           string    `json:"id"`
	EventID      string    `json:"eventId"`
	Name         string    `json:"name"`
	Availability []bool    `json:"availability"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewResponse returns a new Response with the given fields. ID is set by the
// repository on create.
func NewResponse(eventID, name string, availability []bool, createdAt time.Time) *Response {
	return &Response{
		EventID:      eventID,
		Name:         name,
		Availability: availability,
		CreatedAt:    createdAt,
	}
}

// ResponseRepository defines the interface for response storage.
type ResponseRepository interface {
	Create(ctx context.Context, response *Response) error
	GetByID(ctx context.Context, id string) (*Response, error)
	// GetByEventID returns all responses for the event in insertion order.
	GetByEventID(ctx context.Context, eventID string) ([]*Response, error)
	// Update replaces the name and availability of an existing response.
	Update(ctx context.Context, id, name string, availability []bool) (*Response, error)
	// DeleteByEventID removes every response for the event. Idempotent;
	// used by the expiry sweep cascade.
	DeleteByEventID(ctx context.Context, eventID string) error
}
