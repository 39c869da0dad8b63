package domain

import (
	"context"
	"time"
)

// Event is a scheduling poll: an organizer proposes candidate dates and
// invitees answer availability against them. The slug is the public lookup
// key; there is no authentication.
// swagger:model Event
type Event struct {
	ID          string      `json:"id"`
	Slug        string      `json:"slug"`
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	Organizer   string      `json:"organizer"`
	Dates       []time.Time `json:"dates"`
	Time        string      `json:"time,omitempty"`
	Deadline    time.Time   `json:"deadline"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// NewEvent returns a new Event with the given fields. ID is set by the
// repository on create; Slug is set by the service before create.
func NewEvent(title string, description *string, organizer string, dates []time.Time, timeOfDay string, deadline, createdAt time.Time) *Event {
	return &Event{
		Title:       title,
		Description: description,
		Organizer:   organizer,
		Dates:       dates,
		Time:        timeOfDay,
		Deadline:    deadline,
		CreatedAt:   createdAt,
	}
}

// LastDate returns the latest candidate date, or the zero time if the event
// has none.
func (e *Event) LastDate() time.Time {
	var last time.Time
	for _, d := range e.Dates {
		if d.After(last) {
			last = d
		}
	}
	return last
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	// Create stores the event and assigns its ID. Returns ErrDuplicateSlug
	// if the slug is already taken.
	Create(ctx context.Context, event *Event) error
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	// Update merges only the non-nil fields into the stored record. Dates,
	// slug, organizer, and time are never modified by this operation.
	Update(ctx context.Context, id string, title, description *string, deadline *time.Time) (*Event, error)
	// Delete removes the event. Deleting an unknown id is not an error, so
	// a partially failed cleanup pass can be retried.
	Delete(ctx context.Context, id string) error
	// ListAll returns every stored event. Used by the expiry sweep.
	ListAll(ctx context.Context) ([]*Event, error)
}

// CreateEventInput carries the organizer-supplied fields for a new event.
type CreateEventInput struct {
	Title       string
	Description *string
	Organizer   string
	Dates       []time.Time
	Time        string
	Deadline    time.Time
}

// EventUpdate carries the narrow set of updatable event fields. Nil fields
// are left unchanged.
type EventUpdate struct {
	Title       *string
	Description *string
	Deadline    *time.Time
}

// EventView bundles an event with its responses and their aggregation.
type EventView struct {
	Event       *Event      `json:"event"`
	Responses   []*Response `json:"responses"`
	Aggregation Aggregation `json:"aggregation"`
}

// EventService defines the poll-facing business logic.
type EventService interface {
	CreateEvent(ctx context.Context, in CreateEventInput) (*Event, error)
	GetEventView(ctx context.Context, slug string) (*EventView, error)
	UpdateEvent(ctx context.Context, slug string, upd EventUpdate) (*Event, error)
	SubmitResponse(ctx context.Context, slug, name string, availability []bool) (*Response, error)
	UpdateResponse(ctx context.Context, slug, responseID, name string, availability []bool) (*Response, error)
}

// CleanupService removes events whose last candidate date is older than the
// retention window, cascading to their responses.
type CleanupService interface {
	// CleanupExpiredEvents runs one sweep and returns how many events were
	// removed. Per-event failures are logged and retried on the next sweep.
	CleanupExpiredEvents(ctx context.Context) (int, error)
}
