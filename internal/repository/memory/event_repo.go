// Package memory provides in-memory implementations of the storage
// contracts. They satisfy the same interfaces as the postgres package and
// are used for local development and tests that don't need a database.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"datepoll/internal/domain"
)

// EventRepository is an in-memory domain.EventRepository. Safe for
// concurrent use.
type EventRepository struct {
	mu     sync.RWMutex
	byID   map[string]*domain.Event
	bySlug map[string]string // slug -> id
}

func NewEventRepository() *EventRepository {
	return &EventRepository{
		byID:   make(map[string]*domain.Event),
		bySlug: make(map[string]string),
	}
}

func cloneEvent(e *domain.Event) *domain.Event {
	c := *e
	c.Dates = append([]time.Time(nil), e.Dates...)
	if e.Description != nil {
		desc := *e.Description
		c.Description = &desc
	}
	return &c
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.bySlug[e.Slug]; taken {
		return domain.ErrDuplicateSlug
	}
	e.ID = uuid.NewString()
	r.byID[e.ID] = cloneEvent(e)
	r.bySlug[e.Slug] = e.ID
	return nil
}

func (r *EventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.bySlug[strings.TrimSpace(slug)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneEvent(r.byID[id]), nil
}

func (r *EventRepository) Update(ctx context.Context, id string, title, description *string, deadline *time.Time) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if title != nil {
		e.Title = *title
	}
	if description != nil {
		desc := *description
		e.Description = &desc
	}
	if deadline != nil {
		e.Deadline = *deadline
	}
	return cloneEvent(e), nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok {
		// Idempotent, same as the postgres backend.
		return nil
	}
	delete(r.bySlug, e.Slug)
	delete(r.byID, id)
	return nil
}

func (r *EventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	events := make([]*domain.Event, 0, len(r.byID))
	for _, e := range r.byID {
		events = append(events, cloneEvent(e))
	}
	return events, nil
}
