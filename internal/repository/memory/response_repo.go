package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"datepoll/internal/domain"
)

// ResponseRepository is an in-memory domain.ResponseRepository. Responses
// are returned in insertion order. Safe for concurrent use.
type ResponseRepository struct {
	mu    sync.RWMutex
	byID  map[string]*domain.Response
	order []string
}

func NewResponseRepository() *ResponseRepository {
	return &ResponseRepository{
		byID: make(map[string]*domain.Response),
	}
}

func cloneResponse(resp *domain.Response) *domain.Response {
	c := *resp
	c.Availability = append([]bool(nil), resp.Availability...)
	return &c
}

func (r *ResponseRepository) Create(ctx context.Context, resp *domain.Response) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	resp.ID = uuid.NewString()
	r.byID[resp.ID] = cloneResponse(resp)
	r.order = append(r.order, resp.ID)
	return nil
}

func (r *ResponseRepository) GetByID(ctx context.Context, id string) (*domain.Response, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	resp, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneResponse(resp), nil
}

func (r *ResponseRepository) GetByEventID(ctx context.Context, eventID string) ([]*domain.Response, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	responses := make([]*domain.Response, 0)
	for _, id := range r.order {
		if resp, ok := r.byID[id]; ok && resp.EventID == eventID {
			responses = append(responses, cloneResponse(resp))
		}
	}
	return responses, nil
}

func (r *ResponseRepository) Update(ctx context.Context, id, name string, availability []bool) (*domain.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resp, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	resp.Name = name
	resp.Availability = append([]bool(nil), availability...)
	return cloneResponse(resp), nil
}

func (r *ResponseRepository) DeleteByEventID(ctx context.Context, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.order[:0]
	for _, id := range r.order {
		if resp, ok := r.byID[id]; ok && resp.EventID == eventID {
			delete(r.byID, id)
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	return nil
}
