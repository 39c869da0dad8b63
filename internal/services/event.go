package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"datepoll/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	responseRepo   domain.ResponseRepository
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	responseRepo domain.ResponseRepository,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		responseRepo:   responseRepo,
		contextTimeout: timeout,
	}
}

const (
	slugLength = 10
	// Length used after a collision. Collisions at 10 alphanumeric
	// characters are already vanishingly rare; growing the slug makes a
	// second one rarer still.
	slugRetryLength = 12
	slugMaxAttempts = 3
)

var slugAlphabet = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

func generateSlug(length int) (string, error) {
	b := make([]rune, length)
	max := big.NewInt(int64(len(slugAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = slugAlphabet[n.Int64()]
	}
	return string(b), nil
}

func (s *eventService) CreateEvent(ctx context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Organizer) == "" {
		return nil, fmt.Errorf("%w: organizer is required", domain.ErrInvalidInput)
	}
	if len(in.Dates) == 0 {
		return nil, fmt.Errorf("%w: at least one candidate date is required", domain.ErrInvalidInput)
	}
	if in.Deadline.IsZero() {
		return nil, fmt.Errorf("%w: deadline is required", domain.ErrInvalidInput)
	}

	event := domain.NewEvent(in.Title, in.Description, in.Organizer, in.Dates, in.Time, in.Deadline, time.Now())

	length := slugLength
	for attempt := 0; attempt < slugMaxAttempts; attempt++ {
		slug, err := generateSlug(length)
		if err != nil {
			return nil, fmt.Errorf("generate slug: %w", err)
		}
		event.Slug = slug
		err = s.eventRepo.Create(ctx, event)
		if err == nil {
			return event, nil
		}
		if !errors.Is(err, domain.ErrDuplicateSlug) {
			return nil, fmt.Errorf("create event: %w", err)
		}
		length = slugRetryLength
	}
	return nil, fmt.Errorf("create event: %w", domain.ErrDuplicateSlug)
}

func (s *eventService) GetEventView(ctx context.Context, slug string) (*domain.EventView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	responses, err := s.responseRepo.GetByEventID(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	if responses == nil {
		responses = []*domain.Response{}
	}

	return &domain.EventView{
		Event:       event,
		Responses:   responses,
		Aggregation: domain.Aggregate(event.Dates, responses),
	}, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, slug string, upd domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", domain.ErrInvalidInput)
	}
	if upd.Deadline != nil && upd.Deadline.IsZero() {
		return nil, fmt.Errorf("%w: deadline must be a valid timestamp", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	updated, err := s.eventRepo.Update(ctx, event.ID, upd.Title, upd.Description, upd.Deadline)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

// validateResponse holds the submission rules shared by SubmitResponse and
// UpdateResponse: the deadline must not have passed, the name must be
// non-empty, and the availability must align with the event's dates.
func validateResponse(event *domain.Event, name string, availability []bool) error {
	if time.Now().After(event.Deadline) {
		return domain.ErrDeadlinePassed
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if len(availability) != len(event.Dates) {
		return fmt.Errorf("%w: availability must have exactly %d entries, got %d",
			domain.ErrInvalidInput, len(event.Dates), len(availability))
	}
	return nil
}

func (s *eventService) SubmitResponse(ctx context.Context, slug, name string, availability []bool) (*domain.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err := validateResponse(event, name, availability); err != nil {
		return nil, err
	}

	response := domain.NewResponse(event.ID, name, availability, time.Now())
	if err := s.responseRepo.Create(ctx, response); err != nil {
		return nil, fmt.Errorf("create response: %w", err)
	}
	return response, nil
}

func (s *eventService) UpdateResponse(ctx context.Context, slug, responseID, name string, availability []bool) (*domain.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err := validateResponse(event, name, availability); err != nil {
		return nil, err
	}

	existing, err := s.responseRepo.GetByID(ctx, responseID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get response: %w", err)
	}
	// A response can only be edited through its own event's slug.
	if existing.EventID != event.ID {
		return nil, domain.ErrNotFound
	}

	updated, err := s.responseRepo.Update(ctx, responseID, name, availability)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update response: %w", err)
	}
	return updated, nil
}
