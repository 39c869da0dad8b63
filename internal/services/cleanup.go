package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"datepoll/internal/domain"
)

type cleanupService struct {
	eventRepo    domain.EventRepository
	responseRepo domain.ResponseRepository
	retention    time.Duration
	logger       *slog.Logger
	now          func() time.Time
}

// NewCleanupService returns a CleanupService that removes events whose last
// candidate date is more than retention in the past, together with their
// responses.
func NewCleanupService(eventRepo domain.EventRepository,
	responseRepo domain.ResponseRepository,
	retention time.Duration,
	logger *slog.Logger,
) domain.CleanupService {
	return &cleanupService{
		eventRepo:    eventRepo,
		responseRepo: responseRepo,
		retention:    retention,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *cleanupService) CleanupExpiredEvents(ctx context.Context) (int, error) {
	events, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list events: %w", err)
	}

	now := s.now()
	deleted := 0
	for _, e := range events {
		last := e.LastDate()
		if last.IsZero() || !now.After(last.Add(s.retention)) {
			continue
		}
		// Responses first; if the event delete fails the next sweep
		// finds the event still expired and finishes the job.
		if err := s.responseRepo.DeleteByEventID(ctx, e.ID); err != nil {
			s.logger.Error("cleanup: delete responses", "eventId", e.ID, "err", err)
			continue
		}
		if err := s.eventRepo.Delete(ctx, e.ID); err != nil {
			s.logger.Error("cleanup: delete event", "eventId", e.ID, "err", err)
			continue
		}
		deleted++
	}
	return deleted, nil
}
