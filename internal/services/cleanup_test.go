package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"datepoll/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cleanupTestLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

const testRetention = 7 * 24 * time.Hour

func newTestCleanup(eventRepo *fakeEventRepo, responseRepo *fakeResponseRepo, now time.Time) *cleanupService {
	svc := NewCleanupService(eventRepo, responseRepo, testRetention, cleanupTestLogger).(*cleanupService)
	svc.now = func() time.Time { return now }
	return svc
}

func addEvent(repo *fakeEventRepo, id, slug string, dates ...time.Time) *domain.Event {
	e := &domain.Event{
		ID:        id,
		Slug:      slug,
		Title:     "t",
		Organizer: "o",
		Dates:     dates,
	}
	repo.byID[id] = e
	return e
}

func TestCleanupService_RetentionBoundary(t *testing.T) {
	ctx := context.Background()
	lastDate := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		now         time.Time
		wantDeleted int
	}{
		{"past the retention window deletes", time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC), 1},
		{"inside the retention window keeps", time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), 0},
		{"exactly at the threshold keeps", time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eventRepo := newFakeEventRepo()
			responseRepo := newFakeResponseRepo()
			addEvent(eventRepo, "ev-1", "slug-1", lastDate)
			svc := newTestCleanup(eventRepo, responseRepo, tt.now)

			deleted, err := svc.CleanupExpiredEvents(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDeleted, deleted)
			if tt.wantDeleted > 0 {
				assert.Empty(t, eventRepo.byID)
			} else {
				assert.Len(t, eventRepo.byID, 1)
			}
		})
	}
}

func TestCleanupService_UsesLatestDate(t *testing.T) {
	ctx := context.Background()
	eventRepo := newFakeEventRepo()
	responseRepo := newFakeResponseRepo()
	// The earliest date is long expired, but the latest keeps the event alive.
	addEvent(eventRepo, "ev-1", "slug-1",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	)
	svc := newTestCleanup(eventRepo, responseRepo, time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC))

	deleted, err := svc.CleanupExpiredEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
	assert.Len(t, eventRepo.byID, 1)
}

func TestCleanupService_CascadesToResponses(t *testing.T) {
	ctx := context.Background()
	eventRepo := newFakeEventRepo()
	responseRepo := newFakeResponseRepo()

	addEvent(eventRepo, "ev-old", "slug-old", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	addEvent(eventRepo, "ev-live", "slug-live", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, responseRepo.Create(ctx, &domain.Response{EventID: "ev-old", Name: "bob", Availability: []bool{true}}))
	require.NoError(t, responseRepo.Create(ctx, &domain.Response{EventID: "ev-live", Name: "carol", Availability: []bool{true}}))

	svc := newTestCleanup(eventRepo, responseRepo, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))
	deleted, err := svc.CleanupExpiredEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, ok := eventRepo.byID["ev-old"]
	assert.False(t, ok, "expired event must be gone")
	_, ok = eventRepo.byID["ev-live"]
	assert.True(t, ok, "live event must survive")

	oldResponses, err := responseRepo.GetByEventID(ctx, "ev-old")
	require.NoError(t, err)
	assert.Empty(t, oldResponses)
	liveResponses, err := responseRepo.GetByEventID(ctx, "ev-live")
	require.NoError(t, err)
	assert.Len(t, liveResponses, 1)
}

func TestCleanupService_PartialFailureIsRetriable(t *testing.T) {
	ctx := context.Background()
	eventRepo := newFakeEventRepo()
	responseRepo := newFakeResponseRepo()

	addEvent(eventRepo, "ev-1", "slug-1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, responseRepo.Create(ctx, &domain.Response{EventID: "ev-1", Name: "bob", Availability: []bool{true}}))

	now := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	svc := newTestCleanup(eventRepo, responseRepo, now)

	// First sweep: responses are removed but the event delete fails.
	eventRepo.deleteErr["ev-1"] = errors.New("db hiccup")
	deleted, err := svc.CleanupExpiredEvents(ctx)
	require.NoError(t, err, "sweep must not fail the run on a per-event error")
	assert.Equal(t, 0, deleted)
	_, stillThere := eventRepo.byID["ev-1"]
	assert.True(t, stillThere)

	// Second sweep: re-running against the same still-expired event completes.
	delete(eventRepo.deleteErr, "ev-1")
	deleted, err = svc.CleanupExpiredEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
	assert.Empty(t, eventRepo.byID)
}

func TestCleanupService_ResponseDeleteFailureSkipsEvent(t *testing.T) {
	ctx := context.Background()
	eventRepo := newFakeEventRepo()
	responseRepo := newFakeResponseRepo()

	addEvent(eventRepo, "ev-1", "slug-1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	responseRepo.deleteErr["ev-1"] = errors.New("db hiccup")

	svc := newTestCleanup(eventRepo, responseRepo, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))
	deleted, err := svc.CleanupExpiredEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
	_, stillThere := eventRepo.byID["ev-1"]
	assert.True(t, stillThere, "event must not be deleted before its responses")
}

func TestCleanupService_ListError(t *testing.T) {
	ctx := context.Background()
	eventRepo := newFakeEventRepo()
	eventRepo.listErr = errors.New("db down")

	svc := newTestCleanup(eventRepo, newFakeResponseRepo(), time.Now())
	_, err := svc.CleanupExpiredEvents(ctx)
	require.Error(t, err)
}
