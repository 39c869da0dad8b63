package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"datepoll/internal/domain"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

const eventColumns = "id, slug, title, description, organizer, dates, event_time, deadline, created_at"

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

// Candidate dates are stored as a jsonb array of RFC 3339 timestamps; pq has
// no scan support for timestamptz[].
func encodeDates(dates []time.Time) ([]byte, error) {
	return json.Marshal(dates)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var descNull sql.NullString
	var rawDates []byte
	err := row.Scan(&e.ID, &e.Slug, &e.Title, &descNull, &e.Organizer, &rawDates, &e.Time, &e.Deadline, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	if err := json.Unmarshal(rawDates, &e.Dates); err != nil {
		return nil, fmt.Errorf("decode dates: %w", err)
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	dates, err := encodeDates(e.Dates)
	if err != nil {
		return fmt.Errorf("encode dates: %w", err)
	}
	var desc sql.NullString
	if e.Description != nil {
		desc = sql.NullString{String: *e.Description, Valid: true}
	}
	query := `
		INSERT INTO events (slug, title, description, organizer, dates, event_time, deadline, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err = r.DB.QueryRowContext(ctx, query, e.Slug, e.Title, desc, e.Organizer, dates, e.Time, e.Deadline, e.CreatedAt).Scan(&e.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE slug = $1
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, strings.TrimSpace(slug)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) getByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Update(ctx context.Context, id string, title, description *string, deadline *time.Time) (*domain.Event, error) {
	setClauses := []string{}
	args := []interface{}{}
	n := 1
	if title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *title)
		n++
	}
	if description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *description)
		n++
	}
	if deadline != nil {
		setClauses = append(setClauses, fmt.Sprintf("deadline = $%d", n))
		args = append(args, *deadline)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.getByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING `+eventColumns, strings.Join(setClauses, ", "), n)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	// Idempotent: zero rows affected is fine, the sweep may retry a pass
	// that failed partway.
	query := `DELETE FROM events WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id)
	return err
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY created_at
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
