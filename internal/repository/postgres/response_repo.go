package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"datepoll/internal/domain"
)

const responseColumns = "id, event_id, name, availability, created_at"

type responseRepository struct {
	DB *sql.DB
}

func NewResponseRepository(db *sql.DB) domain.ResponseRepository {
	return &responseRepository{
		DB: db,
	}
}

func scanResponse(row rowScanner) (*domain.Response, error) {
	resp := &domain.Response{}
	var avail pq.BoolArray
	err := row.Scan(&resp.ID, &resp.EventID, &resp.Name, &avail, &resp.CreatedAt)
	if err != nil {
		return nil, err
	}
	resp.Availability = []bool(avail)
	return resp, nil
}

func (r *responseRepository) Create(ctx context.Context, resp *domain.Response) error {
	query := `
		INSERT INTO responses (event_id, name, availability, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, resp.EventID, resp.Name, pq.Array(resp.Availability), resp.CreatedAt).Scan(&resp.ID)
}

func (r *responseRepository) GetByID(ctx context.Context, id string) (*domain.Response, error) {
	query := `
		SELECT ` + responseColumns + `
		FROM responses
		WHERE id = $1
	`
	resp, err := scanResponse(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return resp, nil
}

func (r *responseRepository) GetByEventID(ctx context.Context, eventID string) ([]*domain.Response, error) {
	query := `
		SELECT ` + responseColumns + `
		FROM responses
		WHERE event_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	responses := make([]*domain.Response, 0)
	for rows.Next() {
		resp, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}

func (r *responseRepository) Update(ctx context.Context, id, name string, availability []bool) (*domain.Response, error) {
	query := `
		UPDATE responses SET name = $1, availability = $2
		WHERE id = $3
		RETURNING ` + responseColumns
	resp, err := scanResponse(r.DB.QueryRowContext(ctx, query, name, pq.Array(availability), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return resp, nil
}

func (r *responseRepository) DeleteByEventID(ctx context.Context, eventID string) error {
	query := `DELETE FROM responses WHERE event_id = $1`
	_, err := r.DB.ExecContext(ctx, query, eventID)
	return err
}
