package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/ds124wfegd/seat-reservation/internal/entity"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

// GetByID retrieves a catalog event by its ID
func (r *eventRepository) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	query := `
		SELECT id, title, category, description, date, seat_labels, created_at, updated_at
		FROM events
		WHERE id = $1
	`

	var event entity.Event
	var labels pq.StringArray
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Category,
		&event.Description,
		&event.Date,
		&labels,
		&event.CreatedAt,
		&event.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	event.SeatLabels = labels
	return &event, nil
}

// GetAll retrieves all catalog events ordered by date
func (r *eventRepository) GetAll(ctx context.Context) ([]*entity.Event, error) {
	query := `
		SELECT id, title, category, description, date, seat_labels, created_at, updated_at
		FROM events
		ORDER BY date
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		var event entity.Event
		var labels pq.StringArray
		err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Category,
			&event.Description,
			&event.Date,
			&labels,
			&event.CreatedAt,
			&event.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		event.SeatLabels = labels
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}
