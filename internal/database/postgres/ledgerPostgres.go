package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/ds124wfegd/seat-reservation/internal/entity"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

// SeatState reads the version token and the union of committed seats in a
// single transaction. The version row is created lazily at zero, so the
// first reservation against an event starts from version 0.
func (r *ledgerRepository) SeatState(ctx context.Context, eventID int64) (*entity.SeatAvailability, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
		ReadOnly:  false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO event_seat_versions (event_id, version) VALUES ($1, 0) ON CONFLICT (event_id) DO NOTHING`
	if _, err := tx.ExecContext(ctx, query, eventID); err != nil {
		return nil, fmt.Errorf("failed to ensure version row: %w", err)
	}

	var version int64
	query = `SELECT version FROM event_seat_versions WHERE event_id = $1`
	if err := tx.QueryRowContext(ctx, query, eventID).Scan(&version); err != nil {
		return nil, fmt.Errorf("failed to read seat state version: %w", err)
	}

	query = `SELECT seats FROM bookings WHERE event_id = $1 ORDER BY seq`
	rows, err := tx.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query booked seats: %w", err)
	}
	defer rows.Close()

	booked := make([]string, 0)
	for rows.Next() {
		var seats pq.StringArray
		if err := rows.Scan(&seats); err != nil {
			return nil, fmt.Errorf("failed to scan booked seats: %w", err)
		}
		booked = append(booked, seats...)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booked seats: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &entity.SeatAvailability{
		EventID:     eventID,
		BookedSeats: booked,
		Version:     version,
	}, nil
}

// InsertIfVersionMatches is the atomicity boundary of the reservation
// protocol. The version bump and the booking insert commit together or not
// at all; a concurrent writer that advanced the version first makes the
// guarded UPDATE touch zero rows, which surfaces as ErrVersionConflict.
func (r *ledgerRepository) InsertIfVersionMatches(ctx context.Context, eventID, expectedVersion int64, booking *entity.Booking) (int64, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE event_seat_versions SET version = version + 1 WHERE event_id = $1 AND version = $2`
	result, err := tx.ExecContext(ctx, query, eventID, expectedVersion)
	if err != nil {
		return 0, fmt.Errorf("failed to advance seat state version: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return 0, entity.ErrVersionConflict
	}

	query = `
		INSERT INTO bookings (id, event_id, user_id, seats, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.ExecContext(ctx, query,
		booking.ID,
		booking.EventID,
		booking.UserID,
		pq.Array(booking.Seats),
		booking.CreatedAt,
	); err != nil {
		return 0, fmt.Errorf("failed to insert booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return expectedVersion + 1, nil
}

// GetByEventID retrieves all bookings for a specific event in commit order
func (r *ledgerRepository) GetByEventID(ctx context.Context, eventID int64) ([]*entity.Booking, error) {
	query := `
		SELECT id, event_id, user_id, seats, created_at
		FROM bookings
		WHERE event_id = $1
		ORDER BY seq
	`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings by event: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByUserID retrieves all bookings for a specific user in commit order
func (r *ledgerRepository) GetByUserID(ctx context.Context, userID int64) ([]*entity.Booking, error) {
	query := `
		SELECT id, event_id, user_id, seats, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY seq
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings by user: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *ledgerRepository) GetAll(ctx context.Context) ([]*entity.Booking, error) {
	query := `
		SELECT id, event_id, user_id, seats, created_at
		FROM bookings
		ORDER BY seq
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func scanBookings(rows *sql.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		var seats pq.StringArray
		err := rows.Scan(
			&booking.ID,
			&booking.EventID,
			&booking.UserID,
			&seats,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		booking.Seats = seats
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}
