package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Event errors
	ErrEventNotFound = errors.New("event not found")

	// Booking errors
	ErrInvalidSeats    = errors.New("invalid seat selection")
	ErrVersionConflict = errors.New("seat state version conflict")
	ErrReservationBusy = errors.New("reservation contention, try again")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")

	// General errors
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden operation")
)

// SeatConflictError — терминальный результат: запрошенные места уже
// зафиксированы за другим бронированием. Не повторяется автоматически
type SeatConflictError struct {
	Seats []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats already booked: %s", strings.Join(e.Seats, ", "))
}
