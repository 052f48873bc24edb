package entity

import (
	"time"
)

type Event struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Category    string    `json:"category" db:"category"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"`
	SeatLabels  []string  `json:"seat_labels" db:"seat_labels"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TotalSeats возвращает размер посадочного пространства мероприятия
func (e *Event) TotalSeats() int {
	return len(e.SeatLabels)
}

// HasSeat проверяет, принадлежит ли метка места посадочному пространству
func (e *Event) HasSeat(label string) bool {
	for _, l := range e.SeatLabels {
		if l == label {
			return true
		}
	}
	return false
}

type EventWithAvailability struct {
	Event
	BookedSeats    []string `json:"booked_seats"`
	AvailableSeats int      `json:"available_seats"`
}
