package entity

import (
	"time"
)

// Booking неизменяемо после фиксации: ядро не определяет операций
// обновления или удаления бронирования
type Booking struct {
	ID        string    `json:"id" db:"id"`
	EventID   int64     `json:"event_id" db:"event_id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Seats     []string  `json:"seats" db:"seats"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// BookingHistoryItem представляет бронирование вместе с данными каталога.
// Event равен nil, когда мероприятие удалено выше по потоку: отсутствующая
// цель join не скрывает корректные записи о бронированиях
type BookingHistoryItem struct {
	Booking *Booking `json:"booking"`
	Event   *Event   `json:"event"`
}

// HistoryFilter задает фильтр выборки истории бронирований
type HistoryFilter struct {
	UserID *int64
}
