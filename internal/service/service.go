package service

import (
	"context"

	"github.com/ds124wfegd/seat-reservation/internal/entity"
)

// ReserveSeatsRequest представляет данные для бронирования мест
type ReserveSeatsRequest struct {
	EventID int64    `json:"event_id"`
	UserID  int64    `json:"user_id"`
	Seats   []string `json:"seats" binding:"required"`
}

// ReservationService определяет единственный путь записи бронирований.
// Гарантирует отсутствие двойного бронирования при произвольной
// конкуренции вызовов
type ReservationService interface {
	Reserve(ctx context.Context, req *ReserveSeatsRequest) (*entity.Booking, error)
}

// AvailabilityService отвечает на вопрос «какие места заняты для
// мероприятия E» по состоянию, не хуже последней наблюдаемой фиксации
type AvailabilityService interface {
	CurrentState(ctx context.Context, eventID int64) (*entity.SeatAvailability, error)
	RefreshCache(ctx context.Context, eventID int64) error
}

// EventService — операции чтения каталога мероприятий
type EventService interface {
	GetEvent(ctx context.Context, id int64) (*entity.EventWithAvailability, error)
	GetAllEvents(ctx context.Context) ([]*entity.EventWithAvailability, error)
}

// HistoryService — читающая сторона: бронирования, соединенные с каталогом
type HistoryService interface {
	History(ctx context.Context, filter *entity.HistoryFilter) ([]*entity.BookingHistoryItem, error)
}

// UserService определяет интерфейс для операций с пользователями
type UserService interface {
	Register(ctx context.Context, req *RegisterUserRequest) (*entity.User, error)
	Login(ctx context.Context, req *LoginRequest) (string, *entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
}

// RegisterUserRequest представляет данные для регистрации пользователя
type RegisterUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest представляет данные для входа
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
