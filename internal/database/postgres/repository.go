package repository

import (
	"context"

	"github.com/ds124wfegd/seat-reservation/internal/entity"
)

// LedgerRepository — контракт реестра бронирований, на который опирается
// координатор. Условная запись атомарна: частичная запись никогда не
// наблюдаема, и два вызова для одного мероприятия не могут оба
// зафиксироваться от одной и той же версии
type LedgerRepository interface {
	// SeatState returns the committed seat set and the version token the
	// conditional insert will accept as its precondition.
	SeatState(ctx context.Context, eventID int64) (*entity.SeatAvailability, error)

	// InsertIfVersionMatches appends the booking only if the event's version
	// still equals expectedVersion. Returns the new version on commit and
	// entity.ErrVersionConflict when another writer advanced it first.
	InsertIfVersionMatches(ctx context.Context, eventID, expectedVersion int64, booking *entity.Booking) (int64, error)

	// Query operations, ordered by commit order
	GetByEventID(ctx context.Context, eventID int64) ([]*entity.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]*entity.Booking, error)
	GetAll(ctx context.Context) ([]*entity.Booking, error)
}

// EventRepository — каталог мероприятий. Для ядра он только на чтение:
// создание и правка метаданных происходят во внешнем пути записи
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Event, error)
	GetAll(ctx context.Context) ([]*entity.Event, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
