package service

import (
	"context"
	"errors"
	"fmt"

	repository "github.com/ds124wfegd/seat-reservation/internal/database/postgres"
	"github.com/ds124wfegd/seat-reservation/internal/entity"
)

type historyService struct {
	ledger  repository.LedgerRepository
	catalog repository.EventRepository
}

// NewHistoryService создает читающий сервис истории бронирований
func NewHistoryService(ledger repository.LedgerRepository, catalog repository.EventRepository) HistoryService {
	return &historyService{
		ledger:  ledger,
		catalog: catalog,
	}
}

// History возвращает бронирования, соединенные с данными каталога.
// Мероприятие, удаленное выше по потоку, дает nil на стороне Event:
// отсутствующая цель join не скрывает корректные записи
func (s *historyService) History(ctx context.Context, filter *entity.HistoryFilter) ([]*entity.BookingHistoryItem, error) {
	var bookings []*entity.Booking
	var err error

	if filter != nil && filter.UserID != nil {
		bookings, err = s.ledger.GetByUserID(ctx, *filter.UserID)
	} else {
		bookings, err = s.ledger.GetAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении бронирований: %w", err)
	}

	// Мемоизация каталога в пределах одного запроса
	events := make(map[int64]*entity.Event)
	items := make([]*entity.BookingHistoryItem, 0, len(bookings))

	for _, booking := range bookings {
		event, seen := events[booking.EventID]
		if !seen {
			event, err = s.catalog.GetByID(ctx, booking.EventID)
			if err != nil {
				if !errors.Is(err, entity.ErrEventNotFound) {
					return nil, fmt.Errorf("ошибка при чтении каталога мероприятий: %w", err)
				}
				event = nil
			}
			events[booking.EventID] = event
		}

		items = append(items, &entity.BookingHistoryItem{
			Booking: booking,
			Event:   event,
		})
	}

	return items, nil
}
