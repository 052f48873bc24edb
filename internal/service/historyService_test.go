package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ds124wfegd/seat-reservation/internal/entity"
)

func seedBooking(l *fakeLedger, id string, eventID, userID int64, seats ...string) {
	l.bookings = append(l.bookings, &entity.Booking{
		ID:        id,
		EventID:   eventID,
		UserID:    userID,
		Seats:     seats,
		CreatedAt: time.Now().UTC(),
	})
}

// TestHistoryJoinsCatalog: бронирования соединяются с данными каталога,
// а запись с удаленным мероприятием возвращается с Event == nil
func TestHistoryJoinsCatalog(t *testing.T) {
	ledger := newFakeLedger()
	seedBooking(ledger, "b-1", 1, 7, "A1")
	seedBooking(ledger, "b-2", 99, 7, "B1") // мероприятия 99 в каталоге нет

	catalog := &fakeCatalog{events: map[int64]*entity.Event{
		1: testEvent(1, "A1", "A2"),
	}}
	svc := NewHistoryService(ledger, catalog)

	items, err := svc.History(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.NotNil(t, items[0].Event)
	assert.Equal(t, int64(1), items[0].Event.ID)
	assert.Equal(t, "b-1", items[0].Booking.ID)

	// Отсутствующая цель join не скрывает саму запись
	assert.Nil(t, items[1].Event)
	assert.Equal(t, "b-2", items[1].Booking.ID)
}

// TestHistoryFilterByUser проверяет фильтрацию по владельцу
func TestHistoryFilterByUser(t *testing.T) {
	ledger := newFakeLedger()
	seedBooking(ledger, "b-1", 1, 7, "A1")
	seedBooking(ledger, "b-2", 1, 8, "A2")
	seedBooking(ledger, "b-3", 1, 7, "A3")

	catalog := &fakeCatalog{events: map[int64]*entity.Event{
		1: testEvent(1, "A1", "A2", "A3"),
	}}
	svc := NewHistoryService(ledger, catalog)

	userID := int64(7)
	items, err := svc.History(context.Background(), &entity.HistoryFilter{UserID: &userID})
	require.NoError(t, err)
	require.Len(t, items, 2)

	for _, item := range items {
		assert.Equal(t, userID, item.Booking.UserID)
	}
}
