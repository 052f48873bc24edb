package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ds124wfegd/seat-reservation/internal/entity"
)

// TestCurrentStateWithoutCache: без кэша каждое чтение идет в реестр
func TestCurrentStateWithoutCache(t *testing.T) {
	ledger := newFakeLedger()
	seedBooking(ledger, "b-1", 1, 7, "A1", "A2")
	ledger.versions[1] = 1

	catalog := &fakeCatalog{events: map[int64]*entity.Event{
		1: testEvent(1, "A1", "A2", "A3"),
	}}
	svc := NewAvailabilityService(ledger, catalog, nil)

	state, err := svc.CurrentState(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), state.Version)
	assert.ElementsMatch(t, []string{"A1", "A2"}, state.BookedSeats)
}

// TestCurrentStateUnknownEvent: снимок для чужого идентификатора не
// выдумывается
func TestCurrentStateUnknownEvent(t *testing.T) {
	svc := NewAvailabilityService(newFakeLedger(), &fakeCatalog{events: map[int64]*entity.Event{}}, nil)

	state, err := svc.CurrentState(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrEventNotFound)
	assert.Nil(t, state)
}

// TestRefreshCacheWithoutCache: отсутствие кэша не является ошибкой
func TestRefreshCacheWithoutCache(t *testing.T) {
	svc := NewAvailabilityService(newFakeLedger(), &fakeCatalog{events: map[int64]*entity.Event{}}, nil)
	assert.NoError(t, svc.RefreshCache(context.Background(), 1))
}
