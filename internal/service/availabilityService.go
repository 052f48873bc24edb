package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ds124wfegd/seat-reservation/internal/cache"
	repository "github.com/ds124wfegd/seat-reservation/internal/database/postgres"
	"github.com/ds124wfegd/seat-reservation/internal/entity"
)

type availabilityService struct {
	ledger  repository.LedgerRepository
	catalog repository.EventRepository
	cache   *cache.AvailabilityCache
}

// NewAvailabilityService создает представление доступности мест. Кэш
// опционален: без него каждое чтение идет в реестр
func NewAvailabilityService(
	ledger repository.LedgerRepository,
	catalog repository.EventRepository,
	availabilityCache *cache.AvailabilityCache,
) AvailabilityService {
	return &availabilityService{
		ledger:  ledger,
		catalog: catalog,
		cache:   availabilityCache,
	}
}

// CurrentState возвращает снимок занятых мест мероприятия. Устаревший кэш
// здесь безопасен: инвариант защищает версия на пути фиксации, а не кэш
func (s *availabilityService) CurrentState(ctx context.Context, eventID int64) (*entity.SeatAvailability, error) {
	if _, err := s.catalog.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, entity.ErrEventNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("ошибка при чтении каталога мероприятий: %w", err)
	}

	if s.cache != nil {
		if snapshot, err := s.cache.Get(ctx, eventID); err == nil {
			return snapshot, nil
		}
	}

	snapshot, err := s.ledger.SeatState(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении состояния мест: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, snapshot); err != nil {
			logrus.Debugf("Failed to cache availability for event %d: %v", eventID, err)
		}
	}

	return snapshot, nil
}

// RefreshCache перечитывает снимок из реестра и обновляет кэш
func (s *availabilityService) RefreshCache(ctx context.Context, eventID int64) error {
	if s.cache == nil {
		return nil
	}

	snapshot, err := s.ledger.SeatState(ctx, eventID)
	if err != nil {
		return fmt.Errorf("ошибка при чтении состояния мест: %w", err)
	}

	return s.cache.Set(ctx, snapshot)
}
