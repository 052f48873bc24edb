package service

import (
	"context"
	"errors"
	"fmt"

	repository "github.com/ds124wfegd/seat-reservation/internal/database/postgres"
	"github.com/ds124wfegd/seat-reservation/internal/entity"
)

type eventService struct {
	catalog      repository.EventRepository
	availability AvailabilityService
}

// NewEventService создает читающий сервис каталога мероприятий
func NewEventService(catalog repository.EventRepository, availability AvailabilityService) EventService {
	return &eventService{
		catalog:      catalog,
		availability: availability,
	}
}

// GetEvent возвращает мероприятие вместе с текущей доступностью мест
func (s *eventService) GetEvent(ctx context.Context, id int64) (*entity.EventWithAvailability, error) {
	event, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrEventNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("мероприятие не найдено: %w", err)
	}

	state, err := s.availability.CurrentState(ctx, id)
	if err != nil {
		return nil, err
	}

	return &entity.EventWithAvailability{
		Event:          *event,
		BookedSeats:    state.BookedSeats,
		AvailableSeats: event.TotalSeats() - len(state.BookedSeats),
	}, nil
}

// GetAllEvents возвращает все мероприятия каталога с доступностью
func (s *eventService) GetAllEvents(ctx context.Context) ([]*entity.EventWithAvailability, error) {
	events, err := s.catalog.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении мероприятий: %w", err)
	}

	result := make([]*entity.EventWithAvailability, 0, len(events))
	for _, event := range events {
		state, err := s.availability.CurrentState(ctx, event.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, &entity.EventWithAvailability{
			Event:          *event,
			BookedSeats:    state.BookedSeats,
			AvailableSeats: event.TotalSeats() - len(state.BookedSeats),
		})
	}

	return result, nil
}
