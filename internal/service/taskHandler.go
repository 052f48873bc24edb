package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ds124wfegd/seat-reservation/pkg/queue"
)

// TaskHandler обрабатывает задачи из очереди: после каждой фиксации
// перечитывает снимок доступности мероприятия в кэш
type TaskHandler struct {
	availability AvailabilityService
}

// NewTaskHandler создает обработчик задач очереди
func NewTaskHandler(availability AvailabilityService) *TaskHandler {
	return &TaskHandler{availability: availability}
}

// HandleTask маршрутизирует задачу по ее типу
func (h *TaskHandler) HandleTask(task *queue.Task) error {
	switch task.Type {
	case queue.TaskTypeBookingCommitted, queue.TaskTypeRefreshAvailability:
		return h.handleRefreshAvailability(task)
	default:
		logrus.Warnf("Unknown task type: %s", task.Type)
		return nil
	}
}

func (h *TaskHandler) handleRefreshAvailability(task *queue.Task) error {
	rawEventID, ok := task.Data["event_id"]
	if !ok {
		return fmt.Errorf("invalid task data: event_id is missing")
	}

	// JSON числа приходят как float64
	eventIDFloat, ok := rawEventID.(float64)
	if !ok {
		return fmt.Errorf("invalid task data: event_id has type %T", rawEventID)
	}
	eventID := int64(eventIDFloat)

	if err := h.availability.RefreshCache(context.Background(), eventID); err != nil {
		return fmt.Errorf("failed to refresh availability for event %d: %w", eventID, err)
	}

	logrus.Debugf("Availability cache refreshed for event %d", eventID)
	return nil
}
