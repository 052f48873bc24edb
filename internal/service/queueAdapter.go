package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ds124wfegd/seat-reservation/internal/entity"
	"github.com/ds124wfegd/seat-reservation/pkg/queue"
)

// QueueAdapter адаптирует queue.Queue к TaskPublisher интерфейсу
type QueueAdapter struct {
	queue queue.Queue
}

// NewQueueAdapter создает новый адаптер для очереди
func NewQueueAdapter(q queue.Queue) *QueueAdapter {
	return &QueueAdapter{queue: q}
}

// PublishBookingCommitted публикует задачу о фиксации бронирования.
// Потеря задачи безвредна: кэш доступности догонит по TTL
func (a *QueueAdapter) PublishBookingCommitted(ctx context.Context, booking *entity.Booking, version int64) error {
	if a.queue == nil {
		return nil // Если очередь не инициализирована, игнорируем
	}

	task := &queue.Task{
		ID:   fmt.Sprintf("booking_committed_%s", booking.ID),
		Type: queue.TaskTypeBookingCommitted,
		Data: map[string]interface{}{
			"booking_id": booking.ID,
			"event_id":   booking.EventID,
			"user_id":    booking.UserID,
			"version":    version,
		},
		CreatedAt:  time.Now().UTC(),
		MaxRetries: 3,
	}

	return a.queue.Publish(ctx, task)
}
