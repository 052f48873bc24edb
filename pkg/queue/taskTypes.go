package queue

import (
	"context"
	"time"
)

// Queue интерфейс очереди
type Queue interface {
	Publish(ctx context.Context, task *Task) error
	Subscribe(ctx context.Context, handler func(*Task) error) error
	Close() error
}

// Task представляет задачу для очереди
type Task struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	CreatedAt  time.Time              `json:"created_at"`
	MaxRetries int                    `json:"max_retries"`
	Attempts   int                    `json:"attempts"`
}

// Константы типов задач
const (
	TaskTypeBookingCommitted    = "booking_committed"
	TaskTypeRefreshAvailability = "refresh_availability"
)
