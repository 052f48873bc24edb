package queue

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBackoffBounds(t *testing.T) {
	rm := NewRetryManager(3, 25*time.Millisecond)

	tests := []struct {
		name    string
		attempt int
		wantMin time.Duration
		wantMax time.Duration
	}{
		{name: "zero attempt uses base delay", attempt: 0, wantMin: 25 * time.Millisecond, wantMax: 25 * time.Millisecond},
		{name: "first retry doubles", attempt: 1, wantMin: 50 * time.Millisecond, wantMax: 62500 * time.Microsecond},
		{name: "growth is capped", attempt: 10, wantMin: 400 * time.Millisecond, wantMax: 500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Джиттер случаен: проверяем границы на серии вызовов
			for i := 0; i < 20; i++ {
				delay := rm.CalculateBackoff(tt.attempt)
				assert.GreaterOrEqual(t, delay, tt.wantMin)
				assert.LessOrEqual(t, delay, tt.wantMax)
			}
		})
	}
}

func TestShouldRetry(t *testing.T) {
	rm := NewRetryManager(3, 10*time.Millisecond)

	tests := []struct {
		name string
		task *Task
		err  error
		want bool
	}{
		{
			name: "transient error within budget",
			task: &Task{Attempts: 1, MaxRetries: 3},
			err:  errors.New("connection refused"),
			want: true,
		},
		{
			name: "budget exhausted",
			task: &Task{Attempts: 3, MaxRetries: 3},
			err:  errors.New("connection refused"),
			want: false,
		},
		{
			name: "non-retryable error",
			task: &Task{Attempts: 0, MaxRetries: 3},
			err:  errors.New("validation failed: bad payload"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, delay := rm.ShouldRetry(tt.task, tt.err)
			assert.Equal(t, tt.want, got)
			if !got {
				assert.Zero(t, delay)
			}
		})
	}
}
