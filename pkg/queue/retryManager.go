package queue

import (
	"math/rand"
	"strings"
	"time"
)

// RetryManager manages retry logic for failed tasks
type RetryManager struct {
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

// NewRetryManager creates a new RetryManager
func NewRetryManager(maxRetries int, baseDelay time.Duration) *RetryManager {
	return &RetryManager{
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		maxDelay:   baseDelay * 16, // Maximum 16x base delay
	}
}

// ShouldRetry determines if a task should be retried and returns the delay
func (r *RetryManager) ShouldRetry(task *Task, err error) (bool, time.Duration) {
	if task.Attempts >= task.MaxRetries {
		return false, 0
	}

	if !r.isRetryableError(err) {
		return false, 0
	}

	delay := r.CalculateBackoff(task.Attempts)
	return true, delay
}

// isRetryableError determines if an error is retryable
func (r *RetryManager) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Define non-retryable error patterns
	nonRetryableErrors := []string{
		"invalid",
		"not found",
		"permission denied",
		"validation failed",
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range nonRetryableErrors {
		if strings.Contains(errStr, pattern) {
			return false
		}
	}

	return true
}

// CalculateBackoff возвращает экспоненциальную задержку с джиттером,
// чтобы повторные попытки не синхронизировались между собой
func (r *RetryManager) CalculateBackoff(attempt int) time.Duration {
	if attempt <= 0 {
		return r.baseDelay
	}

	delay := r.baseDelay << uint(attempt)
	if delay > r.maxDelay {
		delay = r.maxDelay
	}

	// Add up to 25% random jitter
	jitter := time.Duration(rand.Int63n(int64(delay) / 4))
	return delay + jitter
}
