package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ds124wfegd/seat-reservation/internal/entity"
)

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Success     bool     `json:"success"`
	Error       string   `json:"error"`
	Conflicting []string `json:"conflicting,omitempty"`
}

// handleError отображает таксономию ошибок ядра на HTTP-статусы.
// Конфликт мест — 409 с перечислением занятых мест; исчерпание бюджета
// повторов — 503, чтобы клиент мог повторить операцию целиком
func handleError(c *gin.Context, err error) {
	var conflict *entity.SeatConflictError
	if errors.As(err, &conflict) {
		c.JSON(http.StatusConflict, ErrorResponse{
			Success:     false,
			Error:       conflict.Error(),
			Conflicting: conflict.Seats,
		})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, entity.ErrEventNotFound), errors.Is(err, entity.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entity.ErrInvalidSeats):
		status = http.StatusBadRequest
	case errors.Is(err, entity.ErrReservationBusy):
		status = http.StatusServiceUnavailable
	case errors.Is(err, entity.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, entity.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, entity.ErrForbidden):
		status = http.StatusForbidden
	}

	c.JSON(status, ErrorResponse{
		Success: false,
		Error:   err.Error(),
	})
}
