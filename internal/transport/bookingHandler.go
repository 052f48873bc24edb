package transport

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ds124wfegd/seat-reservation/internal/entity"
	"github.com/ds124wfegd/seat-reservation/internal/service"
	"github.com/ds124wfegd/seat-reservation/internal/transport/middleware"
)

type BookingHandler struct {
	reservationService service.ReservationService
	historyService     service.HistoryService
}

func NewBookingHandler(reservationService service.ReservationService, historyService service.HistoryService) *BookingHandler {
	return &BookingHandler{
		reservationService: reservationService,
		historyService:     historyService,
	}
}

// ReserveRequest представляет тело запроса на бронирование мест
type ReserveRequest struct {
	EventID int64    `json:"event_id" binding:"required"`
	Seats   []string `json:"seats" binding:"required"`
}

func (h *BookingHandler) Reserve(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "identity required"})
		return
	}

	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: err.Error()})
		return
	}

	booking, err := h.reservationService.Reserve(c.Request.Context(), &service.ReserveSeatsRequest{
		EventID: req.EventID,
		UserID:  identity.UserID,
		Seats:   req.Seats,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// History возвращает бронирования, соединенные с данными каталога.
// Не-администратор всегда получает только свои записи
func (h *BookingHandler) History(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Success: false, Error: "identity required"})
		return
	}

	filter := &entity.HistoryFilter{}

	if !identity.IsAdmin {
		filter.UserID = &identity.UserID
	} else if raw := c.Query("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "invalid user id"})
			return
		}
		filter.UserID = &userID
	}

	items, err := h.historyService.History(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}
