package transport

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ds124wfegd/seat-reservation/internal/service"
)

type EventHandler struct {
	eventService        service.EventService
	availabilityService service.AvailabilityService
}

func NewEventHandler(eventService service.EventService, availabilityService service.AvailabilityService) *EventHandler {
	return &EventHandler{
		eventService:        eventService,
		availabilityService: availabilityService,
	}
}

func (h *EventHandler) GetAllEvents(c *gin.Context) {
	events, err := h.eventService.GetAllEvents(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "invalid event id"})
		return
	}

	event, err := h.eventService.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// GetAvailability возвращает снимок занятых мест мероприятия
func (h *EventHandler) GetAvailability(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "invalid event id"})
		return
	}

	state, err := h.availabilityService.CurrentState(c.Request.Context(), eventID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}
