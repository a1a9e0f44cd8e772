package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rachef/sitecms/internal/application/services"
	"github.com/rachef/sitecms/internal/infrastructure/logger"
	"github.com/rachef/sitecms/internal/ports"
)

// EventHandler manages datap.evenements.events
type EventHandler struct {
	store  *services.StoreService
	logger *logger.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(store *services.StoreService, logger *logger.Logger) *EventHandler {
	return &EventHandler{
		store:  store,
		logger: logger,
	}
}

func eventID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid event ID")
	}
	return id, nil
}

// ListEvents godoc
// @Summary List events
// @Tags events
// @Produce json
// @Success 200 {array} entities.Event
// @Security BearerAuth
// @Router /events [get]
func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.store.Events()
	if err != nil {
		return fail(h.logger, "List events", err)
	}
	return c.JSON(http.StatusOK, events)
}

// CreateEvent godoc
// @Summary Add an event
// @Tags events
// @Accept json
// @Produce json
// @Param request body ports.EventRequest true "Event data"
// @Success 201 {object} entities.Event
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /events [post]
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req ports.EventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	event, err := h.store.AddEvent(req)
	if err != nil {
		return fail(h.logger, "Create event", err)
	}
	return c.JSON(http.StatusCreated, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param request body ports.EventRequest true "Event data"
// @Success 200 {object} entities.Event
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /events/{id} [put]
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	var req ports.EventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	event, err := h.store.UpdateEvent(id, req)
	if err != nil {
		return fail(h.logger, "Update event", err)
	}
	return c.JSON(http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Remove an event
// @Tags events
// @Param id path int true "Event ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := eventID(c)
	if err != nil {
		return err
	}

	if err := h.store.RemoveEvent(id); err != nil {
		return fail(h.logger, "Delete event", err)
	}
	return c.NoContent(http.StatusNoContent)
}
