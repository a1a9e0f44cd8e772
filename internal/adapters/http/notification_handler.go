package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rachef/sitecms/internal/ports"
)

// NotificationHandler serves the notification feed
type NotificationHandler struct {
	feed ports.NotificationFeed
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(feed ports.NotificationFeed) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

// ListNotifications godoc
// @Summary Recent notifications, newest first
// @Tags notifications
// @Produce json
// @Param limit query int false "Maximum number of notifications"
// @Success 200 {array} entities.Notification
// @Security BearerAuth
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit parameter")
		}
		limit = n
	}
	return c.JSON(http.StatusOK, h.feed.Recent(limit))
}
