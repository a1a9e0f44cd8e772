package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rachef/sitecms/internal/application/services"
	"github.com/rachef/sitecms/internal/infrastructure/logger"
	"github.com/rachef/sitecms/internal/ports"
)

const defaultRevisionLimit = 20

// StoreHandler exposes the editing session: load, save, undo and history
type StoreHandler struct {
	store       *services.StoreService
	persistence *services.PersistenceService
	logger      *logger.Logger
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(store *services.StoreService, persistence *services.PersistenceService, logger *logger.Logger) *StoreHandler {
	return &StoreHandler{
		store:       store,
		persistence: persistence,
		logger:      logger,
	}
}

func (h *StoreHandler) action(c echo.Context, applied bool) error {
	return c.JSON(http.StatusOK, ports.StoreActionResponse{Applied: applied, Status: h.store.Status()})
}

// Status godoc
// @Summary Session status
// @Description Dirty flag, revision, history size and backup count
// @Tags store
// @Produce json
// @Success 200 {object} entities.StoreStatus
// @Security BearerAuth
// @Router /store/status [get]
func (h *StoreHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Status())
}

// Load godoc
// @Summary Reload both documents from the backend
// @Description Unsaved changes are discarded. Nothing changes when either document fails to load.
// @Tags store
// @Produce json
// @Success 200 {object} ports.StoreActionResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /store/load [post]
func (h *StoreHandler) Load(c echo.Context) error {
	if err := h.persistence.LoadData(c.Request().Context()); err != nil {
		return fail(h.logger, "Load", err)
	}
	return h.action(c, true)
}

// Save godoc
// @Summary Save both documents to the backend
// @Tags store
// @Produce json
// @Success 200 {object} ports.StoreActionResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /store/save [post]
func (h *StoreHandler) Save(c echo.Context) error {
	if err := h.persistence.SaveData(c.Request().Context()); err != nil {
		return fail(h.logger, "Save", err)
	}
	return h.action(c, true)
}

// Undo godoc
// @Summary Restore the documents of the previous save
// @Description applied is false when fewer than two saves are recorded
// @Tags store
// @Produce json
// @Success 200 {object} ports.StoreActionResponse
// @Security BearerAuth
// @Router /store/undo [post]
func (h *StoreHandler) Undo(c echo.Context) error {
	return h.action(c, h.store.Undo())
}

// Redo godoc
// @Summary Redo is not supported
// @Tags store
// @Produce json
// @Failure 501 {object} ErrorResponse
// @Security BearerAuth
// @Router /store/redo [post]
func (h *StoreHandler) Redo(c echo.Context) error {
	return fail(h.logger, "Redo", h.store.Redo())
}

// History godoc
// @Summary List recorded saves
// @Tags store
// @Produce json
// @Success 200 {array} entities.HistorySummary
// @Security BearerAuth
// @Router /store/history [get]
func (h *StoreHandler) History(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.History())
}

// Changes godoc
// @Summary Unsaved changes as JSON Patch operations
// @Tags store
// @Produce json
// @Success 200 {array} entities.Change
// @Security BearerAuth
// @Router /store/changes [get]
func (h *StoreHandler) Changes(c echo.Context) error {
	changes, err := h.store.PendingChanges()
	if err != nil {
		return fail(h.logger, "Diff", err)
	}
	return c.JSON(http.StatusOK, changes)
}

// Revisions godoc
// @Summary List archived saves
// @Tags store
// @Produce json
// @Param limit query int false "Maximum number of revisions" default(20)
// @Success 200 {array} entities.Revision
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /store/revisions [get]
func (h *StoreHandler) Revisions(c echo.Context) error {
	limit := defaultRevisionLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit parameter")
		}
		limit = n
	}

	revs, err := h.persistence.Revisions(c.Request().Context(), limit)
	if err != nil {
		return fail(h.logger, "List revisions", err)
	}
	return c.JSON(http.StatusOK, revs)
}

// Revision godoc
// @Summary Get one archived save with its documents
// @Tags store
// @Produce json
// @Param id path int true "Revision ID"
// @Success 200 {object} entities.Revision
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security BearerAuth
// @Router /store/revisions/{id} [get]
func (h *StoreHandler) Revision(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid revision ID")
	}

	rev, err := h.persistence.Revision(c.Request().Context(), id)
	if err != nil {
		return fail(h.logger, "Get revision", err)
	}
	return c.JSON(http.StatusOK, rev)
}
