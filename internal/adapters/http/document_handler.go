package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rachef/sitecms/internal/application/services"
	"github.com/rachef/sitecms/internal/infrastructure/logger"
	"github.com/rachef/sitecms/internal/ports"
)

// DocumentHandler edits the documents by dot path
type DocumentHandler struct {
	store  *services.StoreService
	logger *logger.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(store *services.StoreService, logger *logger.Logger) *DocumentHandler {
	return &DocumentHandler{
		store:  store,
		logger: logger,
	}
}

// Get godoc
// @Summary Read a document or one value in it
// @Tags documents
// @Produce json
// @Param file path string true "data or datap"
// @Param path query string false "Dot path, e.g. hero.title"
// @Success 200 {object} object
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{file} [get]
func (h *DocumentHandler) Get(c echo.Context) error {
	file, err := fileParam(c)
	if err != nil {
		return err
	}

	path := c.QueryParam("path")
	if path == "" {
		doc, err := h.store.Document(file)
		if err != nil {
			return fail(h.logger, "Get document", err)
		}
		return c.JSON(http.StatusOK, doc)
	}

	value, ok, err := h.store.Value(file, path)
	if err != nil {
		return fail(h.logger, "Get value", err)
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Path not found")
	}
	return c.JSON(http.StatusOK, value)
}

// UpdateField godoc
// @Summary Set the value at a path
// @Description Missing intermediate objects are created
// @Tags documents
// @Accept json
// @Produce json
// @Param file path string true "data or datap"
// @Param request body ports.UpdateFieldRequest true "Path and value"
// @Success 200 {object} ports.StoreActionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{file}/fields [patch]
func (h *DocumentHandler) UpdateField(c echo.Context) error {
	file, err := fileParam(c)
	if err != nil {
		return err
	}

	var req ports.UpdateFieldRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.store.UpdateField(file, req.Path, req.Value); err != nil {
		return fail(h.logger, "Update field", err)
	}
	return c.JSON(http.StatusOK, ports.StoreActionResponse{Applied: true, Status: h.store.Status()})
}

// AddItem godoc
// @Summary Append an item to the array at a path
// @Description A missing array is created
// @Tags documents
// @Accept json
// @Produce json
// @Param file path string true "data or datap"
// @Param request body ports.AddItemRequest true "Path and item"
// @Success 201 {object} ports.StoreActionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{file}/items [post]
func (h *DocumentHandler) AddItem(c echo.Context) error {
	file, err := fileParam(c)
	if err != nil {
		return err
	}

	var req ports.AddItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.store.AddItem(file, req.Path, req.Item); err != nil {
		return fail(h.logger, "Add item", err)
	}
	return c.JSON(http.StatusCreated, ports.StoreActionResponse{Applied: true, Status: h.store.Status()})
}

// RemoveItem godoc
// @Summary Remove the array element at an index
// @Description applied is false when the index is outside the array
// @Tags documents
// @Accept json
// @Produce json
// @Param file path string true "data or datap"
// @Param request body ports.RemoveItemRequest true "Path and index"
// @Success 200 {object} ports.StoreActionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{file}/items [delete]
func (h *DocumentHandler) RemoveItem(c echo.Context) error {
	file, err := fileParam(c)
	if err != nil {
		return err
	}

	var req ports.RemoveItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	removed, err := h.store.RemoveItem(file, req.Path, *req.Index)
	if err != nil {
		return fail(h.logger, "Remove item", err)
	}
	return c.JSON(http.StatusOK, ports.StoreActionResponse{Applied: removed, Status: h.store.Status()})
}
