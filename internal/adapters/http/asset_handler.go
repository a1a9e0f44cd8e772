package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rachef/sitecms/internal/application/services"
	"github.com/rachef/sitecms/internal/domain/document"
	"github.com/rachef/sitecms/internal/infrastructure/logger"
	"github.com/rachef/sitecms/internal/ports"
)

// AssetHandler handles uploads and whole-document import and export
type AssetHandler struct {
	store       *services.StoreService
	persistence *services.PersistenceService
	logger      *logger.Logger
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(store *services.StoreService, persistence *services.PersistenceService, logger *logger.Logger) *AssetHandler {
	return &AssetHandler{
		store:       store,
		persistence: persistence,
		logger:      logger,
	}
}

// Upload godoc
// @Summary Upload an image or PDF
// @Description The returned url can be stored in any image or document field
// @Tags assets
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Asset"
// @Success 201 {object} entities.Upload
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /uploads [post]
func (h *AssetHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file field")
	}

	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unreadable file")
	}
	defer f.Close()

	upload, err := h.persistence.Upload(c.Request().Context(), fh.Filename, fh.Size, f)
	if err != nil {
		return fail(h.logger, "Upload", err)
	}
	return c.JSON(http.StatusCreated, upload)
}

// Import godoc
// @Summary Replace both documents
// @Description The body must hold a data and a datap object. Both are pushed to the backend before the session is replaced.
// @Tags assets
// @Accept json
// @Produce json
// @Param request body object true "{data, datap}"
// @Success 200 {object} ports.StoreActionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /import [post]
func (h *AssetHandler) Import(c echo.Context) error {
	bundle, err := document.Decode(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Import must be a JSON object")
	}

	if err := h.persistence.Import(c.Request().Context(), bundle); err != nil {
		return fail(h.logger, "Import", err)
	}
	return c.JSON(http.StatusOK, ports.StoreActionResponse{Applied: true, Status: h.store.Status()})
}

// Export godoc
// @Summary Download a document as indented JSON
// @Tags assets
// @Produce json
// @Param file path string true "data or datap"
// @Success 200 {object} object
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /export/{file} [get]
func (h *AssetHandler) Export(c echo.Context) error {
	file, err := fileParam(c)
	if err != nil {
		return err
	}

	body, name, err := h.persistence.Export(file)
	if err != nil {
		return fail(h.logger, "Export", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, body)
}
