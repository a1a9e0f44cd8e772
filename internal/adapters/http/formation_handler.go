package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rachef/sitecms/internal/application/services"
	"github.com/rachef/sitecms/internal/domain/entities"
	"github.com/rachef/sitecms/internal/infrastructure/logger"
	"github.com/rachef/sitecms/internal/ports"
)

// FormationHandler manages the formation catalogue and the navbar built from it
type FormationHandler struct {
	store  *services.StoreService
	logger *logger.Logger
}

// NewFormationHandler creates a new formation handler
func NewFormationHandler(store *services.StoreService, logger *logger.Logger) *FormationHandler {
	return &FormationHandler{
		store:  store,
		logger: logger,
	}
}

// ListFormations godoc
// @Summary List formations in display order
// @Tags formations
// @Produce json
// @Success 200 {array} entities.Formation
// @Security BearerAuth
// @Router /formations [get]
func (h *FormationHandler) ListFormations(c echo.Context) error {
	formations, err := h.store.Formations()
	if err != nil {
		return fail(h.logger, "List formations", err)
	}
	return c.JSON(http.StatusOK, formations)
}

// CreateFormation godoc
// @Summary Add a formation
// @Description An id is generated when none is given. The navbar is rebuilt.
// @Tags formations
// @Accept json
// @Produce json
// @Param request body ports.CreateFormationRequest true "Formation data"
// @Success 201 {object} entities.Formation
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /formations [post]
func (h *FormationHandler) CreateFormation(c echo.Context) error {
	var req ports.CreateFormationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	formation, err := h.store.AddFormation(entities.Formation{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Icon:        req.Icon,
		Path:        req.Path,
		ShowOnHome:  req.ShowOnHome,
	})
	if err != nil {
		return fail(h.logger, "Create formation", err)
	}
	return c.JSON(http.StatusCreated, formation)
}

// UpdateFormation godoc
// @Summary Update a formation
// @Tags formations
// @Accept json
// @Produce json
// @Param id path string true "Formation ID"
// @Param request body ports.UpdateFormationRequest true "Formation data"
// @Success 200 {object} entities.Formation
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /formations/{id} [put]
func (h *FormationHandler) UpdateFormation(c echo.Context) error {
	var req ports.UpdateFormationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	formation, err := h.store.UpdateFormation(entities.Formation{
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Icon:        req.Icon,
		Path:        req.Path,
		ShowOnHome:  req.ShowOnHome,
	})
	if err != nil {
		return fail(h.logger, "Update formation", err)
	}
	return c.JSON(http.StatusOK, formation)
}

// DeleteFormation godoc
// @Summary Remove a formation
// @Tags formations
// @Param id path string true "Formation ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /formations/{id} [delete]
func (h *FormationHandler) DeleteFormation(c echo.Context) error {
	if err := h.store.RemoveFormation(c.Param("id")); err != nil {
		return fail(h.logger, "Delete formation", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SetVisibility godoc
// @Summary Show or hide a formation on the home page and in the navbar
// @Tags formations
// @Accept json
// @Produce json
// @Param id path string true "Formation ID"
// @Param request body ports.VisibilityRequest true "Visibility"
// @Success 200 {object} ports.StoreActionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /formations/{id}/visibility [put]
func (h *FormationHandler) SetVisibility(c echo.Context) error {
	var req ports.VisibilityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.store.SetFormationVisibility(c.Param("id"), *req.ShowOnHome); err != nil {
		return fail(h.logger, "Set formation visibility", err)
	}
	return c.JSON(http.StatusOK, ports.StoreActionResponse{Applied: true, Status: h.store.Status()})
}

// Reorder godoc
// @Summary Move a formation to another position
// @Tags formations
// @Accept json
// @Produce json
// @Param request body ports.ReorderRequest true "Source and target index"
// @Success 200 {object} ports.StoreActionResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /formations/reorder [post]
func (h *FormationHandler) Reorder(c echo.Context) error {
	var req ports.ReorderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.store.MoveFormation(*req.From, *req.To); err != nil {
		return fail(h.logger, "Reorder formations", err)
	}
	return c.JSON(http.StatusOK, ports.StoreActionResponse{Applied: true, Status: h.store.Status()})
}

// ListBackups godoc
// @Summary List formation backups, newest first
// @Tags formations
// @Produce json
// @Success 200 {array} entities.FormationBackup
// @Security BearerAuth
// @Router /formations/backups [get]
func (h *FormationHandler) ListBackups(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.FormationBackups())
}

// CreateBackup godoc
// @Summary Back up the formation catalogue
// @Tags formations
// @Produce json
// @Success 201 {object} entities.FormationBackup
// @Security BearerAuth
// @Router /formations/backups [post]
func (h *FormationHandler) CreateBackup(c echo.Context) error {
	backup, err := h.store.BackupFormations()
	if err != nil {
		return fail(h.logger, "Back up formations", err)
	}
	return c.JSON(http.StatusCreated, backup)
}

// RestoreBackup godoc
// @Summary Restore the formation backup taken at a date
// @Tags formations
// @Accept json
// @Produce json
// @Param request body ports.RestoreBackupRequest true "Backup date"
// @Success 200 {object} ports.StoreActionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /formations/backups/restore [post]
func (h *FormationHandler) RestoreBackup(c echo.Context) error {
	var req ports.RestoreBackupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	restored, err := h.store.RestoreFormationBackup(req.Date)
	if err != nil {
		return fail(h.logger, "Restore formations", err)
	}
	if !restored {
		return fail(h.logger, "Restore formations", entities.ErrBackupNotFound)
	}
	return c.JSON(http.StatusOK, ports.StoreActionResponse{Applied: true, Status: h.store.Status()})
}

// Navbar godoc
// @Summary List navbar links
// @Tags navbar
// @Produce json
// @Success 200 {array} entities.NavbarLink
// @Security BearerAuth
// @Router /navbar [get]
func (h *FormationHandler) Navbar(c echo.Context) error {
	links, err := h.store.Navbar()
	if err != nil {
		return fail(h.logger, "List navbar", err)
	}
	return c.JSON(http.StatusOK, links)
}

// SyncNavbar godoc
// @Summary Rebuild the formations submenu
// @Description applied is false when the navbar was already in sync
// @Tags navbar
// @Produce json
// @Success 200 {object} ports.StoreActionResponse
// @Security BearerAuth
// @Router /navbar/sync [post]
func (h *FormationHandler) SyncNavbar(c echo.Context) error {
	changed := h.store.SyncNavbar()
	return c.JSON(http.StatusOK, ports.StoreActionResponse{Applied: changed, Status: h.store.Status()})
}

// SyncNavbarTitles godoc
// @Summary Copy page titles onto the formations submenu
// @Tags navbar
// @Produce json
// @Success 200 {object} ports.StoreActionResponse
// @Security BearerAuth
// @Router /navbar/sync-titles [post]
func (h *FormationHandler) SyncNavbarTitles(c echo.Context) error {
	changed := h.store.SyncNavbarTitles()
	return c.JSON(http.StatusOK, ports.StoreActionResponse{Applied: changed, Status: h.store.Status()})
}
