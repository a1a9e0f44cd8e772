package http

import (
	"github.com/labstack/echo/v4"

	"github.com/rachef/sitecms/internal/application/services"
	"github.com/rachef/sitecms/internal/infrastructure/logger"
	"github.com/rachef/sitecms/internal/ports"
)

// Handlers groups every dashboard API handler
type Handlers struct {
	Store         *StoreHandler
	Documents     *DocumentHandler
	Formations    *FormationHandler
	Events        *EventHandler
	Assets        *AssetHandler
	Notifications *NotificationHandler
}

// NewHandlers builds the handlers over the shared session services
func NewHandlers(store *services.StoreService, persistence *services.PersistenceService, feed ports.NotificationFeed, logger *logger.Logger) *Handlers {
	log := logger.WithComponent("http")
	return &Handlers{
		Store:         NewStoreHandler(store, persistence, log),
		Documents:     NewDocumentHandler(store, log),
		Formations:    NewFormationHandler(store, log),
		Events:        NewEventHandler(store, log),
		Assets:        NewAssetHandler(store, persistence, log),
		Notifications: NewNotificationHandler(feed),
	}
}

// Register mounts the dashboard API on g
func (h *Handlers) Register(g *echo.Group) {
	storeGroup := g.Group("/store")
	storeGroup.GET("/status", h.Store.Status)
	storeGroup.POST("/load", h.Store.Load)
	storeGroup.POST("/save", h.Store.Save)
	storeGroup.POST("/undo", h.Store.Undo)
	storeGroup.POST("/redo", h.Store.Redo)
	storeGroup.GET("/history", h.Store.History)
	storeGroup.GET("/changes", h.Store.Changes)
	storeGroup.GET("/revisions", h.Store.Revisions)
	storeGroup.GET("/revisions/:id", h.Store.Revision)

	docGroup := g.Group("/documents")
	docGroup.GET("/:file", h.Documents.Get)
	docGroup.PATCH("/:file/fields", h.Documents.UpdateField)
	docGroup.POST("/:file/items", h.Documents.AddItem)
	docGroup.DELETE("/:file/items", h.Documents.RemoveItem)

	formationGroup := g.Group("/formations")
	formationGroup.GET("", h.Formations.ListFormations)
	formationGroup.POST("", h.Formations.CreateFormation)
	formationGroup.POST("/reorder", h.Formations.Reorder)
	formationGroup.GET("/backups", h.Formations.ListBackups)
	formationGroup.POST("/backups", h.Formations.CreateBackup)
	formationGroup.POST("/backups/restore", h.Formations.RestoreBackup)
	formationGroup.PUT("/:id", h.Formations.UpdateFormation)
	formationGroup.DELETE("/:id", h.Formations.DeleteFormation)
	formationGroup.PUT("/:id/visibility", h.Formations.SetVisibility)

	navbarGroup := g.Group("/navbar")
	navbarGroup.GET("", h.Formations.Navbar)
	navbarGroup.POST("/sync", h.Formations.SyncNavbar)
	navbarGroup.POST("/sync-titles", h.Formations.SyncNavbarTitles)

	eventGroup := g.Group("/events")
	eventGroup.GET("", h.Events.ListEvents)
	eventGroup.POST("", h.Events.CreateEvent)
	eventGroup.PUT("/:id", h.Events.UpdateEvent)
	eventGroup.DELETE("/:id", h.Events.DeleteEvent)

	g.POST("/uploads", h.Assets.Upload)
	g.POST("/import", h.Assets.Import)
	g.GET("/export/:file", h.Assets.Export)

	g.GET("/notifications", h.Notifications.ListNotifications)
}
