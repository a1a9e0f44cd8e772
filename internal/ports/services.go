package ports

import (
	"github.com/rachef/sitecms/internal/domain/entities"
)

// Request/Response Types

// Document related types
type UpdateFieldRequest struct {
	Path  string `json:"path" validate:"required"`
	Value any    `json:"value"`
}

type AddItemRequest struct {
	Path string `json:"path" validate:"required"`
	Item any    `json:"item"`
}

type RemoveItemRequest struct {
	Path  string `json:"path" validate:"required"`
	Index *int   `json:"index" validate:"required"`
}

// Formation related types
type CreateFormationRequest struct {
	ID          string `json:"id" validate:"omitempty,max=120"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Icon        string `json:"icon"`
	Path        string `json:"path" validate:"omitempty,startswith=/"`
	ShowOnHome  bool   `json:"showOnHome"`
}

type UpdateFormationRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Icon        string `json:"icon"`
	Path        string `json:"path" validate:"omitempty,startswith=/"`
	ShowOnHome  bool   `json:"showOnHome"`
}

type VisibilityRequest struct {
	ShowOnHome *bool `json:"showOnHome" validate:"required"`
}

type ReorderRequest struct {
	From *int `json:"from" validate:"required,min=0"`
	To   *int `json:"to" validate:"required,min=0"`
}

type RestoreBackupRequest struct {
	Date string `json:"date" validate:"required"`
}

// Event related types
type EventRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Date        string `json:"date" validate:"required"`
	Location    string `json:"location"`
	Image       string `json:"image"`
	Featured    bool   `json:"featured"`
	ShowOnHome  bool   `json:"showOnHome"`
}

type StoreActionResponse struct {
	Applied bool                 `json:"applied"`
	Status  entities.StoreStatus `json:"status"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
