package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rachef/sitecms/internal/domain/document"
)

// Common errors
var (
	ErrFormationNotFound   = errors.New("formation not found")
	ErrDuplicateFormation  = errors.New("formation id already exists")
	ErrEventNotFound       = errors.New("event not found")
	ErrInvalidFile         = errors.New("unknown document file")
	ErrInvalidImport       = errors.New("import must contain both data and datap")
	ErrGateway             = errors.New("backend request failed")
	ErrRedoNotImplemented  = errors.New("redo is not implemented")
	ErrIndexOutOfRange     = errors.New("index out of range")
	ErrRevisionNotFound    = errors.New("revision not found")
	ErrUnsupportedUpload   = errors.New("unsupported upload type")
	ErrUploadTooLarge      = errors.New("upload exceeds maximum size")
	ErrBackupNotFound      = errors.New("formation backup not found")
	ErrArchiveDisabled     = errors.New("revision archive is disabled")
)

// TimestampLayout is the ISO-8601 layout used for every timestamp written into
// the site documents (millisecond precision, UTC).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// File names one of the two site documents.
type File string

const (
	FileData  File = "data"
	FileDatap File = "datap"
)

// Files lists the documents in load and save order.
var Files = []File{FileData, FileDatap}

// ParseFile accepts "data", "datap" and their export names.
func ParseFile(s string) (File, error) {
	switch File(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), ".json")) {
	case FileData:
		return FileData, nil
	case FileDatap:
		return FileDatap, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFile, s)
	}
}

// ExportName is the download file name for the document.
func (f File) ExportName() string {
	return string(f) + ".json"
}

// Well-known locations inside the documents.
const (
	FormationsPath  = "formations.items"
	NavbarLinksPath = "navbar.links"
	EventsPath      = "evenements.events"

	CatalogueText = "Catalogue de formation"
	CataloguePath = "/formations/catalogue"
)

// Formation is a training programme listed in data.formations.items.
type Formation struct {
	ID          string `json:"id" validate:"required,max=120"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Path        string `json:"path,omitempty" validate:"omitempty,startswith=/"`
	ShowOnHome  bool   `json:"showOnHome"`
}

// Fields returns the formation as a document object.
func (f Formation) Fields() map[string]any {
	return map[string]any{
		"id":          f.ID,
		"title":       f.Title,
		"description": f.Description,
		"image":       f.Image,
		"icon":        f.Icon,
		"path":        f.Path,
		"showOnHome":  f.ShowOnHome,
	}
}

// SubLink is one entry of a navbar submenu.
type SubLink struct {
	Text string `json:"text"`
	Path string `json:"path"`
}

// NavbarLink is one top-level entry of data.navbar.links.
type NavbarLink struct {
	Text     string    `json:"text"`
	Path     string    `json:"path,omitempty"`
	SubLinks []SubLink `json:"subLinks,omitempty"`
}

// Event is an entry of datap.evenements.events.
type Event struct {
	ID          int64  `json:"id"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Date        string `json:"date" validate:"required"`
	Location    string `json:"location,omitempty"`
	Image       string `json:"image"`
	Featured    bool   `json:"featured,omitempty"`
	ShowOnHome  bool   `json:"showOnHome,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// Snapshot is a deep copy of both documents.
type Snapshot struct {
	Data  document.Document `json:"dataJson"`
	Datap document.Document `json:"datapJson"`
}

// Clone deep copies the snapshot.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{Data: s.Data.Clone(), Datap: s.Datap.Clone()}
}

// Document returns the snapshot's copy of file.
func (s Snapshot) Document(f File) document.Document {
	if f == FileDatap {
		return s.Datap
	}
	return s.Data
}

// HistoryEntry records the documents as they were saved.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Data      Snapshot  `json:"data"`
}

// HistorySummary is a history entry without its snapshot.
type HistorySummary struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
}

// FormationBackup is a copy of formations.items taken on request.
type FormationBackup struct {
	Date  string `json:"date"`
	Items []any  `json:"items"`
}

// NotificationLevel classifies a user-facing notification.
type NotificationLevel string

const (
	LevelSuccess NotificationLevel = "success"
	LevelError   NotificationLevel = "error"
	LevelWarning NotificationLevel = "warning"
	LevelInfo    NotificationLevel = "info"
)

// Notification is a message shown to dashboard users.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
	At      time.Time         `json:"at"`
}

// ChangeKind describes what changed in the store.
type ChangeKind string

const (
	ChangeMutation ChangeKind = "mutation"
	ChangeLoad     ChangeKind = "load"
	ChangeSave     ChangeKind = "save"
	ChangeUndo     ChangeKind = "undo"
	ChangeRestore  ChangeKind = "restore"
	ChangeImport   ChangeKind = "import"
	ChangeSync     ChangeKind = "sync"
)

// ChangeEvent is published to store subscribers after every state change.
type ChangeEvent struct {
	Kind     ChangeKind `json:"kind"`
	Op       string     `json:"op,omitempty"`
	File     File       `json:"file,omitempty"`
	Path     string     `json:"path,omitempty"`
	Revision uint64     `json:"revision"`
	At       time.Time  `json:"at"`
}

// StoreStatus summarises the editing session.
type StoreStatus struct {
	Dirty        bool       `json:"dirty"`
	Saving       bool       `json:"saving"`
	Revision     uint64     `json:"revision"`
	HistorySize  int        `json:"historySize"`
	BackupCount  int        `json:"backupCount"`
	LastLoadedAt *time.Time `json:"lastLoadedAt,omitempty"`
	LastSavedAt  *time.Time `json:"lastSavedAt,omitempty"`
}

// Change is one JSON-Patch operation between the saved and current documents.
type Change struct {
	File  File   `json:"file"`
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// Revision is an archived save.
type Revision struct {
	ID      int64             `json:"id"`
	Action  string            `json:"action"`
	SavedAt time.Time         `json:"savedAt"`
	Data    document.Document `json:"data,omitempty"`
	Datap   document.Document `json:"datap,omitempty"`
}

// Upload is a stored asset.
type Upload struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}
