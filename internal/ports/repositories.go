package ports

import (
	"context"
	"io"

	"github.com/rachef/sitecms/internal/domain/document"
	"github.com/rachef/sitecms/internal/domain/entities"
)

// DocumentGateway defines the REST backend that persists the site documents
type DocumentGateway interface {
	Load(ctx context.Context, file entities.File) (document.Document, error)
	Save(ctx context.Context, file entities.File, doc document.Document) error
	Import(ctx context.Context, file entities.File, doc document.Document) error
	Upload(ctx context.Context, name string, body io.Reader) (string, error)
	Ping(ctx context.Context) error
}

// RevisionRepository archives saved document pairs
type RevisionRepository interface {
	Append(ctx context.Context, rev *entities.Revision) error
	List(ctx context.Context, limit int) ([]entities.Revision, error)
	Get(ctx context.Context, id int64) (*entities.Revision, error)
}

// Notifier delivers user-facing notifications
type Notifier interface {
	Notify(n entities.Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n entities.Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n entities.Notification) { f(n) }

// NotificationFeed lists recent notifications, newest first
type NotificationFeed interface {
	Recent(limit int) []entities.Notification
}
