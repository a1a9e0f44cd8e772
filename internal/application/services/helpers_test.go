package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rachef/sitecms/internal/domain/document"
	"github.com/rachef/sitecms/internal/domain/entities"
	"github.com/rachef/sitecms/internal/infrastructure/logger"
)

const siteData = `{
	"navbar": {
		"links": [
			{"text": "Accueil", "path": "/"},
			{"text": " Formations ", "path": "/formations", "subLinks": []},
			{"text": "Contact", "path": "/contact"}
		]
	},
	"formations": {"items": []},
	"hero": {"title": "Bienvenue"}
}`

const sitePages = `{
	"evenements": {"events": [{"id": 3, "title": "Portes ouvertes", "date": "2024-05-01", "createdAt": "2024-01-01T00:00:00.000Z"}]},
	"secourisme": {"title": "Secourisme PSC1"}
}`

var errBackend = errors.New("backend unavailable")

func parseDoc(t *testing.T, raw string) document.Document {
	t.Helper()
	doc, err := document.Parse([]byte(raw))
	require.NoError(t, err)
	return doc
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

// Now advances by one second on every call so timestamps stay distinct.
func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type recordingNotifier struct {
	mu    sync.Mutex
	items []entities.Notification
}

func (n *recordingNotifier) Notify(item entities.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, item)
}

func (n *recordingNotifier) last() entities.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.items) == 0 {
		return entities.Notification{}
	}
	return n.items[len(n.items)-1]
}

func (n *recordingNotifier) count(level entities.NotificationLevel) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, item := range n.items {
		if item.Level == level {
			c++
		}
	}
	return c
}

// fakeGateway is an in-memory backend.
type fakeGateway struct {
	mu        sync.Mutex
	docs      map[entities.File]document.Document
	imported  map[entities.File]document.Document
	loadErr   map[entities.File]error
	saveErr   map[entities.File]error
	importErr error
	uploadErr error
	saves     []entities.File
	uploaded  []byte

	// saveGate, when set, blocks every Save until it receives a value.
	saveGate  chan struct{}
	saveStart chan struct{}
}

func newFakeGateway(t *testing.T) *fakeGateway {
	return &fakeGateway{
		docs: map[entities.File]document.Document{
			entities.FileData:  parseDoc(t, siteData),
			entities.FileDatap: parseDoc(t, sitePages),
		},
		imported: map[entities.File]document.Document{},
		loadErr:  map[entities.File]error{},
		saveErr:  map[entities.File]error{},
	}
}

func (g *fakeGateway) Load(_ context.Context, file entities.File) (document.Document, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.loadErr[file]; err != nil {
		return nil, err
	}
	return g.docs[file].Clone(), nil
}

func (g *fakeGateway) Save(ctx context.Context, file entities.File, doc document.Document) error {
	g.mu.Lock()
	gate, start := g.saveGate, g.saveStart
	g.mu.Unlock()

	if start != nil {
		start <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.saves = append(g.saves, file)
	if err := g.saveErr[file]; err != nil {
		return err
	}
	g.docs[file] = doc.Clone()
	return nil
}

func (g *fakeGateway) Import(_ context.Context, file entities.File, doc document.Document) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.importErr != nil {
		return g.importErr
	}
	g.imported[file] = doc.Clone()
	return nil
}

func (g *fakeGateway) Upload(_ context.Context, name string, body io.Reader) (string, error) {
	if g.uploadErr != nil {
		return "", g.uploadErr
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	g.mu.Lock()
	g.uploaded = b
	g.mu.Unlock()
	return fmt.Sprintf("1700000000-%s", name), nil
}

func (g *fakeGateway) Ping(context.Context) error { return nil }

func (g *fakeGateway) saveCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.saves)
}

func newTestStore(t *testing.T, opts ...StoreOption) (*StoreService, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	clock := newFakeClock()
	opts = append([]StoreOption{WithClock(clock.Now)}, opts...)
	return NewStoreService(notifier, logger.NewNop(), opts...), notifier
}

// newLoadedStore returns a store already loaded from a fake backend.
func newLoadedStore(t *testing.T) (*StoreService, *PersistenceService, *fakeGateway, *recordingNotifier) {
	t.Helper()
	store, notifier := newTestStore(t)
	gateway := newFakeGateway(t)
	persistence := NewPersistenceService(store, gateway, nil, UploadPolicy{MaxSize: 1024}, logger.NewNop())
	require.NoError(t, persistence.LoadData(context.Background()))
	return store, persistence, gateway, notifier
}

func subLinks(t *testing.T, store *StoreService) []any {
	t.Helper()
	links, ok, err := store.Value(entities.FileData, "navbar.links.1.subLinks")
	require.NoError(t, err)
	require.True(t, ok)
	return links.([]any)
}

func catalogueEntry() map[string]any {
	return map[string]any{"text": entities.CatalogueText, "path": entities.CataloguePath}
}
