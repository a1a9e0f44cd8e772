package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rachef/sitecms/internal/domain/document"
	"github.com/rachef/sitecms/internal/domain/entities"
	"github.com/rachef/sitecms/internal/infrastructure/config"
	"github.com/rachef/sitecms/internal/infrastructure/logger"
)

type backend struct {
	mu       sync.Mutex
	received map[string][]byte
	upload   []byte
	status   int
}

func newBackend(t *testing.T) (*backend, *Client) {
	t.Helper()
	b := &backend{received: map[string][]byte{}, status: http.StatusOK}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/load-data", func(w http.ResponseWriter, r *http.Request) {
		b.reply(w, r, http.MethodGet, `{"hero":{"title":"Bienvenue"},"formations":{"items":[]}}`)
	})
	mux.HandleFunc("/api/load-datap", func(w http.ResponseWriter, r *http.Request) {
		b.reply(w, r, http.MethodGet, `{"evenements":{"events":[{"id":3}]}}`)
	})
	for _, p := range []string{"/api/save-data", "/api/save-datap", "/api/data", "/api/datap"} {
		p := p
		mux.HandleFunc(p, func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			b.mu.Lock()
			b.received[p] = body
			b.mu.Unlock()
			b.reply(w, r, http.MethodPost, `{"ok":true}`)
		})
	}
	mux.HandleFunc("/api/upload", func(w http.ResponseWriter, r *http.Request) {
		f, h, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer f.Close()
		body, _ := io.ReadAll(f)
		b.mu.Lock()
		b.upload = body
		b.mu.Unlock()
		b.reply(w, r, http.MethodPost, `{"filename":"1700000000-`+h.Filename+`"}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return b, New(config.BackendConfig{BaseURL: srv.URL + "/", Timeout: time.Second}, logger.NewNop())
}

func (b *backend) setStatus(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = status
}

func (b *backend) body(endpoint string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	body, ok := b.received[endpoint]
	return string(body), ok
}

func (b *backend) reply(w http.ResponseWriter, r *http.Request, method, body string) {
	if r.Method != method {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	b.mu.Lock()
	status := b.status
	b.mu.Unlock()
	if status != http.StatusOK {
		http.Error(w, "backend down", status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func TestClient_Load(t *testing.T) {
	_, client := newBackend(t)
	ctx := context.Background()

	data, err := client.Load(ctx, entities.FileData)
	require.NoError(t, err)
	title, _ := data.Get("hero.title")
	assert.Equal(t, "Bienvenue", title)

	datap, err := client.Load(ctx, entities.FileDatap)
	require.NoError(t, err)
	id, _ := datap.Get("evenements.events.0.id")
	assert.Equal(t, json.Number("3"), id)
}

func TestClient_SaveAndImport(t *testing.T) {
	b, client := newBackend(t)
	ctx := context.Background()
	doc := document.Document{"hero": map[string]any{"title": "Sauvé"}}

	require.NoError(t, client.Save(ctx, entities.FileData, doc))
	require.NoError(t, client.Import(ctx, entities.FileDatap, doc))

	saved, _ := b.body("/api/save-data")
	assert.JSONEq(t, `{"hero":{"title":"Sauvé"}}`, saved)
	imported, _ := b.body("/api/datap")
	assert.JSONEq(t, `{"hero":{"title":"Sauvé"}}`, imported)
	_, ok := b.body("/api/save-datap")
	assert.False(t, ok)
}

func TestClient_NonSuccessStatus(t *testing.T) {
	b, client := newBackend(t)
	b.setStatus(http.StatusInternalServerError)
	ctx := context.Background()

	_, err := client.Load(ctx, entities.FileData)
	require.ErrorIs(t, err, entities.ErrGateway)
	assert.Contains(t, err.Error(), "500")

	err = client.Save(ctx, entities.FileData, document.New())
	assert.ErrorIs(t, err, entities.ErrGateway)

	assert.ErrorIs(t, client.Ping(ctx), entities.ErrGateway)
}

func TestClient_Upload(t *testing.T) {
	b, client := newBackend(t)

	name, err := client.Upload(context.Background(), "affiche.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)

	assert.Equal(t, "1700000000-affiche.pdf", name)
	b.mu.Lock()
	defer b.mu.Unlock()
	assert.Equal(t, []byte("%PDF"), b.upload)
}

func TestClient_Unreachable(t *testing.T) {
	client := New(config.BackendConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, logger.NewNop())

	err := client.Ping(context.Background())
	assert.ErrorIs(t, err, entities.ErrGateway)
}

func TestClient_InvalidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[1,2,3]`))
	}))
	defer srv.Close()
	client := New(config.BackendConfig{BaseURL: srv.URL}, logger.NewNop())

	_, err := client.Load(context.Background(), entities.FileData)
	assert.ErrorIs(t, err, entities.ErrGateway)
}
