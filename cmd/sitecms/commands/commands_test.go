package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const siteData = `{
  "hero": {"title": "Bienvenue"},
  "navbar": {"links": [{"text": "Formations", "subLinks": []}]},
  "formations": {"items": [
    {"id": "secourisme", "title": "Secourisme", "showOnHome": true},
    {"id": "incendie", "title": "Incendie", "showOnHome": false}
  ]}
}`

const sitePages = `{"secourisme": {"title": "Secourisme PSC1"}}`

type backend struct {
	mu    sync.Mutex
	docs  map[string]string
	posts map[string][]byte
}

func newBackend(t *testing.T, data string) *backend {
	t.Helper()
	b := &backend{
		docs:  map[string]string{"data": data, "datap": sitePages},
		posts: map[string][]byte{},
	}

	mux := http.NewServeMux()
	for _, file := range []string{"data", "datap"} {
		file := file
		mux.HandleFunc("/api/load-"+file, func(w http.ResponseWriter, r *http.Request) {
			b.mu.Lock()
			defer b.mu.Unlock()
			_, _ = io.WriteString(w, b.docs[file])
		})
		record := func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			b.mu.Lock()
			b.posts[r.URL.Path] = body
			b.mu.Unlock()
			_, _ = io.WriteString(w, `{"success":true}`)
		}
		mux.HandleFunc("/api/save-"+file, record)
		mux.HandleFunc("/api/"+file, record)
	}

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	t.Setenv("BACKEND_URL", srv.URL)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("AUTOSAVE_ENABLED", "false")
	t.Setenv("DB_ENABLED", "false")
	return b
}

func (b *backend) posted(path string) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	body, ok := b.posts[path]
	return body, ok
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sitecms dev")
	assert.Contains(t, out, "Git Commit: development")
}

func TestExportCommand(t *testing.T) {
	newBackend(t, siteData)
	dir := filepath.Join(t.TempDir(), "export")

	out, err := run(t, "export", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "data.json")

	raw, err := os.ReadFile(filepath.Join(dir, "datap.json"))
	require.NoError(t, err)
	var pages map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &pages))
	assert.Equal(t, "Secourisme PSC1", pages["secourisme"]["title"])

	_, err = os.Stat(filepath.Join(dir, "data.json"))
	assert.NoError(t, err)
}

func TestNavbarSyncCommand(t *testing.T) {
	b := newBackend(t, siteData)

	out, err := run(t, "navbar", "sync", "--titles")
	require.NoError(t, err)
	assert.Contains(t, out, "Navbar synchronised")

	body, ok := b.posted("/api/save-data")
	require.True(t, ok, "the rebuilt navbar is saved")
	var saved struct {
		Navbar struct {
			Links []struct {
				SubLinks []map[string]string `json:"subLinks"`
			} `json:"links"`
		} `json:"navbar"`
	}
	require.NoError(t, json.Unmarshal(body, &saved))
	require.Len(t, saved.Navbar.Links, 1)
	subLinks := saved.Navbar.Links[0].SubLinks
	require.Len(t, subLinks, 2)
	assert.Equal(t, "/formations/secourisme", subLinks[1]["path"])
	assert.Equal(t, "Secourisme PSC1", subLinks[1]["text"])
}

func TestNavbarSyncCommand_AlreadyInSync(t *testing.T) {
	b := newBackend(t, `{"navbar":{"links":[{"text":"Accueil"}]},"formations":{"items":[]}}`)

	out, err := run(t, "navbar", "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "Navbar already in sync")

	_, ok := b.posted("/api/save-data")
	assert.False(t, ok)
}

func TestImportCommand(t *testing.T) {
	b := newBackend(t, siteData)
	file := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"data":{"hero":{"title":"Importé"}},"datap":{}}`), 0o600))

	out, err := run(t, "import", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported")

	body, ok := b.posted("/api/data")
	require.True(t, ok)
	assert.Contains(t, string(body), "Importé")
	_, ok = b.posted("/api/datap")
	assert.True(t, ok)
}

func TestImportCommand_Errors(t *testing.T) {
	b := newBackend(t, siteData)

	_, err := run(t, "import")
	assert.Error(t, err, "the file flag is required")

	_, err = run(t, "import", "--file", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	partial := filepath.Join(t.TempDir(), "partial.json")
	require.NoError(t, os.WriteFile(partial, []byte(`{"data":{}}`), 0o600))
	_, err = run(t, "import", "--file", partial)
	assert.Error(t, err)
	_, ok := b.posted("/api/data")
	assert.False(t, ok, "nothing is pushed for an incomplete backup")
}

func TestTokenCommand(t *testing.T) {
	newBackend(t, siteData)
	t.Setenv("JWT_SECRET", "s3cret")

	out, err := run(t, "token", "--subject", "admin", "--ttl", "1h")
	require.NoError(t, err)
	assert.Contains(t, out, "Expires at")
	assert.Equal(t, 2, strings.Count(out, "."), "a signed JWT has three segments")

	t.Setenv("JWT_SECRET", "")
	_, err = run(t, "token")
	assert.Error(t, err)
}

func TestMigrateCommand_RequiresDatabase(t *testing.T) {
	newBackend(t, siteData)

	_, err := run(t, "migrate", "up")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_ENABLED")
}
