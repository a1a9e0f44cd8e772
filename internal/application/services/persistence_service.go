package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rachef/sitecms/internal/domain/document"
	"github.com/rachef/sitecms/internal/domain/entities"
	"github.com/rachef/sitecms/internal/infrastructure/logger"
	"github.com/rachef/sitecms/internal/ports"
)

// AllowedUploadExtensions lists the asset types the dashboard may upload.
var AllowedUploadExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
	"svg":  true,
	"pdf":  true,
}

// UploadPolicy limits uploads and says where stored assets are served from.
type UploadPolicy struct {
	MaxSize      int64
	PublicPrefix string
}

// PersistenceService moves the documents between the store and the backend
type PersistenceService struct {
	store   *StoreService
	gateway ports.DocumentGateway
	archive ports.RevisionRepository
	uploads UploadPolicy
	logger  *logger.Logger

	// saveMu serialises loads, saves and imports.
	saveMu sync.Mutex
}

// NewPersistenceService creates a new persistence service. archive may be nil
// when the revision archive is disabled.
func NewPersistenceService(store *StoreService, gateway ports.DocumentGateway, archive ports.RevisionRepository, uploads UploadPolicy, logger *logger.Logger) *PersistenceService {
	if uploads.PublicPrefix == "" {
		uploads.PublicPrefix = "/rachef-uploads/"
	}
	return &PersistenceService{
		store:   store,
		gateway: gateway,
		archive: archive,
		uploads: uploads,
		logger:  logger.WithComponent("persistence"),
	}
}

// LoadData fetches both documents concurrently and installs them only when
// both arrive. On failure the store is left as it was.
func (s *PersistenceService) LoadData(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	staged := make([]document.Document, len(entities.Files))
	g, gctx := errgroup.WithContext(ctx)
	for i, file := range entities.Files {
		i, file := i, file
		g.Go(func() error {
			doc, err := s.gateway.Load(gctx, file)
			if err != nil {
				return fmt.Errorf("load %s: %w", file, err)
			}
			staged[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.store.metrics.ObserveLoad("error")
		s.logger.Errorw("Failed to load documents", "error", err)
		s.store.notify(entities.LevelError, "Failed to load the site content")
		return err
	}

	s.store.Reset(entities.ChangeLoad, entities.Snapshot{Data: staged[0], Datap: staged[1]})
	s.store.metrics.ObserveLoad("success")
	s.logger.Infow("Documents loaded", "revision", s.store.Revision())
	s.store.notify(entities.LevelSuccess, "Site content loaded")
	return nil
}

// SaveData posts data then datap. History is recorded and the dirty flag
// cleared only when both succeed. Concurrent calls wait for each other.
func (s *PersistenceService) SaveData(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return s.save(ctx, "save")
}

// TrySave saves unless another save is in flight, in which case it reports
// false without doing anything.
func (s *PersistenceService) TrySave(ctx context.Context) (bool, error) {
	if !s.saveMu.TryLock() {
		return false, nil
	}
	defer s.saveMu.Unlock()
	return true, s.save(ctx, "autosave")
}

func (s *PersistenceService) save(ctx context.Context, action string) error {
	snap, rev := s.store.Snapshot()

	s.store.setSaving(true)
	defer s.store.setSaving(false)

	for _, file := range entities.Files {
		if err := s.gateway.Save(ctx, file, snap.Document(file)); err != nil {
			s.store.metrics.ObserveSave("error")
			s.logger.Errorw("Failed to save documents", "file", file, "error", err)
			s.store.notify(entities.LevelError, "Failed to save changes")
			return fmt.Errorf("save %s: %w", file, err)
		}
	}

	s.store.CommitSave(action, rev, snap)
	s.store.metrics.ObserveSave("success")
	s.logger.Infow("Documents saved", "action", action, "revision", rev)
	s.store.notify(entities.LevelSuccess, "Changes saved")

	if s.archive != nil {
		archived := &entities.Revision{Action: action, SavedAt: s.store.now(), Data: snap.Data, Datap: snap.Datap}
		if err := s.archive.Append(ctx, archived); err != nil {
			s.logger.Warnw("Failed to archive revision", "error", err)
		}
	}
	return nil
}

// Import replaces both documents with the ones in bundle, which must hold a
// "data" and a "datap" object. Both are pushed to the backend before the
// store is touched.
func (s *PersistenceService) Import(ctx context.Context, bundle document.Document) error {
	snap, err := importSnapshot(bundle)
	if err != nil {
		s.store.notify(entities.LevelError, "Invalid import file")
		return err
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	for _, file := range entities.Files {
		if err := s.gateway.Import(ctx, file, snap.Document(file)); err != nil {
			s.logger.Errorw("Failed to import documents", "file", file, "error", err)
			s.store.notify(entities.LevelError, "Import failed")
			return fmt.Errorf("import %s: %w", file, err)
		}
	}

	s.store.Reset(entities.ChangeImport, snap)
	s.logger.Infow("Documents imported", "revision", s.store.Revision())
	s.store.notify(entities.LevelSuccess, "Site content imported")
	return nil
}

func importSnapshot(bundle document.Document) (entities.Snapshot, error) {
	var snap entities.Snapshot
	for _, file := range entities.Files {
		obj, ok := bundle[string(file)].(map[string]any)
		if !ok {
			return entities.Snapshot{}, fmt.Errorf("%w: missing %q object", entities.ErrInvalidImport, file)
		}
		doc := document.Document(obj).Clone()
		if file == entities.FileData {
			snap.Data = doc
		} else {
			snap.Datap = doc
		}
	}
	return snap, nil
}

// Export renders file as indented JSON along with its download name.
func (s *PersistenceService) Export(file entities.File) ([]byte, string, error) {
	doc, err := s.store.Document(file)
	if err != nil {
		return nil, "", err
	}
	body, err := doc.MarshalIndent()
	if err != nil {
		return nil, "", fmt.Errorf("export %s: %w", file, err)
	}
	return body, file.ExportName(), nil
}

// Upload stores an asset through the backend. size is the declared length,
// or -1 when unknown. No document is modified.
func (s *PersistenceService) Upload(ctx context.Context, name string, size int64, body io.Reader) (entities.Upload, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if !AllowedUploadExtensions[ext] {
		s.store.notify(entities.LevelError, "Unsupported file type")
		return entities.Upload{}, fmt.Errorf("%w: %q", entities.ErrUnsupportedUpload, name)
	}
	if s.uploads.MaxSize > 0 {
		if size > s.uploads.MaxSize {
			s.store.notify(entities.LevelError, "File is too large")
			return entities.Upload{}, fmt.Errorf("%w: %d bytes", entities.ErrUploadTooLarge, size)
		}
		// The declared size can be missing or understated.
		buf, err := io.ReadAll(io.LimitReader(body, s.uploads.MaxSize+1))
		if err != nil {
			return entities.Upload{}, fmt.Errorf("read upload %s: %w", name, err)
		}
		if int64(len(buf)) > s.uploads.MaxSize {
			s.store.notify(entities.LevelError, "File is too large")
			return entities.Upload{}, fmt.Errorf("%w: more than %d bytes", entities.ErrUploadTooLarge, s.uploads.MaxSize)
		}
		body = bytes.NewReader(buf)
	}

	filename, err := s.gateway.Upload(ctx, name, body)
	if err != nil {
		s.logger.Errorw("Upload failed", "name", name, "error", err)
		s.store.notify(entities.LevelError, "Upload failed")
		return entities.Upload{}, fmt.Errorf("upload %s: %w", name, err)
	}

	return entities.Upload{
		Filename: filename,
		URL:      s.uploads.PublicPrefix + filename,
	}, nil
}

// Ready checks that the backend answers.
func (s *PersistenceService) Ready(ctx context.Context) error {
	return s.gateway.Ping(ctx)
}

// Revisions lists archived saves, newest first, without their documents.
func (s *PersistenceService) Revisions(ctx context.Context, limit int) ([]entities.Revision, error) {
	if s.archive == nil {
		return nil, entities.ErrArchiveDisabled
	}
	return s.archive.List(ctx, limit)
}

// Revision returns one archived save with its documents.
func (s *PersistenceService) Revision(ctx context.Context, id int64) (*entities.Revision, error) {
	if s.archive == nil {
		return nil, entities.ErrArchiveDisabled
	}
	return s.archive.Get(ctx, id)
}
