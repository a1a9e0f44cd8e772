package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rachef/sitecms/internal/domain/document"
	"github.com/rachef/sitecms/internal/domain/entities"
	"github.com/rachef/sitecms/internal/infrastructure/logger"
	"github.com/rachef/sitecms/internal/ports"
)

// StoreMetrics receives store activity.
type StoreMetrics interface {
	ObserveMutation(op string)
	ObserveSave(result string)
	ObserveLoad(result string)
	SetDirty(dirty bool)
}

type nopMetrics struct{}

func (nopMetrics) ObserveMutation(string) {}
func (nopMetrics) ObserveSave(string)     {}
func (nopMetrics) ObserveLoad(string)     {}
func (nopMetrics) SetDirty(bool)          {}

// StoreOption configures a StoreService.
type StoreOption func(*StoreService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) StoreOption {
	return func(s *StoreService) { s.now = now }
}

// WithHistoryLimit sets how many saves are kept for undo.
func WithHistoryLimit(limit int) StoreOption {
	return func(s *StoreService) { s.history = NewHistoryLedger(limit) }
}

// WithBackupLimit sets how many formation backups are kept.
func WithBackupLimit(limit int) StoreOption {
	return func(s *StoreService) { s.backups = NewBackupLedger(limit) }
}

// WithMetrics reports store activity to m.
func WithMetrics(m StoreMetrics) StoreOption {
	return func(s *StoreService) { s.metrics = m }
}

// StoreService holds the two site documents for the editing session
type StoreService struct {
	mu       sync.RWMutex
	data     document.Document
	datap    document.Document
	baseline entities.Snapshot
	dirty    bool
	saving   bool
	revision uint64
	loadedAt *time.Time
	savedAt  *time.Time

	history *HistoryLedger
	backups *BackupLedger

	subMu   sync.Mutex
	subs    map[uint64]func(entities.ChangeEvent)
	nextSub uint64

	notifier ports.Notifier
	metrics  StoreMetrics
	logger   *logger.Logger
	now      func() time.Time
}

// NewStoreService creates an empty store
func NewStoreService(notifier ports.Notifier, logger *logger.Logger, opts ...StoreOption) *StoreService {
	s := &StoreService{
		data:     document.New(),
		datap:    document.New(),
		baseline: entities.Snapshot{Data: document.New(), Datap: document.New()},
		history:  NewHistoryLedger(DefaultHistoryLimit),
		backups:  NewBackupLedger(DefaultBackupLimit),
		subs:     make(map[uint64]func(entities.ChangeEvent)),
		notifier: notifier,
		metrics:  nopMetrics{},
		logger:   logger.WithComponent("store"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = ports.NotifierFunc(func(entities.Notification) {})
	}
	return s
}

// change describes a state transition for subscribers and metrics.
type change struct {
	kind entities.ChangeKind
	op   string
	file entities.File
	path string
}

// apply runs fn under the write lock. When fn succeeds the revision is bumped,
// the store is marked dirty and subscribers are told after the lock is released.
func (s *StoreService) apply(c change, fn func() error) error {
	s.mu.Lock()
	if err := fn(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.revision++
	s.dirty = true
	ev := s.event(c)
	s.mu.Unlock()

	s.metrics.ObserveMutation(c.op)
	s.metrics.SetDirty(true)
	s.logger.LogStoreChange(c.op, string(c.file), c.path, ev.Revision)
	s.publish(ev)
	return nil
}

// event must be called with s.mu held.
func (s *StoreService) event(c change) entities.ChangeEvent {
	return entities.ChangeEvent{
		Kind:     c.kind,
		Op:       c.op,
		File:     c.file,
		Path:     c.path,
		Revision: s.revision,
		At:       s.now(),
	}
}

// doc must be called with s.mu held.
func (s *StoreService) doc(file entities.File) (document.Document, error) {
	switch file {
	case entities.FileData:
		return s.data, nil
	case entities.FileDatap:
		return s.datap, nil
	default:
		return nil, fmt.Errorf("%w: %q", entities.ErrInvalidFile, file)
	}
}

// UpdateField sets the value at path in file.
func (s *StoreService) UpdateField(file entities.File, path string, value any) error {
	value, err := document.Normalize(value)
	if err != nil {
		return err
	}
	return s.apply(change{kind: entities.ChangeMutation, op: "update_field", file: file, path: path}, func() error {
		doc, err := s.doc(file)
		if err != nil {
			return err
		}
		if err := doc.Set(path, value); err != nil {
			return err
		}
		s.syncIfFormations(file, path)
		return nil
	})
}

// AddItem appends item to the array at path in file.
func (s *StoreService) AddItem(file entities.File, path string, item any) error {
	item, err := document.Normalize(item)
	if err != nil {
		return err
	}
	return s.apply(change{kind: entities.ChangeMutation, op: "add_item", file: file, path: path}, func() error {
		doc, err := s.doc(file)
		if err != nil {
			return err
		}
		if err := doc.Push(path, item); err != nil {
			return err
		}
		s.syncIfFormations(file, path)
		return nil
	})
}

// RemoveItem removes the element at index from the array at path in file. An
// index outside the array is not an error; it reports false and changes
// nothing but the dirty flag.
func (s *StoreService) RemoveItem(file entities.File, path string, index int) (bool, error) {
	var removed bool
	err := s.apply(change{kind: entities.ChangeMutation, op: "remove_item", file: file, path: path}, func() error {
		doc, err := s.doc(file)
		if err != nil {
			return err
		}
		removed, err = doc.RemoveAt(path, index)
		if err != nil {
			return err
		}
		s.syncIfFormations(file, path)
		return nil
	})
	return removed, err
}

// syncIfFormations rebuilds the navbar when a generic mutation touched the
// formation catalogue. Must be called with s.mu held.
func (s *StoreService) syncIfFormations(file entities.File, path string) {
	if file != entities.FileData {
		return
	}
	if path == "formations" || path == entities.FormationsPath || strings.HasPrefix(path, entities.FormationsPath+".") {
		SyncNavbarFormations(s.data)
	}
}

// Value returns a copy of the value at path in file.
func (s *StoreService) Value(file entities.File, path string) (any, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.doc(file)
	if err != nil {
		return nil, false, err
	}
	v, ok := doc.Get(path)
	if !ok {
		return nil, false, nil
	}
	return document.Clone(v), true, nil
}

// Document returns a copy of file.
func (s *StoreService) Document(file entities.File) (document.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.doc(file)
	if err != nil {
		return nil, err
	}
	return doc.Clone(), nil
}

// Snapshot returns copies of both documents and the revision they belong to.
func (s *StoreService) Snapshot() (entities.Snapshot, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entities.Snapshot{Data: s.data.Clone(), Datap: s.datap.Clone()}, s.revision
}

// Dirty reports whether the documents changed since the last load or save.
func (s *StoreService) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Revision returns the current revision.
func (s *StoreService) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Status summarises the session.
func (s *StoreService) Status() entities.StoreStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return entities.StoreStatus{
		Dirty:        s.dirty,
		Saving:       s.saving,
		Revision:     s.revision,
		HistorySize:  s.history.Len(),
		BackupCount:  s.backups.Len(),
		LastLoadedAt: s.loadedAt,
		LastSavedAt:  s.savedAt,
	}
}

// Reset replaces both documents with snap and treats them as the persisted
// state. Used after a load or an import.
func (s *StoreService) Reset(kind entities.ChangeKind, snap entities.Snapshot) {
	s.mu.Lock()
	s.data = snap.Data.Clone()
	s.datap = snap.Datap.Clone()
	s.baseline = snap.Clone()
	s.dirty = false
	s.revision++
	at := s.now()
	s.loadedAt = &at
	ev := s.event(change{kind: kind})
	s.mu.Unlock()

	s.metrics.SetDirty(false)
	s.publish(ev)
}

// CommitSave records a successful save of snap, taken at revision rev. The
// dirty flag is only cleared when nothing changed while the save was in flight.
func (s *StoreService) CommitSave(action string, rev uint64, snap entities.Snapshot) {
	s.mu.Lock()
	at := s.now()
	s.history.Record(at, action, snap)
	s.baseline = snap.Clone()
	s.savedAt = &at
	if s.revision == rev {
		s.dirty = false
	}
	dirty := s.dirty
	ev := s.event(change{kind: entities.ChangeSave, op: action})
	s.mu.Unlock()

	s.metrics.SetDirty(dirty)
	s.publish(ev)
}

func (s *StoreService) setSaving(saving bool) {
	s.mu.Lock()
	s.saving = saving
	s.mu.Unlock()
}

// Undo restores the documents recorded by the save before the last one and
// forgets the last save. It reports false when fewer than two saves exist.
func (s *StoreService) Undo() bool {
	s.mu.Lock()
	snap, ok := s.history.StepBack()
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.data = snap.Data
	s.datap = snap.Datap
	s.dirty = true
	s.revision++
	ev := s.event(change{kind: entities.ChangeUndo, op: "undo"})
	s.mu.Unlock()

	s.metrics.ObserveMutation("undo")
	s.metrics.SetDirty(true)
	s.publish(ev)
	s.notify(entities.LevelSuccess, "Restored the previous saved version")
	return true
}

// Redo is not supported. It only warns the user.
func (s *StoreService) Redo() error {
	s.notify(entities.LevelWarning, "Redo is not implemented yet")
	return entities.ErrRedoNotImplemented
}

// History lists the recorded saves, oldest first.
func (s *StoreService) History() []entities.HistorySummary {
	return s.history.Summaries()
}

// Subscribe registers fn for every state change and returns a function that
// removes it.
func (s *StoreService) Subscribe(fn func(entities.ChangeEvent)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *StoreService) publish(ev entities.ChangeEvent) {
	s.subMu.Lock()
	fns := make([]func(entities.ChangeEvent), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (s *StoreService) notify(level entities.NotificationLevel, msg string) {
	s.notifier.Notify(entities.Notification{Level: level, Message: msg, At: s.now()})
}
