package services

import (
	"context"
	"sync"
	"time"

	"github.com/rachef/sitecms/internal/infrastructure/logger"
)

// DefaultAutoSaveInterval is how often unsaved changes are flushed.
const DefaultAutoSaveInterval = 30 * time.Second

// AutoSaver periodically saves the store while it is dirty
type AutoSaver struct {
	persistence *PersistenceService
	store       *StoreService
	interval    time.Duration
	logger      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewAutoSaver creates an auto-saver ticking every interval.
func NewAutoSaver(persistence *PersistenceService, store *StoreService, interval time.Duration, logger *logger.Logger) *AutoSaver {
	if interval <= 0 {
		interval = DefaultAutoSaveInterval
	}
	return &AutoSaver{
		persistence: persistence,
		store:       store,
		interval:    interval,
		logger:      logger.WithComponent("autosave"),
	}
}

// Start launches the loop. It stops when ctx is cancelled or Stop is called.
// Starting a running saver does nothing.
func (a *AutoSaver) Start(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancel != nil {
		select {
		case <-a.done:
		default:
			return
		}
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.done = make(chan struct{})

	go a.loop(ctx, a.done)
	a.logger.Infow("Auto-save started", "interval", a.interval.String())
}

// Stop ends the loop and waits for an in-progress tick to finish.
func (a *AutoSaver) Stop() {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	a.logger.Infow("Auto-save stopped")
}

func (a *AutoSaver) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.tick(ctx)
		}
	}
}

func (a *AutoSaver) tick(ctx context.Context) {
	if !a.store.Dirty() {
		return
	}
	saved, err := a.persistence.TrySave(ctx)
	switch {
	case err != nil:
		a.logger.Warnw("Auto-save failed", "error", err)
	case !saved:
		a.logger.Debugw("Auto-save skipped, save already in flight")
	default:
		a.logger.Debugw("Auto-save completed", "revision", a.store.Revision())
	}
}
