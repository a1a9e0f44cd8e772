package services

import (
	"sync"
	"time"

	"github.com/rachef/sitecms/internal/domain/document"
	"github.com/rachef/sitecms/internal/domain/entities"
)

// DefaultBackupLimit is the number of formation backups kept.
const DefaultBackupLimit = 10

// BackupLedger keeps copies of formations.items, newest first.
type BackupLedger struct {
	mu      sync.Mutex
	limit   int
	entries []entities.FormationBackup
}

// NewBackupLedger creates a ledger holding at most limit backups.
func NewBackupLedger(limit int) *BackupLedger {
	if limit <= 0 {
		limit = DefaultBackupLimit
	}
	return &BackupLedger{limit: limit}
}

// Push stores a deep copy of items dated at and returns the entry.
func (b *BackupLedger) Push(at time.Time, items []any) entities.FormationBackup {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry := entities.FormationBackup{
		Date:  entities.FormatTimestamp(at),
		Items: cloneItems(items),
	}
	b.entries = append([]entities.FormationBackup{entry}, b.entries...)
	if len(b.entries) > b.limit {
		b.entries = b.entries[:b.limit]
	}
	return entities.FormationBackup{Date: entry.Date, Items: cloneItems(entry.Items)}
}

// Find returns a copy of the items backed up at exactly date.
func (b *BackupLedger) Find(date string) ([]any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, e := range b.entries {
		if e.Date == date {
			return cloneItems(e.Items), true
		}
	}
	return nil, false
}

// Len returns the number of stored backups.
func (b *BackupLedger) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Entries returns copies of the backups, newest first.
func (b *BackupLedger) Entries() []entities.FormationBackup {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]entities.FormationBackup, len(b.entries))
	for i, e := range b.entries {
		out[i] = entities.FormationBackup{Date: e.Date, Items: cloneItems(e.Items)}
	}
	return out
}

func cloneItems(items []any) []any {
	if items == nil {
		return []any{}
	}
	return document.Clone(items).([]any)
}

// BackupFormations stores a copy of formations.items. Backups are only ever
// taken on request.
func (s *StoreService) BackupFormations() (entities.FormationBackup, error) {
	s.mu.RLock()
	list, err := formationList(s.data)
	if err != nil {
		s.mu.RUnlock()
		return entities.FormationBackup{}, err
	}
	entry := s.backups.Push(s.now(), list)
	s.mu.RUnlock()

	s.notify(entities.LevelInfo, "Formations backed up")
	return entry, nil
}

// RestoreFormationBackup puts back the formations backed up at exactly date
// and rebuilds the navbar. It reports false when no backup has that date.
func (s *StoreService) RestoreFormationBackup(date string) (bool, error) {
	items, ok := s.backups.Find(date)
	if !ok {
		return false, nil
	}
	err := s.apply(change{kind: entities.ChangeRestore, op: "restore_formations", file: entities.FileData, path: entities.FormationsPath}, func() error {
		if err := s.data.Set(entities.FormationsPath, items); err != nil {
			return err
		}
		SyncNavbarFormations(s.data)
		return nil
	})
	if err != nil {
		return false, err
	}
	s.notify(entities.LevelSuccess, "Formations restored from backup")
	return true, nil
}

// FormationBackups lists the stored backups, newest first.
func (s *StoreService) FormationBackups() []entities.FormationBackup {
	return s.backups.Entries()
}
