package services

import (
	"sync"
	"time"

	"github.com/rachef/sitecms/internal/domain/entities"
)

// DefaultHistoryLimit is the number of saves kept for undo.
const DefaultHistoryLimit = 10

// HistoryLedger keeps the most recent saved document pairs, oldest first.
type HistoryLedger struct {
	mu      sync.Mutex
	limit   int
	entries []entities.HistoryEntry
}

// NewHistoryLedger creates a ledger holding at most limit entries.
func NewHistoryLedger(limit int) *HistoryLedger {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &HistoryLedger{limit: limit}
}

// Record appends a deep copy of snap and drops the oldest entries beyond the limit.
func (h *HistoryLedger) Record(at time.Time, action string, snap entities.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, entities.HistoryEntry{
		Timestamp: at,
		Action:    action,
		Data:      snap.Clone(),
	})
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append([]entities.HistoryEntry(nil), h.entries[over:]...)
	}
}

// StepBack drops the newest entry and returns a copy of the one before it.
// With fewer than two entries it does nothing and reports false.
func (h *HistoryLedger) StepBack() (entities.Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) < 2 {
		return entities.Snapshot{}, false
	}
	prev := h.entries[len(h.entries)-2].Data.Clone()
	h.entries = h.entries[:len(h.entries)-1]
	return prev, true
}

// Len returns the number of recorded entries.
func (h *HistoryLedger) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Entries returns deep copies of the recorded entries, oldest first.
func (h *HistoryLedger) Entries() []entities.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]entities.HistoryEntry, len(h.entries))
	for i, e := range h.entries {
		out[i] = entities.HistoryEntry{Timestamp: e.Timestamp, Action: e.Action, Data: e.Data.Clone()}
	}
	return out
}

// Summaries lists timestamps and actions, oldest first.
func (h *HistoryLedger) Summaries() []entities.HistorySummary {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]entities.HistorySummary, len(h.entries))
	for i, e := range h.entries {
		out[i] = entities.HistorySummary{Timestamp: e.Timestamp, Action: e.Action}
	}
	return out
}
