package notify

import (
	"sync"

	"github.com/rachef/sitecms/internal/domain/entities"
	"github.com/rachef/sitecms/internal/infrastructure/logger"
	"github.com/rachef/sitecms/internal/ports"
)

// DefaultFeedLimit is the number of notifications a Feed keeps.
const DefaultFeedLimit = 50

var (
	_ ports.Notifier = (*Feed)(nil)
	_ ports.Notifier = (*LogNotifier)(nil)
	_ ports.Notifier = Multi(nil)
)

// Feed keeps the most recent notifications for the dashboard
type Feed struct {
	mu    sync.RWMutex
	items []entities.Notification
	limit int
}

// NewFeed creates a feed holding at most limit notifications
func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return &Feed{limit: limit}
}

// Notify stores n, dropping the oldest notification when full
func (f *Feed) Notify(n entities.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append(f.items, n)
	if over := len(f.items) - f.limit; over > 0 {
		f.items = append([]entities.Notification(nil), f.items[over:]...)
	}
}

// Recent returns up to limit notifications, newest first. A non-positive
// limit returns all of them.
func (f *Feed) Recent(limit int) []entities.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if limit <= 0 || limit > len(f.items) {
		limit = len(f.items)
	}
	out := make([]entities.Notification, 0, limit)
	for i := len(f.items) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.items[i])
	}
	return out
}

// LogNotifier writes notifications to the application log
type LogNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier creates a notifier logging through logger
func NewLogNotifier(logger *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.WithComponent("notify")}
}

// Notify logs n at the level matching its severity
func (l *LogNotifier) Notify(n entities.Notification) {
	fields := []interface{}{"notification_level", string(n.Level), "at", n.At}
	switch n.Level {
	case entities.LevelError:
		l.logger.Errorw(n.Message, fields...)
	case entities.LevelWarning:
		l.logger.Warnw(n.Message, fields...)
	default:
		l.logger.Infow(n.Message, fields...)
	}
}

// Multi delivers every notification to each of its notifiers in order
type Multi []ports.Notifier

// Notify forwards n
func (m Multi) Notify(n entities.Notification) {
	for _, notifier := range m {
		notifier.Notify(n)
	}
}
