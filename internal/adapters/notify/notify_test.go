package notify

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rachef/sitecms/internal/domain/entities"
	"github.com/rachef/sitecms/internal/infrastructure/logger"
)

func note(level entities.NotificationLevel, i int) entities.Notification {
	return entities.Notification{Level: level, Message: fmt.Sprintf("message %d", i), At: time.Unix(int64(i), 0)}
}

func TestFeed_KeepsNewest(t *testing.T) {
	feed := NewFeed(3)
	for i := 1; i <= 5; i++ {
		feed.Notify(note(entities.LevelInfo, i))
	}

	all := feed.Recent(0)
	require.Len(t, all, 3)
	assert.Equal(t, "message 5", all[0].Message)
	assert.Equal(t, "message 3", all[2].Message)

	two := feed.Recent(2)
	require.Len(t, two, 2)
	assert.Equal(t, "message 4", two[1].Message)
}

func TestFeed_Empty(t *testing.T) {
	assert.Empty(t, NewFeed(0).Recent(10))
}

func TestLogNotifier_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	notifier := NewLogNotifier(&logger.Logger{SugaredLogger: zap.New(core).Sugar()})

	notifier.Notify(note(entities.LevelError, 1))
	notifier.Notify(note(entities.LevelWarning, 2))
	notifier.Notify(note(entities.LevelSuccess, 3))

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[2].Level)
	assert.Equal(t, "message 3", entries[2].Message)
	assert.Equal(t, "success", entries[2].ContextMap()["notification_level"])
}

func TestMulti_FansOut(t *testing.T) {
	a, b := NewFeed(5), NewFeed(5)

	Multi{a, b}.Notify(note(entities.LevelInfo, 1))

	assert.Len(t, a.Recent(0), 1)
	assert.Len(t, b.Recent(0), 1)
}
