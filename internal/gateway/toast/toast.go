// Package toast provides notification sink implementations: the portal's
// stand-in for the browser toast tray.
package toast

import (
	"context"
	"sync"

	"go.uber.org/zap"

	port_notify "github.com/Rea1521/mahlangu-capital-bank/internal/ports/gateway/notify"
)

// LogNotifier writes notices to the structured log.
type LogNotifier struct {
	log *zap.Logger
}

var _ port_notify.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, notice port_notify.Notice) {
	n.log.Info("notice",
		zap.String("kind", string(notice.Kind)),
		zap.String("message", notice.Message))
}

// Feed is a bounded per-session notice queue the API drains for the browser.
// When full, the oldest notice is dropped.
type Feed struct {
	mu      sync.Mutex
	limit   int
	notices []port_notify.Notice
}

var _ port_notify.Notifier = (*Feed)(nil)

func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = 32
	}
	return &Feed{limit: limit}
}

func (f *Feed) Notify(_ context.Context, notice port_notify.Notice) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.notices) >= f.limit {
		f.notices = f.notices[1:]
	}
	f.notices = append(f.notices, notice)
}

// Drain returns the queued notices and empties the feed.
func (f *Feed) Drain() []port_notify.Notice {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.notices) == 0 {
		return nil
	}

	out := make([]port_notify.Notice, len(f.notices))
	copy(out, f.notices)
	f.notices = f.notices[:0]
	return out
}

// Multi fans one notice out to several sinks.
type Multi []port_notify.Notifier

var _ port_notify.Notifier = (Multi)(nil)

func (m Multi) Notify(ctx context.Context, notice port_notify.Notice) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, notice)
		}
	}
}
