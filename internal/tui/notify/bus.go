// Package notify connects notification producers to the active toast queue
// and to persisted history.
package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/colonyops/toastbar/internal/core/logging"
	"github.com/colonyops/toastbar/internal/core/notify"
)

// SourceTUI tags notifications published from inside the terminal UI.
const SourceTUI = "tui"

// Bus publishes notifications to the queue and persists them to a Store.
// A nil store keeps notifications in memory only.
type Bus struct {
	queue  *Queue
	store  notify.Store
	source string
	log    zerolog.Logger
}

// NewBus creates a bus that feeds queue. Notifications it persists are tagged
// with source.
func NewBus(queue *Queue, store notify.Store, source string) *Bus {
	return &Bus{
		queue:  queue,
		store:  store,
		source: source,
		log:    logging.Component("notify-bus"),
	}
}

// Publish pushes n onto the queue and persists it. Persistence failures are
// logged and do not prevent the toast from showing.
func (b *Bus) Publish(n notify.Notification) notify.Notification {
	n = n.WithDefaults()
	if n.Source == "" {
		n.Source = b.source
	}

	if b.store != nil {
		ctx := logging.WithNotificationID(context.Background(), n.ID)
		seq, err := b.store.Save(ctx, n)
		if err != nil {
			b.log.Error().Ctx(ctx).Err(err).Msg("failed to persist notification")
		} else {
			n.Seq = seq
		}
	}

	n = b.queue.Push(n)
	b.log.Debug().Object("notification", n).Msg("published")
	return n
}

// Successf publishes a success notification.
func (b *Bus) Successf(format string, args ...any) notify.Notification {
	return b.Publish(notify.Notification{
		Type:    notify.TypeSuccess,
		Message: fmt.Sprintf(format, args...),
	})
}

// Errorf publishes an error notification.
func (b *Bus) Errorf(format string, args ...any) notify.Notification {
	return b.Publish(notify.Notification{
		Type:    notify.TypeError,
		Message: fmt.Sprintf(format, args...),
	})
}

// Infof publishes an info notification.
func (b *Bus) Infof(format string, args ...any) notify.Notification {
	return b.Publish(notify.Notification{
		Type:    notify.TypeInfo,
		Message: fmt.Sprintf(format, args...),
	})
}

// Deliver pushes notifications that were already persisted elsewhere, such
// as by `toastbar push`, without saving them again.
func (b *Bus) Deliver(items ...notify.Notification) {
	for _, n := range items {
		b.queue.Push(n)
		b.log.Debug().Object("notification", n).Msg("delivered from history")
	}
}
