package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/toastbar/internal/core/logging"
	"github.com/colonyops/toastbar/internal/core/notify"
	"github.com/colonyops/toastbar/internal/data/stores"
)

const pollTimeout = 5 * time.Second

// feedTickMsg triggers the next database poll.
type feedTickMsg struct{}

// feedResultMsg carries notifications saved by other processes.
type feedResultMsg struct {
	items []notify.Notification
	err   error
}

// Feed polls the notification store for entries written by other processes,
// such as `toastbar push`, and hands them to the banner.
type Feed struct {
	store    notify.Store
	interval time.Duration
	exclude  string
	cursor   int64
	log      zerolog.Logger
}

// NewFeed creates a feed over store. Entries whose source equals exclude are
// skipped because this process already displayed them.
func NewFeed(store notify.Store, interval time.Duration, exclude string) *Feed {
	return &Feed{
		store:    store,
		interval: interval,
		exclude:  exclude,
		log:      logging.Component("feed"),
	}
}

// Prime moves the cursor past existing history so only new entries show.
func (f *Feed) Prime(ctx context.Context) error {
	if f == nil || f.store == nil {
		return nil
	}
	seq, err := f.store.LastSeq(ctx)
	if err != nil {
		return err
	}
	f.cursor = seq
	return nil
}

// Cursor returns the sequence number of the last delivered entry.
func (f *Feed) Cursor() int64 {
	return f.cursor
}

// Schedule returns the command for the next poll tick. A feed without a store
// or with a zero interval never polls.
func (f *Feed) Schedule() tea.Cmd {
	if f == nil || f.store == nil || f.interval <= 0 {
		return nil
	}
	return tea.Tick(f.interval, func(time.Time) tea.Msg {
		return feedTickMsg{}
	})
}

// Poll returns a command that loads entries newer than the cursor.
func (f *Feed) Poll() tea.Cmd {
	store, cursor, exclude := f.store, f.cursor, f.exclude
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), pollTimeout)
		defer cancel()
		items, err := store.Since(ctx, cursor, exclude)
		return feedResultMsg{items: items, err: err}
	}
}

// Apply advances the cursor past msg's entries and returns them. Errors are
// logged and yield no entries; the next tick retries from the same cursor.
func (f *Feed) Apply(msg feedResultMsg) []notify.Notification {
	if msg.err != nil {
		ev := f.log.Warn()
		if stores.IsBusyError(msg.err) {
			ev = f.log.Debug()
		}
		ev.Err(msg.err).Int64("cursor", f.cursor).Msg("poll failed")
		return nil
	}
	for _, n := range msg.items {
		f.cursor = max(f.cursor, n.Seq)
	}
	if len(msg.items) > 0 {
		f.log.Debug().Int("count", len(msg.items)).Int64("cursor", f.cursor).Msg("delivered")
	}
	return msg.items
}
