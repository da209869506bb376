package tui

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/toastbar/internal/core/config"
	"github.com/colonyops/toastbar/internal/core/notify"
	"github.com/colonyops/toastbar/internal/data/db"
	"github.com/colonyops/toastbar/internal/data/stores"
	"github.com/colonyops/toastbar/internal/tui/banner"
	"github.com/colonyops/toastbar/pkg/tuitest"
)

// manualTimers captures item timers so tests can fire them without waiting.
type manualTimers struct {
	delays []time.Duration
	fns    []func(time.Time) tea.Msg
}

func (m *manualTimers) Schedule(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	m.delays = append(m.delays, d)
	m.fns = append(m.fns, fn)
	return nil
}

func (m *manualTimers) fire(i int) tea.Msg {
	return m.fns[i](time.Now())
}

func newTestStore(t *testing.T) *stores.NotifyStore {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return stores.NewNotifyStore(database)
}

func newTestModel(t *testing.T, opts Options) (Model, *manualTimers) {
	t.Helper()
	timers := &manualTimers{}
	opts.Schedule = timers.Schedule
	m := New(opts)
	m.Init()
	return send(t, m, tuitest.WindowSize(80, 24)), timers
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		var ok bool
		m, ok = updated.(Model)
		require.True(t, ok)
	}
	return m
}

func activeMessages(m Model) []string {
	items := m.Banner().Items()
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Notification().Message)
	}
	return out
}

func TestModel_EmptyState(t *testing.T) {
	m, timers := newTestModel(t, Options{})

	view := tuitest.StripANSI(m.render())

	assert.Contains(t, view, "toastbar")
	assert.Contains(t, view, "0 active")
	assert.Contains(t, view, "No notifications")
	assert.Empty(t, timers.delays)
}

func TestModel_View(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	v := m.View()

	assert.True(t, v.AltScreen)
	assert.Equal(t, tea.MouseModeCellMotion, v.MouseMode)
}

func TestModel_PushKeys(t *testing.T) {
	store := newTestStore(t)
	m, timers := newTestModel(t, Options{Store: store})

	m = send(t, m, tuitest.KeyPress('s'), tuitest.KeyPress('e'), tuitest.KeyPress('i'))

	items := m.Banner().Items()
	require.Len(t, items, 3)
	assert.Equal(t, banner.VariantSuccess, items[0].Variant())
	assert.Equal(t, banner.VariantError, items[1].Variant())
	assert.Equal(t, banner.VariantInfo, items[2].Variant())
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second, 5 * time.Second}, timers.delays)

	view := tuitest.StripANSI(m.render())
	assert.Contains(t, view, "Changes saved (#1)")
	assert.Contains(t, view, "3 active")

	history, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	for _, n := range history {
		assert.Equal(t, "tui", n.Source)
	}
}

func TestModel_DismissKeys(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.Msg
		want []string
	}{
		{
			name: "x dismisses newest",
			keys: []tea.Msg{tuitest.KeyPress('x')},
			want: []string{"Changes saved (#1)", "Request failed: connection refused (#2)"},
		},
		{
			name: "esc dismisses newest",
			keys: []tea.Msg{tuitest.KeyEsc()},
			want: []string{"Changes saved (#1)", "Request failed: connection refused (#2)"},
		},
		{
			name: "X dismisses all",
			keys: []tea.Msg{tuitest.KeyPress('X')},
			want: []string{},
		},
		{
			name: "digit dismisses position",
			keys: []tea.Msg{tuitest.KeyPress('2')},
			want: []string{"Changes saved (#1)", "A new version is available (#3)"},
		},
		{
			name: "digit past end is ignored",
			keys: []tea.Msg{tuitest.KeyPress('9')},
			want: []string{"Changes saved (#1)", "Request failed: connection refused (#2)", "A new version is available (#3)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t, Options{})
			m = send(t, m, tuitest.KeyPress('s'), tuitest.KeyPress('e'), tuitest.KeyPress('i'))

			m = send(t, m, tt.keys...)

			assert.Equal(t, tt.want, activeMessages(m))
		})
	}
}

func TestModel_ClickDismissControl(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = send(t, m, tuitest.KeyPress('s'), tuitest.KeyPress('e'))

	width := m.Banner().Width()
	require.Equal(t, 80-2*bannerX, width)

	// Second item occupies rows 3-5 of the banner.
	m = send(t, m, tuitest.MouseClick(bannerX+width-3, bannerY+4))
	assert.Equal(t, []string{"Changes saved (#1)"}, activeMessages(m))

	// Right clicks and clicks on the message body do nothing.
	m = send(t, m,
		tuitest.MouseRightClick(bannerX+width-3, bannerY+1),
		tuitest.MouseClick(bannerX+3, bannerY+1),
	)
	assert.Equal(t, []string{"Changes saved (#1)"}, activeMessages(m))
}

func TestModel_AutoDismiss(t *testing.T) {
	m, timers := newTestModel(t, Options{})
	m = send(t, m, tuitest.KeyPress('s'), tuitest.KeyPress('e'))

	m = send(t, m, timers.fire(0))
	assert.Equal(t, []string{"Request failed: connection refused (#2)"}, activeMessages(m))

	m = send(t, m, timers.fire(1))
	assert.Empty(t, activeMessages(m))
}

func TestModel_ManualDismissCancelsTimer(t *testing.T) {
	m, timers := newTestModel(t, Options{})
	m = send(t, m, tuitest.KeyPress('s'), tuitest.KeyPress('e'))

	m = send(t, m, tuitest.KeyPress('1'))
	m = send(t, m, timers.fire(0))

	assert.Equal(t, []string{"Request failed: connection refused (#2)"}, activeMessages(m))
}

func TestModel_WarningsShowOnStart(t *testing.T) {
	m, timers := newTestModel(t, Options{
		Warnings: []config.ValidationWarning{{Category: "Toast", Item: "ttl", Message: "too short"}},
	})

	require.Len(t, activeMessages(m), 1)
	assert.Equal(t, "config ttl: too short", activeMessages(m)[0])
	assert.Len(t, timers.delays, 1)
}

func TestModel_ConfiguredTTLAndWidth(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Toast.TTL = 2 * time.Second
	cfg.Toast.MaxWidth = 30

	m, timers := newTestModel(t, Options{Config: &cfg})
	m = send(t, m, tuitest.KeyPress('i'))

	assert.Equal(t, []time.Duration{2 * time.Second}, timers.delays)
	assert.Equal(t, 30, m.Banner().Width())
}

func TestModel_FeedDeliversExternalNotifications(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	old := notify.New(notify.TypeInfo, "before start")
	old.Source = "cli"
	_, err := store.Save(ctx, old)
	require.NoError(t, err)

	feed := NewFeed(store, time.Second, "tui")
	require.NoError(t, feed.Prime(ctx))

	m, timers := newTestModel(t, Options{Store: store, Feed: feed})
	m = send(t, m, tuitest.KeyPress('s'))

	pushed := notify.New(notify.TypeError, "deploy failed")
	pushed.Source = "cli"
	_, err = store.Save(ctx, pushed)
	require.NoError(t, err)

	m = send(t, m, feedTickMsg{})
	m = send(t, m, feed.Poll()())

	assert.Equal(t, []string{"Changes saved (#1)", "deploy failed"}, activeMessages(m))
	assert.Len(t, timers.delays, 2)

	// A second poll finds nothing new.
	m = send(t, m, feed.Poll()())
	assert.Len(t, activeMessages(m), 2)
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t, Options{})

	updated, cmd := m.Update(tuitest.KeyPress('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, updated.(Model).quitting)
}
