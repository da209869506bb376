// Package banner renders the active notification list as a stack of
// dismissible toasts. The banner never mutates the list itself; every
// removal goes through the Source's Dismiss command.
package banner

import (
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/toastbar/internal/core/logging"
	"github.com/colonyops/toastbar/internal/core/notify"
)

const (
	// DefaultTTL is how long an item stays mounted before dismissing itself.
	DefaultTTL = 5 * time.Second

	defaultWidth = 50
	minWidth     = 16
)

// Source is the store that owns the notification list.
type Source interface {
	// Notifications returns the current list in insertion order.
	Notifications() []notify.Notification
	// Dismiss removes the entry at index.
	Dismiss(index int) bool
}

// Scheduler arranges for fn's message to be delivered after d. tea.Tick
// satisfies it.
type Scheduler func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// ExpiredMsg is delivered when an item's auto-dismiss timer fires.
type ExpiredMsg struct {
	Key   string
	Token uint64
}

// Options configures a Banner. Zero values select the defaults.
type Options struct {
	TTL      time.Duration
	MaxWidth int
	Schedule Scheduler
}

// Banner mounts one Item per entry of its Source.
type Banner struct {
	source   Source
	ttl      time.Duration
	maxWidth int
	schedule Scheduler
	log      zerolog.Logger

	width     int
	items     []*Item
	byKey     map[string]*Item
	nextToken uint64
}

// New creates a banner over source. Call Sync to mount the current list.
func New(source Source, opts Options) *Banner {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Schedule == nil {
		opts.Schedule = tea.Tick
	}
	return &Banner{
		source:   source,
		ttl:      opts.TTL,
		maxWidth: opts.MaxWidth,
		schedule: opts.Schedule,
		log:      logging.Component("banner"),
		byKey:    make(map[string]*Item),
	}
}

// SetWidth sets the width available to the banner.
func (b *Banner) SetWidth(w int) {
	b.width = w
}

// Width returns the rendered width of each item.
func (b *Banner) Width() int {
	w := b.width
	if w <= 0 {
		w = defaultWidth
	}
	if b.maxWidth > 0 {
		w = min(w, b.maxWidth)
	}
	return max(w, minWidth)
}

// Items returns the mounted items in list order.
func (b *Banner) Items() []*Item {
	return b.items
}

// Len returns the number of mounted items.
func (b *Banner) Len() int {
	return len(b.items)
}

// Sync reconciles mounted items with the source. New entries mount and arm a
// timer. Entries that left the list unmount and their timers are cancelled.
// Entries that stay keep their timer and only have their position updated.
func (b *Banner) Sync() tea.Cmd {
	list := b.source.Notifications()

	seen := make(map[string]struct{}, len(list))
	items := make([]*Item, 0, len(list))
	var cmds []tea.Cmd

	for i, n := range list {
		seen[n.ID] = struct{}{}
		it, ok := b.byKey[n.ID]
		if !ok {
			it = newItem(n, i, b.dismiss)
			b.byKey[n.ID] = it
			cmds = append(cmds, b.mount(it))
		}
		it.index = i
		items = append(items, it)
	}

	for key, it := range b.byKey {
		if _, ok := seen[key]; !ok {
			it.disarm()
			delete(b.byKey, key)
			b.log.Debug().Str("key", key).Msg("unmounted")
		}
	}

	b.items = items
	return tea.Batch(cmds...)
}

func (b *Banner) mount(it *Item) tea.Cmd {
	b.nextToken++
	token := b.nextToken
	it.arm(token)

	key := it.Key()
	b.log.Debug().Str("key", key).Dur("ttl", b.ttl).Msg("mounted")
	return b.schedule(b.ttl, func(time.Time) tea.Msg {
		return ExpiredMsg{Key: key, Token: token}
	})
}

func (b *Banner) dismiss(index int) {
	if !b.source.Dismiss(index) {
		b.log.Debug().Int("index", index).Msg("dismiss ignored, index out of range")
	}
}

// Update handles timer messages. Other messages are ignored.
func (b *Banner) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(ExpiredMsg); ok {
		return b.expire(msg)
	}
	return nil
}

func (b *Banner) expire(msg ExpiredMsg) tea.Cmd {
	it, ok := b.byKey[msg.Key]
	if !ok || it.token != msg.Token {
		b.log.Debug().Str("key", msg.Key).Msg("stale timer dropped")
		return nil
	}

	// Producers may have changed the list since the last Sync. Resolve the
	// item's current position before dismissing.
	cmd := b.Sync()
	if _, ok := b.byKey[msg.Key]; !ok {
		return cmd
	}
	it.Dismiss()
	return tea.Batch(cmd, b.Sync())
}

// DismissAt dismisses the mounted item at index. It reports false when index
// is out of range.
func (b *Banner) DismissAt(index int) (tea.Cmd, bool) {
	cmd := b.Sync()
	if index < 0 || index >= len(b.items) {
		return cmd, false
	}
	b.items[index].Dismiss()
	return tea.Batch(cmd, b.Sync()), true
}

// DismissNewest dismisses the most recently added item.
func (b *Banner) DismissNewest() (tea.Cmd, bool) {
	return b.DismissAt(len(b.items) - 1)
}

// DismissAll dismisses every mounted item, newest first, so each removal
// addresses a position that is still valid.
func (b *Banner) DismissAll() tea.Cmd {
	cmd := b.Sync()
	for i := len(b.items) - 1; i >= 0; i-- {
		b.items[i].Dismiss()
	}
	return tea.Batch(cmd, b.Sync())
}

// bounds is the rectangle an item occupies, relative to the banner origin.
type bounds struct {
	top, height, width int
}

// hitControl reports whether (x, y) falls on the dismiss control of b. The
// control region is the last four columns: space, glyph, padding and border.
func (r bounds) hitControl(x, y int) bool {
	return y >= r.top && y < r.top+r.height && x >= r.width-4 && x < r.width
}

func (b *Banner) render() (string, []bounds) {
	if len(b.items) == 0 {
		return "", nil
	}

	width := b.Width()
	views := make([]string, 0, len(b.items))
	layout := make([]bounds, 0, len(b.items))
	top := 0
	for _, it := range b.items {
		v := it.View(width)
		h := lipgloss.Height(v)
		views = append(views, v)
		layout = append(layout, bounds{top: top, height: h, width: lipgloss.Width(v)})
		top += h
	}

	return lipgloss.JoinVertical(lipgloss.Left, views...), layout
}

// HandleClick dismisses the item whose dismiss control contains (x, y),
// given relative to the banner's top-left corner.
func (b *Banner) HandleClick(x, y int) (tea.Cmd, bool) {
	_, layout := b.render()
	for i, r := range layout {
		if r.hitControl(x, y) {
			return b.DismissAt(i)
		}
	}
	return nil, false
}

// View renders the stack, oldest at the top. An empty list renders "".
func (b *Banner) View() string {
	out, _ := b.render()
	return out
}
