// Package tui hosts the notification banner in a full-screen Bubble Tea
// program.
package tui

import (
	"fmt"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/toastbar/internal/core/config"
	"github.com/colonyops/toastbar/internal/core/logging"
	"github.com/colonyops/toastbar/internal/core/notify"
	"github.com/colonyops/toastbar/internal/core/styles"
	"github.com/colonyops/toastbar/internal/tui/banner"
	tuinotify "github.com/colonyops/toastbar/internal/tui/notify"
)

// Banner origin within the screen. Mouse coordinates are translated by this
// offset before hit-testing.
const (
	bannerX = 2
	bannerY = 2
)

const (
	defaultScreenWidth  = 80
	defaultScreenHeight = 24
)

// Options configures a Model.
type Options struct {
	Config *config.Config
	// Store persists published notifications and feeds entries written by
	// other processes. Nil keeps everything in memory.
	Store notify.Store
	// Warnings are shown as toasts on startup.
	Warnings []config.ValidationWarning
	// Schedule overrides the item timer; nil uses tea.Tick.
	Schedule banner.Scheduler
	// Feed overrides the database feed; nil builds one from Store.
	Feed *Feed
}

// Model is the root Bubble Tea model.
type Model struct {
	bus    *tuinotify.Bus
	banner *banner.Banner
	feed   *Feed
	keys   KeyMap
	help   help.Model
	log    zerolog.Logger

	width    int
	height   int
	pushed   int
	quitting bool
}

// New creates the root model. Startup warnings are queued so they appear as
// soon as the program starts.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		def := config.DefaultConfig()
		cfg = &def
	}

	queue := tuinotify.NewQueue(cfg.Toast.MaxVisible)
	bus := tuinotify.NewBus(queue, opts.Store, tuinotify.SourceTUI)

	feed := opts.Feed
	if feed == nil && opts.Store != nil {
		feed = NewFeed(opts.Store, cfg.TUI.PollInterval, tuinotify.SourceTUI)
	}

	for _, w := range opts.Warnings {
		bus.Deliver(notify.New(notify.TypeError, fmt.Sprintf("config %s: %s", w.Item, w.Message)))
	}

	return Model{
		bus: bus,
		banner: banner.New(queue, banner.Options{
			TTL:      cfg.Toast.TTL,
			MaxWidth: cfg.Toast.MaxWidth,
			Schedule: opts.Schedule,
		}),
		feed: feed,
		keys: DefaultKeyMap(),
		help: help.New(),
		log:  logging.Component("tui"),
	}
}

// Bus returns the notification bus the model publishes to.
func (m Model) Bus() *tuinotify.Bus {
	return m.bus
}

// Banner returns the hosted banner.
func (m Model) Banner() *banner.Banner {
	return m.banner
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.banner.Sync(), m.feed.Schedule())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.banner.SetWidth(msg.Width - 2*bannerX)
		m.help.SetWidth(msg.Width - 2)
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if mouse.Button != tea.MouseLeft {
			return m, nil
		}
		cmd, _ := m.banner.HandleClick(mouse.X-bannerX, mouse.Y-bannerY)
		return m, cmd

	case banner.ExpiredMsg:
		return m, m.banner.Update(msg)

	case feedTickMsg:
		return m, m.feed.Poll()

	case feedResultMsg:
		if items := m.feed.Apply(msg); len(items) > 0 {
			m.bus.Deliver(items...)
		}
		return m, tea.Batch(m.banner.Sync(), m.feed.Schedule())
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.log.Debug().Int("active", m.banner.Len()).Msg("quit")
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.PushSuccess):
		m.pushed++
		m.bus.Successf("Changes saved (#%d)", m.pushed)
		return m, m.banner.Sync()

	case key.Matches(msg, m.keys.PushError):
		m.pushed++
		m.bus.Errorf("Request failed: connection refused (#%d)", m.pushed)
		return m, m.banner.Sync()

	case key.Matches(msg, m.keys.PushInfo):
		m.pushed++
		m.bus.Infof("A new version is available (#%d)", m.pushed)
		return m, m.banner.Sync()

	case key.Matches(msg, m.keys.DismissNewest):
		cmd, _ := m.banner.DismissNewest()
		return m, cmd

	case key.Matches(msg, m.keys.DismissAll):
		return m, m.banner.DismissAll()

	case key.Matches(msg, m.keys.DismissAt):
		n := int(msg.String()[0] - '0')
		cmd, _ := m.banner.DismissAt(n - 1)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// render draws the header and help footer with the banner stack composited
// at its fixed origin.
func (m Model) render() string {
	w, h := m.width, m.height
	if w == 0 {
		w = defaultScreenWidth
	}
	if h == 0 {
		h = defaultScreenHeight
	}

	header := styles.HeaderStyle.Render("toastbar") + "  " +
		styles.TextMutedStyle.Render(fmt.Sprintf("%d active", m.banner.Len()))
	footer := styles.HelpStyle.Render(m.help.View(m.keys))

	body := lipgloss.NewStyle().
		Height(max(h-lipgloss.Height(footer), 1)).
		Render(header)
	background := lipgloss.JoinVertical(lipgloss.Left, body, footer)

	stack := m.banner.View()
	if stack == "" {
		stack = styles.TextMutedStyle.Render("No notifications. Press s, e or i to push one.")
	}

	bgLayer := lipgloss.NewLayer(background)
	stackLayer := lipgloss.NewLayer(stack)
	stackLayer.X(bannerX).Y(bannerY).Z(1)

	compositor := lipgloss.NewCompositor(bgLayer, stackLayer)
	return lipgloss.NewStyle().MaxWidth(w).Render(compositor.Render())
}
