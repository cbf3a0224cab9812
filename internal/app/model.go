// Package app implements the root Bubble Tea model of the site: navigation
// bar, routed page plugins and the feature flag debug panel.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/portfolio/internal/config"
	"github.com/wilbur182/portfolio/internal/features"
	"github.com/wilbur182/portfolio/internal/keymap"
	"github.com/wilbur182/portfolio/internal/mouse"
	appmsg "github.com/wilbur182/portfolio/internal/msg"
	"github.com/wilbur182/portfolio/internal/nav"
	"github.com/wilbur182/portfolio/internal/plugin"
)

// Model is the root Bubble Tea model for the site.
type Model struct {
	cfg      *config.Config
	registry *plugin.Registry
	keymap   *keymap.Registry
	flags    *features.Context
	env      features.EnvResolver

	activePath string

	// changes collects flag notifications raised while handling a message;
	// they are turned into FlagChangedMsg commands once the handler returns.
	changes *[]appmsg.FlagChangedMsg

	// UI state
	width, height int
	mouse         *mouse.Handler

	// Debug panel
	debug debugPanel

	// Status/toast messages
	statusMsg     string
	statusExpiry  time.Time
	statusIsError bool

	// copyText writes to the system clipboard.
	copyText func(string) error
}

// New creates the root model. The model subscribes to flags for the
// lifetime of the program.
func New(reg *plugin.Registry, km *keymap.Registry, flags *features.Context, cfg *config.Config) Model {
	changes := &[]appmsg.FlagChangedMsg{}
	flags.SubscribeAll(func(k features.Key, v bool) {
		*changes = append(*changes, appmsg.FlagChangedMsg{Key: k, Enabled: v})
	})

	m := Model{
		cfg:        cfg,
		registry:   reg,
		keymap:     km,
		mouse:      mouse.NewHandler(),
		flags:      flags,
		env:        features.NewEnvResolver(cfg.Features.EnvPrefix),
		activePath: "/",
		changes:    changes,
		debug:      newDebugPanel(),
		copyText:   writeClipboard,
	}
	m.focusActive()
	return m
}

// Init starts every plugin.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.registry.Start()...)
}

// Tabs returns the routed pages currently reachable: navigation entries
// whose flag is on and that have a registered plugin.
func (m Model) Tabs() []nav.Item {
	var tabs []nav.Item
	for _, it := range nav.Visible(m.flags) {
		if m.registry.ByPath(it.Path) != nil {
			tabs = append(tabs, it)
		}
	}
	return tabs
}

// ActivePlugin returns the plugin serving the active path.
func (m Model) ActivePlugin() plugin.Plugin {
	return m.registry.ByPath(m.activePath)
}

// Navigate switches to path if it is reachable.
func (m *Model) Navigate(path string) bool {
	it, ok := nav.Lookup(m.flags, path)
	if !ok || m.registry.ByPath(it.Path) == nil {
		return false
	}
	m.activePath = it.Path
	m.focusActive()
	return true
}

func (m *Model) cycleTab(delta int) {
	tabs := m.Tabs()
	if len(tabs) == 0 {
		return
	}
	idx := 0
	for i, it := range tabs {
		if it.Path == m.activePath {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(tabs)) % len(tabs)
	m.Navigate(tabs[idx].Path)
}

// ensureReachable falls back to the first tab when the active page's flag
// was switched off.
func (m *Model) ensureReachable() {
	tabs := m.Tabs()
	for _, it := range tabs {
		if it.Path == m.activePath {
			return
		}
	}
	if len(tabs) > 0 {
		m.activePath = tabs[0].Path
	}
	m.focusActive()
}

// focusActive gives keyboard focus to the active plugin, unless the debug
// panel holds it.
func (m *Model) focusActive() {
	for _, p := range m.registry.Plugins() {
		p.SetFocused(p.Path() == m.activePath && !m.debug.focused)
	}
}

// DebugVisible reports whether the debug panel is shown.
func (m Model) DebugVisible() bool {
	return m.flags.IsEnabled(features.DebugMode)
}

// drainChanges converts collected flag notifications into commands.
func (m Model) drainChanges() tea.Cmd {
	if len(*m.changes) == 0 {
		return nil
	}
	pending := *m.changes
	*m.changes = nil
	cmds := make([]tea.Cmd, 0, len(pending))
	for _, c := range pending {
		cmds = append(cmds, func() tea.Msg { return c })
	}
	return tea.Batch(cmds...)
}

// ShowToast displays a temporary status message.
func (m *Model) ShowToast(msg string, duration time.Duration, isError bool) {
	m.statusMsg = msg
	m.statusExpiry = time.Now().Add(duration)
	m.statusIsError = isError
}

// ClearToast clears any expired toast message.
func (m *Model) ClearToast() {
	if m.statusMsg != "" && time.Now().After(m.statusExpiry) {
		m.statusMsg = ""
		m.statusIsError = false
	}
}
