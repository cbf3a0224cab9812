package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/portfolio/internal/features"
	"github.com/wilbur182/portfolio/internal/keymap"
	appmsg "github.com/wilbur182/portfolio/internal/msg"
	"github.com/wilbur182/portfolio/internal/plugin"
)

const toastDuration = 3 * time.Second

type toastTickMsg struct{}

func toastTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return toastTickMsg{} })
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case toastTickMsg:
		m.ClearToast()
		if m.statusMsg != "" {
			return m, toastTick()
		}
		return m, nil

	case appmsg.ToastMsg:
		d := msg.Duration
		if d == 0 {
			d = toastDuration
		}
		m.ShowToast(msg.Message, d, msg.IsError)
		return m, toastTick()

	case appmsg.FlagChangedMsg:
		return m.handleFlagChanged(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	// Plugin-owned messages such as ticks reach their owner even when it is
	// not the active page.
	return m, m.forwardToAll(msg)
}

func (m Model) handleFlagChanged(msg appmsg.FlagChangedMsg) (tea.Model, tea.Cmd) {
	if msg.Key == features.DebugMode && !msg.Enabled {
		m.debug = newDebugPanel()
	}
	m.ensureReachable()

	cmds := []tea.Cmd{m.forwardToAll(msg)}
	if m.statusMsg == "" {
		state := "off"
		if msg.Enabled {
			state = "on"
		}
		m.ShowToast(msg.Key.String()+" "+state, toastDuration, false)
		cmds = append(cmds, toastTick())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if k.String() == "ctrl+c" {
		m.registry.Stop()
		return m, tea.Quit
	}

	if m.debug.focused && m.DebugVisible() {
		return m.updateDebug(k)
	}

	if p := m.ActivePlugin(); p != nil {
		if tc, ok := p.(plugin.TextInputConsumer); ok && tc.ConsumesTextInput() {
			return m, m.forwardToActive(k)
		}
	}

	if action, ok := m.keymap.Lookup(k, keymap.ContextGlobal); ok {
		switch action {
		case keymap.ActionQuit:
			m.registry.Stop()
			return m, tea.Quit
		case keymap.ActionNextPage:
			m.cycleTab(1)
			return m, nil
		case keymap.ActionPrevPage:
			m.cycleTab(-1)
			return m, nil
		case keymap.ActionFocusFlags:
			if m.DebugVisible() {
				m.debug.focused = true
				m.focusActive()
			}
			return m, nil
		}
	}

	switch k.String() {
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		tabs := m.Tabs()
		if idx := int(k.String()[0] - '1'); idx < len(tabs) {
			m.Navigate(tabs[idx].Path)
		}
		return m, nil
	}

	return m, m.forwardToActive(k)
}

// forwardToActive delivers msg to the active plugin.
func (m Model) forwardToActive(msg tea.Msg) tea.Cmd {
	p := m.ActivePlugin()
	if p == nil {
		return nil
	}
	updated, cmd := p.Update(msg)
	m.registry.Replace(updated)
	return tea.Batch(cmd, m.drainChanges())
}

// forwardToAll delivers msg to every plugin, visible or not.
func (m Model) forwardToAll(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, p := range m.registry.Plugins() {
		updated, cmd := p.Update(msg)
		m.registry.Replace(updated)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(append(cmds, m.drainChanges())...)
}
