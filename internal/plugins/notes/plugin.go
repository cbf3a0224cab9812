// Package notes provides the notes mini-app: a small list of text notes kept
// in site storage when local storage is enabled, and in memory otherwise.
package notes

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/portfolio/internal/features"
	appmsg "github.com/wilbur182/portfolio/internal/msg"
	"github.com/wilbur182/portfolio/internal/plugin"
	"github.com/wilbur182/portfolio/internal/storage"
	"github.com/wilbur182/portfolio/internal/styles"
	"github.com/wilbur182/portfolio/internal/ui"
)

const (
	pluginID   = "notes"
	pluginName = "Notes"
	pluginPath = "/notes"
)

// Plugin is the notes mini-app.
type Plugin struct {
	ctx     *plugin.Context
	logger  *slog.Logger
	store   *Store
	durable bool // store is backed by site storage

	cursor  int
	adding  bool
	input   textinput.Model
	focused bool
}

// New returns the notes plugin.
func New() *Plugin {
	ti := textinput.New()
	ti.Placeholder = "Write a note..."
	ti.CharLimit = 280
	return &Plugin{input: ti}
}

func (p *Plugin) ID() string   { return pluginID }
func (p *Plugin) Name() string { return pluginName }
func (p *Plugin) Path() string { return pluginPath }

// Init opens the store selected by the localStorageEnabled flag.
func (p *Plugin) Init(ctx *plugin.Context) error {
	if ctx.Flags == nil {
		return errors.New("notes requires feature flags")
	}
	p.ctx = ctx
	p.logger = ctx.Logger
	if p.logger == nil {
		p.logger = slog.Default()
	}
	p.openStore()
	return nil
}

// openStore selects durable or in-memory storage. Unreadable durable
// storage degrades to an empty in-memory list.
func (p *Plugin) openStore() {
	var backing storage.Storage = storage.NewMemory()
	p.durable = false
	if p.ctx.Flags.IsEnabled(features.LocalStorageEnabled) && p.ctx.Storage != nil {
		backing = p.ctx.Storage
		p.durable = true
	}
	st, err := NewStore(backing)
	if err != nil {
		p.logger.Warn("notes storage unreadable, starting empty", "err", err)
		st, _ = NewStore(storage.NewMemory())
		p.durable = false
	}
	p.store = st
	p.cursor = 0
}

func (p *Plugin) Start() tea.Cmd { return nil }
func (p *Plugin) Stop()          {}

// ConsumesTextInput reports whether the note editor has focus.
func (p *Plugin) ConsumesTextInput() bool { return p.adding }

// Update handles list navigation, note entry and flag changes.
func (p *Plugin) Update(m tea.Msg) (plugin.Plugin, tea.Cmd) {
	switch m := m.(type) {
	case appmsg.FlagChangedMsg:
		if m.Key == features.LocalStorageEnabled {
			p.openStore()
		}
		return p, nil

	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		if p.adding {
			return p.updateAdding(m)
		}
		return p.updateList(m)
	}
	return p, nil
}

func (p *Plugin) updateAdding(k tea.KeyMsg) (plugin.Plugin, tea.Cmd) {
	switch k.String() {
	case "esc":
		p.adding = false
		p.input.Blur()
		p.input.SetValue("")
		return p, nil
	case "enter":
		text := p.input.Value()
		p.adding = false
		p.input.Blur()
		p.input.SetValue("")
		_, err := p.store.Add(text)
		switch {
		case errors.Is(err, ErrEmptyNote):
			return p, nil
		case err != nil:
			p.logger.Warn("note not persisted", "err", err)
			return p, appmsg.Toast("note kept for this session only", true)
		}
		p.cursor = len(p.store.List()) - 1
		return p, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(k)
	return p, cmd
}

func (p *Plugin) updateList(k tea.KeyMsg) (plugin.Plugin, tea.Cmd) {
	notes := p.store.List()
	switch k.String() {
	case "a", "n":
		p.adding = true
		return p, p.input.Focus()
	case "j", "down":
		if p.cursor < len(notes)-1 {
			p.cursor++
		}
	case "k", "up":
		if p.cursor > 0 {
			p.cursor--
		}
	case "d", "x":
		if p.cursor < len(notes) {
			if err := p.store.Delete(notes[p.cursor].ID); err != nil {
				p.logger.Warn("note deletion not persisted", "err", err)
			}
			if p.cursor > 0 && p.cursor >= len(notes)-1 {
				p.cursor--
			}
		}
	}
	return p, nil
}

// View renders the notes list.
func (p *Plugin) View(width, height int) string {
	var sb strings.Builder
	mode := "session only"
	if p.durable {
		mode = "saved locally"
	}
	sb.WriteString(styles.Title.Render("Notes"))
	sb.WriteString("  ")
	sb.WriteString(styles.Muted.Render(mode))
	sb.WriteString("\n\n")

	notes := p.store.List()
	if len(notes) == 0 {
		sb.WriteString(styles.Muted.Render("No notes yet. Press a to add one."))
	}
	for i, n := range notes {
		line := ui.PadRight(fmt.Sprintf("%s  %s", n.CreatedAt.Local().Format("Jan 02 15:04"), n.Text), width-2)
		if i == p.cursor && p.focused && !p.adding {
			sb.WriteString(styles.ListCursor.Render("> "))
			sb.WriteString(styles.ListItemSelected.Render(line))
		} else {
			sb.WriteString("  ")
			sb.WriteString(styles.ListItemNormal.Render(line))
		}
		sb.WriteString("\n")
	}

	if p.adding {
		sb.WriteString("\n")
		sb.WriteString(p.input.View())
	}
	return sb.String()
}

func (p *Plugin) IsFocused() bool { return p.focused }

func (p *Plugin) SetFocused(f bool) {
	p.focused = f
	if !f && p.adding {
		p.adding = false
		p.input.Blur()
	}
}

// Commands returns the notes key hints.
func (p *Plugin) Commands() []plugin.Command {
	if p.adding {
		return []plugin.Command{{Key: "enter", Name: "save"}, {Key: "esc", Name: "cancel"}}
	}
	return []plugin.Command{{Key: "a", Name: "add"}, {Key: "d", Name: "delete"}, {Key: "j/k", Name: "move"}}
}
