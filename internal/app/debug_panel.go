package app

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wilbur182/portfolio/internal/features"
	"github.com/wilbur182/portfolio/internal/keymap"
	"github.com/wilbur182/portfolio/internal/styles"
	"github.com/wilbur182/portfolio/internal/ui"
)

const (
	debugPanelWidth = 44
	resetButton     = 0
	cancelButton    = 1
)

var writeClipboard = clipboard.WriteAll

// debugPanel is the runtime toggle UI: one switch per flag, grouped by
// category.
type debugPanel struct {
	focused      bool
	cursor       int
	confirmReset bool
	resetFocus   int
}

func newDebugPanel() debugPanel {
	return debugPanel{}
}

// debugRows lists flags in panel order.
func debugRows() []features.Key {
	var keys []features.Key
	for _, c := range features.Categories {
		for _, f := range features.InCategory(c) {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// selectedKey returns the flag under the cursor.
func (m Model) selectedKey() features.Key {
	rows := debugRows()
	if m.debug.cursor >= len(rows) {
		return rows[len(rows)-1]
	}
	return rows[m.debug.cursor]
}

// updateDebug handles keys while the debug panel has focus.
func (m Model) updateDebug(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.debug.confirmReset {
		return m.updateResetConfirm(k)
	}

	action, ok := m.keymap.Lookup(k, keymap.ContextFlags)
	if !ok {
		return m, nil
	}

	rows := debugRows()
	switch action {
	case keymap.ActionBack:
		m.debug.focused = false
		m.focusActive()
	case keymap.ActionDown:
		if m.debug.cursor < len(rows)-1 {
			m.debug.cursor++
		}
	case keymap.ActionUp:
		if m.debug.cursor > 0 {
			m.debug.cursor--
		}
	case keymap.ActionToggle:
		m.flags.Toggle(m.selectedKey())
	case keymap.ActionEnable:
		m.flags.Enable(m.selectedKey())
	case keymap.ActionDisable:
		m.flags.Disable(m.selectedKey())
	case keymap.ActionCopyEnv:
		line := m.exportLine(m.selectedKey())
		if err := m.copyText(line); err != nil {
			m.ShowToast("clipboard unavailable", toastDuration, true)
		} else {
			m.ShowToast("copied "+line, toastDuration, false)
		}
	case keymap.ActionResetAll:
		m.debug.confirmReset = true
		m.debug.resetFocus = cancelButton
	}
	return m, m.drainChanges()
}

func (m Model) updateResetConfirm(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "esc":
		m.debug.confirmReset = false
	case "left", "right", "tab", "shift+tab", "h", "l":
		m.debug.resetFocus = 1 - m.debug.resetFocus
	case "enter", " ":
		m.debug.confirmReset = false
		if m.debug.resetFocus == resetButton {
			m.flags.Reset()
			m.ShowToast("feature flags reset", toastDuration, false)
		}
	}
	return m, m.drainChanges()
}

// exportLine returns the shell line that pins the selected flag's current
// value through the environment.
func (m Model) exportLine(k features.Key) string {
	return fmt.Sprintf("export %s=%t", m.env.VarName(k), m.flags.IsEnabled(k))
}

// renderDebugPanel renders the panel at the given outer size.
func (m Model) renderDebugPanel(width, height int) string {
	inner := width - 4 // border + padding
	if inner < 10 {
		inner = 10
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Feature flags"))
	sb.WriteString("\n")

	row := 0
	for _, c := range features.Categories {
		sb.WriteString("\n")
		sb.WriteString(styles.Muted.Render(string(c)))
		sb.WriteString("\n")
		for _, f := range features.InCategory(c) {
			sb.WriteString(m.renderDebugRow(f, row, inner))
			sb.WriteString("\n")
			row++
		}
	}

	sel := m.selectedKey().Feature()
	sb.WriteString("\n")
	sb.WriteString(ui.TruncateStyled(styles.Muted.Render(sel.Description), inner))
	sb.WriteString("\n")
	sb.WriteString(ui.TruncateStyled(styles.Code.Render(m.env.VarName(sel.Key)), inner))
	sb.WriteString("\n")

	if err := m.flags.LastSaveError(); err != nil {
		sb.WriteString(styles.ToastError.Render("not persisted"))
		sb.WriteString("\n")
	}

	if m.debug.confirmReset {
		sb.WriteString("\n")
		sb.WriteString(styles.Body.Render("Reset all flags?"))
		sb.WriteString("\n")
		sb.WriteString(ui.RenderButtons([]string{"Reset", "Cancel"}, m.debug.resetFocus, -1))
	}

	style := styles.PanelInactive
	if m.debug.focused {
		style = styles.PanelActive
	}
	return style.Width(width - 2).Height(height - 2).Render(sb.String())
}

func (m Model) renderDebugRow(f features.Feature, row, width int) string {
	cursor := "  "
	if m.debug.focused && row == m.debug.cursor {
		cursor = styles.ListCursor.Render("> ")
	}
	src := styles.Source.Render(m.flags.Source(f.Key).String())
	sw := ui.RenderSwitch(m.flags.IsEnabled(f.Key))
	nameWidth := width - 2 - lipgloss.Width(sw) - lipgloss.Width(src) - 2
	name := ui.PadRight(f.Name, nameWidth)
	if m.debug.focused && row == m.debug.cursor {
		name = styles.ListItemSelected.Render(name)
	} else {
		name = styles.ListItemNormal.Render(name)
	}
	return ui.TruncateStyled(cursor+name+" "+sw+" "+src, width)
}
