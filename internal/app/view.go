package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wilbur182/portfolio/internal/keymap"
	"github.com/wilbur182/portfolio/internal/nav"
	"github.com/wilbur182/portfolio/internal/styles"
	"github.com/wilbur182/portfolio/internal/ui"
)

const (
	headerHeight = 2
	footerHeight = 1
)

// View renders the site.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n\n")

	bodyHeight := m.height - headerHeight
	if m.cfg.UI.ShowFooter {
		bodyHeight -= footerHeight
	}
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	sb.WriteString(m.renderBody(bodyHeight))

	if m.cfg.UI.ShowFooter {
		sb.WriteString("\n")
		sb.WriteString(m.renderFooter())
	}
	return sb.String()
}

// renderHeader renders the logo and, in development, the navigation bar.
func (m Model) renderHeader() string {
	logo := styles.Logo.Render("portfolio")
	if !nav.ShowBar(m.cfg) {
		return logo
	}
	parts := make([]string, 0, len(m.Tabs()))
	for _, it := range m.Tabs() {
		if it.Path == m.activePath {
			parts = append(parts, styles.TabActive.Render(it.Label))
		} else {
			parts = append(parts, styles.TabInactive.Render(it.Label))
		}
	}
	avail := m.width - lipgloss.Width(logo) - 2
	return logo + "  " + ui.JoinTruncated(parts, " ", avail)
}

// layout returns the debug panel width (zero when hidden) and the width
// left for the page.
func (m Model) layout() (panelWidth, contentWidth int) {
	if !m.DebugVisible() {
		return 0, m.width
	}
	pw := debugPanelWidth
	if pw > m.width/2 {
		pw = m.width / 2
	}
	return pw, m.width - pw - 1
}

func (m Model) renderBody(height int) string {
	pw, contentWidth := m.layout()
	var panel string
	if pw > 0 {
		panel = m.renderDebugPanel(pw, height)
	}

	var content string
	if p := m.ActivePlugin(); p != nil {
		content = p.View(contentWidth, height)
	}
	content = lipgloss.NewStyle().Width(contentWidth).Height(height).MaxHeight(height).Render(content)

	if panel == "" {
		return content
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, content, " ", panel)
}

func (m Model) renderFooter() string {
	var hints []string
	if m.debug.focused && m.DebugVisible() {
		hints = append(hints,
			m.hint(keymap.ActionToggle, keymap.ContextFlags, "toggle"),
			m.hint(keymap.ActionCopyEnv, keymap.ContextFlags, "copy env"),
			m.hint(keymap.ActionResetAll, keymap.ContextFlags, "reset"),
			m.hint(keymap.ActionBack, keymap.ContextFlags, "back"),
		)
	} else {
		if p := m.ActivePlugin(); p != nil {
			for _, c := range p.Commands() {
				hints = append(hints, styles.KeyHint.Render(c.Key)+" "+c.Name)
			}
		}
		if nav.ShowBar(m.cfg) {
			hints = append(hints, m.hint(keymap.ActionNextPage, keymap.ContextGlobal, "next page"))
		}
		if m.DebugVisible() {
			hints = append(hints, m.hint(keymap.ActionFocusFlags, keymap.ContextGlobal, "flags"))
		}
		hints = append(hints, m.hint(keymap.ActionQuit, keymap.ContextGlobal, "quit"))
	}

	line := ui.JoinTruncated(nonEmpty(hints), "  ", m.width)
	if m.statusMsg != "" {
		toast := styles.ToastSuccess
		if m.statusIsError {
			toast = styles.ToastError
		}
		line = ui.TruncateStyled(toast.Render(m.statusMsg)+"  "+line, m.width)
	}
	return line
}

// hint renders the first key bound to action, or nothing when it is unbound.
func (m Model) hint(action keymap.Action, context, label string) string {
	keys := m.keymap.KeysFor(action, context)
	if len(keys) == 0 {
		return ""
	}
	return styles.KeyHint.Render(keys[0]) + " " + label
}

func nonEmpty(ss []string) []string {
	out := ss[:0]
	for _, s := range ss {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
