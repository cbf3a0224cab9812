package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wilbur182/portfolio/internal/features"
	"github.com/wilbur182/portfolio/internal/mouse"
	"github.com/wilbur182/portfolio/internal/nav"
	"github.com/wilbur182/portfolio/internal/styles"
)

const (
	regionTab  = "tab"
	regionFlag = "flag"

	// bodyTop is the first screen row below the header and its blank line.
	bodyTop = headerHeight
)

// rebuildHitMap registers the clickable regions of the current layout:
// navigation tabs and debug panel rows.
func (m Model) rebuildHitMap() {
	h := m.mouse.HitMap
	h.Clear()

	if nav.ShowBar(m.cfg) {
		logoWidth := lipgloss.Width(styles.Logo.Render("portfolio"))
		x := logoWidth + 2
		avail := m.width - logoWidth - 2
		used := 0
		for i, it := range m.Tabs() {
			style := styles.TabInactive
			if it.Path == m.activePath {
				style = styles.TabActive
			}
			w := lipgloss.Width(style.Render(it.Label))
			sep := 0
			if i > 0 {
				sep = 1
			}
			if used+sep+w > avail {
				break
			}
			x += sep
			h.AddRect(regionTab, x, 0, w, 1, it.Path)
			x += w
			used += sep + w
		}
	}

	pw, contentWidth := m.layout()
	if pw == 0 {
		return
	}
	px := contentWidth + 1
	line := 1 // below the title
	for _, c := range features.Categories {
		line += 2 // blank line and category heading
		for _, f := range features.InCategory(c) {
			h.AddRect(regionFlag, px, bodyTop+1+line, pw, 1, f.Key)
			line++
		}
	}
}

// handleMouse toggles clicked flags, follows clicked tabs and hands every
// other event to the active page in page coordinates.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.rebuildHitMap()

	if a := m.mouse.HandleMouse(msg); a.Type == mouse.ActionClick {
		switch a.Region.ID {
		case regionTab:
			m.Navigate(a.Region.Data.(string))
			return m, nil
		case regionFlag:
			k := a.Region.Data.(features.Key)
			for i, row := range debugRows() {
				if row == k {
					m.debug.cursor = i
				}
			}
			m.flags.Toggle(k)
			return m, m.drainChanges()
		}
	}

	_, contentWidth := m.layout()
	if msg.Action == tea.MouseActionPress && (msg.X >= contentWidth || msg.Y < bodyTop) {
		return m, nil
	}
	local := msg
	local.Y -= bodyTop
	return m, m.forwardToActive(local)
}
