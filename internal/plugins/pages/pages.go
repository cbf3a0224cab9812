// Package pages provides the static markdown pages of the site.
package pages

import (
	"embed"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/portfolio/internal/features"
	"github.com/wilbur182/portfolio/internal/markdown"
	"github.com/wilbur182/portfolio/internal/mouse"
	appmsg "github.com/wilbur182/portfolio/internal/msg"
	"github.com/wilbur182/portfolio/internal/plugin"
	"github.com/wilbur182/portfolio/internal/styles"
)

//go:embed content/*.md
var content embed.FS

const (
	bannerInterval = 150 * time.Millisecond
	regionBanner   = "banner"
)

// bannerText scrolls across the about page.
const bannerText = "  ✦ available for new projects ✦ systems · tooling · storage ✦  "

type bannerTickMsg struct{ id string }

// Plugin renders one markdown page.
type Plugin struct {
	id, name, path string
	source         string
	banner         bool // page shows the banner when DraggableBanner is on

	md      *markdown.Renderer
	flags   *features.Context
	focused bool
	scroll  int
	width   int // last rendered width

	mouse         *mouse.Handler
	bannerOffset  int
	bannerRunning bool
}

// New returns a page plugin rendering content/<id>.md at path.
func New(id, name, path string) *Plugin {
	return &Plugin{id: id, name: name, path: path, mouse: mouse.NewHandler()}
}

// About returns the about page, which carries the banner.
func About() *Plugin {
	p := New("about", "About", "/")
	p.banner = true
	return p
}

// Work returns the work page.
func Work() *Plugin { return New("work", "Work", "/work") }

// Consulting returns the consulting page.
func Consulting() *Plugin { return New("consulting", "Consulting", "/consulting") }

func (p *Plugin) ID() string   { return p.id }
func (p *Plugin) Name() string { return p.name }
func (p *Plugin) Path() string { return p.path }

// Init loads the page source.
func (p *Plugin) Init(ctx *plugin.Context) error {
	data, err := content.ReadFile("content/" + p.id + ".md")
	if err != nil {
		return fmt.Errorf("page %s: %w", p.id, err)
	}
	p.source = string(data)
	p.md = ctx.Markdown
	if p.md == nil {
		p.md = markdown.NewRenderer(ctx.Logger)
	}
	p.flags = ctx.Flags
	return nil
}

func (p *Plugin) Start() tea.Cmd { return p.startBanner() }
func (p *Plugin) Stop()          { p.bannerRunning = false }

func (p *Plugin) bannerEnabled() bool {
	return p.banner && p.flags != nil && p.flags.IsEnabled(features.DraggableBanner)
}

func (p *Plugin) startBanner() tea.Cmd {
	if !p.bannerEnabled() || p.bannerRunning {
		return nil
	}
	p.bannerRunning = true
	return p.bannerTick()
}

func (p *Plugin) bannerTick() tea.Cmd {
	id := p.id
	return tea.Tick(bannerInterval, func(time.Time) tea.Msg { return bannerTickMsg{id: id} })
}

// Update handles scrolling, banner dragging and flag changes.
func (p *Plugin) Update(m tea.Msg) (plugin.Plugin, tea.Cmd) {
	switch m := m.(type) {
	case bannerTickMsg:
		if m.id != p.id {
			return p, nil
		}
		if !p.bannerEnabled() {
			p.bannerRunning = false
			return p, nil
		}
		if !p.mouse.IsDragging() {
			p.bannerOffset++
		}
		return p, p.bannerTick()

	case appmsg.FlagChangedMsg:
		if m.Key == features.DraggableBanner && m.Enabled {
			return p, p.startBanner()
		}

	case tea.MouseMsg:
		p.handleMouse(m)

	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		switch m.String() {
		case "j", "down":
			p.scroll++
		case "k", "up":
			if p.scroll > 0 {
				p.scroll--
			}
		case "g":
			p.scroll = 0
		case "h", "left":
			p.bannerOffset -= 4
		case "l", "right":
			p.bannerOffset += 4
		}
	}
	return p, nil
}

// handleMouse drags the banner and scrolls the page. Coordinates are
// relative to the page's top-left corner.
func (p *Plugin) handleMouse(msg tea.MouseMsg) {
	p.mouse.HitMap.Clear()
	if p.bannerEnabled() {
		p.mouse.HitMap.AddRect(regionBanner, 0, 0, p.width, 1, nil)
	}

	a := p.mouse.HandleMouse(msg)
	switch a.Type {
	case mouse.ActionClick:
		if a.Region.ID == regionBanner {
			p.mouse.StartDrag(a.X, a.Y, regionBanner, p.bannerOffset)
		}
	case mouse.ActionDrag:
		if p.mouse.DragRegion() == regionBanner {
			p.bannerOffset = p.mouse.DragStartValue() - a.DragDX
		}
	case mouse.ActionScrollUp, mouse.ActionScrollDown:
		p.scroll += a.Delta
		if p.scroll < 0 {
			p.scroll = 0
		}
	}
}

// View renders the page.
func (p *Plugin) View(width, height int) string {
	p.width = width
	var sb strings.Builder
	used := 0
	if p.bannerEnabled() && width > 0 {
		sb.WriteString(styles.Logo.Render(renderBanner(bannerText, p.bannerOffset, width)))
		sb.WriteString("\n\n")
		used = 2
	}

	lines := p.md.Render(p.source, width)
	avail := height - used
	if avail < 1 {
		avail = 1
	}
	maxScroll := len(lines) - avail
	if maxScroll < 0 {
		maxScroll = 0
	}
	if p.scroll > maxScroll {
		p.scroll = maxScroll
	}
	end := p.scroll + avail
	if end > len(lines) {
		end = len(lines)
	}
	sb.WriteString(strings.Join(lines[p.scroll:end], "\n"))
	return sb.String()
}

// renderBanner returns width runes of text rotated by offset.
func renderBanner(text string, offset, width int) string {
	runes := []rune(text)
	n := len(runes)
	if n == 0 || width <= 0 {
		return ""
	}
	start := ((offset % n) + n) % n
	out := make([]rune, width)
	for i := range out {
		out[i] = runes[(start+i)%n]
	}
	return string(out)
}

func (p *Plugin) IsFocused() bool   { return p.focused }
func (p *Plugin) SetFocused(f bool) { p.focused = f }

// Commands returns the page's key hints.
func (p *Plugin) Commands() []plugin.Command {
	cmds := []plugin.Command{{Key: "j/k", Name: "scroll"}}
	if p.bannerEnabled() {
		cmds = append(cmds, plugin.Command{Key: "h/l", Name: "drag banner"})
	}
	return cmds
}
