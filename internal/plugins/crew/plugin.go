// Package crew provides the page hosting the external crew generator.
package crew

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cli/browser"
	appmsg "github.com/wilbur182/portfolio/internal/msg"
	"github.com/wilbur182/portfolio/internal/plugin"
	"github.com/wilbur182/portfolio/internal/styles"
)

const (
	pluginID   = "crew"
	pluginName = "Crew"
	pluginPath = "/crew"
)

// Plugin links out to the crew generator, a separate application.
type Plugin struct {
	url     string
	open    func(string) error
	focused bool
}

// New returns the crew page plugin.
func New() *Plugin {
	return &Plugin{open: browser.OpenURL}
}

func (p *Plugin) ID() string   { return pluginID }
func (p *Plugin) Name() string { return pluginName }
func (p *Plugin) Path() string { return pluginPath }

// Init validates the configured generator URL.
func (p *Plugin) Init(ctx *plugin.Context) error {
	if ctx.Config == nil || ctx.Config.Crew.URL == "" {
		return errors.New("crew generator url not configured")
	}
	u, err := url.Parse(ctx.Config.Crew.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("crew generator url %q is not an http(s) url", ctx.Config.Crew.URL)
	}
	p.url = u.String()
	return nil
}

func (p *Plugin) Start() tea.Cmd { return nil }
func (p *Plugin) Stop()          {}

// Update opens the generator on request.
func (p *Plugin) Update(m tea.Msg) (plugin.Plugin, tea.Cmd) {
	if k, ok := m.(tea.KeyMsg); ok && p.focused && (k.String() == "o" || k.String() == "enter") {
		return p, p.openCmd()
	}
	return p, nil
}

func (p *Plugin) openCmd() tea.Cmd {
	target, open := p.url, p.open
	return func() tea.Msg {
		if err := open(target); err != nil {
			return appmsg.ToastMsg{Message: "could not open browser: " + err.Error(), IsError: true}
		}
		return appmsg.ToastMsg{Message: "opened crew generator"}
	}
}

// View renders the page.
func (p *Plugin) View(width, height int) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Crew generator"))
	sb.WriteString("\n\n")
	sb.WriteString(styles.Body.Render("The crew generator is a separate app embedded on the site."))
	sb.WriteString("\n\n")
	sb.WriteString(styles.Link.Render(p.url))
	sb.WriteString("\n\n")
	sb.WriteString(styles.Muted.Render("press o to open it in your browser"))
	return sb.String()
}

func (p *Plugin) IsFocused() bool   { return p.focused }
func (p *Plugin) SetFocused(f bool) { p.focused = f }

// Commands returns the page's key hints.
func (p *Plugin) Commands() []plugin.Command {
	return []plugin.Command{{Key: "o", Name: "open"}}
}
