// Package plugin defines the page plugins rendered by the site shell and
// the registry that owns their lifecycle.
package plugin

import tea "github.com/charmbracelet/bubbletea"

// Plugin is a routed page of the site.
type Plugin interface {
	ID() string
	Name() string
	// Path is the route the plugin renders; it matches a nav catalogue entry.
	Path() string
	Init(ctx *Context) error
	Start() tea.Cmd
	Stop()
	Update(msg tea.Msg) (Plugin, tea.Cmd)
	View(width, height int) string
	IsFocused() bool
	SetFocused(bool)
	Commands() []Command
}

// Command is a key hint shown in the footer.
type Command struct {
	Key  string
	Name string
}

// TextInputConsumer is implemented by plugins that capture typed text while
// a text field is focused, so global shortcuts must not fire.
type TextInputConsumer interface {
	ConsumesTextInput() bool
}
