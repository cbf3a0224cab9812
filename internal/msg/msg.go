// Package msg holds Bubble Tea messages shared between the shell and plugins.
package msg

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/portfolio/internal/features"
)

// FlagChangedMsg is delivered to the shell and every plugin after a feature
// flag changes value.
type FlagChangedMsg struct {
	Key     features.Key
	Enabled bool
}

// ToastMsg asks the shell to show a temporary status message.
type ToastMsg struct {
	Message  string
	Duration time.Duration
	IsError  bool
}

// Toast returns a command emitting a ToastMsg.
func Toast(message string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Message: message, Duration: 3 * time.Second, IsError: isError}
	}
}
