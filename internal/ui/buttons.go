package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wilbur182/portfolio/internal/styles"
)

// ResolveButtonStyle returns the appropriate style based on focus and hover state.
// focusIdx and hoverIdx are -1 when no button is focused or hovered.
func ResolveButtonStyle(focusIdx, hoverIdx, btnIdx int) lipgloss.Style {
	if focusIdx == btnIdx {
		return styles.ButtonFocused
	}
	if hoverIdx == btnIdx {
		return styles.ButtonHover
	}
	return styles.Button
}

// RenderButtons renders a row of buttons separated by two spaces.
func RenderButtons(labels []string, focusIdx, hoverIdx int) string {
	var sb strings.Builder
	for i, label := range labels {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(ResolveButtonStyle(focusIdx, hoverIdx, i).Render(label))
	}
	return sb.String()
}
