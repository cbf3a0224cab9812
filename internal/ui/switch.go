package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/wilbur182/portfolio/internal/styles"
)

// RenderSwitch renders an on/off affordance.
func RenderSwitch(on bool) string {
	if on {
		return styles.SwitchOn.Render("[● on ]")
	}
	return styles.SwitchOff.Render("[ off○]")
}

// PadRight pads plain text s with spaces to width display cells,
// truncating with an ellipsis when it does not fit.
func PadRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// TruncateStyled truncates an ANSI-styled line to width cells.
func TruncateStyled(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// JoinTruncated joins styled parts with sep, dropping trailing parts that
// do not fit in width.
func JoinTruncated(parts []string, sep string, width int) string {
	var sb strings.Builder
	used := 0
	sepW := ansi.StringWidth(sep)
	for i, p := range parts {
		w := ansi.StringWidth(p)
		extra := w
		if i > 0 {
			extra += sepW
		}
		if used+extra > width {
			break
		}
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(p)
		used += extra
	}
	return sb.String()
}
