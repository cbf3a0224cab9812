package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderSwitch(t *testing.T) {
	if !strings.Contains(RenderSwitch(true), "on") {
		t.Error("on switch should say on")
	}
	if !strings.Contains(RenderSwitch(false), "off") {
		t.Error("off switch should say off")
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 4, "abc…"},
		{"abc", 3, "abc"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := PadRight(tt.in, tt.width); got != tt.want {
			t.Errorf("PadRight(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestTruncateStyled(t *testing.T) {
	s := "\x1b[1mhello world\x1b[0m"
	got := TruncateStyled(s, 6)
	if w := ansi.StringWidth(got); w > 6 {
		t.Errorf("truncated width = %d, want <= 6", w)
	}
	if TruncateStyled(s, 20) != s {
		t.Error("short strings should be unchanged")
	}
}

func TestJoinTruncated(t *testing.T) {
	got := JoinTruncated([]string{"one", "two", "three"}, " | ", 10)
	if got != "one | two" {
		t.Errorf("JoinTruncated = %q", got)
	}
}
