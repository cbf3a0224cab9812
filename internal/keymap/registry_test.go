package keymap

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

func TestLookup(t *testing.T) {
	r := newDefaultRegistry()
	tests := []struct {
		name    string
		key     tea.KeyMsg
		context string
		want    Action
		ok      bool
	}{
		{"global quit", runes("q"), ContextGlobal, ActionQuit, true},
		{"global tab", tea.KeyMsg{Type: tea.KeyTab}, ContextGlobal, ActionNextPage, true},
		{"global shift+tab", tea.KeyMsg{Type: tea.KeyShiftTab}, ContextGlobal, ActionPrevPage, true},
		{"focus flags", tea.KeyMsg{Type: tea.KeyCtrlF}, ContextGlobal, ActionFocusFlags, true},
		{"panel space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, ContextFlags, ActionToggle, true},
		{"panel ctrl+f leaves", tea.KeyMsg{Type: tea.KeyCtrlF}, ContextFlags, ActionBack, true},
		{"panel has no quit", runes("q"), ContextFlags, "", false},
		{"unbound", runes("z"), ContextGlobal, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Lookup(tt.key, tt.context)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Lookup = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestUserOverride(t *testing.T) {
	r := newDefaultRegistry()

	if !r.SetUserOverride("t", ActionToggle) {
		t.Fatal("toggle-flag should be a known action")
	}
	if got, ok := r.Lookup(runes("t"), ContextFlags); !ok || got != ActionToggle {
		t.Errorf("override lookup = (%q, %v)", got, ok)
	}
	// The override belongs to the panel; it must not leak into global keys.
	if _, ok := r.Lookup(runes("t"), ContextGlobal); ok {
		t.Error("panel override should not apply globally")
	}
	if r.SetUserOverride("w", Action("warp")) {
		t.Error("unknown action should be rejected")
	}
}

func TestKeysFor(t *testing.T) {
	r := newDefaultRegistry()
	r.SetUserOverride("t", ActionToggle)
	got := r.KeysFor(ActionToggle, ContextFlags)
	if diff := cmp.Diff([]string{"t", "space", "enter"}, got); diff != "" {
		t.Errorf("KeysFor mismatch (-want +got):\n%s", diff)
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, "space"},
		{runes("j"), "j"},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j"), Alt: true}, "alt+j"},
		{tea.KeyMsg{Type: tea.KeyEsc}, "esc"},
		{tea.KeyMsg{Type: tea.KeyCtrlF}, "ctrl+f"},
	}
	for _, tt := range tests {
		if got := KeyString(tt.key); got != tt.want {
			t.Errorf("KeyString(%v) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
