package crew

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/portfolio/internal/config"
	appmsg "github.com/wilbur182/portfolio/internal/msg"
	"github.com/wilbur182/portfolio/internal/plugin"
)

func ctxWithURL(u string) *plugin.Context {
	cfg := config.Default()
	cfg.Crew.URL = u
	return &plugin.Context{Config: cfg}
}

func TestInit_ValidatesURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://crew.example.dev/", false},
		{"http://localhost:5173", false},
		{"", true},
		{"ftp://example.com", true},
		{"::not a url", true},
	}
	for _, tt := range tests {
		err := New().Init(ctxWithURL(tt.url))
		if (err != nil) != tt.wantErr {
			t.Errorf("Init(%q) err = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}
}

func TestOpen(t *testing.T) {
	p := New()
	if err := p.Init(ctxWithURL("https://crew.example.dev/")); err != nil {
		t.Fatal(err)
	}
	var opened string
	p.open = func(u string) error { opened = u; return nil }

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	if cmd != nil {
		t.Fatal("unfocused page should ignore keys")
	}

	p.SetFocused(true)
	_, cmd = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	if cmd == nil {
		t.Fatal("expected an open command")
	}
	toast, ok := cmd().(appmsg.ToastMsg)
	if !ok || toast.IsError {
		t.Errorf("unexpected result: %#v", toast)
	}
	if opened != "https://crew.example.dev/" {
		t.Errorf("opened %q", opened)
	}
}

func TestOpen_Failure(t *testing.T) {
	p := New()
	_ = p.Init(ctxWithURL("https://crew.example.dev/"))
	p.open = func(string) error { return errors.New("no browser") }
	p.SetFocused(true)

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	toast := cmd().(appmsg.ToastMsg)
	if !toast.IsError || !strings.Contains(toast.Message, "no browser") {
		t.Errorf("expected error toast, got %#v", toast)
	}
}

func TestView(t *testing.T) {
	p := New()
	_ = p.Init(ctxWithURL("https://crew.example.dev/"))
	if !strings.Contains(p.View(80, 20), "crew.example.dev") {
		t.Error("view should show the url")
	}
}
