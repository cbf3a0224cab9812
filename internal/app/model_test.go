package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/portfolio/internal/config"
	"github.com/wilbur182/portfolio/internal/features"
	"github.com/wilbur182/portfolio/internal/keymap"
	"github.com/wilbur182/portfolio/internal/mouse"
	appmsg "github.com/wilbur182/portfolio/internal/msg"
	"github.com/wilbur182/portfolio/internal/plugin"
	"github.com/wilbur182/portfolio/internal/plugins/crew"
	"github.com/wilbur182/portfolio/internal/plugins/notes"
	"github.com/wilbur182/portfolio/internal/plugins/pages"
	"github.com/wilbur182/portfolio/internal/storage"
)

func newTestModel(t *testing.T, deployment string) (Model, *features.Context, *storage.Memory) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mem := storage.NewMemory()
	flags := features.NewContext(features.Options{
		Env:    features.EnvResolver{Prefix: "T_", Lookup: func(string) (string, bool) { return "", false }},
		Store:  features.NewStore(mem),
		Logger: logger,
	})
	cfg := config.Default()
	cfg.Deployment = deployment

	reg := plugin.NewRegistry(&plugin.Context{
		Config:  cfg,
		Flags:   flags,
		Storage: mem,
		Logger:  logger,
	})
	reg.Register(pages.About())
	reg.Register(pages.Work())
	reg.Register(pages.Consulting())
	reg.Register(notes.New())
	reg.Register(crew.New())

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	m := New(reg, km, flags, cfg)
	m.copyText = func(string) error { return nil }
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model), flags, mem
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+f":
		return tea.KeyMsg{Type: tea.KeyCtrlF}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send applies msg and then every message its command produces, the way the
// Bubble Tea runtime would (ticks excluded).
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	m = updated.(Model)
	for _, next := range collect(cmd) {
		if _, ok := next.(appmsg.FlagChangedMsg); ok {
			updated, _ = m.Update(next)
			m = updated.(Model)
		}
	}
	return m
}

// collect runs cmd and flattens batches, skipping commands that block on
// timers.
func collect(cmd tea.Cmd) []tea.Msg {
	return collectWithin(cmd, 200*time.Millisecond)
}

// collectWithin is collect with each command given up to d to finish.
func collectWithin(cmd tea.Cmd, d time.Duration) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(d):
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectWithin(c, d)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func labels(m Model) []string {
	var out []string
	for _, it := range m.Tabs() {
		out = append(out, it.Label)
	}
	return out
}

func TestTabs_FollowFlags(t *testing.T) {
	m, flags, _ := newTestModel(t, config.DeploymentDevelopment)
	if got := strings.Join(labels(m), ","); got != "About,Work,Consulting,Notes" {
		t.Errorf("tabs = %s", got)
	}
	flags.Enable(features.Crew)
	if got := strings.Join(labels(m), ","); got != "About,Work,Consulting,Notes,Crew" {
		t.Errorf("tabs after enabling crew = %s", got)
	}
}

func TestNavBarOnlyInDevelopment(t *testing.T) {
	dev, _, _ := newTestModel(t, config.DeploymentDevelopment)
	if !strings.Contains(dev.renderHeader(), "Consulting") {
		t.Error("development header should show the navigation bar")
	}
	prod, _, _ := newTestModel(t, config.DeploymentProduction)
	if strings.Contains(prod.renderHeader(), "Consulting") {
		t.Error("production header should hide the navigation bar")
	}
}

func TestTabCycling(t *testing.T) {
	m, _, _ := newTestModel(t, config.DeploymentDevelopment)
	m = send(t, m, key("tab"))
	if m.activePath != "/work" {
		t.Errorf("active = %s, want /work", m.activePath)
	}
	m = send(t, m, key("4"))
	if m.activePath != "/notes" {
		t.Errorf("active = %s, want /notes", m.activePath)
	}
	if !m.ActivePlugin().IsFocused() {
		t.Error("active plugin should have focus")
	}
}

func TestDebugPanelToggle(t *testing.T) {
	m, flags, mem := newTestModel(t, config.DeploymentDevelopment)
	if !m.DebugVisible() {
		t.Fatal("debug panel should be visible by default")
	}

	m = send(t, m, key("ctrl+f"))
	if !m.debug.focused {
		t.Fatal("ctrl+f should focus the debug panel")
	}
	first := m.selectedKey()
	before := flags.IsEnabled(first)

	m = send(t, m, key("space"))
	if flags.IsEnabled(first) == before {
		t.Errorf("space should toggle %v", first)
	}
	if _, ok, _ := mem.GetItem(features.StorageKey); !ok {
		t.Error("toggle should write through to storage")
	}
	if m.statusMsg == "" {
		t.Error("flag change should raise a toast")
	}
}

func TestDisablingActivePageFallsBack(t *testing.T) {
	m, flags, _ := newTestModel(t, config.DeploymentDevelopment)
	if !m.Navigate("/notes") {
		t.Fatal("notes should be reachable")
	}

	flags.Disable(features.NotesApp)
	m = send(t, m, appmsg.FlagChangedMsg{Key: features.NotesApp, Enabled: false})
	if m.activePath != "/" {
		t.Errorf("active = %s, want fallback to /", m.activePath)
	}
	if m.Navigate("/notes") {
		t.Error("notes should no longer be reachable")
	}
}

func TestNavigateUnknownPath(t *testing.T) {
	m, _, _ := newTestModel(t, config.DeploymentDevelopment)
	if m.Navigate("/missing") {
		t.Error("a path outside the navigation catalogue should be rejected")
	}
	if m.activePath != "/" {
		t.Errorf("active = %s, want /", m.activePath)
	}
}

func TestDisablingDebugModeHidesPanel(t *testing.T) {
	m, flags, _ := newTestModel(t, config.DeploymentDevelopment)
	m = send(t, m, key("ctrl+f"))

	// Move the cursor to debugMode and switch it off from the panel itself.
	for m.selectedKey() != features.DebugMode {
		m = send(t, m, key("j"))
	}
	m = send(t, m, key("x"))

	if flags.IsEnabled(features.DebugMode) {
		t.Fatal("x should disable debugMode")
	}
	if m.DebugVisible() || m.debug.focused {
		t.Error("panel should be hidden and unfocused")
	}
	if pw, _ := m.layout(); pw != 0 {
		t.Errorf("panel width = %d, want 0", pw)
	}
	if v := m.env.VarName(features.DebugMode); strings.Contains(m.View(), v) {
		t.Errorf("view should not render the panel (found %s)", v)
	}
}

func TestResetConfirm(t *testing.T) {
	m, flags, mem := newTestModel(t, config.DeploymentDevelopment)
	flags.Enable(features.Crew)
	m = send(t, m, key("ctrl+f"))

	m = send(t, m, key("r"))
	if !m.debug.confirmReset {
		t.Fatal("r should ask for confirmation")
	}
	m = send(t, m, key("enter")) // Cancel is focused first
	if !flags.IsEnabled(features.Crew) {
		t.Error("cancel should keep flags")
	}

	m = send(t, m, key("r"))
	m = send(t, m, key("l"))
	m = send(t, m, key("enter"))
	if flags.IsEnabled(features.Crew) {
		t.Error("reset should restore crew's default")
	}
	if _, ok, _ := mem.GetItem(features.StorageKey); ok {
		t.Error("reset should clear stored flags")
	}
}

func TestCopyExportLine(t *testing.T) {
	m, _, _ := newTestModel(t, config.DeploymentDevelopment)
	var copied string
	m.copyText = func(s string) error { copied = s; return nil }
	m = send(t, m, key("ctrl+f"))
	m = send(t, m, key("y"))

	want := "export PORTFOLIO_FEATURE_NOTES_APP=true"
	if copied != want {
		t.Errorf("copied %q, want %q", copied, want)
	}

	m.copyText = func(string) error { return errors.New("no clipboard") }
	m = send(t, m, key("y"))
	if !m.statusIsError {
		t.Error("clipboard failure should raise an error toast")
	}
}

func TestTextInputSuppressesShortcuts(t *testing.T) {
	m, _, _ := newTestModel(t, config.DeploymentDevelopment)
	m.Navigate("/notes")
	m = send(t, m, key("a"))
	if _, cmd := m.Update(key("q")); cmd != nil {
		for _, msg := range collect(cmd) {
			if _, ok := msg.(tea.QuitMsg); ok {
				t.Fatal("q should be typed into the note, not quit")
			}
		}
	}
}

func TestViewRenders(t *testing.T) {
	m, _, _ := newTestModel(t, config.DeploymentDevelopment)
	out := m.View()
	for _, want := range []string{"portfolio", "Feature flags", "notesApp", "quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestKeyOverride(t *testing.T) {
	m, flags, _ := newTestModel(t, config.DeploymentDevelopment)
	if !m.keymap.SetUserOverride("t", keymap.ActionToggle) {
		t.Fatal("override rejected")
	}
	m = send(t, m, key("ctrl+f"))
	m = send(t, m, key("t"))
	if flags.IsEnabled(features.NotesApp) {
		t.Error("t should toggle notesApp off through the override")
	}
}

// hitRegions scans the screen and returns each clickable region once, with
// Rect.X and Rect.Y at its top-left cell.
func hitRegions(m Model) []mouse.Region {
	var out []mouse.Region
	seen := map[any]bool{}
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			r := m.mouse.HitMap.Test(x, y)
			if r == nil || seen[r.Data] {
				continue
			}
			seen[r.Data] = true
			hit := *r
			hit.Rect.X, hit.Rect.Y = x, y
			out = append(out, hit)
		}
	}
	return out
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestMouseClickTab(t *testing.T) {
	m, _, _ := newTestModel(t, config.DeploymentDevelopment)
	m.rebuildHitMap()
	workX := -1
	for _, r := range hitRegions(m) {
		if r.ID == regionTab && r.Data == "/work" {
			workX = r.Rect.X
		}
	}
	if workX < 0 {
		t.Fatal("no hit region for the work tab")
	}
	m = send(t, m, click(workX, 0))
	if m.activePath != "/work" {
		t.Errorf("active = %s, want /work", m.activePath)
	}
}

func TestMouseNoTabsInProduction(t *testing.T) {
	m, _, _ := newTestModel(t, config.DeploymentProduction)
	m.rebuildHitMap()
	for _, r := range hitRegions(m) {
		if r.ID == regionTab {
			t.Fatal("production should have no clickable tabs")
		}
	}
}

func TestMouseClickFlagRow(t *testing.T) {
	m, flags, _ := newTestModel(t, config.DeploymentDevelopment)
	m.rebuildHitMap()
	var target *struct{ x, y int }
	for _, r := range hitRegions(m) {
		if r.ID == regionFlag && r.Data == features.Crew {
			target = &struct{ x, y int }{r.Rect.X + 2, r.Rect.Y}
		}
	}
	if target == nil {
		t.Fatal("no hit region for the crew row")
	}

	m = send(t, m, click(target.x, target.y))
	if !flags.IsEnabled(features.Crew) {
		t.Error("clicking the crew row should toggle it on")
	}
	if m.selectedKey() != features.Crew {
		t.Errorf("cursor on %v, want crew", m.selectedKey())
	}
}

func TestFlagRowsLineUpWithPanel(t *testing.T) {
	m, _, _ := newTestModel(t, config.DeploymentDevelopment)
	m.rebuildHitMap()
	lines := strings.Split(m.View(), "\n")
	for _, r := range hitRegions(m) {
		if r.ID != regionFlag {
			continue
		}
		name := r.Data.(features.Key).String()
		if r.Rect.Y >= len(lines) || !strings.Contains(lines[r.Rect.Y], name) {
			t.Errorf("row for %s at y=%d does not show it", name, r.Rect.Y)
		}
	}
}

// bannerTick returns the banner tick produced by cmd, if any.
func bannerTick(cmd tea.Cmd) tea.Msg {
	for _, msg := range collectWithin(cmd, time.Second) {
		if fmt.Sprintf("%T", msg) == "pages.bannerTickMsg" {
			return msg
		}
	}
	return nil
}

func TestBannerKeepsTickingAwayFromAbout(t *testing.T) {
	m, flags, _ := newTestModel(t, config.DeploymentDevelopment)
	flags.Enable(features.DraggableBanner)

	tick := bannerTick(m.Init())
	if tick == nil {
		t.Fatal("Init should start the banner ticker")
	}
	if !m.Navigate("/work") {
		t.Fatal("work should be reachable")
	}
	updated, cmd := m.Update(tick)
	m = updated.(Model)
	if tick = bannerTick(cmd); tick == nil {
		t.Fatal("a tick delivered while on /work should schedule the next one")
	}

	m.Navigate("/")
	_, cmd = m.Update(tick)
	if bannerTick(cmd) == nil {
		t.Error("banner should still be ticking after returning to About")
	}
}
