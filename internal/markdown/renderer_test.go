package markdown

import (
	"strings"
	"testing"
)

func TestWrapText(t *testing.T) {
	got := WrapText("the quick brown fox jumps", 10)
	want := []string{"the quick", "brown fox", "jumps"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("WrapText = %q, want %q", got, want)
	}
	if len(WrapText("   ", 10)) != 0 {
		t.Error("blank text should wrap to no lines")
	}
	if got := WrapText("abc", 0); len(got) != 1 || got[0] != "abc" {
		t.Errorf("zero width should return the text as is, got %q", got)
	}
}

func TestRender_NarrowFallsBack(t *testing.T) {
	r := NewRenderer(nil)
	got := r.Render("# Title\n\nbody text", 10)
	if len(got) == 0 || !strings.Contains(strings.Join(got, " "), "Title") {
		t.Errorf("narrow render should wrap plain text, got %q", got)
	}
}

func TestRender_Empty(t *testing.T) {
	if got := NewRenderer(nil).Render("", 80); len(got) != 0 {
		t.Errorf("empty content should render nothing, got %q", got)
	}
}

func TestRender_Cached(t *testing.T) {
	r := NewRenderer(nil)
	first := r.Render("Some plain content here", 60)
	second := r.Render("Some plain content here", 60)
	if strings.Join(first, "\n") != strings.Join(second, "\n") {
		t.Error("cached render should match")
	}
	if len(r.cache) != 1 {
		t.Errorf("expected one cache entry, got %d", len(r.cache))
	}
	if !strings.Contains(strings.Join(first, ""), "content") {
		t.Error("rendered output should contain the text")
	}
}
