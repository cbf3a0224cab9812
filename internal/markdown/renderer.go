// Package markdown renders page content with glamour, caching the output
// per content and width.
package markdown

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/glamour"
	"github.com/wilbur182/portfolio/internal/styles"
)

const (
	// MinWidthForMarkdown is the minimum width for glamour rendering.
	// Below this, falls back to plain text wrapping.
	MinWidthForMarkdown = 30

	// MaxCacheEntries is the maximum number of cached renders before eviction.
	MaxCacheEntries = 64
)

// Renderer wraps glamour with a render cache.
type Renderer struct {
	mu        sync.Mutex
	renderer  *glamour.TermRenderer
	lastWidth int
	lastTheme string
	cache     map[uint64][]string
	logger    *slog.Logger
}

// NewRenderer returns a Renderer logging failures to logger.
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		cache:  make(map[uint64][]string),
		logger: logger,
	}
}

// Render renders markdown content to styled lines of at most width cells.
func (r *Renderer) Render(content string, width int) []string {
	if content == "" {
		return []string{}
	}
	if width < MinWidthForMarkdown {
		return WrapText(content, width)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := cacheKey(content, width)
	if cached, ok := r.cache[key]; ok && r.lastTheme == styles.GetMarkdownTheme() {
		return cached
	}

	renderer, err := r.rendererFor(width)
	if err != nil {
		r.logger.Warn("glamour renderer error", "err", err)
		return WrapText(content, width)
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		r.logger.Warn("glamour render error", "err", err)
		return WrapText(content, width)
	}

	lines := strings.Split(strings.TrimRight(rendered, "\n\r\t "), "\n")
	if len(r.cache) >= MaxCacheEntries {
		r.cache = make(map[uint64][]string)
	}
	r.cache[key] = lines
	return lines
}

func cacheKey(content string, width int) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(content)
	_, _ = h.Write([]byte{byte(width >> 8), byte(width)})
	return h.Sum64()
}

// rendererFor returns a renderer for width and the current theme, creating
// one when either changed. Caller must hold r.mu.
func (r *Renderer) rendererFor(width int) (*glamour.TermRenderer, error) {
	theme := styles.GetMarkdownTheme()
	if r.renderer != nil && r.lastWidth == width && r.lastTheme == theme {
		return r.renderer, nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	r.renderer = renderer
	r.lastWidth = width
	r.lastTheme = theme
	r.cache = make(map[uint64][]string)
	return renderer, nil
}

// WrapText wraps text to fit within maxWidth.
// Used as fallback when the pane is too narrow for markdown rendering.
func WrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return lines
	}

	currentLine := words[0]
	for _, word := range words[1:] {
		if len(currentLine)+1+len(word) <= maxWidth {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	return append(lines, currentLine)
}
