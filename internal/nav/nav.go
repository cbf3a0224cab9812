// Package nav derives the site's navigation bar from the feature flags.
package nav

import (
	"github.com/wilbur182/portfolio/internal/config"
	"github.com/wilbur182/portfolio/internal/features"
)

// Reader reports whether a flag is on. *features.Context satisfies it.
type Reader interface {
	IsEnabled(k features.Key) bool
}

// Item is a navigation entry. An item with a nil Flag is always shown.
type Item struct {
	Label string
	Path  string
	Flag  *features.Key
}

func gated(k features.Key) *features.Key { return &k }

// catalogue is the fixed, ordered list of navigation entries.
var catalogue = []Item{
	{Label: "About", Path: "/"},
	{Label: "Work", Path: "/work"},
	{Label: "Consulting", Path: "/consulting", Flag: gated(features.ConsultingPage)},
	{Label: "Notes", Path: "/notes", Flag: gated(features.NotesApp)},
	{Label: "Crew", Path: "/crew", Flag: gated(features.Crew)},
}

// Visible returns the catalogue entries whose flag is on, in order.
func Visible(r Reader) []Item {
	var out []Item
	for _, it := range catalogue {
		if it.Enabled(r) {
			out = append(out, it)
		}
	}
	return out
}

// Enabled reports whether it should be shown given r.
func (it Item) Enabled(r Reader) bool {
	return it.Flag == nil || r.IsEnabled(*it.Flag)
}

// ShowBar reports whether the navigation bar is shown at all. It depends on
// the deployment designation only, never on the flag map.
func ShowBar(cfg *config.Config) bool {
	return cfg != nil && cfg.IsDevelopment()
}

// Lookup returns the catalogue entry for path if it is currently visible.
func Lookup(r Reader, path string) (Item, bool) {
	for _, it := range catalogue {
		if it.Path == path {
			return it, it.Enabled(r)
		}
	}
	return Item{}, false
}
