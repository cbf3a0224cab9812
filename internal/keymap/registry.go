// Package keymap resolves key presses to named actions per focus context,
// with user overrides from config.
package keymap

import (
	"sort"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Action names something the site can do in response to a key.
type Action string

const (
	ActionQuit       Action = "quit"
	ActionNextPage   Action = "next-page"
	ActionPrevPage   Action = "prev-page"
	ActionFocusFlags Action = "focus-flags"

	ActionBack     Action = "back"
	ActionDown     Action = "cursor-down"
	ActionUp       Action = "cursor-up"
	ActionToggle   Action = "toggle-flag"
	ActionEnable   Action = "enable-flag"
	ActionDisable  Action = "disable-flag"
	ActionCopyEnv  Action = "copy-env"
	ActionResetAll Action = "reset-flags"
)

// Contexts
const (
	ContextGlobal = "global"
	ContextFlags  = "flags"
)

// Binding maps a key to an action.
type Binding struct {
	Key     string // e.g. "tab", "ctrl+f", "j"
	Action  Action
	Context string // "global" or "flags"
}

// Registry manages key bindings.
type Registry struct {
	bindings      map[string][]Binding // context -> bindings
	userOverrides map[string]Action    // key -> action
	mu            sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings:      make(map[string][]Binding),
		userOverrides: make(map[string]Action),
	}
}

// RegisterBinding adds a key binding.
func (r *Registry) RegisterBinding(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[b.Context] = append(r.bindings[b.Context], b)
}

// SetUserOverride binds key to action wherever action applies. It reports
// false for actions no context knows.
func (r *Registry) SetUserOverride(key string, action Action) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.knownLocked(action) {
		return false
	}
	r.userOverrides[key] = action
	return true
}

func (r *Registry) knownLocked(action Action) bool {
	for _, bs := range r.bindings {
		for _, b := range bs {
			if b.Action == action {
				return true
			}
		}
	}
	return false
}

func (r *Registry) inContextLocked(action Action, context string) bool {
	for _, b := range r.bindings[context] {
		if b.Action == action {
			return true
		}
	}
	return false
}

// Lookup returns the action bound to key in context. Only bindings and
// overrides of that context apply.
func (r *Registry) Lookup(key tea.KeyMsg, context string) (Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keyStr := KeyString(key)

	// 1. User overrides, when the action belongs to this context
	if a, ok := r.userOverrides[keyStr]; ok && r.inContextLocked(a, context) {
		return a, true
	}

	// 2. Context bindings
	for _, b := range r.bindings[context] {
		if b.Key == keyStr {
			return b.Action, true
		}
	}
	return "", false
}

// KeysFor returns every key that triggers action in context, overrides
// first.
func (r *Registry) KeysFor(action Action, context string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var overrides []string
	for k, a := range r.userOverrides {
		if a == action && r.inContextLocked(a, context) {
			overrides = append(overrides, k)
		}
	}
	sort.Strings(overrides)

	keys := overrides
	for _, b := range r.bindings[context] {
		if b.Action == action {
			keys = append(keys, b.Key)
		}
	}
	return keys
}

// KeyString converts a tea.KeyMsg to the form used in bindings.
func KeyString(key tea.KeyMsg) string {
	switch key.Type {
	case tea.KeySpace:
		return "space"
	case tea.KeyRunes:
		if key.Alt {
			return "alt+" + string(key.Runes)
		}
		return string(key.Runes)
	default:
		return key.String()
	}
}
