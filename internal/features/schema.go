package features

import (
	"errors"
	"fmt"
)

// ErrUnknownKey is returned when a flag name is not part of the schema.
var ErrUnknownKey = errors.New("unknown feature flag")

// Key identifies a feature flag. The set of keys is closed; a Key outside
// [0, NumKeys) is never produced by this package.
type Key uint8

// Known feature flags - add new keys before numKeys and register them in allFeatures.
const (
	NotesApp Key = iota
	Crew
	DebugMode
	LocalStorageEnabled
	DraggableBanner
	ConsultingPage

	numKeys
)

// NumKeys is the number of known feature flags.
const NumKeys = int(numKeys)

// Category groups flags in the debug panel.
type Category string

const (
	CategoryApps      Category = "Apps"
	CategoryDeveloper Category = "Developer"
	CategoryInterface Category = "Interface"
)

// Categories lists the display categories in panel order.
var Categories = []Category{CategoryApps, CategoryInterface, CategoryDeveloper}

// Feature describes a known feature flag.
type Feature struct {
	Key         Key
	Name        string
	Default     bool
	Category    Category
	Description string
}

// allFeatures is indexed by Key.
var allFeatures = [numKeys]Feature{
	NotesApp: {
		Key:         NotesApp,
		Name:        "notesApp",
		Default:     true,
		Category:    CategoryApps,
		Description: "Notes mini-app and its navigation entry",
	},
	Crew: {
		Key:         Crew,
		Name:        "crew",
		Default:     false,
		Category:    CategoryApps,
		Description: "Embedded crew generator page",
	},
	DebugMode: {
		Key:         DebugMode,
		Name:        "debugMode",
		Default:     true,
		Category:    CategoryDeveloper,
		Description: "Show the feature flag debug panel",
	},
	LocalStorageEnabled: {
		Key:         LocalStorageEnabled,
		Name:        "localStorageEnabled",
		Default:     true,
		Category:    CategoryDeveloper,
		Description: "Persist notes to local storage",
	},
	DraggableBanner: {
		Key:         DraggableBanner,
		Name:        "draggableBanner",
		Default:     true,
		Category:    CategoryInterface,
		Description: "Animated banner on the about page",
	},
	ConsultingPage: {
		Key:         ConsultingPage,
		Name:        "consultingPage",
		Default:     true,
		Category:    CategoryInterface,
		Description: "Consulting page and its navigation entry",
	},
}

// byName provides O(1) lookup from storage names to keys.
var byName = buildNameIndex()

func buildNameIndex() map[string]Key {
	m := make(map[string]Key, numKeys)
	for _, f := range allFeatures {
		m[f.Name] = f.Key
	}
	return m
}

// Keys returns every known key in schema order.
func Keys() []Key {
	keys := make([]Key, numKeys)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// Valid reports whether k is a known key.
func (k Key) Valid() bool {
	return k < numKeys
}

// Feature returns the metadata for k.
func (k Key) Feature() Feature {
	return allFeatures[k]
}

// String returns the flag's storage name.
func (k Key) String() string {
	if !k.Valid() {
		return "Key(invalid)"
	}
	return allFeatures[k].Name
}

// ParseKey returns the key registered under name.
func ParseKey(name string) (Key, error) {
	k, ok := byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	return k, nil
}

// ListAll returns all known features with metadata.
// Returns a copy to prevent mutation of internal state.
func ListAll() []Feature {
	result := make([]Feature, numKeys)
	copy(result, allFeatures[:])
	return result
}

// InCategory returns the features of c in schema order.
func InCategory(c Category) []Feature {
	var result []Feature
	for _, f := range allFeatures {
		if f.Category == c {
			result = append(result, f)
		}
	}
	return result
}
