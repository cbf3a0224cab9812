package features

import (
	"errors"
	"testing"
)

func TestParseKey_RoundTrip(t *testing.T) {
	for _, k := range Keys() {
		got, err := ParseKey(k.String())
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", k, err)
		}
		if got != k {
			t.Errorf("ParseKey(%q) = %v, want %v", k, got, k)
		}
	}
}

func TestParseKey_Unknown(t *testing.T) {
	_, err := ParseKey("unknown_feature")
	if !errors.Is(err, ErrUnknownKey) {
		t.Errorf("expected ErrUnknownKey, got %v", err)
	}
}

func TestKeyValid(t *testing.T) {
	if !DebugMode.Valid() {
		t.Error("DebugMode should be valid")
	}
	if Key(NumKeys).Valid() {
		t.Error("key past the schema should be invalid")
	}
	if Key(200).String() != "Key(invalid)" {
		t.Errorf("unexpected string for invalid key: %q", Key(200).String())
	}
}

func TestListAll(t *testing.T) {
	all := ListAll()
	if len(all) != NumKeys {
		t.Fatalf("ListAll returned %d features, want %d", len(all), NumKeys)
	}
	for i, f := range all {
		if f.Key != Key(i) {
			t.Errorf("feature %d has key %v", i, f.Key)
		}
		if f.Name == "" || f.Description == "" || f.Category == "" {
			t.Errorf("feature %v is missing metadata: %+v", f.Key, f)
		}
	}
}

func TestListAllReturnsCopy(t *testing.T) {
	original := ListAll()
	original[0].Name = "modified"

	fresh := ListAll()
	if fresh[0].Name == "modified" {
		t.Error("ListAll should return a copy, not the original slice")
	}
}

func TestCategoriesCoverSchema(t *testing.T) {
	seen := 0
	for _, c := range Categories {
		seen += len(InCategory(c))
	}
	if seen != NumKeys {
		t.Errorf("categories hold %d features, want %d", seen, NumKeys)
	}
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	if !d[NotesApp] || !d[DebugMode] {
		t.Error("notesApp and debugMode should default on")
	}
	if d[Crew] {
		t.Error("crew should default off")
	}
}

func TestResolve_LaterLayerWins(t *testing.T) {
	m := Resolve(Defaults(),
		Partial{Crew: true, DebugMode: false},
		Partial{Crew: false},
	)
	if m[Crew] {
		t.Error("second layer should override crew")
	}
	if m[DebugMode] {
		t.Error("first layer should override debugMode")
	}
	if m[NotesApp] != NotesApp.Feature().Default {
		t.Error("keys absent from every layer should keep their default")
	}
}

func TestPartialFromNames(t *testing.T) {
	p, unknown := PartialFromNames(map[string]bool{
		"crew":    true,
		"legacy":  true,
		"another": false,
	})
	if len(p) != 1 || !p[Crew] {
		t.Errorf("unexpected partial: %v", p)
	}
	if len(unknown) != 2 || unknown[0] != "another" || unknown[1] != "legacy" {
		t.Errorf("unexpected unknown names: %v", unknown)
	}
}
