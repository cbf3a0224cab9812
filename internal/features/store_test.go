package features

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/wilbur182/portfolio/internal/storage"
)

func TestStoreLoad_Absent(t *testing.T) {
	res := NewStore(storage.NewMemory()).Load()
	if !res.OK() {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(res.Flags) != 0 {
		t.Errorf("expected empty overrides, got %v", res.Flags)
	}
}

func TestStoreLoad_Malformed(t *testing.T) {
	tests := []string{
		"not json",
		`{"crew": "yes"}`,
		`[true]`,
	}
	for _, raw := range tests {
		mem := storage.NewMemory()
		_ = mem.SetItem(StorageKey, raw)

		res := NewStore(mem).Load()
		if res.OK() {
			t.Errorf("Load(%q) should report an error", raw)
		}
		if !errors.Is(res.Err, storage.ErrCorrupt) {
			t.Errorf("Load(%q) error should wrap ErrCorrupt, got %v", raw, res.Err)
		}
		if res.Flags == nil || len(res.Flags) != 0 {
			t.Errorf("Load(%q) should yield an empty map, got %v", raw, res.Flags)
		}
	}
}

func TestStoreLoad_Unavailable(t *testing.T) {
	mem := storage.NewMemory()
	mem.Unavailable = true

	res := NewStore(mem).Load()
	if !errors.Is(res.Err, storage.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", res.Err)
	}
	if len(res.Flags) != 0 {
		t.Errorf("expected empty overrides, got %v", res.Flags)
	}
}

func TestStoreLoad_NilStorage(t *testing.T) {
	res := NewStore(nil).Load()
	if res.OK() || res.Flags == nil {
		t.Errorf("nil storage should fail soft with an empty map, got %+v", res)
	}
}

func TestStoreLoad_DropsUnknownNames(t *testing.T) {
	mem := storage.NewMemory()
	_ = mem.SetItem(StorageKey, `{"crew": true, "retiredFlag": false}`)

	res := NewStore(mem).Load()
	if !res.OK() {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if diff := cmp.Diff(Partial{Crew: true}, res.Flags); diff != "" {
		t.Errorf("flags mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"retiredFlag"}, res.Unknown); diff != "" {
		t.Errorf("unknown mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreSave_WritesWholeMap(t *testing.T) {
	mem := storage.NewMemory()
	s := NewStore(mem)

	m := Defaults()
	m[Crew] = true
	if err := s.Save(m); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, ok, _ := mem.GetItem(StorageKey)
	if !ok {
		t.Fatal("record not written")
	}
	var values map[string]bool
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		t.Fatalf("record is not a flat JSON object: %v", err)
	}
	if diff := cmp.Diff(m.Names(), values); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreSave_QuotaExceeded(t *testing.T) {
	mem := storage.NewMemory()
	mem.Quota = 8

	err := NewStore(mem).Save(Defaults())
	if !errors.Is(err, storage.ErrQuotaExceeded) {
		t.Errorf("expected ErrQuotaExceeded, got %v", err)
	}
}

func TestStore_FileBackend(t *testing.T) {
	fs, err := storage.NewFile(filepath.Join(t.TempDir(), storage.FileName))
	if err != nil {
		t.Fatal(err)
	}
	defer fs.Close()

	s := NewStore(fs)
	m := Defaults()
	m[DebugMode] = false
	if err := s.Save(m); err != nil {
		t.Fatalf("Save: %v", err)
	}

	res := s.Load()
	if !res.OK() {
		t.Fatalf("Load: %v", res.Err)
	}
	if got := Defaults().Merge(res.Flags); got != m {
		t.Errorf("reloaded map %v, want %v", got, m)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if res := s.Load(); len(res.Flags) != 0 {
		t.Errorf("expected no overrides after Clear, got %v", res.Flags)
	}
}
