package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/wilbur182/portfolio/internal/features"
	"github.com/wilbur182/portfolio/internal/storage"
)

func TestStorageDump(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			cfg := writeConfig(t, t.TempDir(), backend)
			if _, _, err := runCLI(t, cfg, "flags", "enable", "crew"); err != nil {
				t.Fatal(err)
			}
			out, _, err := runCLI(t, cfg, "storage", "dump")
			if err != nil {
				t.Fatalf("dump: %v", err)
			}
			if !strings.HasPrefix(out, features.StorageKey+"\t") || !strings.Contains(out, `"crew":true`) {
				t.Errorf("dump = %q", out)
			}
		})
	}
}

func TestDumpStorageOrder(t *testing.T) {
	mem := storage.NewMemory()
	_ = mem.SetItem("b", "2")
	_ = mem.SetItem("a", "1")

	var buf bytes.Buffer
	if err := dumpStorage(&buf, mem); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "a\t1\nb\t2\n" {
		t.Errorf("dump = %q", got)
	}

	if err := dumpStorage(&buf, nil); !errors.Is(err, storage.ErrUnavailable) {
		t.Errorf("nil storage: err = %v, want ErrUnavailable", err)
	}
	mem.Unavailable = true
	if err := dumpStorage(&buf, mem); !errors.Is(err, storage.ErrUnavailable) {
		t.Errorf("unavailable storage: err = %v, want ErrUnavailable", err)
	}
}
