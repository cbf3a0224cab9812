// Package version reports the running build's version.
package version

import (
	"runtime/debug"
	"strings"
)

// Version is set at build time via ldflags.
var Version = ""

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Effective returns v, falling back to Go build info when v is empty.
func Effective(v string) string {
	if v != "" {
		return v
	}

	info, ok := readBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	if revision != "" {
		ver := "devel+" + revision
		if len(ver) > 20 {
			ver = ver[:20]
		}
		if dirty {
			ver += "+dirty"
		}
		return ver
	}
	return "devel"
}

// IsDevelopment returns true for non-release versions.
func IsDevelopment(v string) bool {
	return v == "" || v == "unknown" || v == "devel" || strings.HasPrefix(v, "devel+")
}
