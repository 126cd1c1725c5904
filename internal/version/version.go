// Package version provides build-time version information for the
// shards and crystaldoc tools.
//
// Variables in this package are set at build time using ldflags:
//
//	go build -ldflags "-X github.com/jmylchreest/shardscout/internal/version.Version=1.0.0 ..."
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Build-time variables set via ldflags
var (
	// Version is the semantic version (e.g., "1.0.0" or "1.0.0-dev.5+abc123")
	Version = "dev"

	// Commit is the git commit SHA
	Commit = "unknown"

	// Dirty indicates if the working tree had uncommitted changes
	Dirty = "false"

	// BuildDate is the UTC build timestamp in RFC3339 format
	BuildDate = "unknown"
)

// String returns a single-line version string
func String() string {
	v := Version
	if Dirty == "true" {
		v += "-dirty"
	}
	return v
}

// Full returns a multi-line version string for the named tool.
func Full(tool string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", tool, String())
	fmt.Fprintf(&sb, "  Commit:     %s\n", Commit)
	fmt.Fprintf(&sb, "  Built:      %s\n", BuildDate)
	fmt.Fprintf(&sb, "  Go version: %s\n", runtime.Version())
	fmt.Fprintf(&sb, "  OS/Arch:    %s/%s", runtime.GOOS, runtime.GOARCH)
	return sb.String()
}
