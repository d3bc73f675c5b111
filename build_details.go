package schemagraph

import (
	"fmt"
	"runtime"
	"strings"
)

// Build metadata injected with -ldflags "-X github.com/erraggy/schemagraph.version=..."
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Version reports the release version, or "dev" for source builds.
func Version() string { return version }

// Commit reports the git commit the binary was built from.
func Commit() string { return commit }

// BuildTime reports the RFC3339 build timestamp.
func BuildTime() string { return buildTime }

// GoVersion reports the Go runtime version.
func GoVersion() string { return runtime.Version() }

// UserAgent is the identifier schemagraph sends to MCP clients and
// writes into generated file headers.
func UserAgent() string {
	return fmt.Sprintf("schemagraph/%s", version)
}

// BuildInfo renders all build metadata, one "Label: value" per line.
func BuildInfo() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Version: %s\n", Version())
	fmt.Fprintf(&b, "Commit: %s\n", Commit())
	fmt.Fprintf(&b, "Build Time: %s\n", BuildTime())
	fmt.Fprintf(&b, "Go Version: %s", GoVersion())
	return b.String()
}
