package app

import (
	"fmt"
	"io"
	"runtime"
)

// Build metadata, overridden at link time:
//
//	go build -ldflags "-X .../internal/app.Version=v1.2.0 -X .../internal/app.Commit=$(git rev-parse --short HEAD)"
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args request version output. It is checked
// before flag parsing so that --version works alongside otherwise invalid
// flags.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "-version", "--version":
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "primecalc %s (commit %s, built %s, %s %s/%s)\n",
		Version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
