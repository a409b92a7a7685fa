// Package version reports build metadata of the using-order binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

const unknown = "unknown"

// Link-time values, e.g.
// -ldflags "-X github.com/siyuan-infoblox/using-order/pkg/version.Version=v1.0.0"
var (
	Version   = "dev"
	GitCommit = unknown
	GitTag    = unknown
	BuildDate = unknown
)

var modified bool

// Info holds version information
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	GitTag    string `json:"gitTag"`
	BuildDate string `json:"buildDate"`
	Modified  bool   `json:"modified"` // built from a dirty work tree
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// ApplyBuildInfo fills in what was not set at link time from the module
// version and VCS stamps the go command records in the binary. bi may be nil.
func ApplyBuildInfo(bi *debug.BuildInfo) {
	if bi == nil {
		return
	}
	if v := bi.Main.Version; Version == "dev" && v != "" && v != "(devel)" {
		Version = v
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if GitCommit == unknown {
				GitCommit = s.Value
			}
		case "vcs.time":
			if BuildDate == unknown {
				BuildDate = s.Value
			}
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
}

// Get returns version information
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		GitTag:    GitTag,
		BuildDate: BuildDate,
		Modified:  modified,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "using-order version %s\n", i.Version)
	commit := i.GitCommit
	if i.Modified {
		commit += " (modified)"
	}
	fmt.Fprintf(&b, "Git commit: %s\n", commit)
	if i.GitTag != unknown {
		fmt.Fprintf(&b, "Git tag: %s\n", i.GitTag)
	}
	fmt.Fprintf(&b, "Build date: %s\n", i.BuildDate)
	fmt.Fprintf(&b, "Go version: %s %s", i.GoVersion, i.Platform)
	return b.String()
}
