// version/version.go
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are meant to be set at build time using ldflags:
//
//	go build -ldflags "-X github.com/dalemusser/rulebook/pantry/version.Version=1.0.0 \
//	                   -X github.com/dalemusser/rulebook/pantry/version.Commit=abc123"
var (
	// Version is the semantic version of the application (e.g., "1.2.3").
	Version = "dev"

	// Commit is the git commit SHA at build time.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built (RFC3339 format).
	BuildTime = "unknown"
)

// Info contains version and build information.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// Get returns the current version info. When ldflags left Commit or
// BuildTime unset, the VCS stamp embedded by the go tool fills them in.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fillFromBuildInfo(&info, bi)
	}
	return info
}

func fillFromBuildInfo(info *Info, bi *debug.BuildInfo) {
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "unknown" && s.Value != "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "unknown" && s.Value != "" {
				info.BuildTime = s.Value
			}
		}
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
}

// String renders the info on one line, e.g.
// "1.2.3 (commit abc123, built 2024-01-15T10:30:00Z, go1.24.1 linux/amd64)".
func (i Info) String() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s %s/%s)",
		i.Version, i.Commit, i.BuildTime, i.GoVersion, i.OS, i.Arch)
}
