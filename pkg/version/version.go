// Package version carries the build identity of the stylewalk binary.
package version

import "runtime/debug"

// Set at link time with -ldflags "-X github.com/Sumatoshi-tech/stylewalk/pkg/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// InitBinaryVersion fills Version and Commit from the embedded build info
// when the linker did not set them, e.g. for go install builds.
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if Commit == "none" {
				Commit = setting.Value
			}
		case "vcs.time":
			if Date == "unknown" {
				Date = setting.Value
			}
		}
	}
}

// String renders the identity for the version command.
func String() string {
	return Version + " (commit: " + Commit + ", built: " + Date + ")"
}
