// Package version reports the build version of vgrid.
package version

import "runtime/debug"

// Set at build time with -ldflags "-X github.com/rshade/vgrid/pkg/version.version=...".
//
//nolint:gochecknoglobals // Overridden by the linker.
var (
	version = "dev"
	commit  = ""
)

// GetVersion returns the build version. A dev build reports the module version
// recorded by the go command when there is one.
func GetVersion() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}

// GetCommit returns the commit the binary was built from, or "".
func GetCommit() string {
	return commit
}
