package version

import "runtime/debug"

var version = "dev"

// Version returns the module build string when the binary was built from a
// tagged release, falling back to the locally assigned value.
func Version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
		return info.Main.Version
	}
	return version
}

// Set assigns the exported version when ldflags are not provided (e.g. local dev).
func Set(v string) {
	if v != "" {
		version = v
	}
}
