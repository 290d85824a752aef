package version

import "runtime/debug"

// Version is set by the build process
var Version string

// GetVersion returns the release version when one was stamped at build time,
// falling back to the VCS revision from build info.
func GetVersion() string {
	if Version != "" {
		return Version
	}

	bridgeVersion := "<unknown>"
	info, ok := debug.ReadBuildInfo()
	if ok {
		for _, kv := range info.Settings {
			if kv.Value == "" {
				continue
			}
			switch kv.Key {
			case "vcs.revision":
				bridgeVersion = kv.Value
			}
		}
	}
	return bridgeVersion
}
