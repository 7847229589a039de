package version

import (
	"fmt"
	"runtime/debug"
)

// You can set the version at build time using something like:
// go build -ldflags "-X github.com/vsariola/slidermon/version.Version=$(git describe --dirty)"

var Version string

// Hash is the short VCS revision the binary was built from, with a -dirty
// suffix for modified trees, or empty if unknown.
var Hash = vcsHash()

var VersionOrHash = func() string {
	if Version != "" {
		return Version
	}
	return Hash
}()

// Describe returns the line printed by the -v flag of the commands.
func Describe(program string) string {
	if VersionOrHash == "" {
		return fmt.Sprintf("%s (unknown version)", program)
	}
	return fmt.Sprintf("%s %s", program, VersionOrHash)
}

func vcsHash() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	hash, modified := "", false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			hash = setting.Value[:min(7, len(setting.Value))]
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if hash != "" && modified {
		hash += "-dirty"
	}
	return hash
}
