package utils

import (
	"os/exec"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion   = "unknown"
	develVersion     = "(devel)"
	gitExecutable    = "git"
	vcsRevisionKey   = "vcs.revision"
	shortRevisionLen = 12
)

// Version may be set at link time with -ldflags "-X github.com/temirov/dirscan/internal/utils.Version=v1.2.3".
var Version = ""

// GetApplicationVersion reports the linked version, the module version from build info,
// the VCS revision embedded by the Go toolchain, or the result of git describe, in that order.
func GetApplicationVersion() string {
	if Version != "" {
		return Version
	}
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable {
		if buildInfo.Main.Version != "" && buildInfo.Main.Version != develVersion {
			return buildInfo.Main.Version
		}
		for _, setting := range buildInfo.Settings {
			if setting.Key == vcsRevisionKey && setting.Value != "" {
				revision := setting.Value
				if len(revision) > shortRevisionLen {
					revision = revision[:shortRevisionLen]
				}
				return revision
			}
		}
	}

	// #nosec G204
	describeOutput, describeError := exec.Command(gitExecutable, "describe", "--tags", "--long", "--dirty").Output()
	if describeError == nil && len(describeOutput) > 0 {
		return strings.TrimSpace(string(describeOutput))
	}
	return unknownVersion
}
