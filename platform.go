package swatext

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Profile classifies the host into one of the three build profiles the
// pipeline distinguishes. Classification is total: every platform string
// maps to exactly one profile.
type Profile string

// Supported build profiles.
const (
	ProfileWindows Profile = "windows"
	ProfileMacOS   Profile = "macos"
	ProfileUnix    Profile = "unix"
)

// ClassifyPlatform maps a raw platform identifier (runtime.GOOS,
// sys.platform and friends) onto a Profile. Anything that is not Windows or
// macOS is treated as unix-like.
func ClassifyPlatform(raw string) Profile {
	s := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(s, "win"):
		return ProfileWindows
	case strings.HasPrefix(s, "darwin"), strings.HasPrefix(s, "macos"):
		return ProfileMacOS
	default:
		return ProfileUnix
	}
}

var deploymentTargetPattern = regexp.MustCompile(`^\d+\.\d+`)

// DeploymentTarget extracts the macOS deployment target from a packaging
// platform string like "macosx-10.9-x86_64". The middle field is used only
// when it looks like a <major>.<minor> version.
func DeploymentTarget(plat string) (string, bool) {
	parts := strings.Split(plat, "-")
	if len(parts) < 2 {
		return "", false
	}
	if !deploymentTargetPattern.MatchString(parts[1]) {
		return "", false
	}
	return parts[1], true
}

// legacyCompilerPath is preferred on macOS when present, to support older
// OS versions than the default toolchain targets. Variable so tests can
// point it elsewhere.
var legacyCompilerPath = "/usr/bin/gcc"

// darwinOverrides merges the macOS-specific environment overrides into env:
// the deployment target parsed from plat, and the legacy compiler when it
// exists on disk.
func darwinOverrides(env map[string]string, plat string) {
	if plat == "" {
		plat = "-10.7-"
	}
	if target, ok := DeploymentTarget(plat); ok {
		env["MACOSX_DEPLOYMENT_TARGET"] = target
	}
	if info, err := os.Stat(legacyCompilerPath); err == nil && info.Mode().IsRegular() {
		env["CC"] = legacyCompilerPath
	}
}

// pythonLibraryFlags derives the Windows link flags for the active
// interpreter: its libs directory and the import library matching its
// version.
func pythonLibraryFlags(prefix string, major, minor int) []string {
	return []string{
		"-L" + filepath.Join(prefix, "libs"),
		fmt.Sprintf("-lpython%d%d", major, minor),
	}
}
