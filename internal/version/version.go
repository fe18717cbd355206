// Package version reports the build version of the css-variables binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set at build time with -ldflags "-X bennypowers.dev/cssvars/internal/version.Version=v1.0.0"
var (
	Version   = "dev"
	GitCommit = "unknown"
	GitTag    = "unknown"
	BuildTime = "unknown"
	GitDirty  = "" // "dirty" when built from a modified tree
)

// Info describes a build
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
}

// Get returns the version string: the ldflags version, the module version from
// build info, or one assembled from the git tag and commit
func Get() string {
	if Version != "dev" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			return info.Main.Version
		}
	}

	if GitTag == "unknown" || GitCommit == "unknown" {
		return "dev"
	}

	version := GitTag
	if commit := shortCommit(); commit != "" && !strings.HasSuffix(GitTag, commit) {
		version = fmt.Sprintf("%s-%s", GitTag, commit)
	}
	if GitDirty == "dirty" {
		version += "-dirty"
	}
	return version
}

func shortCommit() string {
	if len(GitCommit) > 7 {
		return GitCommit[:7]
	}
	return GitCommit
}

// Build returns the full build description
func Build() Info {
	return Info{
		Version:   Get(),
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

// String formats the build for --version output
func (i Info) String() string {
	var b strings.Builder
	b.WriteString(i.Version)
	if i.GitCommit != "unknown" {
		fmt.Fprintf(&b, " (commit: %s)", i.GitCommit)
	}
	if i.BuildTime != "unknown" {
		fmt.Fprintf(&b, " built %s", i.BuildTime)
	}
	fmt.Fprintf(&b, " %s", i.GoVersion)
	return b.String()
}
