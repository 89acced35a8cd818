// Package buildinfo reports which d2dengine build is running. Version,
// Commit and BuiltAt are set with -ldflags; when they are left empty the
// module and VCS data the Go toolchain embeds fill them in.
package buildinfo

import (
	"runtime"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

var (
	Version = "dev"
	Commit  = ""
	BuiltAt = ""
)

// Build is the resolved build identity.
type Build struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuiltAt   string `json:"builtAt,omitempty"`
	GoVersion string `json:"goVersion"`
	Modified  bool   `json:"modified,omitempty"`
}

// Current resolves the ldflags values against the embedded build info.
func Current() Build {
	return resolve(debug.ReadBuildInfo())
}

func resolve(bi *debug.BuildInfo, ok bool) Build {
	b := Build{Version: Version, Commit: Commit, BuiltAt: BuiltAt, GoVersion: runtime.Version()}
	if !ok || bi == nil {
		return b
	}
	if bi.GoVersion != "" {
		b.GoVersion = bi.GoVersion
	}
	if b.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		b.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "" {
				b.Commit = s.Value
			}
		case "vcs.time":
			if b.BuiltAt == "" {
				b.BuiltAt = s.Value
			}
		case "vcs.modified":
			b.Modified = s.Value == "true"
		}
	}
	return b
}

// Fields tags the startup log line.
func (b Build) Fields() logrus.Fields {
	f := logrus.Fields{"version": b.Version, "go": b.GoVersion}
	if b.Commit != "" {
		f["commit"] = b.Commit
	}
	if b.Modified {
		f["dirty"] = true
	}
	return f
}
