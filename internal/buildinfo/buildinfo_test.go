package buildinfo

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_FillsFromVCS(t *testing.T) {
	bi := &debug.BuildInfo{
		GoVersion: "go1.23.2",
		Main:      debug.Module{Path: "d2dsearch", Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-10-01T00:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}
	b := resolve(bi, true)
	assert.Equal(t, "dev", b.Version)
	assert.Equal(t, "abc123", b.Commit)
	assert.Equal(t, "2026-10-01T00:00:00Z", b.BuiltAt)
	assert.Equal(t, "go1.23.2", b.GoVersion)
	assert.True(t, b.Modified)

	f := b.Fields()
	assert.Equal(t, "abc123", f["commit"])
	assert.Equal(t, true, f["dirty"])
}

func TestResolve_LdflagsWin(t *testing.T) {
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })
	Version, Commit = "v1.2.0", "fff"

	b := resolve(&debug.BuildInfo{
		Main:     debug.Module{Version: "v0.0.9"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
	}, true)
	assert.Equal(t, "v1.2.0", b.Version)
	assert.Equal(t, "fff", b.Commit)
}

func TestResolve_NoBuildInfo(t *testing.T) {
	b := resolve(nil, false)
	assert.Equal(t, Version, b.Version)
	assert.NotEmpty(t, b.GoVersion)
	assert.NotContains(t, b.Fields(), "commit")
}
