package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestReadStamped(t *testing.T) {
	stubBuildInfo(t, nil)
	info := Read()
	if info.Version != Version || info.Commit != Commit || info.Date != Date {
		t.Errorf("Read() = %+v", info)
	}
}

func TestReadFallsBackToModule(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2025-06-01T10:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})

	info := Read()
	if info.Version != "v0.3.1" {
		t.Errorf("version = %q", info.Version)
	}
	if info.ShortCommit() != "0123456789ab" {
		t.Errorf("short commit = %q", info.ShortCommit())
	}
	if !info.Dirty {
		t.Error("dirty flag not read")
	}
	if s := info.String(); !strings.Contains(s, "0123456789ab-dirty") || !strings.Contains(s, "2025-06-01") {
		t.Errorf("String() = %q", s)
	}
}

func TestReadKeepsDevelVersion(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if got := Read().Version; got != "dev" {
		t.Errorf("version = %q, want dev", got)
	}
}

func TestTemplate(t *testing.T) {
	stubBuildInfo(t, nil)
	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version: dev") {
		t.Errorf("Template() = %q", got)
	}
}
