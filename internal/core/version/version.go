// Package version reports what build is running
package version

import (
	"runtime"
	"runtime/debug"
)

// ServiceName is the name reported by the API process
const ServiceName = "truthlens-api"

// set with -ldflags "-X truthlens/internal/core/version.version=v1.2.0 -X ...commit=abcd -X ...date=2026-10-01"
var (
	version = "1.0.0"
	commit  = ""
	date    = ""
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// readBuild is a seam for tests
var readBuild = debug.ReadBuildInfo

// Info returns the build information; commit and date fall back to the vcs stamp, then to none and unknown
func Info() BuildInfo {
	bi := BuildInfo{Service: ServiceName, Version: version, Commit: commit, Date: date, Go: runtime.Version()}
	if info, ok := readBuild(); ok {
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && bi.Commit == "":
				bi.Commit = s.Value
			case s.Key == "vcs.time" && bi.Date == "":
				bi.Date = s.Value
			}
		}
	}
	if bi.Commit == "" {
		bi.Commit = "none"
	}
	if bi.Date == "" {
		bi.Date = "unknown"
	}
	return bi
}

// Version is the bare version string
func Version() string { return version }
