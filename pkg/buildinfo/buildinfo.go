// Package buildinfo exposes the version stamped into the zoomchat binary.
package buildinfo

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
)

// These vars are set at build time via ldflags:
// -X github.com/otherjamesbrown/zoomchat/pkg/buildinfo.Version=v0.3.0
// -X github.com/otherjamesbrown/zoomchat/pkg/buildinfo.Commit=b806fe7
// -X github.com/otherjamesbrown/zoomchat/pkg/buildinfo.BuildTime=2026-02-07T10:30:00Z
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Info holds build information for a binary.
type Info struct {
	Name      string `json:"name" yaml:"name"`
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildTime string `json:"build_time" yaml:"build_time"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns build info for the named binary.
func Get(name string) Info {
	return Info{
		Name:      name,
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a human-readable one-liner like "v0.3.0 (b806fe7, 2026-02-07T10:30:00Z)"
func String() string {
	return Version + " (" + Commit + ", " + BuildTime + ")"
}

// Collector returns a constant zoomchat_build_info gauge labelled with the
// build, for inclusion in a metrics textfile.
func Collector() prometheus.Collector {
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "zoomchat_build_info",
		Help: "Build information of the zoomchat binary",
		ConstLabels: prometheus.Labels{
			"version":    Version,
			"commit":     Commit,
			"go_version": runtime.Version(),
		},
	})
	g.Set(1)
	return g
}
