// Package version reports the build of the incidentsaver binaries.
package version

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information for the API host.
// Set via -ldflags "-X 'incidentsaver/internal/core/version.version=v0.1.0'
// -X 'incidentsaver/internal/core/version.commit=abcd' -X 'incidentsaver/internal/core/version.date=2025-10-30'"
func Info() BuildInfo { return For("incidentsaver-api") }

// For returns the build information labelled with the given binary name
func For(service string) BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// String renders a one-line banner, eg "incidentsaver dev (none, unknown)"
func (b BuildInfo) String() string {
	return b.Service + " " + b.Version + " (" + b.Commit + ", " + b.Date + ")"
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
