package telemetry

import (
	"runtime"
	"strings"
	"time"
)

// getSystemInfo returns the platform and the Go release of this binary.
func getSystemInfo() (osName, runtimeVersion string) {
	return runtime.GOOS, releaseVersion(runtime.Version())
}

// releaseVersion turns "go1.26.1" into "1.26". Development toolchains
// ("devel go1.27-abc") keep whatever follows the go prefix.
func releaseVersion(goVersion string) string {
	v := goVersion
	if i := strings.Index(v, "go"); i >= 0 {
		v = v[i+2:]
	}
	v, _, _ = strings.Cut(v, " ")
	v, _, _ = strings.Cut(v, "-")
	parts := strings.SplitN(v, ".", 3)
	if len(parts) >= 2 {
		return parts[0] + "." + parts[1]
	}
	return v
}

// calendarDate formats t as a UTC YYYY-MM-DD date. Dates in this form
// compare correctly as strings.
func calendarDate(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}
