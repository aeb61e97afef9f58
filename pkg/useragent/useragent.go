package useragent

import (
	"fmt"
	"runtime"
)

// Format returns the User-Agent forge sends for the given release.
func Format(version string) string {
	return fmt.Sprintf("forge/%s (%s; %s)", version, runtime.GOOS, runtime.GOARCH)
}
