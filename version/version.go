// Package version exposes the library version used in request
// attribution, primarily the User-Agent sent with provider API calls.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is set at build time using -ldflags.
var Version = "dev"

// Short returns the version, suffixed with the VCS revision when the
// binary carries build info.
func Short() string {
	if rev := revision(); rev != "" {
		return fmt.Sprintf("%s-%s", Version, rev)
	}
	return Version
}

// UserAgent returns the User-Agent value for outbound provider calls.
func UserAgent() string {
	return "fluent-lm/" + Short()
}

func revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			rev := setting.Value
			if len(rev) > 7 {
				rev = rev[:7]
			}
			return rev
		}
	}
	return ""
}
