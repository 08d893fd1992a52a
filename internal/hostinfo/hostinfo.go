// Package hostinfo derives the invoking user and a host version string
// for invocations that originate from this process rather than from an
// external hosting application.
package hostinfo

import (
	"fmt"
	"os/user"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// Username returns the current OS user name, normalised for use in log
// lines and file names: the domain suffix after "@" and any dots are
// stripped. Falls back to "unknown".
func Username() string {
	u, err := user.Current()
	if err != nil || u.Username == "" {
		return "unknown"
	}
	return normalizeUser(u.Username)
}

func normalizeUser(name string) string {
	if i := strings.IndexByte(name, '@'); i > 0 {
		name = name[:i]
	}
	name = strings.ReplaceAll(name, ".", "")
	if name == "" {
		return "unknown"
	}
	return name
}

// Version returns a host descriptor such as "ubuntu 24.04", falling
// back to "unknown" when platform information is unavailable.
func Version() string {
	info, err := host.Info()
	if err != nil || info.Platform == "" {
		return "unknown"
	}
	if info.PlatformVersion == "" {
		return info.Platform
	}
	return fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion)
}
