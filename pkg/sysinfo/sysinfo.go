// Package sysinfo reports host platform details for heartbeats and status
// output.
package sysinfo

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/host"
)

// OSName returns the operating system name reported in heartbeats.
func OSName() string {
	info, err := host.Info()
	if err != nil || info.OS == "" {
		return runtime.GOOS
	}
	return info.OS
}

// Platform returns a human-readable platform description for the status
// command, e.g. "ubuntu 24.04 (linux)".
func Platform() string {
	info, err := host.Info()
	if err != nil || info.Platform == "" {
		return runtime.GOOS
	}
	if info.PlatformVersion == "" {
		return fmt.Sprintf("%s (%s)", info.Platform, info.OS)
	}
	return fmt.Sprintf("%s %s (%s)", info.Platform, info.PlatformVersion, info.OS)
}
