// Package platform resolves the canonical platform identifier that selects
// native-library artifacts, e.g. "linux-x64" for
// org.openrndr:openrndr-gl3-natives-linux-x64.
//
// Resolution is a pure function of an optional explicit override and the
// host's operating system and architecture. It never silently falls back to a
// default: unsupported overrides, operating systems and architectures are
// reported as [UnsupportedPlatformError], [UnsupportedOSError] and
// [UnsupportedArchError].
package platform

import (
	"runtime"
	"slices"
)

// ID is the canonical name of a target OS/architecture combination.
type ID string

const (
	Windows    ID = "windows"
	MacOS      ID = "macos"
	MacOSArm64 ID = "macos-arm64"
	LinuxX64   ID = "linux-x64"
	LinuxArm64 ID = "linux-arm64"
)

var ids = []ID{Windows, MacOS, MacOSArm64, LinuxX64, LinuxArm64}

// Overrides can be given explicitly. macos-arm64 can only be detected.
var overrides = []ID{LinuxArm64, LinuxX64, MacOS, Windows}

func IDs() []ID { return slices.Clone(ids) }

// Overrides returns the sorted set of IDs accepted as explicit override.
func Overrides() []ID { return slices.Clone(overrides) }

func (id ID) Valid() bool { return slices.Contains(ids, id) }

func (id ID) String() string { return string(id) }

type OS string

const (
	OSWindows OS = "windows"
	OSMacOS   OS = "macos"
	OSLinux   OS = "linux"
)

type Arch string

const (
	ArchX8664   Arch = "x86-64"
	ArchAArch64 Arch = "aarch64"
	ArchArmV8   Arch = "arm-v8"
)

// ARM64 reports if a is one of the names used for 64-bit ARM.
func (a Arch) ARM64() bool { return a == ArchAArch64 || a == ArchArmV8 }

// HostOS maps runtime.GOOS to an OS. Unknown systems keep their GOOS name.
func HostOS() OS { return goosOS(runtime.GOOS) }

// HostArch maps runtime.GOARCH to an Arch. Unknown architectures keep their
// GOARCH name.
func HostArch() Arch { return goarchArch(runtime.GOARCH) }

func goosOS(goos string) OS {
	switch goos {
	case "windows":
		return OSWindows
	case "darwin":
		return OSMacOS
	case "linux":
		return OSLinux
	}
	return OS(goos)
}

func goarchArch(goarch string) Arch {
	switch goarch {
	case "amd64":
		return ArchX8664
	case "arm64":
		return ArchAArch64
	}
	return Arch(goarch)
}

// Resolve returns the platform ID for an explicit override or, if override is
// empty, for the host described by hostOS and hostArch.
func Resolve(override string, hostOS OS, hostArch Arch) (ID, error) {
	if override != "" {
		id := ID(override)
		if !slices.Contains(overrides, id) {
			return "", &UnsupportedPlatformError{Platform: override}
		}
		return id, nil
	}
	switch hostOS {
	case OSWindows:
		return Windows, nil
	case OSMacOS:
		if hostArch.ARM64() {
			return MacOSArm64, nil
		}
		return MacOS, nil
	case OSLinux:
		switch hostArch {
		case ArchX8664:
			return LinuxX64, nil
		case ArchAArch64:
			return LinuxArm64, nil
		}
		return "", &UnsupportedArchError{OS: hostOS, Arch: hostArch}
	}
	return "", &UnsupportedOSError{OS: hostOS}
}

// ResolveHost calls [Resolve] with the current host's OS and architecture.
func ResolveHost(override string) (ID, error) {
	return Resolve(override, HostOS(), HostArch())
}
