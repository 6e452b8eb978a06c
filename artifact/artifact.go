// Package artifact models Maven artifact coordinates as used to declare the
// dependencies of an OPENRNDR application.
package artifact

import (
	"fmt"
	"strings"

	"git.fractalqb.de/fractalqb/rndrmk/platform"
)

const (
	GroupOpenrndr = "org.openrndr"
	GroupOrx      = "org.openrndr.extra"
	GroupOrml     = "org.openrndr.orml"
)

const nativesInfix = "-natives-"

// Coordinate identifies an artifact. If Natives is set, the coordinate
// denotes the native-library variant of Module for that platform.
type Coordinate struct {
	Group   string      `yaml:"group"`
	Module  string      `yaml:"module"`
	Version string      `yaml:"version,omitempty"`
	Natives platform.ID `yaml:"natives,omitempty"`
}

// ArtifactID returns the module name including the natives suffix.
func (c Coordinate) ArtifactID() string {
	if c.Natives == "" {
		return c.Module
	}
	return c.Module + nativesInfix + string(c.Natives)
}

func (c Coordinate) String() string {
	if c.Version == "" {
		return c.Group + ":" + c.ArtifactID()
	}
	return c.Group + ":" + c.ArtifactID() + ":" + c.Version
}

func (c Coordinate) Snapshot() bool { return strings.Contains(c.Version, "SNAPSHOT") }

// WithNatives returns the native variant of c for platform id.
func (c Coordinate) WithNatives(id platform.ID) Coordinate {
	c.Natives = id
	return c
}

// Parse parses "group:module[:version]". A module name with a natives suffix
// for a valid [platform.ID] is split into Module and Natives.
func Parse(s string) (c Coordinate, err error) {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 3:
		c.Version = parts[2]
		if c.Version == "" {
			return c, fmt.Errorf("empty version in artifact '%s'", s)
		}
	case 2:
	default:
		return c, fmt.Errorf("malformed artifact '%s'", s)
	}
	c.Group, c.Module = parts[0], parts[1]
	if c.Group == "" || c.Module == "" {
		return c, fmt.Errorf("malformed artifact '%s'", s)
	}
	if i := strings.LastIndex(c.Module, nativesInfix); i > 0 {
		if id := platform.ID(c.Module[i+len(nativesInfix):]); id.Valid() {
			c.Module, c.Natives = c.Module[:i], id
		}
	}
	return c, nil
}

func Openrndr(module, version string) Coordinate {
	return Coordinate{Group: GroupOpenrndr, Module: "openrndr-" + module, Version: version}
}

func OpenrndrNatives(module, version string, id platform.ID) Coordinate {
	return Openrndr(module, version).WithNatives(id)
}

func Orx(module, version string) Coordinate {
	return Coordinate{Group: GroupOrx, Module: module, Version: version}
}

func OrxNatives(module, version string, id platform.ID) Coordinate {
	return Orx(module, version).WithNatives(id)
}

func Orml(module, version string) Coordinate {
	return Coordinate{Group: GroupOrml, Module: module, Version: version}
}
