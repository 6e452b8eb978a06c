// Package mkdeps declares the dependencies of an OPENRNDR application from
// its configuration, the version catalog and the resolved target platform.
// The resulting [Declaration] can be written as lock file, as Gradle Kotlin
// DSL or as Maven POM.
package mkdeps

import (
	"fmt"
	"slices"

	"git.fractalqb.de/fractalqb/rndrmk/artifact"
	"git.fractalqb.de/fractalqb/rndrmk/catalog"
	"git.fractalqb.de/fractalqb/rndrmk/mkcfg"
	"git.fractalqb.de/fractalqb/rndrmk/platform"
)

const (
	RepoMavenCentral = "mavenCentral"
	RepoMavenLocal   = "mavenLocal"
	RepoOpenrndr     = "https://maven.openrndr.org"
)

type Publication struct {
	GroupID    string `yaml:"groupId"`
	ArtifactID string `yaml:"artifactId"`
	Version    string `yaml:"version"`
}

type Versions struct {
	Openrndr string `yaml:"openrndr"`
	Orx      string `yaml:"orx"`
	Orml     string `yaml:"orml"`
	Kotlin   string `yaml:"kotlin"`
}

type Declaration struct {
	Platform     platform.ID           `yaml:"platform"`
	Versions     Versions              `yaml:"versions"`
	Publication  Publication           `yaml:"publication"`
	MainClass    string                `yaml:"mainClass,omitempty"`
	Repositories []string              `yaml:"repositories"`
	Dependencies []artifact.Dependency `yaml:"dependencies"`
	// Hex encoded hash of the inputs d was derived from, if known
	Inputs string `yaml:"inputs,omitempty"`
}

// Declare computes the dependencies of the project configured by cfg for
// platform id. Versions and third-party libraries are looked up in cat.
func Declare(cfg *mkcfg.Config, cat *catalog.Catalog, id platform.ID) (*Declaration, error) {
	if !id.Valid() {
		return nil, &platform.UnsupportedPlatformError{Platform: string(id)}
	}
	d := &Declaration{
		Platform:  id,
		MainClass: cfg.MainClass,
		Publication: Publication{
			GroupID:    cfg.Group,
			ArtifactID: cfg.Name,
			Version:    cfg.Version,
		},
	}
	var err error
	for _, v := range []struct {
		key string
		dst *string
	}{
		{"openrndr", &d.Versions.Openrndr},
		{"orx", &d.Versions.Orx},
		{"orml", &d.Versions.Orml},
		{"kotlin", &d.Versions.Kotlin},
	} {
		if *v.dst, err = cat.Version(v.key); err != nil {
			return nil, err
		}
	}
	d.Repositories = d.repositories()

	dl := declList{cat: cat}
	dl.lib(artifact.Implementation, "kotlinx-coroutines-core")
	dl.lib(artifact.Implementation, "kotlin-logging")
	for _, l := range cfg.Libraries {
		dl.lib(artifact.Implementation, l)
	}
	switch cfg.Logging {
	case mkcfg.LogNone:
		dl.lib(artifact.RuntimeOnly, "slf4j-nop")
	case mkcfg.LogSimple:
		dl.lib(artifact.RuntimeOnly, "slf4j-simple")
	case mkcfg.LogFull:
		dl.lib(artifact.RuntimeOnly, "log4j-slf4j")
		dl.lib(artifact.RuntimeOnly, "jackson-databind")
		dl.lib(artifact.RuntimeOnly, "jackson-json")
	default:
		return nil, fmt.Errorf("illegal logging %s", cfg.Logging)
	}
	dl.add(artifact.Implementation, artifact.Coordinate{
		Group:   "org.jetbrains.kotlin",
		Module:  "kotlin-stdlib-jdk8",
		Version: d.Versions.Kotlin,
	})
	dl.lib(artifact.TestImplementation, "junit")

	ov := d.Versions.Openrndr
	dl.add(artifact.RuntimeOnly, artifact.Openrndr("gl3", ov))
	dl.add(artifact.RuntimeOnly, artifact.OpenrndrNatives("gl3", ov, id))
	dl.add(artifact.Implementation, artifact.Openrndr("openal", ov))
	dl.add(artifact.RuntimeOnly, artifact.OpenrndrNatives("openal", ov, id))
	for _, m := range []string{"application", "svg", "animatable", "extensions", "filter"} {
		dl.add(artifact.Implementation, artifact.Openrndr(m, ov))
	}
	if cfg.HasOpenrndr("video") {
		dl.add(artifact.Implementation, artifact.Openrndr("ffmpeg", ov))
		dl.add(artifact.RuntimeOnly, artifact.OpenrndrNatives("ffmpeg", ov, id))
	}
	for _, f := range cfg.OrxFeatures {
		dl.add(artifact.Implementation, artifact.Orx(f, d.Versions.Orx))
	}
	for _, f := range cfg.OrmlFeatures {
		dl.add(artifact.Implementation, artifact.Orml(f, d.Versions.Orml))
	}
	if cfg.HasOrx("orx-tensorflow") {
		dl.add(artifact.RuntimeOnly,
			artifact.OrxNatives(cfg.OrxTensorflowBackend, d.Versions.Orx, id),
		)
	}
	if cfg.HasOrx("orx-kinect-v1") {
		dl.add(artifact.RuntimeOnly, artifact.OrxNatives("orx-kinect-v1", d.Versions.Orx, id))
	}
	if cfg.HasOrx("orx-olive") {
		dl.lib(artifact.Implementation, "kotlin-script-runtime")
	}
	if dl.err != nil {
		return nil, dl.err
	}
	d.Dependencies = dl.deps
	return d, nil
}

// Natives returns all dependencies that are platform specific.
func (d *Declaration) Natives() (res []artifact.Dependency) {
	for _, dep := range d.Dependencies {
		if dep.Natives != "" {
			res = append(res, dep)
		}
	}
	return res
}

func (d *Declaration) Scoped(s artifact.Scope) (res []artifact.Dependency) {
	for _, dep := range d.Dependencies {
		if dep.Scope == s {
			res = append(res, dep)
		}
	}
	return res
}

func (d *Declaration) repositories() []string {
	repos := []string{RepoMavenCentral}
	if slices.ContainsFunc(
		[]string{d.Versions.Openrndr, d.Versions.Orx, d.Versions.Orml},
		func(v string) bool { return artifact.Coordinate{Version: v}.Snapshot() },
	) {
		repos = append(repos, RepoMavenLocal)
	}
	return append(repos, RepoOpenrndr)
}

// declList collects dependencies and keeps the first catalog error.
type declList struct {
	cat  *catalog.Catalog
	deps []artifact.Dependency
	err  error
}

func (dl *declList) add(s artifact.Scope, c artifact.Coordinate) {
	dl.deps = append(dl.deps, artifact.Dependency{Scope: s, Coordinate: c})
}

func (dl *declList) lib(s artifact.Scope, alias string) {
	if dl.err != nil {
		return
	}
	c, err := dl.cat.Library(alias)
	if err != nil {
		dl.err = err
		return
	}
	dl.add(s, c)
}
