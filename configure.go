package rndrmk

import (
	"git.fractalqb.de/fractalqb/rndrmk/catalog"
	"git.fractalqb.de/fractalqb/rndrmk/mkcfg"
	"git.fractalqb.de/fractalqb/rndrmk/mkfs"
)

// Names of the abstract goals of the standard project.
const (
	GoalPlatform = "platform"
	GoalAll      = "all"
)

// Configure defines the standard project for s:
//
//	build/platform ─┬─> platform
//	                ├─> build/dependencies.lock.yaml ─┐
//	rndrmk.hcl ─────┼─> build/dependencies.gradle.kts ┼─> all
//	libs.versions ──┴─> build/pom.xml ────────────────┘
func Configure(s *Setup) (*Project, error) {
	prj := NewProject(s.Dir)
	err := Edit(prj, func(prj ProjectEd) {
		cfg := prj.Goal(mkfs.File(orDefault(s.ConfigFile, mkcfg.DefaultFile)))
		cat := prj.Goal(mkfs.File(orDefault(s.CatalogFile, catalog.DefaultFile)))

		stamp := prj.Goal(mkfs.File(PlatformStamp)).
			SetRemovable(true).
			By(&ResolvePlatform{Setup: s})
		prj.Goal(Abstract(GoalPlatform)).ImpliedBy(stamp)

		var decls []GoalEd
		for _, out := range []struct {
			file string
			fmt  Format
		}{
			{LockFile, FormatLock},
			{GradleFile, FormatGradle},
			{POMFile, FormatPOM},
		} {
			decls = append(decls, prj.Goal(mkfs.File(out.file)).
				SetRemovable(true).
				By(&WriteDeclaration{Setup: s, Format: out.fmt}, stamp, cfg, cat),
			)
		}
		prj.Goal(Abstract(GoalAll)).ImpliedBy(decls...)
	})
	if err != nil {
		return nil, err
	}
	return prj, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
