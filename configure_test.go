package rndrmk

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"git.fractalqb.de/fractalqb/rndrmk/mkcore"
	"git.fractalqb.de/fractalqb/rndrmk/mkdeps"
	"git.fractalqb.de/fractalqb/rndrmk/platform"
	"git.fractalqb.de/fractalqb/testerr"
)

func ageFiles(t *testing.T, dir string, age time.Duration, files ...string) {
	t.Helper()
	at := time.Now().Add(-age)
	for _, f := range files {
		testerr.F0(os.Chtimes(filepath.Join(dir, f), at, at)).ShallBeNil(t)
	}
}

func readLock(t *testing.T, dir string) *mkdeps.Declaration {
	t.Helper()
	r := testerr.F1(os.Open(filepath.Join(dir, LockFile))).ShallBeNil(t)
	defer r.Close()
	return testerr.F1(mkdeps.ReadLock(r)).ShallBeNil(t)
}

func TestConfigure_build(t *testing.T) {
	s := testSetup(t, sketchHCL(t, ""), linuxX64)
	prj := testerr.F1(Configure(s)).ShallBeNil(t)
	tr := mkcore.NewTrace(context.Background(), NewTestTracer(t))
	bd := testerr.F1(mkcore.NewBuilder(tr, new(Env))).ShallBeNil(t)

	testerr.F0(bd.Project(prj)).ShallBeNil(t)
	lock := readLock(t, s.Dir)
	if lock.Platform != platform.LinuxX64 {
		t.Fatalf("lock for platform %s", lock.Platform)
	}
	if len(lock.Inputs) != 64 {
		t.Errorf("lock inputs hash '%s'", lock.Inputs)
	}
	gradle := testerr.F1(os.ReadFile(filepath.Join(s.Dir, GradleFile))).ShallBeNil(t)
	if !strings.HasPrefix(string(gradle), "// platform: linux-x64\n") {
		t.Errorf("gradle file starts with: %.30s", gradle)
	}
	testerr.F1(os.Stat(filepath.Join(s.Dir, POMFile))).ShallBeNil(t)
	if id := testerr.F1(s.ReadPlatformStamp()).ShallBeNil(t); id != platform.LinuxX64 {
		t.Errorf("platform stamp %s", id)
	}

	ageFiles(t, s.Dir, 2*time.Hour, "rndrmk.hcl", "gradle/libs.versions.toml", PlatformStamp)
	ageFiles(t, s.Dir, time.Hour, LockFile, GradleFile, POMFile)
	lockStat := testerr.F1(os.Stat(filepath.Join(s.Dir, LockFile))).ShallBeNil(t)

	testerr.F0(bd.Project(prj)).ShallBeNil(t)
	stat := testerr.F1(os.Stat(filepath.Join(s.Dir, LockFile))).ShallBeNil(t)
	if !stat.ModTime().Equal(lockStat.ModTime()) {
		t.Error("up-to-date lock file was rewritten")
	}

	s.Override = "windows"
	testerr.F0(bd.Project(prj)).ShallBeNil(t)
	if d := readLock(t, s.Dir); d.Platform != platform.Windows {
		t.Errorf("lock for platform %s after override", d.Platform)
	} else if d.Inputs == lock.Inputs {
		t.Error("inputs hash unchanged after override")
	}
	if tag, _ := bd.Env().Tag(mkcore.TagPlatform); tag != "windows" {
		t.Errorf("platform tag '%s'", tag)
	}

	testerr.F0(mkcore.Clean(prj, false, tr)).ShallBeNil(t)
	if _, err := os.Stat(filepath.Join(s.Dir, "build")); !os.IsNotExist(err) {
		t.Errorf("build dir not cleaned: %v", err)
	}
	testerr.F1(os.Stat(filepath.Join(s.Dir, "rndrmk.hcl"))).ShallBeNil(t)
}

func TestConfigure_platformGoal(t *testing.T) {
	s := testSetup(t, sketchHCL(t, ""), linuxX64)
	s.Override = "macos"
	prj := testerr.F1(Configure(s)).ShallBeNil(t)
	tr := mkcore.NewTrace(context.Background(), NewTestTracer(t))
	bd := testerr.F1(mkcore.NewBuilder(tr, new(Env))).ShallBeNil(t)
	testerr.F0(bd.NamedGoals(prj, GoalPlatform)).ShallBeNil(t)
	if id := testerr.F1(s.ReadPlatformStamp()).ShallBeNil(t); id != platform.MacOS {
		t.Errorf("platform stamp %s", id)
	}
	if _, err := os.Stat(filepath.Join(s.Dir, LockFile)); !os.IsNotExist(err) {
		t.Errorf("platform goal wrote lock file: %v", err)
	}
}

func TestConfigure_badPlatform(t *testing.T) {
	s := testSetup(t, sketchHCL(t, ""), linuxX64)
	s.Override = "solaris"
	prj := testerr.F1(Configure(s)).ShallBeNil(t)
	tr := mkcore.NewTrace(context.Background(), NewTestTracer(t))
	bd := testerr.F1(mkcore.NewBuilder(tr, new(Env))).ShallBeNil(t)
	testerr.F0(bd.NamedGoals(prj, GoalAll)).
		ShouldAll(t, testerr.MsgSuffix("target platform not supported: solaris"))
}
