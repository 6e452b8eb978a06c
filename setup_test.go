package rndrmk

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"git.fractalqb.de/fractalqb/rndrmk/mkcfg"
	"git.fractalqb.de/fractalqb/rndrmk/mkcore"
	"git.fractalqb.de/fractalqb/rndrmk/platform"
	"git.fractalqb.de/fractalqb/testerr"
)

var linuxX64 = mkcfg.Host{OS: platform.OSLinux, Arch: platform.ArchX8664}

func testSetup(t *testing.T, hcl string, host mkcfg.Host) *Setup {
	dir := t.TempDir()
	if hcl != "" {
		testerr.F0(os.WriteFile(filepath.Join(dir, mkcfg.DefaultFile), []byte(hcl), 0666)).ShallBeNil(t)
	}
	cat := testerr.F1(os.ReadFile("catalog/testdata/libs.versions.toml")).ShallBeNil(t)
	testerr.F0(os.MkdirAll(filepath.Join(dir, "gradle"), 0777)).ShallBeNil(t)
	testerr.F0(os.WriteFile(filepath.Join(dir, "gradle", "libs.versions.toml"), cat, 0666)).ShallBeNil(t)
	s := NewSetup(dir)
	s.Host = host
	return s
}

func sketchHCL(t *testing.T, extra string) string {
	src := testerr.F1(os.ReadFile("testdata/rndrmk.hcl")).ShallBeNil(t)
	return string(src) + extra
}

func TestSetup_Platform_precedence(t *testing.T) {
	s := testSetup(t, sketchHCL(t, "target_platform = \"windows\"\n"), linuxX64)
	var env mkcore.Env
	check := func(expect platform.ID) {
		t.Helper()
		id := testerr.F1(s.Platform(&env)).ShallBeNil(t)
		if id != expect {
			t.Errorf("resolved '%s', expected '%s'", id, expect)
		}
	}
	check(platform.Windows)
	env.SetTag(mkcore.TagGradleTargetPlatform, "macos")
	check(platform.MacOS)
	env.SetTag(mkcore.TagTargetPlatform, "linux-arm64")
	check(platform.LinuxArm64)
	s.Override = "linux-x64"
	check(platform.LinuxX64)
	s.Override = " "
	env.SetTag(mkcore.TagTargetPlatform, "")
	check(platform.MacOS)
}

func TestSetup_Platform_host(t *testing.T) {
	s := testSetup(t, sketchHCL(t, ""), mkcfg.Host{OS: platform.OSMacOS, Arch: platform.ArchArmV8})
	id := testerr.F1(s.Platform(nil)).ShallBeNil(t)
	if id != platform.MacOSArm64 {
		t.Errorf("resolved '%s'", id)
	}
	s.Host = mkcfg.Host{OS: platform.OSLinux, Arch: platform.ArchArmV8}
	_, err := s.Platform(nil)
	if !errors.Is(err, &platform.UnsupportedArchError{}) {
		t.Errorf("unexpected error: %v", err)
	}
	s.Override = "macos-arm64"
	_, err = s.Platform(nil)
	if !errors.Is(err, &platform.UnsupportedPlatformError{}) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSetup_Config_default(t *testing.T) {
	s := testSetup(t, "", linuxX64)
	cfg := testerr.F1(s.Config()).ShallBeNil(t)
	if cfg.Name != filepath.Base(s.Dir) {
		t.Errorf("default name '%s'", cfg.Name)
	}
	if !cfg.HasOpenrndr("video") {
		t.Error("template config without video on x86-64")
	}
	if again := testerr.F1(s.Config()).ShallBeNil(t); again != cfg {
		t.Error("config loaded twice")
	}
}

func TestSetup_Config_invalid(t *testing.T) {
	s := testSetup(t, sketchHCL(t, "target_platform = \"amiga\"\n"), linuxX64)
	_, err := s.Platform(nil)
	if !errors.Is(err, &platform.UnsupportedPlatformError{}) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSetup_Declaration(t *testing.T) {
	s := testSetup(t, sketchHCL(t, ""), linuxX64)
	d := testerr.F1(s.Declaration(platform.LinuxX64)).ShallBeNil(t)
	if d.Publication.ArtifactID != filepath.Base(s.Dir) {
		t.Errorf("artifact id '%s'", d.Publication.ArtifactID)
	}
	for _, n := range d.Natives() {
		if n.Natives != platform.LinuxX64 {
			t.Errorf("natives of %s", n)
		}
	}
	if len(d.Natives()) == 0 {
		t.Error("no natives")
	}
}
