package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.fractalqb.de/fractalqb/testerr"
)

func testProject(t *testing.T) string {
	dir := t.TempDir()
	hcl := testerr.F1(os.ReadFile("../../testdata/rndrmk.hcl")).ShallBeNil(t)
	testerr.F0(os.WriteFile(filepath.Join(dir, "rndrmk.hcl"), hcl, 0666)).ShallBeNil(t)
	cat := testerr.F1(os.ReadFile("../../catalog/testdata/libs.versions.toml")).ShallBeNil(t)
	testerr.F0(os.MkdirAll(filepath.Join(dir, "gradle"), 0777)).ShallBeNil(t)
	testerr.F0(os.WriteFile(filepath.Join(dir, "gradle", "libs.versions.toml"), cat, 0666)).ShallBeNil(t)
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out strings.Builder
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--no-color"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestPlatformCmd(t *testing.T) {
	t.Setenv("RNDRMK_TARGET_PLATFORM", "")
	t.Setenv("ORG_GRADLE_PROJECT_targetPlatform", "")
	dir := testProject(t)
	out := testerr.F1(run(t, "-C", dir, "platform", "--target-platform", "linux-arm64")).ShallBeNil(t)
	if out != "linux-arm64\n" {
		t.Errorf("unexpected output '%s'", out)
	}
	t.Setenv("RNDRMK_TARGET_PLATFORM", "windows")
	out = testerr.F1(run(t, "-C", dir, "platform")).ShallBeNil(t)
	if out != "windows\n" {
		t.Errorf("unexpected output '%s'", out)
	}
	testerr.F1(run(t, "-C", dir, "platform", "-P", "macos-arm64")).
		ShouldMsg(t, "target platform not supported: macos-arm64")
}

func TestDepsCmd(t *testing.T) {
	t.Setenv("RNDRMK_TARGET_PLATFORM", "")
	t.Setenv("ORG_GRADLE_PROJECT_targetPlatform", "")
	dir := testProject(t)
	out := testerr.F1(run(t, "-C", dir, "deps", "-P", "windows")).ShallBeNil(t)
	for _, s := range []string{"Platform:", "windows", "org.openrndr:openrndr-gl3-natives-windows", "runtimeOnly"} {
		if !strings.Contains(out, s) {
			t.Errorf("text output misses '%s':\n%s", s, out)
		}
	}
	out = testerr.F1(run(t, "-C", dir, "deps", "-P", "macos", "--format", "gradle")).ShallBeNil(t)
	if !strings.HasPrefix(out, "// platform: macos\n") {
		t.Errorf("unexpected gradle output:\n%s", out)
	}
	testerr.F1(run(t, "-C", dir, "deps", "-P", "windows", "-f", "json")).
		ShouldMsg(t, "illegal output format 'json'")
}

func TestBuildCmd(t *testing.T) {
	t.Setenv("RNDRMK_TARGET_PLATFORM", "")
	t.Setenv("ORG_GRADLE_PROJECT_targetPlatform", "")
	dir := testProject(t)
	testerr.F1(run(t, "-C", dir, "--trace", "off", "build", "-P", "linux-x64")).ShallBeNil(t)
	for _, f := range []string{"platform", "dependencies.lock.yaml", "dependencies.gradle.kts", "pom.xml"} {
		testerr.F1(os.Stat(filepath.Join(dir, "build", f))).ShallBeNil(t)
	}
	out := testerr.F1(run(t, "-C", dir, "build", "--dot")).ShallBeNil(t)
	if !strings.HasPrefix(out, "digraph ") {
		t.Errorf("unexpected dot output:\n%s", out)
	}
	testerr.F1(run(t, "-C", dir, "--trace", "off", "build", "--clean")).ShallBeNil(t)
	if _, err := os.Stat(filepath.Join(dir, "build")); !os.IsNotExist(err) {
		t.Errorf("build dir not cleaned: %v", err)
	}
}
