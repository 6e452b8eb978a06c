package mkdeps

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"git.fractalqb.de/fractalqb/rndrmk/artifact"
	"git.fractalqb.de/fractalqb/rndrmk/catalog"
	"git.fractalqb.de/fractalqb/rndrmk/mkcfg"
	"git.fractalqb.de/fractalqb/rndrmk/platform"
	"git.fractalqb.de/fractalqb/testerr"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return testerr.F1(catalog.Load("../catalog/testdata/libs.versions.toml")).ShallBeNil(t)
}

func testConfig() *mkcfg.Config {
	return &mkcfg.Config{
		Group:                "com.github.edwinRNDR",
		Name:                 "sketch",
		Version:              "master-SNAPSHOT",
		Logging:              mkcfg.LogSimple,
		OrxFeatures:          []string{"orx-fx", "orx-kinect-v1", "orx-olive", "orx-tensorflow"},
		OrmlFeatures:         []string{"orml-u2net"},
		OpenrndrFeatures:     []string{"video"},
		OrxTensorflowBackend: mkcfg.TensorflowGPU,
	}
}

func depStrings(ds []artifact.Dependency) []string {
	res := make([]string, len(ds))
	for i, d := range ds {
		res[i] = d.String()
	}
	return res
}

func TestDeclare(t *testing.T) {
	d := testerr.F1(Declare(testConfig(), testCatalog(t), platform.LinuxX64)).ShallBeNil(t)
	want := []string{
		`implementation("org.jetbrains.kotlinx:kotlinx-coroutines-core:1.7.3")`,
		`implementation("io.github.microutils:kotlin-logging-jvm:3.0.5")`,
		`runtimeOnly("org.slf4j:slf4j-simple:2.0.9")`,
		`implementation("org.jetbrains.kotlin:kotlin-stdlib-jdk8:1.9.20")`,
		`testImplementation("junit:junit:4.13.2")`,
		`runtimeOnly("org.openrndr:openrndr-gl3:0.4.4")`,
		`runtimeOnly("org.openrndr:openrndr-gl3-natives-linux-x64:0.4.4")`,
		`implementation("org.openrndr:openrndr-openal:0.4.4")`,
		`runtimeOnly("org.openrndr:openrndr-openal-natives-linux-x64:0.4.4")`,
		`implementation("org.openrndr:openrndr-application:0.4.4")`,
		`implementation("org.openrndr:openrndr-svg:0.4.4")`,
		`implementation("org.openrndr:openrndr-animatable:0.4.4")`,
		`implementation("org.openrndr:openrndr-extensions:0.4.4")`,
		`implementation("org.openrndr:openrndr-filter:0.4.4")`,
		`implementation("org.openrndr:openrndr-ffmpeg:0.4.4")`,
		`runtimeOnly("org.openrndr:openrndr-ffmpeg-natives-linux-x64:0.4.4")`,
		`implementation("org.openrndr.extra:orx-fx:0.4.4")`,
		`implementation("org.openrndr.extra:orx-kinect-v1:0.4.4")`,
		`implementation("org.openrndr.extra:orx-olive:0.4.4")`,
		`implementation("org.openrndr.extra:orx-tensorflow:0.4.4")`,
		`implementation("org.openrndr.orml:orml-u2net:0.4.1")`,
		`runtimeOnly("org.openrndr.extra:orx-tensorflow-gpu-natives-linux-x64:0.4.4")`,
		`runtimeOnly("org.openrndr.extra:orx-kinect-v1-natives-linux-x64:0.4.4")`,
		`implementation("org.jetbrains.kotlin:kotlin-script-runtime:1.9.20")`,
	}
	if diff := cmp.Diff(want, depStrings(d.Dependencies)); diff != "" {
		t.Errorf("dependencies (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{RepoMavenCentral, RepoOpenrndr}, d.Repositories); diff != "" {
		t.Errorf("repositories (-want +got):\n%s", diff)
	}
	if n := len(d.Natives()); n != 5 {
		t.Errorf("%d native dependencies", n)
	}
	if n := len(d.Scoped(artifact.TestImplementation)); n != 1 {
		t.Errorf("%d test dependencies", n)
	}
}

func TestDeclare_logging(t *testing.T) {
	cat := testCatalog(t)
	for _, tc := range []struct {
		log  mkcfg.Logging
		want []string
	}{
		{mkcfg.LogNone, []string{`runtimeOnly("org.slf4j:slf4j-nop:2.0.9")`}},
		{mkcfg.LogFull, []string{
			`runtimeOnly("org.apache.logging.log4j:log4j-slf4j2-impl:2.21.1")`,
			`runtimeOnly("com.fasterxml.jackson.core:jackson-databind:2.15.3")`,
			`runtimeOnly("com.fasterxml.jackson.dataformat:jackson-dataformat-yaml:2.15.3")`,
		}},
	} {
		cfg := &mkcfg.Config{Group: "g", Name: "n", Version: "1", Logging: tc.log}
		d := testerr.F1(Declare(cfg, cat, platform.Windows)).ShallBeNil(t)
		var got []string
		for _, s := range depStrings(d.Scoped(artifact.RuntimeOnly)) {
			if !strings.Contains(s, "openrndr") {
				got = append(got, s)
			}
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("logging %s (-want +got):\n%s", tc.log, diff)
		}
	}
}

func TestDeclare_errors(t *testing.T) {
	cfg := testConfig()
	_, err := Declare(cfg, testCatalog(t), platform.ID("amiga"))
	if !errors.Is(err, &platform.UnsupportedPlatformError{}) {
		t.Errorf("unexpected error %v", err)
	}
	cfg.Libraries = []string{"gson"}
	testerr.F1(Declare(cfg, testCatalog(t), platform.MacOS)).
		ShallMsg(t, "no library 'gson' in catalog ../catalog/testdata/libs.versions.toml")

	cat := testerr.F1(catalog.Decode(strings.NewReader("[versions]\nopenrndr = \"1\"\n"))).ShallBeNil(t)
	testerr.F1(Declare(testConfig(), cat, platform.MacOS)).
		ShallMsg(t, "no version 'orx' in catalog")
}

func TestDeclare_snapshotRepo(t *testing.T) {
	cat := testerr.F1(catalog.Decode(strings.NewReader(`
[versions]
openrndr = "0.5.1-SNAPSHOT"
orx = "0.4.4"
orml = "0.4.1"
kotlin = "1.9.20"
[libraries]
kotlinx-coroutines-core = "a:b:1"
kotlin-logging = "a:c:1"
slf4j-nop = "a:d:1"
junit = "a:e:1"
`))).ShallBeNil(t)
	cfg := &mkcfg.Config{Group: "g", Name: "n", Version: "1", Logging: mkcfg.LogNone}
	d := testerr.F1(Declare(cfg, cat, platform.LinuxArm64)).ShallBeNil(t)
	want := []string{RepoMavenCentral, RepoMavenLocal, RepoOpenrndr}
	if diff := cmp.Diff(want, d.Repositories); diff != "" {
		t.Errorf("repositories (-want +got):\n%s", diff)
	}
}

func TestLock_roundTrip(t *testing.T) {
	d := testerr.F1(Declare(testConfig(), testCatalog(t), platform.MacOSArm64)).ShallBeNil(t)
	var buf bytes.Buffer
	testerr.F0(WriteLock(&buf, d)).ShallBeNil(t)
	r := testerr.F1(ReadLock(&buf)).ShallBeNil(t)
	if diff := cmp.Diff(d, r); diff != "" {
		t.Errorf("lock round trip (-want +got):\n%s", diff)
	}
}
