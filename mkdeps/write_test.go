package mkdeps

import (
	"encoding/xml"
	"io"
	"os"
	"strings"
	"testing"

	"git.fractalqb.de/fractalqb/rndrmk/artifact"
	"git.fractalqb.de/fractalqb/rndrmk/platform"
	"git.fractalqb.de/fractalqb/testerr"
)

func Example_prefixWriter() {
	pw := newPrefixWriter(os.Stdout, "PRE:")
	io.WriteString(pw, "foo")
	io.WriteString(pw, "bar\n\n")
	io.WriteString(pw, "baz\nquux")
	// Output:
	// PRE:foobar
	//
	// PRE:baz
	// PRE:quux
}

func smallDecl() *Declaration {
	return &Declaration{
		Platform:     platform.LinuxArm64,
		Publication:  Publication{GroupID: "org.example", ArtifactID: "sketch", Version: "1.0"},
		Repositories: []string{RepoMavenCentral, RepoMavenLocal, RepoOpenrndr},
		Dependencies: []artifact.Dependency{
			{Scope: artifact.Implementation, Coordinate: artifact.Openrndr("application", "0.4.4")},
			{Scope: artifact.RuntimeOnly, Coordinate: artifact.OpenrndrNatives("gl3", "0.4.4", platform.LinuxArm64)},
			{Scope: artifact.TestImplementation, Coordinate: artifact.Coordinate{Group: "junit", Module: "junit", Version: "4.13.2"}},
		},
	}
}

func ExampleWriteGradle() {
	WriteGradle(os.Stdout, smallDecl())
	// Output:
	// // platform: linux-arm64
	// repositories {
	//     mavenCentral()
	//     mavenLocal()
	//     maven(url = "https://maven.openrndr.org")
	// }
	// dependencies {
	//     implementation("org.openrndr:openrndr-application:0.4.4")
	//     runtimeOnly("org.openrndr:openrndr-gl3-natives-linux-arm64:0.4.4")
	//     testImplementation("junit:junit:4.13.2")
	// }
}

func TestWritePOM(t *testing.T) {
	var sb strings.Builder
	testerr.F0(WritePOM(&sb, smallDecl())).ShallBeNil(t)
	var p pom
	testerr.F0(xml.Unmarshal([]byte(sb.String()), &p)).ShallBeNil(t)
	if p.ArtifactID != "sketch" || p.GroupID != "org.example" {
		t.Errorf("publication %s:%s", p.GroupID, p.ArtifactID)
	}
	if l := len(p.Dependencies); l != 2 {
		t.Fatalf("%d dependencies in POM", l)
	}
	if d := p.Dependencies[0]; d.Scope != "" {
		t.Errorf("compile dependency with scope %s", d.Scope)
	}
	if d := p.Dependencies[1]; d.ArtifactID != "openrndr-gl3-natives-linux-arm64" || d.Scope != "runtime" {
		t.Errorf("unexpected natives dependency %+v", d)
	}
	if l := len(p.Repositories); l != 1 {
		t.Errorf("%d repositories in POM", l)
	}

	d := smallDecl()
	d.Publication.Version = ""
	if err := WritePOM(io.Discard, d); err == nil {
		t.Error("POM written without version")
	}
}
