package mkdeps

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"git.fractalqb.de/fractalqb/rndrmk/artifact"
)

// WriteLock writes d as YAML lock file.
func WriteLock(w io.Writer, d *Declaration) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}

func ReadLock(r io.Reader) (*Declaration, error) {
	var d Declaration
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("read lock: %w", err)
	}
	if !d.Platform.Valid() {
		return nil, fmt.Errorf("lock for illegal platform '%s'", d.Platform)
	}
	return &d, nil
}

// WriteGradle writes the repositories and dependencies of d in Gradle's
// Kotlin DSL.
func WriteGradle(w io.Writer, d *Declaration) (err error) {
	defer func() {
		if p := recover(); p != nil {
			switch p := p.(type) {
			case error:
				err = p
			default:
				panic(p)
			}
		}
	}()
	out := func(_ int, err error) {
		if err != nil {
			panic(err)
		}
	}
	out(fmt.Fprintf(w, "// platform: %s\n", d.Platform))
	out(fmt.Fprintln(w, "repositories {"))
	pw := newPrefixWriter(w, "    ")
	for _, r := range d.Repositories {
		switch r {
		case RepoMavenCentral, RepoMavenLocal:
			out(fmt.Fprintf(pw, "%s()\n", r))
		default:
			out(fmt.Fprintf(pw, "maven(url = \"%s\")\n", r))
		}
	}
	out(fmt.Fprintln(w, "}"))
	out(fmt.Fprintln(w, "dependencies {"))
	for _, dep := range d.Dependencies {
		out(fmt.Fprintln(pw, dep.String()))
	}
	out(fmt.Fprintln(w, "}"))
	return nil
}

type pom struct {
	XMLName      xml.Name  `xml:"project"`
	XMLNS        string    `xml:"xmlns,attr"`
	ModelVersion string    `xml:"modelVersion"`
	GroupID      string    `xml:"groupId"`
	ArtifactID   string    `xml:"artifactId"`
	Version      string    `xml:"version"`
	Repositories []pomRepo `xml:"repositories>repository,omitempty"`
	Dependencies []pomDep  `xml:"dependencies>dependency"`
}

type pomRepo struct {
	ID  string `xml:"id"`
	URL string `xml:"url"`
}

type pomDep struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope,omitempty"`
}

// WritePOM writes a Maven POM for the publication of d. Test dependencies
// are not published.
func WritePOM(w io.Writer, d *Declaration) error {
	pub := d.Publication
	if pub.GroupID == "" || pub.ArtifactID == "" || pub.Version == "" {
		return errors.New("incomplete publication coordinates")
	}
	p := pom{
		XMLNS:        "http://maven.apache.org/POM/4.0.0",
		ModelVersion: "4.0.0",
		GroupID:      pub.GroupID,
		ArtifactID:   pub.ArtifactID,
		Version:      pub.Version,
	}
	for _, r := range d.Repositories {
		if r == RepoMavenCentral || r == RepoMavenLocal {
			continue
		}
		p.Repositories = append(p.Repositories, pomRepo{ID: "openrndr", URL: r})
	}
	for _, dep := range d.Dependencies {
		if dep.Scope == artifact.TestImplementation {
			continue
		}
		pd := pomDep{
			GroupID:    dep.Group,
			ArtifactID: dep.ArtifactID(),
			Version:    dep.Version,
		}
		if s := dep.Scope.Maven(); s != "compile" {
			pd.Scope = s
		}
		p.Dependencies = append(p.Dependencies, pd)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(p); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
