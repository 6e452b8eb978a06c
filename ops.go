package rndrmk

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"git.fractalqb.de/fractalqb/rndrmk/mkcore"
	"git.fractalqb.de/fractalqb/rndrmk/mkdeps"
	"git.fractalqb.de/fractalqb/rndrmk/mkfs"
	"git.fractalqb.de/fractalqb/rndrmk/platform"
)

// Output files of the standard project, relative to the project directory.
const (
	PlatformStamp = "build/platform"
	LockFile      = "build/dependencies.lock.yaml"
	GradleFile    = "build/dependencies.gradle.kts"
	POMFile       = "build/pom.xml"
)

// ResolvePlatform resolves the target platform and publishes it to the env
// tag [mkcore.TagPlatform]. If the action has a [mkfs.File] result, the
// platform ID is written to that file. The file is only touched when its
// content changes, so goals depending on it stay up-to-date as long as the
// platform does not change.
type ResolvePlatform struct {
	Setup *Setup
}

var _ mkcore.Operation = (*ResolvePlatform)(nil)

func (*ResolvePlatform) Describe(*Action, *Env) string { return "resolve platform" }

func (op *ResolvePlatform) Do(tr *Trace, a *Action, env *Env) error {
	id, err := op.Setup.Platform(env)
	if err != nil {
		return err
	}
	tr.Info("target `platform`", `platform`, id)
	env.SetTag(mkcore.TagPlatform, string(id))
	stamps, err := Goals(a.Results(), false, AType[mkfs.File])
	if err != nil {
		return err
	}
	prj := a.Project()
	for _, g := range stamps {
		f := g.Artefact.(mkfs.File)
		path, err := prj.AbsPath(f.Path())
		if err != nil {
			return err
		}
		if old, err := os.ReadFile(path); err == nil && string(bytes.TrimSpace(old)) == string(id) {
			tr.Debug("`platform` unchanged in `file`", `platform`, id, `file`, f)
			continue
		}
		w, err := f.Create(prj, 0777)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, id)
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (op *ResolvePlatform) WriteHash(h hash.Hash, _ *Action, env *Env) (bool, error) {
	override, err := op.Setup.override(env)
	if err != nil {
		return false, err
	}
	host := op.Setup.host()
	fmt.Fprintln(h, "resolve platform", override, host.OS, host.Arch)
	return true, nil
}

type Format int

const (
	FormatLock Format = iota
	FormatGradle
	FormatPOM
)

var formatNames = []string{"lock", "gradle", "pom"}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("format(%d)", int(f))
	}
	return formatNames[f]
}

// Write writes d to w in format f.
func (f Format) Write(w io.Writer, d *mkdeps.Declaration) error {
	switch f {
	case FormatLock:
		return mkdeps.WriteLock(w, d)
	case FormatGradle:
		return mkdeps.WriteGradle(w, d)
	case FormatPOM:
		return mkdeps.WritePOM(w, d)
	}
	return fmt.Errorf("illegal declaration format %d", int(f))
}

// WriteDeclaration writes the dependency declaration of the project in
// Format to all [mkfs.File] results of its action. The platform is taken
// from the env tag [mkcore.TagPlatform], then from the platform stamp file.
// The hash of the platform, the host and the content of the project and
// catalog files is recorded as the declaration's inputs.
type WriteDeclaration struct {
	Setup  *Setup
	Format Format
}

var _ mkcore.Operation = (*WriteDeclaration)(nil)

func (op *WriteDeclaration) Describe(*Action, *Env) string {
	return "write " + op.Format.String()
}

func (op *WriteDeclaration) Do(tr *Trace, a *Action, env *Env) error {
	id, err := op.platform(env)
	if err != nil {
		return err
	}
	decl, err := op.Setup.Declaration(id)
	if err != nil {
		return err
	}
	if sum := a.Hash(); sum != nil {
		decl.Inputs = hex.EncodeToString(sum)
	}
	files, err := Goals(a.Results(), true, Tangible, AType[mkfs.File])
	if err != nil {
		return err
	}
	prj := a.Project()
	for _, g := range files {
		f := g.Artefact.(mkfs.File)
		tr.Debug("write `format` for `platform` to `file`",
			`format`, op.Format,
			`platform`, id,
			`file`, f,
		)
		w, err := f.Create(prj, 0777)
		if err != nil {
			return err
		}
		err = op.Format.Write(w, decl)
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("write %s: %w", f, err)
		}
	}
	return nil
}

func (op *WriteDeclaration) platform(env *Env) (platform.ID, error) {
	if tag, ok := env.Tag(mkcore.TagPlatform); ok {
		id := platform.ID(tag)
		if !id.Valid() {
			return "", &platform.UnsupportedPlatformError{Platform: tag}
		}
		return id, nil
	}
	return op.Setup.ReadPlatformStamp()
}

func (op *WriteDeclaration) WriteHash(h hash.Hash, _ *Action, env *Env) (bool, error) {
	id, err := op.platform(env)
	if err != nil {
		return false, err
	}
	host := op.Setup.host()
	fmt.Fprintln(h, "declare", id, host.OS, host.Arch)
	for _, path := range []string{op.Setup.ConfigPath(), op.Setup.CatalogPath()} {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			fmt.Fprintln(h, "no", filepath.Base(path))
		case err != nil:
			return false, err
		default:
			h.Write(raw)
		}
	}
	return true, nil
}
