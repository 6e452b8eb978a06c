// Package mkfs provides file system artefacts for rndrmk projects.
package mkfs

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"git.fractalqb.de/fractalqb/rndrmk/mkcore"
)

// File is a regular file given by its path. Relative paths are relative to
// the project directory.
type File string

var _ mkcore.RemovableArtefact = File("")

func (f File) Path() string { return string(f) }

func (f File) Name(in *mkcore.Project) string {
	n, _ := in.RelPath(f.Path())
	return filepath.ToSlash(n)
}

// StateAt is the modification time of the file. It is zero if the file is
// missing or is a directory.
func (f File) StateAt(in *mkcore.Project) time.Time {
	st, err := f.stat(in)
	if err != nil || st.IsDir() {
		return time.Time{}
	}
	return st.ModTime()
}

func (f File) Exists(in *mkcore.Project) (bool, error) {
	switch _, err := f.stat(in); {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// Remove removes the file and its parent directory if it became empty. The
// project directory itself is never removed.
func (f File) Remove(in *mkcore.Project) error {
	p, err := in.AbsPath(f.Path())
	if err != nil {
		return err
	}
	if err = os.Remove(p); errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	dir := filepath.Dir(p)
	if dir == filepath.Clean(in.Dir) {
		return nil
	}
	switch empty, err := emptyDir(dir); {
	case err != nil:
		return err
	case empty:
		return os.Remove(dir)
	}
	return nil
}

// Create creates the file for writing after creating its parent directories
// with mode dirMode.
func (f File) Create(in *mkcore.Project, dirMode fs.FileMode) (*os.File, error) {
	p, err := in.AbsPath(f.Path())
	if err != nil {
		return nil, err
	}
	if err = os.MkdirAll(filepath.Dir(p), dirMode); err != nil {
		return nil, err
	}
	return os.Create(p)
}

func (f File) stat(in *mkcore.Project) (fs.FileInfo, error) {
	p, err := in.AbsPath(f.Path())
	if err != nil {
		return nil, err
	}
	return os.Stat(p)
}

func emptyDir(path string) (bool, error) {
	dir, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer dir.Close()
	if _, err = dir.ReadDir(1); errors.Is(err, io.EOF) {
		return true, nil
	}
	return false, err
}
