package rndrmk

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"git.fractalqb.de/fractalqb/rndrmk/catalog"
	"git.fractalqb.de/fractalqb/rndrmk/mkcfg"
	"git.fractalqb.de/fractalqb/rndrmk/mkcore"
	"git.fractalqb.de/fractalqb/rndrmk/mkdeps"
	"git.fractalqb.de/fractalqb/rndrmk/platform"
)

// Setup locates the inputs of an OPENRNDR project: its directory, the
// project file and the version catalog. Config and catalog are loaded on
// first use.
type Setup struct {
	Dir         string
	ConfigFile  string // relative to Dir, defaults to [mkcfg.DefaultFile]
	CatalogFile string // relative to Dir, defaults to [catalog.DefaultFile]

	// Override is the target platform requested on the command line. It
	// takes precedence over all other sources.
	Override string

	Host mkcfg.Host

	mu  sync.Mutex
	cfg *mkcfg.Config
	cat *catalog.Catalog
}

func NewSetup(dir string) *Setup {
	if dir == "" {
		dir = "."
	}
	return &Setup{
		Dir:         dir,
		ConfigFile:  mkcfg.DefaultFile,
		CatalogFile: catalog.DefaultFile,
		Host:        mkcfg.CurrentHost(),
	}
}

func (s *Setup) ConfigPath() string  { return s.path(s.ConfigFile, mkcfg.DefaultFile) }
func (s *Setup) CatalogPath() string { return s.path(s.CatalogFile, catalog.DefaultFile) }

func (s *Setup) path(p, def string) string {
	if p == "" {
		p = def
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.Dir, p)
}

func (s *Setup) host() mkcfg.Host {
	if s.Host.OS == "" || s.Host.Arch == "" {
		return mkcfg.CurrentHost()
	}
	return s.Host
}

// Config returns the validated project configuration. Without a project
// file the configuration of the OPENRNDR template is used.
func (s *Setup) Config() (*mkcfg.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg != nil {
		return s.cfg, nil
	}
	path := s.ConfigPath()
	var cfg *mkcfg.Config
	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = mkcfg.Default(s.host())
		if abs, err := filepath.Abs(s.Dir); err == nil {
			cfg.Name = filepath.Base(abs)
		}
	case err != nil:
		return nil, err
	default:
		if cfg, err = mkcfg.Load(path, s.host()); err != nil {
			return nil, err
		}
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	s.cfg = cfg
	return cfg, nil
}

func (s *Setup) Catalog() (*catalog.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cat != nil {
		return s.cat, nil
	}
	cat, err := catalog.Load(s.CatalogPath())
	if err != nil {
		return nil, err
	}
	s.cat = cat
	return cat, nil
}

// Platform resolves the target platform. The override is taken from the
// first non-empty source of: s.Override, the env tags
// [mkcore.TagTargetPlatform] and [mkcore.TagGradleTargetPlatform], the
// project file's target_platform. Without override the host decides.
func (s *Setup) Platform(env *mkcore.Env) (platform.ID, error) {
	override, err := s.override(env)
	if err != nil {
		return "", err
	}
	h := s.host()
	return platform.Resolve(override, h.OS, h.Arch)
}

func (s *Setup) override(env *mkcore.Env) (string, error) {
	if o := strings.TrimSpace(s.Override); o != "" {
		return o, nil
	}
	if env != nil {
		for _, tag := range []string{mkcore.TagTargetPlatform, mkcore.TagGradleTargetPlatform} {
			if o, _ := env.Tag(tag); strings.TrimSpace(o) != "" {
				return strings.TrimSpace(o), nil
			}
		}
	}
	cfg, err := s.Config()
	if err != nil {
		return "", err
	}
	return cfg.TargetPlatform, nil
}

// Declaration computes the project's dependencies for platform id.
func (s *Setup) Declaration(id platform.ID) (*mkdeps.Declaration, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, err
	}
	cat, err := s.Catalog()
	if err != nil {
		return nil, err
	}
	return mkdeps.Declare(cfg, cat, id)
}

// ReadPlatformStamp reads the platform last written by [ResolvePlatform].
func (s *Setup) ReadPlatformStamp() (platform.ID, error) {
	raw, err := os.ReadFile(s.path(PlatformStamp, PlatformStamp))
	if err != nil {
		return "", err
	}
	id := platform.ID(strings.TrimSpace(string(raw)))
	if !id.Valid() {
		return "", &platform.UnsupportedPlatformError{Platform: string(id)}
	}
	return id, nil
}
