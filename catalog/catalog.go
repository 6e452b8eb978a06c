// Package catalog reads Gradle version catalogs (libs.versions.toml), the
// place where the versions of OPENRNDR, ORX, ORML and all other libraries of
// a template project are pinned.
package catalog

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"git.fractalqb.de/fractalqb/rndrmk/artifact"
)

const DefaultFile = "gradle/libs.versions.toml"

type Plugin struct {
	ID      string
	Version string
}

type Catalog struct {
	Source string

	versions  map[string]string
	libraries map[string]artifact.Coordinate
	plugins   map[string]Plugin
	bundles   map[string][]string
}

type tomlCatalog struct {
	Versions  map[string]any      `toml:"versions"`
	Libraries map[string]any      `toml:"libraries"`
	Plugins   map[string]any      `toml:"plugins"`
	Bundles   map[string][]string `toml:"bundles"`
}

func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cat, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	cat.Source = path
	return cat, nil
}

func Decode(r io.Reader) (*Catalog, error) {
	var raw tomlCatalog
	md, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return nil, err
	}
	// Entries are free-form tables, only sections are checked here.
	for _, k := range md.Undecoded() {
		if len(k) == 1 {
			return nil, fmt.Errorf("unknown catalog section '%s'", k)
		}
	}
	cat := &Catalog{
		versions:  make(map[string]string, len(raw.Versions)),
		libraries: make(map[string]artifact.Coordinate, len(raw.Libraries)),
		plugins:   make(map[string]Plugin, len(raw.Plugins)),
		bundles:   make(map[string][]string, len(raw.Bundles)),
	}
	for k, v := range raw.Versions {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("version '%s' is %T, only plain versions are supported", k, v)
		}
		cat.versions[normAlias(k)] = s
	}
	for alias, def := range raw.Libraries {
		c, err := cat.library(def)
		if err != nil {
			return nil, fmt.Errorf("library '%s': %w", alias, err)
		}
		cat.libraries[normAlias(alias)] = c
	}
	for alias, def := range raw.Plugins {
		p, err := cat.plugin(def)
		if err != nil {
			return nil, fmt.Errorf("plugin '%s': %w", alias, err)
		}
		cat.plugins[normAlias(alias)] = p
	}
	for alias, libs := range raw.Bundles {
		for _, l := range libs {
			if _, ok := cat.libraries[normAlias(l)]; !ok {
				return nil, fmt.Errorf("bundle '%s' refers to unknown library '%s'", alias, l)
			}
		}
		cat.bundles[normAlias(alias)] = libs
	}
	return cat, nil
}

// Version returns the version declared under key in the [versions] section.
func (cat *Catalog) Version(key string) (string, error) {
	v, ok := cat.versions[normAlias(key)]
	if !ok {
		return "", fmt.Errorf("no version '%s' in catalog%s", key, cat.at())
	}
	return v, nil
}

func (cat *Catalog) Library(alias string) (artifact.Coordinate, error) {
	c, ok := cat.libraries[normAlias(alias)]
	if !ok {
		return c, fmt.Errorf("no library '%s' in catalog%s", alias, cat.at())
	}
	return c, nil
}

func (cat *Catalog) Plugin(alias string) (Plugin, error) {
	p, ok := cat.plugins[normAlias(alias)]
	if !ok {
		return p, fmt.Errorf("no plugin '%s' in catalog%s", alias, cat.at())
	}
	return p, nil
}

// Bundle returns the coordinates of all libraries in the bundle alias.
func (cat *Catalog) Bundle(alias string) ([]artifact.Coordinate, error) {
	libs, ok := cat.bundles[normAlias(alias)]
	if !ok {
		return nil, fmt.Errorf("no bundle '%s' in catalog%s", alias, cat.at())
	}
	res := make([]artifact.Coordinate, len(libs))
	for i, l := range libs {
		res[i] = cat.libraries[normAlias(l)]
	}
	return res, nil
}

// Libraries returns the normalized aliases of all libraries, sorted.
func (cat *Catalog) Libraries() []string {
	res := make([]string, 0, len(cat.libraries))
	for a := range cat.libraries {
		res = append(res, a)
	}
	sort.Strings(res)
	return res
}

func (cat *Catalog) at() string {
	if cat.Source == "" {
		return ""
	}
	return " " + cat.Source
}

func (cat *Catalog) library(def any) (c artifact.Coordinate, err error) {
	switch def := def.(type) {
	case string:
		c, err = artifact.Parse(def)
		if err == nil && c.Version == "" {
			err = fmt.Errorf("library notation '%s' without version", def)
		}
		return c, err
	case map[string]any:
		if m, ok := def["module"]; ok {
			ms, ok := m.(string)
			if !ok {
				return c, fmt.Errorf("module is %T", m)
			}
			if c, err = artifact.Parse(ms); err != nil {
				return c, err
			}
			if c.Version != "" {
				return c, fmt.Errorf("module '%s' must not contain a version", ms)
			}
		} else {
			c.Group, _ = def["group"].(string)
			c.Module, _ = def["name"].(string)
			if c.Group == "" || c.Module == "" {
				return c, fmt.Errorf("needs module or group and name")
			}
		}
		c.Version, err = cat.version(def["version"])
		return c, err
	}
	return c, fmt.Errorf("illegal definition type %T", def)
}

func (cat *Catalog) plugin(def any) (p Plugin, err error) {
	switch def := def.(type) {
	case string:
		id, v, ok := strings.Cut(def, ":")
		if !ok || id == "" || v == "" {
			return p, fmt.Errorf("malformed plugin notation '%s'", def)
		}
		return Plugin{ID: id, Version: v}, nil
	case map[string]any:
		p.ID, _ = def["id"].(string)
		if p.ID == "" {
			return p, fmt.Errorf("plugin without id")
		}
		p.Version, err = cat.version(def["version"])
		return p, err
	}
	return p, fmt.Errorf("illegal definition type %T", def)
}

func (cat *Catalog) version(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case map[string]any:
		ref, ok := v["ref"].(string)
		if !ok {
			return "", fmt.Errorf("version table without ref")
		}
		res, ok := cat.versions[normAlias(ref)]
		if !ok {
			return "", fmt.Errorf("unknown version ref '%s'", ref)
		}
		return res, nil
	}
	return "", fmt.Errorf("illegal version type %T", v)
}

// Gradle considers '-', '_' and '.' as equivalent separators in aliases.
func normAlias(a string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '.':
			return '-'
		}
		return r
	}, a)
}
