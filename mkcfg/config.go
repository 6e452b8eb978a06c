// Package mkcfg loads the project configuration of an OPENRNDR template
// project: publishing coordinates, the application's logging setup and which
// feature modules of OPENRNDR, ORX and ORML to depend on.
//
// The configuration is written in HCL. Expressions can refer to the building
// host through the variables host.os and host.arch, e.g.
//
//	openrndr_features = host.arch != "aarch64" ? ["video"] : []
package mkcfg

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"git.fractalqb.de/fractalqb/rndrmk/platform"
)

const DefaultFile = "rndrmk.hcl"

const (
	TensorflowCPU = "orx-tensorflow"
	TensorflowGPU = "orx-tensorflow-gpu"
)

type Config struct {
	Group     string
	Version   string
	Name      string // artifact id
	MainClass string
	Logging   Logging

	OrxFeatures      []string
	OrmlFeatures     []string
	OpenrndrFeatures []string

	// One of TensorflowCPU or TensorflowGPU
	OrxTensorflowBackend string

	// Additional catalog aliases of libraries used by the application.
	Libraries []string

	TargetPlatform string
}

// Host describes the building machine for configuration expressions.
type Host struct {
	OS   platform.OS
	Arch platform.Arch
}

func CurrentHost() Host {
	return Host{OS: platform.HostOS(), Arch: platform.HostArch()}
}

type fileConfig struct {
	Group                string   `hcl:"group"`
	Version              string   `hcl:"version"`
	Name                 string   `hcl:"name,optional"`
	MainClass            string   `hcl:"main_class,optional"`
	Logging              string   `hcl:"logging,optional"`
	OrxFeatures          []string `hcl:"orx_features,optional"`
	OrmlFeatures         []string `hcl:"orml_features,optional"`
	OpenrndrFeatures     []string `hcl:"openrndr_features,optional"`
	OrxTensorflowBackend string   `hcl:"orx_tensorflow_backend,optional"`
	Libraries            []string `hcl:"libraries,optional"`
	TargetPlatform       string   `hcl:"target_platform,optional"`
}

// Default returns the configuration the OPENRNDR template ships with.
func Default(host Host) *Config {
	cfg := &Config{
		Group:     "com.github.edwinRNDR",
		Version:   "master-SNAPSHOT",
		MainClass: "TemplateProgramKt",
		Logging:   LogFull,
		OrxFeatures: []string{
			"orx-color",
			"orx-compositor",
			"orx-fx",
			"orx-git-archiver",
			"orx-gui",
			"orx-image-fit",
			"orx-noise",
			"orx-olive",
			"orx-panel",
			"orx-shade-styles",
			"orx-shapes",
		},
		OrxTensorflowBackend: TensorflowCPU,
	}
	if !host.Arch.ARM64() {
		cfg.OpenrndrFeatures = []string{"video"}
	}
	return cfg
}

// Load reads the configuration from the HCL file at path. The artifact name
// defaults to the base name of the file's directory.
func Load(path string, host Host) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config %s: %s", path, diags.Error())
	}
	cfg, err := decode(file.Body, host)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Name == "" {
		if abs, err := filepath.Abs(filepath.Dir(path)); err == nil {
			cfg.Name = filepath.Base(abs)
		}
	}
	return cfg, nil
}

// Parse reads the configuration from HCL source src. Name is not defaulted.
func Parse(src []byte, filename string, host Host) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config %s: %s", filename, diags.Error())
	}
	return decode(file.Body, host)
}

func decode(body hcl.Body, host Host) (*Config, error) {
	var fc fileConfig
	if diags := gohcl.DecodeBody(body, host.evalContext(), &fc); diags.HasErrors() {
		return nil, fmt.Errorf("decode: %s", diags.Error())
	}
	cfg := &Config{
		Group:                fc.Group,
		Version:              fc.Version,
		Name:                 fc.Name,
		MainClass:            fc.MainClass,
		OrxFeatures:          fc.OrxFeatures,
		OrmlFeatures:         fc.OrmlFeatures,
		OpenrndrFeatures:     fc.OpenrndrFeatures,
		OrxTensorflowBackend: fc.OrxTensorflowBackend,
		Libraries:            fc.Libraries,
		TargetPlatform:       strings.TrimSpace(fc.TargetPlatform),
	}
	if cfg.OrxTensorflowBackend == "" {
		cfg.OrxTensorflowBackend = TensorflowCPU
	}
	if fc.Logging == "" {
		cfg.Logging = LogFull
	} else if err := cfg.Logging.UnmarshalText([]byte(fc.Logging)); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (h Host) evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"host": cty.ObjectVal(map[string]cty.Value{
				"os":   cty.StringVal(string(h.OS)),
				"arch": cty.StringVal(string(h.Arch)),
			}),
		},
	}
}

func (cfg *Config) Validate() error {
	switch {
	case cfg.Group == "":
		return fmt.Errorf("empty group")
	case cfg.Version == "":
		return fmt.Errorf("empty version")
	}
	if _, err := cfg.Logging.MarshalText(); err != nil {
		return err
	}
	switch cfg.OrxTensorflowBackend {
	case TensorflowCPU, TensorflowGPU:
	default:
		return fmt.Errorf("illegal tensorflow backend '%s'", cfg.OrxTensorflowBackend)
	}
	for _, fs := range [][]string{cfg.OrxFeatures, cfg.OrmlFeatures, cfg.OpenrndrFeatures} {
		if err := noDups(fs); err != nil {
			return err
		}
	}
	if tp := strings.TrimSpace(cfg.TargetPlatform); tp != "" &&
		!slices.Contains(platform.Overrides(), platform.ID(tp)) {
		return &platform.UnsupportedPlatformError{Platform: cfg.TargetPlatform}
	}
	return nil
}

func (cfg *Config) HasOrx(feature string) bool { return slices.Contains(cfg.OrxFeatures, feature) }

func (cfg *Config) HasOpenrndr(feature string) bool {
	return slices.Contains(cfg.OpenrndrFeatures, feature)
}

func noDups(fs []string) error {
	seen := make(map[string]bool, len(fs))
	for _, f := range fs {
		if f == "" {
			return fmt.Errorf("empty feature name")
		}
		if seen[f] {
			return fmt.Errorf("duplicate feature '%s'", f)
		}
		seen[f] = true
	}
	return nil
}
