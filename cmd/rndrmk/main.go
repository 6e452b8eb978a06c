package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"git.fractalqb.de/fractalqb/rndrmk"
	"git.fractalqb.de/fractalqb/rndrmk/mkcore"
)

// flags shared by all subcommands
type rootFlags struct {
	dir, config, catalog string
	trace                string
	debug, noColor       bool
}

func (f *rootFlags) setup() *rndrmk.Setup {
	s := rndrmk.NewSetup(f.dir)
	s.ConfigFile = f.config
	s.CatalogFile = f.catalog
	return s
}

func (f *rootFlags) tracer() (*rndrmk.WriteTracer, error) {
	tr := rndrmk.DefaultTracer()
	if err := tr.ParseLogFlag(f.trace); err != nil {
		return nil, err
	}
	if f.debug {
		tr.Log = mkcore.TraceWarn | mkcore.TraceInfo | mkcore.TraceDebug
	}
	return tr, nil
}

func main() {
	configureLogging(false)
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorMsg("%v", err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	root := &cobra.Command{
		Use:           "rndrmk",
		Short:         "Derive the platform specific build of an OPENRNDR project",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(flags.debug)
			configureColor(flags.noColor)
			slog.Debug("rndrmk", "dir", flags.dir, "config", flags.config, "catalog", flags.catalog)
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&flags.dir, "dir", "C", ".", "Project directory")
	pf.StringVar(&flags.config, "config", "", "Project file relative to the project directory (default rndrmk.hcl)")
	pf.StringVar(&flags.catalog, "catalog", "", "Version catalog relative to the project directory (default gradle/libs.versions.toml)")
	pf.StringVar(&flags.trace, "trace", "", "Build trace level: off, warn, info or debug")
	pf.BoolVar(&flags.debug, "debug", false, "Enable debug logging")
	pf.BoolVar(&flags.noColor, "no-color", false, "Disable styled output")

	root.AddCommand(platformCmd(&flags))
	root.AddCommand(depsCmd(&flags))
	root.AddCommand(buildCmd(&flags))
	return root
}

func configureLogging(debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
}
