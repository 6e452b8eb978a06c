package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"git.fractalqb.de/fractalqb/rndrmk"
	"git.fractalqb.de/fractalqb/rndrmk/mkcore"
	"git.fractalqb.de/fractalqb/rndrmk/platform"
)

const targetPlatformUsage = "Override the target platform: "

func overrideFlag(cmd *cobra.Command, s *string) {
	ids := make([]string, 0, len(platform.Overrides()))
	for _, id := range platform.Overrides() {
		ids = append(ids, string(id))
	}
	cmd.Flags().StringVarP(s, "target-platform", "P", "",
		targetPlatformUsage+strings.Join(ids, ", "),
	)
}

func platformCmd(flags *rootFlags) *cobra.Command {
	var override string
	cmd := &cobra.Command{
		Use:   "platform",
		Short: "Print the resolved target platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := flags.setup()
			s.Override = override
			id, err := s.Platform(rndrmk.DefaultEnv(nil))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	overrideFlag(cmd, &override)
	return cmd
}

func depsCmd(flags *rootFlags) *cobra.Command {
	var override, format string
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Print the dependency declaration for the target platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := flags.setup()
			s.Override = override
			id, err := s.Platform(rndrmk.DefaultEnv(nil))
			if err != nil {
				return err
			}
			decl, err := s.Declaration(id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch format {
			case "text", "":
				_, err = fmt.Fprint(out, declarationText(decl))
				return err
			case "yaml":
				return rndrmk.FormatLock.Write(out, decl)
			case "gradle":
				return rndrmk.FormatGradle.Write(out, decl)
			case "pom":
				return rndrmk.FormatPOM.Write(out, decl)
			}
			return fmt.Errorf("illegal output format '%s'", format)
		},
	}
	overrideFlag(cmd, &override)
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, yaml, gradle or pom")
	return cmd
}

func buildCmd(flags *rootFlags) *cobra.Command {
	var (
		override           string
		dot, clean, dryrun bool
	)
	cmd := &cobra.Command{
		Use:   "build [goal…]",
		Short: "Bring the derived build files up-to-date",
		Long: "Builds the given goals of the project, by default all. Goals are " +
			rndrmk.GoalAll + ", " + rndrmk.GoalPlatform + " and the files in build/.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := flags.setup()
			s.Override = override
			prj, err := rndrmk.Configure(s)
			if err != nil {
				return err
			}
			if dot {
				_, err := prj.WriteDot(cmd.OutOrStdout(), "LR")
				return err
			}
			tracer, err := flags.tracer()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			tr := mkcore.NewTrace(ctx, tracer)
			if clean {
				return mkcore.Clean(prj, dryrun, tr)
			}
			bd, err := mkcore.NewBuilder(tr, nil)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				err = bd.Project(prj)
			} else {
				err = bd.NamedGoals(prj, args...)
			}
			if err != nil {
				return err
			}
			if id, ok := bd.Env().Tag(mkcore.TagPlatform); ok {
				fmt.Fprintln(os.Stderr, successMsg("%s up-to-date for %s", prj, accent(id)))
			}
			return nil
		},
	}
	overrideFlag(cmd, &override)
	cmd.Flags().BoolVar(&dot, "dot", false, "Write the build graph in graphviz format and exit")
	cmd.Flags().BoolVar(&clean, "clean", false, "Remove generated files")
	cmd.Flags().BoolVarP(&dryrun, "dry-run", "n", false, "With --clean, only report what would be removed")
	return cmd
}
