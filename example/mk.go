// This is an example build script that extends the standard rndrmk project of
// an OPENRNDR sketch with a goal of its own.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"git.fractalqb.de/fractalqb/rndrmk"
	"git.fractalqb.de/fractalqb/rndrmk/mkcore"
	"git.fractalqb.de/fractalqb/rndrmk/mkfs"
)

var (
	tracer = rndrmk.DefaultTracer()

	clean, dryrun bool
	writeDot      bool
)

func flags(s *rndrmk.Setup) {
	flag.BoolVar(&writeDot, "dot", writeDot, "Write graphviz file to stdout and exit")
	flag.BoolVar(&clean, "clean", clean, "Clean project")
	flag.BoolVar(&dryrun, "n", dryrun, "Dryrun")
	flag.StringVar(&s.Override, "target-platform", s.Override, "Override target platform")
	fTrace := flag.String("trace", "", "Set trace level")
	flag.Parse()

	if err := tracer.ParseLogFlag(*fTrace); err != nil {
		log.Fatal(err)
	}
}

// natives lists the platform specific artifacts, one per line.
func natives(s *rndrmk.Setup) mkcore.Operation {
	return rndrmk.OpFunc("list natives", func(tr *rndrmk.Trace, a *rndrmk.Action, env *rndrmk.Env) error {
		id, err := s.Platform(env)
		if err != nil {
			return err
		}
		decl, err := s.Declaration(id)
		if err != nil {
			return err
		}
		out := a.Result(0).Artefact.(mkfs.File)
		w, err := out.Create(a.Project(), 0777)
		if err != nil {
			return err
		}
		defer w.Close()
		for _, dep := range decl.Natives() {
			if _, err := fmt.Fprintln(w, dep.Coordinate); err != nil {
				return err
			}
		}
		return nil
	})
}

func main() {
	// The project in current working dir
	setup := rndrmk.NewSetup("")
	flags(setup)

	prj, err := rndrmk.Configure(setup)
	if err != nil {
		log.Fatal("configure project:", err)
	}
	err = rndrmk.Edit(prj, func(prj rndrmk.ProjectEd) {
		lock := prj.Goal(mkfs.File(rndrmk.LockFile))
		nat := prj.Goal(mkfs.File("build/natives.txt")).
			SetRemovable(true).
			By(natives(setup), lock)
		prj.Goal(rndrmk.Abstract(rndrmk.GoalAll)).ImpliedBy(nat)
	})
	if err != nil {
		log.Fatal("editing project:", err)
	}
	tr := mkcore.NewTrace(context.Background(), tracer)

	if clean {
		if err := mkcore.Clean(prj, dryrun, tr); err != nil {
			log.Fatal(err)
		}
		return
	}

	if writeDot {
		if _, err := prj.WriteDot(os.Stdout, "LR"); err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
		return
	}

	build, err := mkcore.NewBuilder(tr, nil)
	if err != nil {
		log.Fatal(err)
	}
	if flag.NArg() == 0 {
		err = build.Project(prj)
	} else {
		err = build.NamedGoals(prj, flag.Args()...)
	}
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
