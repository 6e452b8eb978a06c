package mkcore

import (
	"errors"
	"fmt"
	"time"
)

// Builder updates the goals of a project whose premises changed.
type Builder struct {
	updater
}

func NewBuilder(tr *Trace, env *Env) (*Builder, error) {
	if tr == nil {
		return nil, errors.New("no trace for new builder")
	}
	return &Builder{
		updater: updater{
			trace: tr,
			env:   env,
		},
	}, nil
}

// Env returns the environment the builder runs actions in. It is available
// after the first build and carries the tags set by actions.
func (bd *Builder) Env() *Env { return bd.env }

// Project builds all leafs in prj.
func (bd *Builder) Project(prj *Project) error {
	bd.bid = prj.LockBuild()
	defer prj.Unlock()
	if bd.env == nil {
		bd.env = DefaultEnv(bd.trace)
	}
	start := time.Now()
	tr := bd.trace.pushProject(prj)
	tr.startProject(prj, "building")
	for _, leaf := range prj.Leafs() {
		if err := bd.buildGoal(tr, leaf); err != nil {
			tr.doneProject(prj, "building", time.Since(start))
			return err
		}
	}
	tr.doneProject(prj, "building", time.Since(start))
	return nil
}

// Goals builds the goals gs which all must belong to the same project.
func (bd *Builder) Goals(gs ...*Goal) error {
	if len(gs) == 0 {
		return nil
	}
	prj := gs[0].Project()
	for _, g := range gs[1:] {
		if g.Project() != prj {
			return fmt.Errorf("goal %s not in project %s", g, prj)
		}
	}
	bd.bid = prj.LockBuild()
	defer prj.Unlock()
	if bd.env == nil {
		bd.env = DefaultEnv(bd.trace)
	}
	start := time.Now()
	tr := bd.trace.pushProject(prj)
	tr.startProject(prj, "building")
	defer func() { tr.doneProject(prj, "building", time.Since(start)) }()
	for _, g := range gs {
		if err := bd.buildGoal(tr, g); err != nil {
			return err
		}
	}
	return nil
}

func (bd *Builder) NamedGoals(prj *Project, names ...string) error {
	gs := make([]*Goal, 0, len(names))
	for _, n := range names {
		g := prj.FindGoal(n)
		if g == nil {
			return fmt.Errorf("no goal named '%s' in project '%s'", n, prj)
		}
		gs = append(gs, g)
	}
	return bd.Goals(gs...)
}

func (bd *Builder) buildGoal(tr *Trace, g *Goal) error {
	if g.LockBuild() == 0 {
		return nil
	}
	defer g.Unlock()

	tr = tr.pushGoal(g)
	tr.checkGoal(g)
	if len(g.ResultOf()) == 0 {
		return nil
	}
	for _, act := range g.ResultOf() {
		for _, pre := range act.Premises() {
			if err := bd.buildGoal(tr, pre); err != nil {
				return err
			}
		}
	}
	_, err := bd.updateGoal(tr, g)
	return err
}
