package rndrmk

import (
	"errors"
	"fmt"
	"hash"

	"git.fractalqb.de/fractalqb/rndrmk/mkcore"
)

type (
	Env     = mkcore.Env
	Project = mkcore.Project
	Goal    = mkcore.Goal
	Action  = mkcore.Action
	Trace   = mkcore.Trace

	Abstract = mkcore.Abstract
)

func DefaultEnv(tr *Trace) *Env { return mkcore.DefaultEnv(tr) }

func NewProject(dir string) *Project { return mkcore.NewProject(dir) }

// Edit calls do with wrappers of [mkcore] types that allow easy editing of
// project definitions. Edit recovers from any panic and returns it as an error,
// so the idiomatic error handling within do can be skipped.
func Edit(prj *Project, do func(ProjectEd)) (err error) {
	prj.Lock()
	defer func() {
		prj.Unlock()
		if p := recover(); p != nil {
			switch p := p.(type) {
			case error:
				err = p
			case string:
				err = errors.New(p)
			default:
				err = fmt.Errorf("panic: %+v", p)
			}
		}
	}()
	do(ProjectEd{prj})
	return
}

const (
	UpdAllActions  mkcore.UpdateMode = 0
	UpdSomeActions mkcore.UpdateMode = 1
	UpdAnyAction   mkcore.UpdateMode = 2
	UpdOneAction   mkcore.UpdateMode = 3

	UpdUnordered mkcore.UpdateMode = 4
)

// Goals is meant to be used when implementing [mkcore.Operation] to select and
// check linked goals gs.
//
// See also [Tangible], [AType]
func Goals(gs []*Goal, exclusive bool, matchAll ...func(*Goal) bool) ([]*Goal, error) {
	mLen1 := len(matchAll) - 1
	res := make([]*Goal, 0, len(gs))
NEXT_GOAL:
	for gi, g := range gs {
		for pi, pred := range matchAll {
			if !pred(g) {
				if exclusive && pi == mLen1 {
					return nil, fmt.Errorf("illegal goal %d: %s", gi, g.Name())
				}
				continue NEXT_GOAL
			}
		}
		res = append(res, g)
	}
	return res, nil
}

func Tangible(g *Goal) bool { return !g.IsAbstract() }

func AType[A mkcore.Artefact](g *Goal) bool {
	_, ok := g.Artefact.(A)
	return ok
}

func OpFunc(desc string, f func(*Trace, *Action, *Env) error) mkcore.Operation {
	return funcOp{desc: desc, f: f}
}

type funcOp struct {
	desc string
	f    func(*Trace, *Action, *Env) error
}

func (fo funcOp) Describe(*Action, *Env) string {
	return fo.desc
}

func (fo funcOp) Do(tr *Trace, a *Action, env *Env) error {
	tr.Debug("call `function`", `function`, fo.desc)
	return fo.f(tr, a, env)
}

func (fo funcOp) WriteHash(hash.Hash, *Action, *Env) (bool, error) {
	return false, nil
}

func mustEd(err error) {
	if err != nil {
		panic(err)
	}
}

func mustRet[T any](v T, err error) T {
	mustEd(err)
	return v
}
