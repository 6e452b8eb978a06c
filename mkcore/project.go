package mkcore

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"
)

type BuildID = uint64

type Project struct {
	Dir string

	sync.Mutex

	goals     map[string]*Goal
	actions   []*Action
	lastBuild BuildID
}

func NewProject(dir string) *Project {
	if dir == "" {
		dir, _ = os.Getwd()
	}
	return &Project{
		Dir:   dir,
		goals: make(map[string]*Goal),
	}
}

// Goal returns the goal for artefact atf. If prj has no goal with the name
// of atf yet, a new goal is added.
func (prj *Project) Goal(atf Artefact) (*Goal, error) {
	if atf == nil {
		return nil, fmt.Errorf("nil artefact for goal in project %s", prj)
	}
	name := atf.Name(prj)
	if name == "" {
		return nil, fmt.Errorf("artefact %T without name in project %s", atf, prj)
	}
	if g := prj.goals[name]; g != nil {
		return g, nil
	}
	g := &Goal{
		Artefact: atf,
		prj:      prj,
	}
	prj.goals[name] = g
	return g, nil
}

// Goals returns all goals of prj sorted by name.
func (prj *Project) Goals() []*Goal {
	res := make([]*Goal, 0, len(prj.goals))
	for _, g := range prj.goals {
		res = append(res, g)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name() < res[j].Name() })
	return res
}

func (prj *Project) FindGoal(name string) *Goal { return prj.goals[name] }

func (prj *Project) Actions() []*Action { return slices.Clone(prj.actions) }

func (prj *Project) Name() string { return prj.String() }

func (prj *Project) String() string {
	tmp := prj.Dir
	if tmp == "" || tmp == "." {
		tmp, _ = filepath.Abs(tmp)
	}
	return filepath.Base(tmp)
}

// Build returns the ID of the current or last build of prj.
func (prj *Project) Build() BuildID { return prj.lastBuild }

// RelPath returns p relative to the project directory. Relative paths are
// considered to already be relative to the project.
func (prj *Project) RelPath(p string) (string, error) {
	if !filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	dir, err := filepath.Abs(prj.Dir)
	if err != nil {
		return "", err
	}
	return filepath.Rel(dir, p)
}

func (prj *Project) AbsPath(p string) (string, error) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	return filepath.Abs(filepath.Join(prj.Dir, p))
}

// Leafs returns the goals that are no premise of any action, sorted by name.
func (prj *Project) Leafs() (ls []*Goal) {
	for _, g := range prj.Goals() {
		if len(g.premiseOf) == 0 {
			ls = append(ls, g)
		}
	}
	return ls
}

// Roots returns the goals that are no result of any action, sorted by name.
func (prj *Project) Roots() (rs []*Goal) {
	for _, g := range prj.Goals() {
		if len(g.resultOf) == 0 {
			rs = append(rs, g)
		}
	}
	return rs
}

// NewAction creates a new [Action] in project prj. There must be at least one
// result. All premises and results must belong to the same project prj.
func (prj *Project) NewAction(premises, results []*Goal, op Operation) (*Action, error) {
	if len(results) == 0 {
		desc := "implicit"
		if op != nil {
			desc = op.Describe(nil, nil)
		}
		return nil, fmt.Errorf("creating action %s without result", desc)
	}
	if err := prj.consistentPrj(premises, results); err != nil {
		return nil, err
	}
	for _, r := range results {
		if slices.Contains(premises, r) {
			return nil, fmt.Errorf("goal %s is premise of itself", r)
		}
	}
	a := &Action{
		Op:       op,
		prj:      prj,
		premises: premises,
		results:  results,
	}
	for _, p := range premises {
		p.premiseOf = append(p.premiseOf, a)
	}
	for _, r := range results {
		r.resultOf = append(r.resultOf, a)
	}
	prj.actions = append(prj.actions, a)
	return a, nil
}

// LockBuild locks prj and starts a new build.
func (prj *Project) LockBuild() BuildID {
	prj.Lock()
	prj.lastBuild++
	return prj.lastBuild
}

func (prj *Project) consistentPrj(premises, results []*Goal) error {
	for _, g := range premises {
		if p := g.Project(); p != prj {
			return fmt.Errorf("premise '%s' not in project '%s'", g, prj)
		}
	}
	for _, g := range results {
		if p := g.Project(); p != prj {
			return fmt.Errorf("result '%s' not in project '%s'", g, prj)
		}
	}
	return nil
}
