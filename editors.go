package rndrmk

import (
	"git.fractalqb.de/fractalqb/rndrmk/mkcore"
)

// ProjectEd is used with [Edit].
type ProjectEd struct{ p *Project }

func (ed ProjectEd) Project() *Project { return ed.p }

func (ed ProjectEd) NewAction(premises, results []GoalEd, op mkcore.Operation) ActionEd {
	prems, ress := goals(premises), goals(results)
	return ActionEd{mustRet(ed.p.NewAction(prems, ress, op))}
}

func (ed ProjectEd) Dir() string { return ed.p.Dir }

func (ed ProjectEd) Goal(atf mkcore.Artefact) GoalEd {
	return GoalEd{mustRet(ed.p.Goal(atf))}
}

func (ed ProjectEd) RelPath(p string) string {
	return mustRet(ed.p.RelPath(p))
}

// GoalEd is used with [Edit].
type GoalEd struct{ g *Goal }

func (ed GoalEd) Goal() *Goal { return ed.g }

func (ed GoalEd) Project() ProjectEd { return ProjectEd{ed.g.Project()} }

func (ed GoalEd) UpdateMode() mkcore.UpdateMode     { return ed.g.UpdateMode }
func (ed GoalEd) SetUpdateMode(m mkcore.UpdateMode) { ed.g.UpdateMode = m }

func (ed GoalEd) SetRemovable(r bool) GoalEd {
	ed.g.Removable = r
	return ed
}

func (ed GoalEd) Artefact() mkcore.Artefact { return ed.g.Artefact }

func (ed GoalEd) IsAbstract() bool { return ed.g.IsAbstract() }

func (result GoalEd) By(op mkcore.Operation, premises ...GoalEd) GoalEd {
	prj := result.g.Project()
	mustRet(prj.NewAction(goals(premises), []*Goal{result.g}, op))
	return result
}

func (ed GoalEd) ImpliedBy(premises ...GoalEd) GoalEd {
	prj := ed.g.Project()
	mustRet(prj.NewAction(goals(premises), []*Goal{ed.g}, nil))
	return ed
}

func goals(gs []GoalEd) []*Goal {
	var gls []*Goal
	if l := len(gs); l > 0 {
		gls = make([]*Goal, l)
		for i, p := range gs {
			gls[i] = p.g
		}
	}
	return gls
}

// ActionEd is used with [Edit].
type ActionEd struct{ a *Action }

func (ed ActionEd) Action() *Action { return ed.a }

func (ed ActionEd) Project() ProjectEd {
	return ProjectEd{ed.a.Project()}
}
