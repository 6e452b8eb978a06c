package rndrmk

import (
	"testing"
	"time"

	"git.fractalqb.de/fractalqb/rndrmk/mkcore"
)

// TestTracer logs all trace events to a test's log.
type TestTracer struct{ t testing.TB }

var _ mkcore.Tracer = TestTracer{}

func NewTestTracer(t testing.TB) TestTracer { return TestTracer{t} }

func (tr TestTracer) Debug(t *mkcore.Trace, msg string, args ...any) {
	tr.t.Log(append([]any{t.String(), "rndrmk-DEBUG:", msg}, args...)...)
}

func (tr TestTracer) Info(t *mkcore.Trace, msg string, args ...any) {
	tr.t.Log(append([]any{t.String(), "rndrmk-INFO:", msg}, args...)...)
}

func (tr TestTracer) Warn(t *mkcore.Trace, msg string, args ...any) {
	tr.t.Log(append([]any{t.String(), "rndrmk-WARN:", msg}, args...)...)
}

func (tr TestTracer) StartProject(t *mkcore.Trace, p *mkcore.Project, activity string) {
	tr.t.Logf("rndrmk-StartProject: %s %s", p, activity)
}

func (tr TestTracer) DoneProject(t *mkcore.Trace, p *mkcore.Project, activity string, dt time.Duration) {
	tr.t.Logf("rndrmk-DoneProject: %s %s %s", p, activity, dt)
}

func (tr TestTracer) RunAction(_ *mkcore.Trace, a *mkcore.Action) {
	tr.t.Logf("rndrmk-RunAction: %s", a)
}

func (tr TestTracer) RunImplicitAction(_ *mkcore.Trace, a *mkcore.Action) {
	tr.t.Logf("rndrmk-RunImplicitAction: %s", a)
}

func (tr TestTracer) ScheduleResTimeZero(t *mkcore.Trace, a *mkcore.Action, res *mkcore.Goal) {
	tr.t.Logf("rndrmk-ScheduleResTimeZero: %s:> %s", a, res)
}

func (tr TestTracer) ScheduleNotPremises(t *mkcore.Trace, a *mkcore.Action, res *mkcore.Goal) {
	tr.t.Logf("rndrmk-ScheduleNotPremises: %s:> %s", a, res)
}

func (tr TestTracer) SchedulePreTimeZero(t *mkcore.Trace, a *mkcore.Action, res, pre *mkcore.Goal) {
	tr.t.Logf("rndrmk-SchedulePreTimeZero: %s: %s > %s", a, pre, res)
}

func (tr TestTracer) ScheduleOutdated(t *mkcore.Trace, a *mkcore.Action, res, pre *mkcore.Goal) {
	tr.t.Logf("rndrmk-ScheduleOutdated: %s: %s > %s", a, pre, res)
}

func (tr TestTracer) CheckGoal(t *mkcore.Trace, g *mkcore.Goal) {
	tr.t.Logf("rndrmk-CheckGoal: %s", g)
}

func (tr TestTracer) GoalUpToDate(t *mkcore.Trace, g *mkcore.Goal) {
	tr.t.Logf("rndrmk-GoalUpToDate: %s", g)
}

func (tr TestTracer) GoalNeedsActions(t *mkcore.Trace, g *mkcore.Goal, n int) {
	tr.t.Logf("rndrmk-GoalNeedsActions: %s %d", g, n)
}

func (tr TestTracer) RemoveArtefact(t *mkcore.Trace, g *mkcore.Goal) {
	tr.t.Logf("rndrmk-RemoveArtefact: %s", g)
}
