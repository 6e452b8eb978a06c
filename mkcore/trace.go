package mkcore

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// Tracer receives the events of builds and cleanups.
type Tracer interface {
	Debug(t *Trace, msg string, args ...any)
	Info(t *Trace, msg string, args ...any)
	Warn(t *Trace, msg string, args ...any)

	StartProject(t *Trace, p *Project, activity string)
	DoneProject(t *Trace, p *Project, activity string, dt time.Duration)

	CheckGoal(t *Trace, g *Goal)
	GoalUpToDate(t *Trace, g *Goal)
	GoalNeedsActions(t *Trace, g *Goal, n int)

	// Reasons for an action to be run
	ScheduleResTimeZero(t *Trace, a *Action, res *Goal)
	ScheduleNotPremises(t *Trace, a *Action, res *Goal)
	SchedulePreTimeZero(t *Trace, a *Action, res, pre *Goal)
	ScheduleOutdated(t *Trace, a *Action, res, pre *Goal)

	RunAction(*Trace, *Action)
	RunImplicitAction(*Trace, *Action)

	RemoveArtefact(*Trace, *Goal)
}

// TraceLog selects the message levels a tracer writes.
type TraceLog int

const (
	TraceWarn TraceLog = (1 << iota)
	TraceInfo
	TraceDebug
)

// Trace is the chain of projects and goals a build or cleanup is working on.
// Each link has an ID that is unique within its root trace.
type Trace struct {
	root *traceRoot
	up   *Trace
	goal bool
	id   uint64
}

func NewTrace(ctx context.Context, t Tracer) *Trace {
	return &Trace{root: &traceRoot{ctx: ctx, tr: t}}
}

func (t *Trace) Ctx() context.Context { return t.root.ctx }

func (t *Trace) Debug(msg string, args ...any) { t.root.tr.Debug(t, msg, args...) }
func (t *Trace) Info(msg string, args ...any)  { t.root.tr.Info(t, msg, args...) }
func (t *Trace) Warn(msg string, args ...any)  { t.root.tr.Warn(t, msg, args...) }

// Build returns the ID of the running build or 0 outside of builds.
func (t *Trace) Build() BuildID {
	if t.root == nil || t.root.prj == nil {
		return 0
	}
	return t.root.prj.Build()
}

// TopTag is "{id}" for a project, "[id]" for a goal and empty for the root.
func (t *Trace) TopTag() string {
	switch {
	case t.up == nil:
		return ""
	case t.goal:
		return fmt.Sprintf("[%d]", t.id)
	}
	return fmt.Sprintf("{%d}", t.id)
}

// Path lists the tags from the root down to t.
func (t *Trace) Path() string {
	var tags []string
	for ; t != nil; t = t.up {
		tags = append(tags, t.TopTag())
	}
	var sb strings.Builder
	sb.WriteByte('<')
	for i := len(tags) - 1; i >= 0; i-- {
		sb.WriteString(tags[i])
	}
	sb.WriteByte('>')
	return sb.String()
}

func (t *Trace) String() string {
	if b := t.Build(); b != 0 {
		return fmt.Sprintf("%d@%s", b, t.Path())
	}
	return t.Path()
}

func (t *Trace) pushProject(*Project) *Trace { return t.push(false) }
func (t *Trace) pushGoal(*Goal) *Trace       { return t.push(true) }

func (t *Trace) push(goal bool) *Trace {
	return &Trace{
		root: t.root,
		up:   t,
		goal: goal,
		id:   t.root.idSeq.Add(1),
	}
}

func (t *Trace) startProject(p *Project, activity string) {
	t.root.prj = p
	t.root.tr.StartProject(t, p, activity)
}

func (t *Trace) doneProject(p *Project, activity string, dt time.Duration) {
	t.root.tr.DoneProject(t, p, activity, dt)
	t.root.prj = nil
}

func (t *Trace) checkGoal(g *Goal)               { t.root.tr.CheckGoal(t, g) }
func (t *Trace) goalUpToDate(g *Goal)            { t.root.tr.GoalUpToDate(t, g) }
func (t *Trace) goalNeedsActions(g *Goal, n int) { t.root.tr.GoalNeedsActions(t, g, n) }

func (t *Trace) scheduleResTimeZero(a *Action, res *Goal) {
	t.root.tr.ScheduleResTimeZero(t, a, res)
}

func (t *Trace) scheduleNotPremises(a *Action, res *Goal) {
	t.root.tr.ScheduleNotPremises(t, a, res)
}

func (t *Trace) schedulePreTimeZero(a *Action, res, pre *Goal) {
	t.root.tr.SchedulePreTimeZero(t, a, res, pre)
}

func (t *Trace) scheduleOutdated(a *Action, res, pre *Goal) {
	t.root.tr.ScheduleOutdated(t, a, res, pre)
}

func (t *Trace) runAction(a *Action)         { t.root.tr.RunAction(t, a) }
func (t *Trace) runImplicitAction(a *Action) { t.root.tr.RunImplicitAction(t, a) }
func (t *Trace) removeArtefact(g *Goal)      { t.root.tr.RemoveArtefact(t, g) }

type traceRoot struct {
	ctx   context.Context
	tr    Tracer
	prj   *Project
	idSeq atomic.Uint64
}
