package rndrmk

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"git.fractalqb.de/fractalqb/rndrmk/mkcore"
	"git.fractalqb.de/fractalqb/sllm/v3"
)

// WriteTracer writes human readable trace lines to W. Messages are sllm
// templates with backtick-quoted argument names, e.g.
//
//	tr.Info("resolved `platform`", `platform`, id)
type WriteTracer struct {
	W   io.Writer
	Log mkcore.TraceLog
}

var _ mkcore.Tracer = (*WriteTracer)(nil)

func DefaultTracer() *WriteTracer {
	return &WriteTracer{W: os.Stderr, Log: mkcore.TraceWarn}
}

// ParseLogFlag sets the log level from one of off, warn, info or debug. The
// initial letter is accepted as abbreviation. The empty string keeps the
// current level.
func (tr *WriteTracer) ParseLogFlag(f string) error {
	switch f {
	case "":
		return nil
	case "off":
		tr.Log = 0
	case "warn", "w":
		tr.Log = mkcore.TraceWarn
	case "info", "i":
		tr.Log = mkcore.TraceWarn | mkcore.TraceInfo
	case "debug", "d":
		tr.Log = mkcore.TraceWarn | mkcore.TraceInfo | mkcore.TraceDebug
	default:
		return fmt.Errorf("write tracer: illegal log flag '%s'", f)
	}
	return nil
}

func (tr WriteTracer) Debug(t *mkcore.Trace, msg string, args ...any) {
	if tr.Log&mkcore.TraceDebug != 0 {
		tr.msg(t, "DEBUG", msg, args)
	}
}

func (tr WriteTracer) Info(t *mkcore.Trace, msg string, args ...any) {
	if tr.Log&(mkcore.TraceInfo|mkcore.TraceDebug) != 0 {
		tr.msg(t, "INFO ", msg, args)
	}
}

func (tr WriteTracer) Warn(t *mkcore.Trace, msg string, args ...any) {
	if tr.logGoals() {
		tr.msg(t, "WARN ", msg, args)
	}
}

func (tr WriteTracer) msg(t *mkcore.Trace, level, msg string, args []any) {
	fmt.Fprintf(tr.W, "%d@%s\t  %s ", t.Build(), t.TopTag(), level)
	sllm.Fprint(tr.W, msg, sllmArgs(args).append)
	fmt.Fprintln(tr.W)
}

func (tr WriteTracer) StartProject(t *mkcore.Trace, p *mkcore.Project, activity string) {
	if tr.Log == 0 {
		return
	}
	fmt.Fprintf(tr.W, "%d@%s\t{ %s project '%s' in %s\n",
		t.Build(),
		t.TopTag(),
		activity,
		p,
		p.Dir,
	)
}

func (tr WriteTracer) DoneProject(t *mkcore.Trace, p *mkcore.Project, activity string, dt time.Duration) {
	if tr.Log == 0 {
		return
	}
	fmt.Fprintf(tr.W, "%d@%s\t} %s project '%s' took %s\n",
		t.Build(),
		t.TopTag(),
		activity,
		p,
		dt,
	)
}

func (tr WriteTracer) logGoals() bool {
	return tr.Log&(mkcore.TraceWarn|mkcore.TraceInfo|mkcore.TraceDebug) != 0
}

func (tr WriteTracer) logActions() bool {
	return tr.Log&(mkcore.TraceInfo|mkcore.TraceDebug) != 0
}

func (tr WriteTracer) RunAction(t *mkcore.Trace, a *mkcore.Action) {
	if tr.logActions() {
		fmt.Fprintf(tr.W, "%d@%s\t  run action (%s)\n", t.Build(), t.TopTag(), a)
	}
}

func (tr WriteTracer) RunImplicitAction(t *mkcore.Trace, _ *mkcore.Action) {
	if tr.Log&mkcore.TraceDebug != 0 {
		fmt.Fprintf(tr.W, "%d@%s\t  implicit action\n", t.Build(), t.TopTag())
	}
}

func (tr WriteTracer) ScheduleResTimeZero(t *mkcore.Trace, a *mkcore.Action, res *mkcore.Goal) {
	if tr.logActions() {
		fmt.Fprintf(tr.W, "%d@%s\t  schedule (%s) for result %s without state time\n",
			t.Build(),
			t.TopTag(),
			a,
			res,
		)
	}
}

func (tr WriteTracer) ScheduleNotPremises(t *mkcore.Trace, a *mkcore.Action, res *mkcore.Goal) {
	if tr.logActions() {
		fmt.Fprintf(tr.W, "%d@%s\t  schedule (%s) without premise for result %s\n",
			t.Build(),
			t.TopTag(),
			a,
			res,
		)
	}
}

func (tr WriteTracer) SchedulePreTimeZero(t *mkcore.Trace, a *mkcore.Action, res, pre *mkcore.Goal) {
	if tr.logActions() {
		fmt.Fprintf(tr.W, "%d@%s\t  schedule (%s) for result %s, premise %s has no state time\n",
			t.Build(),
			t.TopTag(),
			a,
			res,
			pre,
		)
	}
}

func (tr WriteTracer) ScheduleOutdated(t *mkcore.Trace, a *mkcore.Action, res, pre *mkcore.Goal) {
	if tr.logActions() {
		fmt.Fprintf(tr.W, "%d@%s\t  schedule (%s) for result %s, premise %s is newer\n",
			t.Build(),
			t.TopTag(),
			a,
			res,
			pre,
		)
	}
}

func (tr WriteTracer) CheckGoal(t *mkcore.Trace, g *mkcore.Goal) {
	if tr.Log&mkcore.TraceDebug != 0 {
		fmt.Fprintf(tr.W, "%d@%s\t? %s %s\n", t.Build(), t.TopTag(), g, t.Path())
	}
}

func (tr WriteTracer) GoalUpToDate(t *mkcore.Trace, g *mkcore.Goal) {
	if tr.logActions() {
		fmt.Fprintf(tr.W, "%d@%s\t. %s is up-to-date\n", t.Build(), t.TopTag(), g)
	}
}

func (tr WriteTracer) GoalNeedsActions(t *mkcore.Trace, g *mkcore.Goal, n int) {
	if tr.logGoals() {
		fmt.Fprintf(tr.W, "%d@%s\t! %s needs %d actions\n", t.Build(), t.TopTag(), g, n)
	}
}

func (tr WriteTracer) RemoveArtefact(t *mkcore.Trace, g *mkcore.Goal) {
	if tr.logGoals() {
		fmt.Fprintf(tr.W, "%d@%s\t! remove artefact %s\n", t.Build(), t.TopTag(), g)
	}
}

type sllmArgs []any

func (as sllmArgs) append(buf []byte, _ int, n string) ([]byte, error) {
	for len(as) > 0 {
		switch k := as[0].(type) {
		case string:
			if len(as) == 1 {
				return buf, fmt.Errorf("no value for key '%s'", n)
			}
			if k == n {
				return sllm.AppendArg(buf, as[1]), nil
			}
			as = as[2:]
		case slog.Attr:
			if k.Key == n {
				return sllm.AppendArg(buf, k.Value), nil
			}
			as = as[1:]
		default:
			return buf, fmt.Errorf("illegal key type %T", k)
		}
	}
	return buf, fmt.Errorf("no key '%s'", n)
}
