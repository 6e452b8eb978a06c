package mkcore

import (
	"fmt"
	"math"
	"reflect"
	"sync"
	"time"

	"github.com/bits-and-blooms/bitset"
)

// Artefact represents the tangible outcome of a [Goal] being reached. A special
// case is the [Abstract] artefact.
type Artefact interface {
	// Name returns the name of the artefact that must be unique in the Project.
	Name(in *Project) string

	// StateAt returns the time at which the artefact reached its current state.
	// If this cannot be provided, the zero Time is returned.
	StateAt(in *Project) time.Time
}

// RemovableArtefact can be removed by [Clean].
type RemovableArtefact interface {
	Artefact
	Exists(in *Project) (bool, error)
	Remove(in *Project) error
}

// Abstract goals have no state and are always updated. They name a set of
// other goals, e.g. "all" for every output of a project.
type Abstract string

var _ Artefact = Abstract("")

func (a Abstract) Name(*Project) string { return string(a) }

func (a Abstract) StateAt(*Project) time.Time { return time.Time{} }

type UpdateMode uint

const (
	// All actions must be run to reach the goal.
	UpdAllActions UpdateMode = 0

	// All actions with changed state must be run to reach the goal.
	UpdSomeActions UpdateMode = 1

	// Only one of the actions with changed state has to be run to reach the
	// goal.
	UpdAnyAction UpdateMode = 2

	// Only one action must have changed state. Then the goal is reached by
	// running that action.
	UpdOneAction UpdateMode = 3

	// Actions of an unordered goal may run in any order. Otherwise, the
	// actions must be run one after the other in the specified order.
	UpdUnordered UpdateMode = 4

	updActions UpdateMode = 3
)

func (m UpdateMode) Actions() UpdateMode { return m & updActions }
func (m UpdateMode) Ordered() bool       { return (m & UpdUnordered) == 0 }

// A Goal is something you want to achieve in your [Project]. Each goal is
// associated with an [Artefact] that is considered available and up-to-date
// when the goal is reached.
//
// A goal can be the result of several actions. It then depends on the goal's
// [UpdateMode] whether and how the actions contribute to the goal. A goal can
// also be the premise of actions. Such dependent actions are not run before
// the goal is reached.
type Goal struct {
	UpdateMode UpdateMode
	Artefact   Artefact
	Removable  bool

	prj       *Project
	resultOf  []*Action
	premiseOf []*Action

	sync.Mutex
	lastBID BuildID
}

func (g *Goal) Project() *Project { return g.prj }

func (g *Goal) Name() string { return g.Artefact.Name(g.Project()) }

// ResultOf returns the actions that result in this goal.
func (g *Goal) ResultOf() []*Action { return g.resultOf }

// PreAction returns [Goal.ResultOf]()[i]
func (g *Goal) PreAction(i int) *Action { return g.resultOf[i] }

// PremiseOf returns the actions that depend on g.
func (g *Goal) PremiseOf() []*Action { return g.premiseOf }

func (g *Goal) IsAbstract() bool {
	_, ok := g.Artefact.(Abstract)
	return ok
}

func (g *Goal) String() string {
	tn := reflect.Indirect(reflect.ValueOf(g.Artefact)).Type().Name()
	return fmt.Sprintf("[%s]%s", g.Name(), tn)
}

// CheckPreTimes returns the indices of the actions in [Goal.ResultOf] that
// need to be run because g is outdated with respect to their premises.
func (g *Goal) CheckPreTimes(tr *Trace) (chgs []int, err error) {
	gaTS := g.Artefact.StateAt(g.Project())
	for actIdx, act := range g.ResultOf() {
		if err := tr.Ctx().Err(); err != nil {
			return nil, err
		}
		if gaTS.IsZero() {
			tr.scheduleResTimeZero(act, g)
			chgs = append(chgs, actIdx)
			continue
		}
		if len(act.Premises()) == 0 {
			tr.scheduleNotPremises(act, g)
			chgs = append(chgs, actIdx)
			continue
		}
	PREMISE_LOOP:
		for _, pre := range act.Premises() {
			preTS := pre.Artefact.StateAt(g.Project())
			switch {
			case preTS.IsZero():
				tr.schedulePreTimeZero(act, g, pre)
				chgs = append(chgs, actIdx)
				break PREMISE_LOOP
			case gaTS.Before(preTS):
				tr.scheduleOutdated(act, g, pre)
				chgs = append(chgs, actIdx)
				break PREMISE_LOOP
			}
		}
	}
	return chgs, nil
}

// LockBuild locks g once for the current build of g's project. If g was already
// locked for the build 0 is returned.
func (g *Goal) LockBuild() BuildID {
	g.Mutex.Lock()
	if plb := g.Project().lastBuild; g.lastBID < plb {
		g.lastBID = plb
		return plb
	}
	g.Mutex.Unlock()
	return 0
}

// LockPreActions locks all actions in [Goal.ResultOf] for the goal with
// locking ID gid. If an action is held by someone else, all locks are
// released and locking restarts.
func (g *Goal) LockPreActions(gid uintptr) {
	todo := len(g.resultOf)
	locked := bitset.New(uint(todo))

	var (
		i  uint = math.MaxUint
		ok bool
	)
	for todo > 0 {
		if i, ok = locked.NextClear(i + 1); !ok || i >= uint(len(g.resultOf)) {
			if i, ok = locked.NextClear(0); !ok || i >= uint(len(g.resultOf)) {
				panic("no next to lock but todo > 0")
			}
		}
		if g.resultOf[i].tryLock(gid) {
			locked.Set(i)
			todo--
			continue
		}
		for j, ok := locked.NextSet(0); ok; j, ok = locked.NextSet(j + 1) {
			g.resultOf[j].unlock()
		}
		locked.ClearAll()
		todo = len(g.resultOf)
		time.Sleep(time.Millisecond)
	}
}

func (g *Goal) UnlockPreActions() {
	for _, act := range g.resultOf {
		act.unlock()
	}
}
