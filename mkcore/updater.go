package mkcore

import (
	"fmt"
	"slices"
	"unsafe"
)

// updater runs the actions of outdated goals for one build. It must not be
// used concurrently.
type updater struct {
	trace *Trace
	env   *Env
	bid   BuildID
}

// updateGoal runs the actions of g selected by g's update mode if g is
// outdated. It reports whether any action was selected.
func (up *updater) updateGoal(tr *Trace, g *Goal) (bool, error) {
	g.LockPreActions(uintptr(unsafe.Pointer(g)))
	defer g.UnlockPreActions()

	chgs, err := g.CheckPreTimes(tr)
	switch {
	case err != nil:
		return false, err
	case len(chgs) == 0:
		tr.goalUpToDate(g)
		return false, nil
	}
	tr.goalNeedsActions(g, len(chgs))

	switch mode := g.UpdateMode.Actions(); mode {
	case UpdAllActions:
		chgs = chgs[:0]
		for i := range g.ResultOf() {
			chgs = append(chgs, i)
		}
		fallthrough
	case UpdSomeActions:
		for _, i := range chgs {
			if err := up.run(tr, g, g.PreAction(i)); err != nil {
				return true, err
			}
		}
		return true, nil
	case UpdOneAction:
		if len(chgs) > 1 {
			return true, fmt.Errorf("%d change actions for update mode One in goal %s",
				len(chgs),
				g,
			)
		}
		fallthrough
	case UpdAnyAction:
		return true, up.runAny(tr, g, chgs)
	default:
		return true, fmt.Errorf("illegal update mode actions: %d", mode)
	}
}

// runAny runs the first changed action of g unless another action of g
// already ran in this build.
func (up *updater) runAny(tr *Trace, g *Goal, chgs []int) error {
	for i, act := range g.ResultOf() {
		switch bid := act.LastBuild(); {
		case bid > up.bid:
			return fmt.Errorf("action %s already run by younger build %d", act, bid)
		case bid < up.bid:
		case slices.Contains(chgs, i):
			return nil
		default:
			return fmt.Errorf("goal %s with update mode Any involved by inconsistent action", g)
		}
	}
	return up.run(tr, g, g.PreAction(chgs[0]))
}

func (up *updater) run(tr *Trace, g *Goal, act *Action) error {
	prev, err := act.Run(tr, up.env)
	switch {
	case err != nil:
		return fmt.Errorf("goal %s: %w", g, err)
	case prev > up.bid:
		return fmt.Errorf("action %s already run by younger build %d", act, prev)
	}
	return nil
}
