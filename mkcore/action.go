package mkcore

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// An Action is something you can do in your [Project] to reach at least one
// [Goal]. The actual implementation of the action is an [Operation]. An action
// without an operation is an "implicit" action, i.e. if all its premises are
// reached, all results of the action are implicitly reached.
type Action struct {
	Op Operation

	prj      *Project
	premises []*Goal
	results  []*Goal

	lockMu  sync.Mutex
	lockGID uintptr

	runMu   sync.Mutex
	lastBID BuildID
	sum     []byte
}

func (a *Action) Project() *Project { return a.prj }

func (a *Action) Premises() []*Goal { return a.premises }

func (a *Action) Premise(i int) *Goal { return a.premises[i] }

func (a *Action) Results() []*Goal { return a.results }

func (a *Action) Result(i int) *Goal { return a.results[i] }

// LastBuild returns the ID of the last build that ran a.
func (a *Action) LastBuild() BuildID {
	a.runMu.Lock()
	defer a.runMu.Unlock()
	return a.lastBID
}

// Run runs a's operation once for the current build of a's project. It
// returns the ID of the build that ran a before this call. If that ID equals
// the current build, the operation is not run again.
func (a *Action) Run(tr *Trace, env *Env) (BuildID, error) {
	if err := tr.Ctx().Err(); err != nil {
		return 0, err
	}
	bid := a.prj.Build()
	a.runMu.Lock()
	defer a.runMu.Unlock()
	prev := a.lastBID
	if prev >= bid {
		return prev, nil
	}
	a.lastBID = bid
	if a.Op == nil {
		tr.runImplicitAction(a)
		return prev, nil
	}
	tr.runAction(a)
	if env == nil {
		env = DefaultEnv(tr)
	}
	h := sha256.New()
	switch ok, err := a.WriteHash(h, env); {
	case err != nil:
		return prev, err
	case ok:
		a.sum = h.Sum(nil)
		tr.Debug("`action` has `hash`", `action`, a, `hash`, hex.EncodeToString(a.sum))
	default:
		a.sum = nil
	}
	return prev, a.Op.Do(tr, a, env)
}

// Hash returns the hash of a's operation computed by the last run of a. It is
// nil if the operation does not support hashing. Operations can use it from
// their Do method.
func (a *Action) Hash() []byte { return a.sum }

func (a *Action) String() string {
	switch {
	case a == nil:
		return "<nil:Action>"
	case a.Op == nil:
		return "implicit:" + a.Project().Name()
	}
	return a.Op.Describe(a, nil)
}

// WriteHash writes the hash of a's operation to h. It returns false if the
// operation does not support hashing.
func (a *Action) WriteHash(h hash.Hash, env *Env) (bool, error) {
	if a.Op == nil {
		return false, nil
	}
	return a.Op.WriteHash(h, a, env)
}

func (a *Action) tryLock(gid uintptr) bool {
	a.lockMu.Lock()
	defer a.lockMu.Unlock()
	switch a.lockGID {
	case 0:
		a.lockGID = gid
		return true
	case gid:
		return true
	}
	return false
}

func (a *Action) unlock() {
	a.lockMu.Lock()
	a.lockGID = 0
	a.lockMu.Unlock()
}

type Operation interface {
	// The hints are optional
	Describe(actionHint *Action, envHint *Env) string
	Do(tr *Trace, a *Action, env *Env) error
	WriteHash(h hash.Hash, a *Action, env *Env) (bool, error)
}
