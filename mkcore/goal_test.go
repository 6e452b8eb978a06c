package mkcore

import (
	"context"
	"testing"
	"time"

	"git.fractalqb.de/fractalqb/testerr"
	"github.com/bits-and-blooms/bitset"
)

func Test_bitset_NextClear_range(t *testing.T) {
	bits := bitset.New(70)
	bits.SetAll().Clear(69)
	cIdx, ok := bits.NextClear(0)
	if !ok {
		t.Error("did not find clear bit")
	}
	if cIdx != 69 {
		t.Errorf("unexpected clear bit %d", cIdx)
	}
	cIdx, ok = bits.NextClear(70)
	if ok {
		t.Errorf("unexpected clear bit %d after end", cIdx)
	}
}

func TestGoal_LockPreActions(t *testing.T) {
	prj := NewProject("sketch")
	res := testerr.F1(prj.Goal(Abstract("res"))).ShallBeNil(t)
	a1 := testerr.F1(prj.NewAction(nil, []*Goal{res}, nil)).ShallBeNil(t)
	a2 := testerr.F1(prj.NewAction(nil, []*Goal{res}, nil)).ShallBeNil(t)

	if !a2.tryLock(4711) {
		t.Fatal("cannot lock free action")
	}
	done := make(chan struct{})
	go func() {
		res.LockPreActions(42)
		close(done)
	}()
	select {
	case <-done:
		t.Fatal("locked pre-actions while one is held")
	case <-time.After(20 * time.Millisecond):
	}
	a2.unlock()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pre-actions not locked after release")
	}
	if a1.lockGID != 42 || a2.lockGID != 42 {
		t.Errorf("unexpected lock IDs %d, %d", a1.lockGID, a2.lockGID)
	}
	res.UnlockPreActions()
	if a1.lockGID != 0 || a2.lockGID != 0 {
		t.Errorf("pre-actions still locked: %d, %d", a1.lockGID, a2.lockGID)
	}
}

func TestGoal_CheckPreTimes(t *testing.T) {
	now := time.Now()
	prj := NewProject("sketch")
	src := &memArtefact{name: "src", at: now}
	out := &memArtefact{name: "out"}
	gSrc := testerr.F1(prj.Goal(src)).ShallBeNil(t)
	gOut := testerr.F1(prj.Goal(out)).ShallBeNil(t)
	testerr.F1(prj.NewAction([]*Goal{gSrc}, []*Goal{gOut}, nil)).ShallBeNil(t)

	tr := NewTrace(context.Background(), testTracer{t})
	chgs := testerr.F1(gOut.CheckPreTimes(tr)).ShallBeNil(t)
	if len(chgs) != 1 {
		t.Fatalf("result without state: %v", chgs)
	}
	out.at = now.Add(time.Second)
	chgs = testerr.F1(gOut.CheckPreTimes(tr)).ShallBeNil(t)
	if len(chgs) != 0 {
		t.Fatalf("up-to-date result needs %v", chgs)
	}
	src.at = now.Add(time.Minute)
	chgs = testerr.F1(gOut.CheckPreTimes(tr)).ShallBeNil(t)
	if len(chgs) != 1 {
		t.Fatalf("outdated result: %v", chgs)
	}
}

func TestUpdateMode(t *testing.T) {
	m := UpdAnyAction | UpdUnordered
	if m.Actions() != UpdAnyAction {
		t.Errorf("actions: %d", m.Actions())
	}
	if m.Ordered() {
		t.Error("unordered mode is ordered")
	}
	if !UpdOneAction.Ordered() {
		t.Error("default mode is unordered")
	}
}
