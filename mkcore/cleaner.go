package mkcore

import (
	"time"
)

// Clean removes the artefacts of all removable goals of prj that are the
// result of some action. With dryrun, artefacts are only reported.
func Clean(prj *Project, dryrun bool, tr *Trace) error {
	prj.LockBuild()
	defer prj.Unlock()
	start := time.Now()
	tr = tr.pushProject(prj)
	tr.startProject(prj, "cleaning")
	defer func() { tr.doneProject(prj, "cleaning", time.Since(start)) }()
	for _, g := range prj.Goals() {
		if err := tr.Ctx().Err(); err != nil {
			return err
		}
		if len(g.ResultOf()) == 0 || !g.Removable {
			continue
		}
		f, ok := g.Artefact.(RemovableArtefact)
		if !ok {
			continue
		}
		switch ok, err := f.Exists(prj); {
		case err != nil:
			tr.Warn("cannot check `goal`: `err`", `goal`, g, `err`, err)
			continue
		case !ok:
			continue
		}
		tr.pushGoal(g).removeArtefact(g)
		if !dryrun {
			if err := f.Remove(prj); err != nil {
				tr.Warn("cannot remove `goal`: `err`", `goal`, g, `err`, err)
			}
		}
	}
	return nil
}
