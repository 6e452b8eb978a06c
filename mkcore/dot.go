package mkcore

import (
	"fmt"
	"io"
	"reflect"
	"strings"
)

func escDotID(id string) string {
	return strings.ReplaceAll(id, "\"", "\\\"")
}

// WriteDot writes the build graph of prj in graphviz dot format.
func (prj *Project) WriteDot(w io.Writer, rankDir string) (n int, err error) {
	defer func() {
		if p := recover(); p != nil {
			switch p := p.(type) {
			case error:
				err = p
			default:
				panic(p)
			}
		}
	}()
	akku := func(p int, err error) {
		n += p
		if err != nil {
			panic(err)
		}
	}
	akku(fmt.Fprintf(w, "digraph \"%s\" {\n", escDotID(prj.Name())))
	if rankDir != "" {
		akku(fmt.Fprintf(w, "\trankdir=\"%s\"\n", escDotID(rankDir)))
	}
	actIDs := make(map[*Action]int, len(prj.actions))
	for i, a := range prj.actions {
		actIDs[a] = i
	}
	for gi, g := range prj.Goals() {
		tn := reflect.Indirect(reflect.ValueOf(g.Artefact)).Type().Name()
		var updMode string
		if len(g.ResultOf()) > 1 {
			switch g.UpdateMode.Actions() {
			case UpdOneAction:
				updMode = " 1"
			case UpdAnyAction:
				updMode = " ?"
			case UpdSomeActions:
				updMode = " +"
			case UpdAllActions:
				updMode = " *"
			}
		}
		var style string
		leafOrRoot := len(g.ResultOf()) == 0 || len(g.PremiseOf()) == 0
		switch {
		case g.IsAbstract() && leafOrRoot:
			style = ",style=\"dashed,bold\""
		case g.IsAbstract():
			style = ",style=dashed"
		case leafOrRoot:
			style = ",style=bold"
		}
		akku(fmt.Fprintf(w, "\tg%d [shape=record%s,label=\"{%s%s|%s}\"];\n",
			gi,
			style,
			tn,
			updMode,
			escDotID(g.Name()),
		))
		for i, a := range g.ResultOf() {
			ai := actIDs[a]
			switch {
			case a.Op == nil:
				akku(fmt.Fprintf(w, "\ta%d [shape=none,label=\"implicit\"];\n", ai))
			case len(a.Premises()) == 0:
				akku(fmt.Fprintf(w, "\ta%d [shape=box,style=\"rounded,bold\",label=\"%s\"];\n",
					ai,
					escDotID(a.String()),
				))
			default:
				akku(fmt.Fprintf(w, "\ta%d [shape=box,style=rounded,label=\"%s\"];\n",
					ai,
					escDotID(a.String()),
				))
			}
			var lb string
			if g.UpdateMode.Ordered() && len(g.ResultOf()) > 1 {
				lb = fmt.Sprintf(" [label=%d]", i+1)
			}
			akku(fmt.Fprintf(w, "\ta%d -> g%d%s;\n", ai, gi, lb))
		}
	}
	goalIDs := make(map[*Goal]int, len(prj.goals))
	for gi, g := range prj.Goals() {
		goalIDs[g] = gi
	}
	for ai, act := range prj.actions {
		for _, p := range act.Premises() {
			akku(fmt.Fprintf(w, "\tg%d -> a%d;\n", goalIDs[p], ai))
		}
	}
	akku(fmt.Fprintln(w, "}"))
	return
}
