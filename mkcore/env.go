package mkcore

import (
	"io"
	"maps"
	"os"
	"sort"
	"strings"
)

// Well-known env tags
const (
	// Set by the platform resolving action for all later actions.
	TagPlatform = "RNDRMK_PLATFORM"

	// Explicit target platform override
	TagTargetPlatform = "RNDRMK_TARGET_PLATFORM"

	// Target platform override as Gradle would pass -PtargetPlatform through
	// the environment.
	TagGradleTargetPlatform = "ORG_GRADLE_PROJECT_targetPlatform"
)

// Env is the environment actions run in. Besides the standard streams it
// carries tags, i.e. key/value pairs that are looked up along the chain of
// parent environments.
type Env struct {
	In       io.Reader
	Out, Err io.Writer

	tags   map[string]string
	delt   map[string]bool
	parent *Env
}

// DefaultEnv creates an environment with the standard streams and tags from
// the OS environment.
func DefaultEnv(tr *Trace) *Env {
	env := &Env{
		In:   os.Stdin,
		Out:  os.Stdout,
		Err:  os.Stderr,
		tags: make(map[string]string),
	}
	for _, evar := range os.Environ() {
		k, v, _ := strings.Cut(evar, "=")
		if k == "" {
			if tr != nil {
				tr.Warn("ignoring default `env`", `env`, evar)
			}
			continue
		}
		env.tags[k] = v
	}
	return env
}

func (e *Env) Sub() *Env {
	return &Env{
		In: e.In, Out: e.Out, Err: e.Err,
		parent: e,
	}
}

func (e *Env) Tag(key string) (string, bool) {
	for e != nil {
		if e.tags != nil {
			if v, ok := e.tags[key]; ok {
				return v, true
			}
		}
		if e.delt != nil && e.delt[key] {
			break
		}
		e = e.parent
	}
	return "", false
}

func (e *Env) SetTag(key, val string) {
	if e.tags == nil {
		e.tags = make(map[string]string)
	}
	e.tags[key] = val
	if e.delt != nil {
		delete(e.delt, key)
	}
}

// SetTags sets tags from "key=value" strings. A string without '=' sets an
// empty value.
func (e *Env) SetTags(env ...string) {
	for _, evar := range env {
		k, v, _ := strings.Cut(evar, "=")
		e.SetTag(k, v)
	}
}

func (e *Env) DelTag(key string) {
	delete(e.tags, key)
	if e.parent != nil {
		if e.delt == nil {
			e.delt = make(map[string]bool)
		}
		e.delt[key] = true
	}
}

// Keys returns the sorted keys of all tags visible in e.
func (e *Env) Keys() []string {
	mts := e.mergedTags()
	res := make([]string, 0, len(mts))
	for k := range mts {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

func (e *Env) mergedTags() map[string]string {
	if e.parent == nil {
		return maps.Clone(e.tags)
	}
	mts := e.parent.mergedTags()
	if mts == nil {
		mts = make(map[string]string)
	}
	for k := range e.delt {
		delete(mts, k)
	}
	maps.Copy(mts, e.tags)
	return mts
}
