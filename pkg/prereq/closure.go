package prereq

import (
	"fmt"
	"maps"
	"slices"

	"github.com/manucepeda/materias-electrica/pkg/curriculum"
)

// CycleError reports a prerequisite edge that closes a cycle: Subject
// references Via while Via is still being expanded.
type CycleError struct {
	Subject string
	Via     string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular prerequisite: %s -> %s", e.Subject, e.Via)
}

type codeSet = map[string]struct{}

// Closure holds the memoized ancestor sets of one catalog.
type Closure struct {
	requirements map[string][]curriculum.Requirement
	cache        map[string]codeSet
	cycles       []*CycleError
	seen         map[CycleError]bool
	onCycle      func(*CycleError)
}

// BuildClosure computes the ancestor set of every subject in c that has
// requirements. onCycle, if non-nil, is called once per distinct cycle edge.
func BuildClosure(c *curriculum.Catalog, onCycle func(*CycleError)) *Closure {
	cl := &Closure{
		requirements: make(map[string][]curriculum.Requirement, c.Len()),
		cache:        make(map[string]codeSet, c.Len()),
		seen:         make(map[CycleError]bool),
		onCycle:      onCycle,
	}
	subjects := c.Subjects()
	for _, s := range subjects {
		cl.requirements[s.Code] = s.Requirements
	}
	for _, s := range subjects {
		if s.HasRequirements() {
			cl.ancestorSet(s.Code)
		}
	}
	return cl
}

// Ancestors returns every code that directly or indirectly gates code,
// sorted. The result never contains code itself.
func (cl *Closure) Ancestors(code string) []string {
	return slices.Sorted(maps.Keys(cl.ancestorSet(code)))
}

// IsAncestor reports whether anc gates code directly or indirectly.
func (cl *Closure) IsAncestor(code, anc string) bool {
	_, ok := cl.ancestorSet(code)[anc]
	return ok
}

// Cycles returns the cycle edges found so far, in discovery order.
func (cl *Closure) Cycles() []*CycleError { return slices.Clone(cl.cycles) }

func (cl *Closure) ancestorSet(code string) codeSet {
	if s, ok := cl.cache[code]; ok {
		return s
	}
	s, _ := cl.expand(code, make(map[string]int), 0)
	return s
}

// expand returns the ancestors of code together with the shallowest path
// depth at which its expansion was cut by a cycle. A result is cached only
// when no cut reached above code on the path; a cut above means some
// ancestors were left to the caller and the set is incomplete for code alone.
func (cl *Closure) expand(code string, path map[string]int, depth int) (codeSet, int) {
	if s, ok := cl.cache[code]; ok {
		return s, depth
	}

	path[code] = depth
	defer delete(path, code)

	low := depth
	out := make(codeSet)
	for _, d := range curriculum.Codes(cl.requirements[code]...) {
		out[d] = struct{}{}
		if at, onPath := path[d]; onPath {
			cl.recordCycle(code, d)
			low = min(low, at)
			continue
		}
		sub, subLow := cl.expand(d, path, depth+1)
		for k := range sub {
			out[k] = struct{}{}
		}
		low = min(low, subLow)
	}
	delete(out, code)

	if low >= depth {
		cl.cache[code] = out
	}
	return out, low
}

func (cl *Closure) recordCycle(subject, via string) {
	key := CycleError{Subject: subject, Via: via}
	if cl.seen[key] {
		return
	}
	cl.seen[key] = true
	err := &CycleError{Subject: subject, Via: via}
	cl.cycles = append(cl.cycles, err)
	if cl.onCycle != nil {
		cl.onCycle(err)
	}
}
