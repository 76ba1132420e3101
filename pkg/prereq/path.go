package prereq

import (
	"slices"

	"github.com/manucepeda/materias-electrica/pkg/curriculum"
	"github.com/manucepeda/materias-electrica/pkg/progress"
)

// PathResult partitions the ancestors of a target subject by what the
// student can do about them now.
type PathResult struct {
	// Target is the requested subject, nil when the code is not in the catalog.
	Target *curriculum.Subject
	// AvailableNow lists ancestors that can be taken now and are not completed.
	AvailableNow []curriculum.Subject
	// PendingPrerequisites lists ancestors still blocked by their own requirements.
	PendingPrerequisites []curriculum.Subject
	// IsTargetAvailable reports whether the target itself can be taken now.
	IsTargetAvailable bool
}

// RecommendedPath splits the ancestors of code that still matter into the
// next actionable step and the still-blocked remainder, both sorted by
// nominal semester.
//
// An ancestor matters when it is reachable from code through requirements
// that are not yet satisfied: once an AnyOf holds, its other options drop
// out of the path. Completed ancestors and codes missing from the catalog
// appear in neither list.
func (e *Engine) RecommendedPath(code string) PathResult {
	var res PathResult
	if s, ok := e.catalog.Subject(code); ok {
		res.Target = &s
	}
	res.IsTargetAvailable = e.IsSubjectAvailable(code)

	for _, anc := range e.pendingAncestors(code) {
		s, ok := e.catalog.Subject(anc)
		if !ok {
			continue
		}
		switch e.standing(anc) {
		case standingAvailable:
			res.AvailableNow = append(res.AvailableNow, s)
		case standingBlocked:
			res.PendingPrerequisites = append(res.PendingPrerequisites, s)
		}
	}
	curriculum.SortBySemester(res.AvailableNow)
	curriculum.SortBySemester(res.PendingPrerequisites)
	return res
}

// pendingAncestors returns, sorted, the codes referenced by unsatisfied
// requirements of code, followed transitively through subjects that are not
// completed. The result is a subset of the closure of code.
func (e *Engine) pendingAncestors(code string) []string {
	visited := map[string]bool{code: true}
	var out []string

	var visit func(c string)
	visit = func(c string) {
		s, ok := e.catalog.Subject(c)
		if !ok {
			return
		}
		for _, req := range s.Requirements {
			for _, d := range e.unsatisfiedCodes(req) {
				if visited[d] {
					continue
				}
				visited[d] = true
				out = append(out, d)
				if !e.state.IsCompleted(d) {
					visit(d)
				}
			}
		}
	}
	visit(code)

	slices.Sort(out)
	return out
}

// unsatisfiedCodes returns the codes of the simple conditions that keep req
// from holding. A satisfied requirement yields nothing.
func (e *Engine) unsatisfiedCodes(req curriculum.Requirement) []string {
	if e.eval.IsRequirementSatisfied(req, e.state) {
		return nil
	}
	switch r := req.(type) {
	case curriculum.Simple:
		if r.Code != "" {
			return []string{r.Code}
		}
	case curriculum.AllOf:
		var codes []string
		for _, c := range r.Conditions {
			codes = append(codes, e.unsatisfiedCodes(c)...)
		}
		return codes
	case curriculum.AnyOf:
		var codes []string
		for _, o := range r.Options {
			codes = append(codes, e.unsatisfiedCodes(o)...)
		}
		return codes
	}
	return nil
}

// UnlockedSubjects reports which other subjects would turn from unavailable
// to available if code were approved (or exonerated, with asExonerated).
// The engine's progress is not modified. Results are sorted by nominal
// semester.
func (e *Engine) UnlockedSubjects(code string, asExonerated bool) []curriculum.Subject {
	sim := e.state.Clone()
	switch {
	case asExonerated:
		sim.SetStatus(code, progress.StatusExonerated)
	case !sim.IsCompleted(code):
		sim.SetStatus(code, progress.StatusApproved)
	}

	var unlocked []curriculum.Subject
	for _, s := range e.catalog.Subjects() {
		if s.Code == code {
			continue
		}
		if !e.eval.IsSubjectAvailable(s, e.state) && e.eval.IsSubjectAvailable(s, sim) {
			unlocked = append(unlocked, s)
		}
	}
	curriculum.SortBySemester(unlocked)
	return unlocked
}
