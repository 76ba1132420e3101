package prereq

import (
	"fmt"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/manucepeda/materias-electrica/pkg/curriculum"
	"github.com/manucepeda/materias-electrica/pkg/progress"
)

const propSubjects = 8

func propCode(i int) string { return fmt.Sprintf("S%d", i) }

// randomCatalog builds propSubjects subjects where subject i depends on the
// codes in deps[i]. Even subjects use AllOf, odd ones AnyOf. Cycles and self
// references are allowed.
func randomCatalog(deps [][]int) []curriculum.Subject {
	subjects := make([]curriculum.Subject, propSubjects)
	for i := range subjects {
		subjects[i] = curriculum.Subject{Code: propCode(i), Name: propCode(i), Semester: i%4 + 1}
		if i >= len(deps) || len(deps[i]) == 0 {
			continue
		}
		if i%2 == 0 {
			conds := make([]curriculum.Simple, len(deps[i]))
			for j, d := range deps[i] {
				conds[j] = curriculum.CourseOnly(propCode(d))
			}
			subjects[i].Requirements = []curriculum.Requirement{curriculum.AllOf{Conditions: conds}}
		} else {
			opts := make([]curriculum.Requirement, len(deps[i]))
			for j, d := range deps[i] {
				if j%2 == 0 {
					opts[j] = curriculum.CourseOnly(propCode(d))
				} else {
					opts[j] = curriculum.ExonerationOnly(propCode(d))
				}
			}
			subjects[i].Requirements = []curriculum.Requirement{curriculum.AnyOf{Options: opts}}
		}
	}
	return subjects
}

func randomState(statuses []int) *progress.State {
	st := progress.NewState()
	for i, s := range statuses {
		st.SetStatus(propCode(i), progress.Status(s))
	}
	return st
}

func genDeps() gopter.Gen {
	return gen.SliceOfN(propSubjects, gen.SliceOf(gen.IntRange(0, propSubjects-1)))
}

func genStatuses() gopter.Gen {
	return gen.SliceOfN(propSubjects, gen.IntRange(0, 2))
}

func TestProperties_Closure(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("a subject is never its own ancestor", prop.ForAll(
		func(deps [][]int) bool {
			catalog, _ := curriculum.NewCatalog(randomCatalog(deps))
			cl := BuildClosure(catalog, nil)
			for i := range propSubjects {
				if cl.IsAncestor(propCode(i), propCode(i)) {
					return false
				}
			}
			return true
		},
		genDeps(),
	))

	properties.Property("ancestors are closed under the dependency relation", prop.ForAll(
		func(deps [][]int) bool {
			catalog, _ := curriculum.NewCatalog(randomCatalog(deps))
			cl := BuildClosure(catalog, nil)
			for i := range propSubjects {
				code := propCode(i)
				for _, d := range deps[i] {
					dc := propCode(d)
					if dc != code && !cl.IsAncestor(code, dc) {
						return false
					}
					for _, a := range cl.Ancestors(dc) {
						if a != code && !cl.IsAncestor(code, a) {
							return false
						}
					}
				}
			}
			return true
		},
		genDeps(),
	))

	properties.Property("queries are idempotent", prop.ForAll(
		func(deps [][]int) bool {
			catalog, _ := curriculum.NewCatalog(randomCatalog(deps))
			cl := BuildClosure(catalog, nil)
			for i := range propSubjects {
				if !slices.Equal(cl.Ancestors(propCode(i)), cl.Ancestors(propCode(i))) {
					return false
				}
			}
			return true
		},
		genDeps(),
	))

	properties.TestingRun(t)
}

func TestProperties_Evaluation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	catalog, _ := curriculum.NewCatalog(randomCatalog(nil))
	eval := NewEvaluator(catalog, quietLogger())

	properties.Property("exoneration-only needs exoneration", prop.ForAll(
		func(statuses []int) bool {
			st := randomState(statuses)
			for i := range propSubjects {
				got := eval.IsRequirementSatisfied(curriculum.ExonerationOnly(propCode(i)), st)
				if got != (st.Status(propCode(i)) == progress.StatusExonerated) {
					return false
				}
			}
			return true
		},
		genStatuses(),
	))

	properties.Property("course-only accepts approval or exoneration", prop.ForAll(
		func(statuses []int) bool {
			st := randomState(statuses)
			for i := range propSubjects {
				got := eval.IsRequirementSatisfied(curriculum.CourseOnly(propCode(i)), st)
				if got != st.IsCompleted(propCode(i)) {
					return false
				}
			}
			return true
		},
		genStatuses(),
	))

	properties.Property("more progress never breaks a satisfied requirement", prop.ForAll(
		func(options []int, base, extra []int) bool {
			var opts []curriculum.Requirement
			var conds []curriculum.Simple
			for j, o := range options {
				s := curriculum.CourseOnly(propCode(o % propSubjects))
				if j%3 == 0 {
					s = curriculum.ExonerationOnly(s.Code)
				}
				opts = append(opts, s)
				conds = append(conds, s)
			}
			more := make([]int, len(base))
			for i := range base {
				more[i] = max(base[i], extra[i])
			}
			before, after := randomState(base), randomState(more)
			for _, req := range []curriculum.Requirement{curriculum.AnyOf{Options: opts}, curriculum.AllOf{Conditions: conds}} {
				if eval.IsRequirementSatisfied(req, before) && !eval.IsRequirementSatisfied(req, after) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, propSubjects-1)),
		genStatuses(),
		genStatuses(),
	))

	properties.Property("subjects without requirements are always available", prop.ForAll(
		func(statuses []int) bool {
			return eval.IsSubjectAvailable(curriculum.Subject{Code: "FREE"}, randomState(statuses))
		},
		genStatuses(),
	))

	properties.TestingRun(t)
}

func TestProperties_RecommendedPath(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("path lists are disjoint from progress and within the closure", prop.ForAll(
		func(deps [][]int, statuses []int) bool {
			e, _ := New(randomCatalog(deps), WithLogger(quietLogger()), WithState(randomState(statuses)))
			for i := range propSubjects {
				code := propCode(i)
				path := e.RecommendedPath(code)
				for _, s := range path.AvailableNow {
					if e.State().IsCompleted(s.Code) || !e.IsSubjectAvailable(s.Code) || !e.Closure().IsAncestor(code, s.Code) {
						return false
					}
				}
				for _, s := range path.PendingPrerequisites {
					if e.State().IsCompleted(s.Code) || e.IsSubjectAvailable(s.Code) || !e.Closure().IsAncestor(code, s.Code) {
						return false
					}
				}
			}
			return true
		},
		genDeps(),
		genStatuses(),
	))

	properties.Property("unlocked subjects leave progress untouched", prop.ForAll(
		func(deps [][]int, statuses []int, pick int, exonerate bool) bool {
			e, _ := New(randomCatalog(deps), WithLogger(quietLogger()), WithState(randomState(statuses)))
			before := e.State().Clone()
			for _, s := range e.UnlockedSubjects(propCode(pick), exonerate) {
				if e.IsSubjectAvailable(s.Code) {
					return false
				}
			}
			return slices.Equal(before.Approved(), e.State().Approved()) &&
				slices.Equal(before.Exonerated(), e.State().Exonerated())
		},
		genDeps(),
		genStatuses(),
		gen.IntRange(0, propSubjects-1),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
