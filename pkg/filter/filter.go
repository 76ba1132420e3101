// Package filter narrows and orders subject lists for catalog views.
//
// Filters are plain predicates over [curriculum.Subject] combined with
// [Apply]. The parsers accept the spellings used by the web views: credit
// buckets such as "6-10" and dictation semesters "1", "2", "both" or "all".
// [Expression] adds free-form CEL conditions on top.
package filter

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/manucepeda/materias-electrica/pkg/curriculum"
	"github.com/manucepeda/materias-electrica/pkg/errors"
)

// Predicate selects subjects.
type Predicate func(curriculum.Subject) bool

// Apply returns the subjects matching every predicate, in input order.
// Nil predicates are ignored.
func Apply(subjects []curriculum.Subject, preds ...Predicate) []curriculum.Subject {
	return lo.Filter(subjects, func(s curriculum.Subject, _ int) bool {
		for _, p := range preds {
			if p != nil && !p(s) {
				return false
			}
		}
		return true
	})
}

var creditBuckets = map[string][2]int{
	"1-5":   {1, 5},
	"6-10":  {6, 10},
	"11-15": {11, 15},
	"16+":   {16, -1},
}

// Credits parses a credit filter: one of the buckets "1-5", "6-10",
// "11-15", "16+", or an exact number. The empty string matches everything
// and yields a nil predicate.
func Credits(spec string) (Predicate, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}
	if b, ok := creditBuckets[spec]; ok {
		return func(s curriculum.Subject) bool {
			return s.Credits >= b[0] && (b[1] < 0 || s.Credits <= b[1])
		}, nil
	}
	n, err := strconv.Atoi(spec)
	if err != nil || n < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid credit filter %q (want 1-5, 6-10, 11-15, 16+ or a number)", spec)
	}
	return func(s curriculum.Subject) bool { return s.Credits == n }, nil
}

// Semester matches subjects of nominal semester n. Zero matches everything
// and yields a nil predicate.
func Semester(n int) Predicate {
	if n == 0 {
		return nil
	}
	return func(s curriculum.Subject) bool { return s.Semester == n }
}

// Dictation parses a dictation filter. "1" and "2" also match subjects
// dictated in both halves; "both" matches only those. Subjects without an
// explicit tag are taken to run in the half matching their semester parity.
// "all" and "" match everything and yield a nil predicate.
func Dictation(spec string) (Predicate, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || strings.EqualFold(spec, "all") {
		return nil, nil
	}
	want, ok := curriculum.ParseDictationSemester(spec)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid dictation filter %q (want 1, 2, both or all)", spec)
	}
	return func(s curriculum.Subject) bool {
		got := s.EffectiveDictation()
		if want == curriculum.DictationBoth {
			return got == curriculum.DictationBoth
		}
		return got == want || got == curriculum.DictationBoth
	}, nil
}

// Codes matches subjects whose code is listed. A nil list yields a nil
// predicate; an empty non-nil list matches nothing.
func Codes(codes []string) Predicate {
	if codes == nil {
		return nil
	}
	set := lo.SliceToMap(codes, func(c string) (string, struct{}) { return c, struct{}{} })
	return func(s curriculum.Subject) bool {
		_, ok := set[s.Code]
		return ok
	}
}

// HideExamOnly drops subjects that can only be cleared by exam.
func HideExamOnly() Predicate {
	return func(s curriculum.Subject) bool { return !s.ExamOnly }
}

// Not inverts p.
func Not(p Predicate) Predicate {
	return func(s curriculum.Subject) bool { return !p(s) }
}

// SortKey names a subject ordering.
type SortKey string

const (
	SortSemester SortKey = "semester" // Semester, then name
	SortName     SortKey = "name"
	SortCredits  SortKey = "credits" // Credits descending, then name
	SortCode     SortKey = "code"
)

// Sort orders subjects in place by key.
func Sort(subjects []curriculum.Subject, key SortKey) error {
	var less func(a, b curriculum.Subject) int
	switch key {
	case SortSemester, "":
		less = func(a, b curriculum.Subject) int {
			return cmp.Or(cmp.Compare(a.Semester, b.Semester), strings.Compare(a.Name, b.Name))
		}
	case SortName:
		less = func(a, b curriculum.Subject) int { return strings.Compare(a.Name, b.Name) }
	case SortCredits:
		less = func(a, b curriculum.Subject) int {
			return cmp.Or(cmp.Compare(b.Credits, a.Credits), strings.Compare(a.Name, b.Name))
		}
	case SortCode:
		less = func(a, b curriculum.Subject) int { return strings.Compare(a.Code, b.Code) }
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown sort key %q", key)
	}
	slices.SortStableFunc(subjects, less)
	return nil
}

// Stats summarizes a subject list.
type Stats struct {
	Total      int
	Credits    int
	ExamOnly   int
	BySemester map[int]int
	ByCredits  map[int]int
}

// Summarize computes Stats over subjects.
func Summarize(subjects []curriculum.Subject) Stats {
	st := Stats{
		Total:      len(subjects),
		BySemester: lo.CountValuesBy(subjects, func(s curriculum.Subject) int { return s.Semester }),
		ByCredits:  lo.CountValuesBy(subjects, func(s curriculum.Subject) int { return s.Credits }),
	}
	for _, s := range subjects {
		st.Credits += s.Credits
		if s.ExamOnly {
			st.ExamOnly++
		}
	}
	return st
}

// Options returns the distinct semesters and credit values present in
// subjects, ascending, as offered by filter menus.
func Options(subjects []curriculum.Subject) (semesters, credits []int) {
	semesters = lo.Uniq(lo.Map(subjects, func(s curriculum.Subject, _ int) int { return s.Semester }))
	credits = lo.Uniq(lo.Map(subjects, func(s curriculum.Subject, _ int) int { return s.Credits }))
	slices.Sort(semesters)
	slices.Sort(credits)
	return semesters, credits
}
