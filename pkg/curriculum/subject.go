package curriculum

import "strings"

// DictationSemester tells in which half of the academic year a subject runs.
type DictationSemester string

const (
	// DictationOdd marks subjects dictated in the first (odd) semester.
	DictationOdd DictationSemester = "1"
	// DictationEven marks subjects dictated in the second (even) semester.
	DictationEven DictationSemester = "2"
	// DictationBoth marks subjects dictated every semester.
	DictationBoth DictationSemester = "both"
)

// ParseDictationSemester maps the catalog spellings ("1", "odd", "2", "even",
// "both") to a DictationSemester. The empty string yields "" with ok true so
// callers can apply their own default.
func ParseDictationSemester(s string) (DictationSemester, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", true
	case "1", "odd", "impar":
		return DictationOdd, true
	case "2", "even", "par":
		return DictationEven, true
	case "both", "ambos":
		return DictationBoth, true
	}
	return "", false
}

// DefaultDictation derives the dictation semester from a nominal semester
// number: odd semesters run in the first half, even ones in the second.
func DefaultDictation(semester int) DictationSemester {
	if semester%2 == 0 {
		return DictationEven
	}
	return DictationOdd
}

// Subject is one curriculum unit. Subjects are immutable once loaded.
type Subject struct {
	Code      string            // Unique, stable key (e.g. "GAL1")
	Name      string            // Display name
	Credits   int               // Credit weight, never negative
	Semester  int               // Nominal semester, 1..N
	Dictation DictationSemester // When the course runs; empty means unspecified
	ExamOnly  bool              // Can be cleared by exam without enrollment

	// Requirements is an implicit AND: every entry must be satisfied.
	Requirements []Requirement
}

// HasRequirements reports whether the subject is gated by anything.
func (s Subject) HasRequirements() bool { return len(s.Requirements) > 0 }

// EffectiveDictation returns the explicit dictation tag, or the default
// derived from the nominal semester when none was given.
func (s Subject) EffectiveDictation() DictationSemester {
	if s.Dictation != "" {
		return s.Dictation
	}
	return DefaultDictation(s.Semester)
}

// SortSemester is the semester used for ordering; subjects without a nominal
// semester sort last.
func (s Subject) SortSemester() int {
	if s.Semester <= 0 {
		return 99
	}
	return s.Semester
}
