package curriculum

import (
	"fmt"
	"slices"
)

// DuplicateError reports a subject code that appears more than once in the
// input of [NewCatalog]. The first occurrence is kept.
type DuplicateError struct {
	Code string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate subject code: %s", e.Code)
}

// Catalog is an immutable, code-indexed view over a subject list.
// The zero value is an empty catalog.
type Catalog struct {
	subjects []Subject
	index    map[string]int
}

// NewCatalog indexes subjects by code, keeping input order. Subjects whose
// code repeats an earlier one are dropped and reported as *DuplicateError.
func NewCatalog(subjects []Subject) (*Catalog, []error) {
	c := &Catalog{
		subjects: make([]Subject, 0, len(subjects)),
		index:    make(map[string]int, len(subjects)),
	}
	var errs []error
	for _, s := range subjects {
		if _, dup := c.index[s.Code]; dup {
			errs = append(errs, &DuplicateError{Code: s.Code})
			continue
		}
		c.index[s.Code] = len(c.subjects)
		c.subjects = append(c.subjects, s)
	}
	return c, errs
}

// Len returns the number of subjects.
func (c *Catalog) Len() int { return len(c.subjects) }

// Has reports whether code names a subject in the catalog.
func (c *Catalog) Has(code string) bool {
	_, ok := c.index[code]
	return ok
}

// Subject returns the subject with the given code.
func (c *Catalog) Subject(code string) (Subject, bool) {
	i, ok := c.index[code]
	if !ok {
		return Subject{}, false
	}
	return c.subjects[i], true
}

// Name returns the display name for code, falling back to the code itself
// when the subject is unknown.
func (c *Catalog) Name(code string) string {
	if s, ok := c.Subject(code); ok && s.Name != "" {
		return s.Name
	}
	return code
}

// Subjects returns a copy of all subjects in catalog order.
func (c *Catalog) Subjects() []Subject { return slices.Clone(c.subjects) }

// Codes returns all subject codes in catalog order.
func (c *Catalog) Codes() []string {
	codes := make([]string, len(c.subjects))
	for i, s := range c.subjects {
		codes[i] = s.Code
	}
	return codes
}

// SortBySemester sorts subjects in place by nominal semester, keeping the
// relative order of subjects in the same semester.
func SortBySemester(subjects []Subject) {
	slices.SortStableFunc(subjects, func(a, b Subject) int {
		return a.SortSemester() - b.SortSemester()
	})
}
