// Package profile describes degree profiles: named groups of subjects a
// student can orient their studies towards, optionally split into emphases.
//
// Profiles are read from TOML:
//
//	[[profile]]
//	name = "Electrónica"
//	has_notes = true
//	core = ["EL1", "EL2"]
//	optional = ["MICRO"]
//	suggested = ["FIS3"]
//
//	  [[profile.plan]]
//	  semester = 5
//	  subjects = ["EL1"]
//
//	  [[profile.emphasis]]
//	  name = "Sistemas embebidos"
//	  core = ["MICRO"]
//	  optional = ["RTOS"]
package profile

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"

	"github.com/manucepeda/materias-electrica/pkg/curriculum"
	"github.com/manucepeda/materias-electrica/pkg/errors"
)

// Classification tells how a subject relates to a profile or emphasis.
type Classification string

const (
	ClassNone      Classification = ""
	ClassCore      Classification = "core"
	ClassOptional  Classification = "optional"
	ClassSuggested Classification = "suggested"
)

// PlanStep is one semester of a recommended plan.
type PlanStep struct {
	Semester int      `toml:"semester"`
	Subjects []string `toml:"subjects"`
}

// Emphasis is a specialization inside a profile.
type Emphasis struct {
	Name     string     `toml:"name"`
	Core     []string   `toml:"core"`
	Optional []string   `toml:"optional"`
	Plan     []PlanStep `toml:"plan"`
}

// Profile is a named subject grouping.
type Profile struct {
	Name      string     `toml:"name"`
	HasNotes  bool       `toml:"has_notes"`
	Core      []string   `toml:"core"`
	Optional  []string   `toml:"optional"`
	Suggested []string   `toml:"suggested"`
	Plan      []PlanStep `toml:"plan"`
	Emphases  []Emphasis `toml:"emphasis"`
}

// Set is a loaded profiles file.
type Set struct {
	Profiles []Profile `toml:"profile"`
}

// Load reads the profiles file at path.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "profiles %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	set, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Decode parses a profiles TOML document. Profile and emphasis names must
// be non-empty and unique within their scope.
func Decode(r io.Reader) (*Set, error) {
	var set Set
	if _, err := toml.NewDecoder(r).Decode(&set); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode profiles")
	}

	seen := make(map[string]bool)
	for _, p := range set.Profiles {
		if p.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "profile without name")
		}
		key := strings.ToLower(p.Name)
		if seen[key] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate profile %q", p.Name)
		}
		seen[key] = true

		emphases := make(map[string]bool)
		for _, e := range p.Emphases {
			if e.Name == "" || emphases[strings.ToLower(e.Name)] {
				return nil, errors.New(errors.ErrCodeInvalidInput, "profile %q: missing or duplicate emphasis name %q", p.Name, e.Name)
			}
			emphases[strings.ToLower(e.Name)] = true
		}
	}
	return &set, nil
}

// Names returns the profile names in file order.
func (s *Set) Names() []string {
	return lo.Map(s.Profiles, func(p Profile, _ int) string { return p.Name })
}

// Lookup finds a profile by name, ignoring case.
func (s *Set) Lookup(name string) (*Profile, error) {
	for i := range s.Profiles {
		if strings.EqualFold(s.Profiles[i].Name, name) {
			return &s.Profiles[i], nil
		}
	}
	return nil, errors.New(errors.ErrCodeProfileNotFound, "unknown profile %q (have %s)", name, strings.Join(s.Names(), ", "))
}

// Emphasis finds an emphasis of p by name, ignoring case.
func (p *Profile) Emphasis(name string) (*Emphasis, error) {
	for i := range p.Emphases {
		if strings.EqualFold(p.Emphases[i].Name, name) {
			return &p.Emphases[i], nil
		}
	}
	return nil, errors.New(errors.ErrCodeProfileNotFound, "profile %q has no emphasis %q", p.Name, name)
}

// Codes returns every subject code of the profile: core, optional and
// suggested, without duplicates.
func (p *Profile) Codes() []string {
	return lo.Uniq(slices.Concat(p.Core, p.Optional, p.Suggested))
}

// Codes returns the core and optional codes of the emphasis.
func (e *Emphasis) Codes() []string {
	return lo.Uniq(slices.Concat(e.Core, e.Optional))
}

// Classify reports how code belongs to the profile. Core wins over
// optional, and optional over suggested.
func (p *Profile) Classify(code string) Classification {
	switch {
	case slices.Contains(p.Core, code):
		return ClassCore
	case slices.Contains(p.Optional, code):
		return ClassOptional
	case slices.Contains(p.Suggested, code):
		return ClassSuggested
	}
	return ClassNone
}

// Classify reports how code belongs to the emphasis.
func (e *Emphasis) Classify(code string) Classification {
	switch {
	case slices.Contains(e.Core, code):
		return ClassCore
	case slices.Contains(e.Optional, code):
		return ClassOptional
	}
	return ClassNone
}

// ReferenceError reports a profile entry naming a code missing from the
// catalog.
type ReferenceError struct {
	Profile string // Profile name, or "profile/emphasis"
	Code    string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("profile %s references unknown subject: %s", e.Profile, e.Code)
}

// Validate returns one *ReferenceError per distinct code, plan entries
// included, that a profile or emphasis names but c does not contain.
func (s *Set) Validate(c *curriculum.Catalog) []error {
	var errs []error
	check := func(owner string, lists ...[]string) {
		for _, code := range lo.Uniq(slices.Concat(lists...)) {
			if !c.Has(code) {
				errs = append(errs, &ReferenceError{Profile: owner, Code: code})
			}
		}
	}
	for _, p := range s.Profiles {
		check(p.Name, p.Core, p.Optional, p.Suggested, planCodes(p.Plan))
		for _, e := range p.Emphases {
			check(p.Name+"/"+e.Name, e.Core, e.Optional, planCodes(e.Plan))
		}
	}
	return errs
}

func planCodes(plan []PlanStep) []string {
	return lo.FlatMap(plan, func(st PlanStep, _ int) []string { return st.Subjects })
}
