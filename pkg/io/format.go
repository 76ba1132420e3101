package io

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"

	"github.com/manucepeda/materias-electrica/pkg/curriculum"
	"github.com/manucepeda/materias-electrica/pkg/errors"
)

type subject struct {
	Code          string        `json:"codigo" yaml:"codigo" mapstructure:"codigo"`
	Name          string        `json:"nombre" yaml:"nombre" mapstructure:"nombre"`
	Credits       int           `json:"creditos" yaml:"creditos" mapstructure:"creditos"`
	Semester      int           `json:"semestre" yaml:"semestre" mapstructure:"semestre"`
	Dictation     string        `json:"dictation_semester,omitempty" yaml:"dictation_semester,omitempty" mapstructure:"dictation_semester"`
	ExamOnly      bool          `json:"exam_only" yaml:"exam_only" mapstructure:"exam_only"`
	Prerequisites []requirement `json:"prerequisites" yaml:"prerequisites" mapstructure:"prerequisites"`
}

type requirement struct {
	Kind                string        `json:"tipo" yaml:"tipo" mapstructure:"tipo"`
	Code                string        `json:"codigo,omitempty" yaml:"codigo,omitempty" mapstructure:"codigo"`
	RequiresCourse      bool          `json:"requiere_curso,omitempty" yaml:"requiere_curso,omitempty" mapstructure:"requiere_curso"`
	RequiresExoneration bool          `json:"requiere_exoneracion,omitempty" yaml:"requiere_exoneracion,omitempty" mapstructure:"requiere_exoneracion"`
	Description         string        `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Conditions          []requirement `json:"condiciones,omitempty" yaml:"condiciones,omitempty" mapstructure:"condiciones"`
	Options             []requirement `json:"opciones,omitempty" yaml:"opciones,omitempty" mapstructure:"opciones"`
}

// Document is a decoded catalog.
type Document struct {
	Subjects []curriculum.Subject
	// Warnings lists entries that were dropped or adjusted while decoding.
	Warnings []error
}

// EntryError reports a catalog entry that was dropped or adjusted.
type EntryError struct {
	Index  int    // Position in the input list
	Code   string // Subject code, empty when missing
	Reason string
}

func (e *EntryError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("entry %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("entry %d (%s): %s", e.Index, e.Code, e.Reason)
}

// decode converts a generic document, as produced by encoding/json or
// yaml.v3 into an any, to subjects.
func decode(data any) (*Document, error) {
	entries, err := entriesOf(data)
	if err != nil {
		return nil, err
	}

	doc := &Document{Subjects: make([]curriculum.Subject, 0, len(entries))}
	warn := func(i int, code, format string, args ...any) {
		doc.Warnings = append(doc.Warnings, &EntryError{Index: i, Code: code, Reason: fmt.Sprintf(format, args...)})
	}

	for i, entry := range entries {
		var raw subject
		if err := weakDecode(entry, &raw); err != nil {
			warn(i, "", "dropped: %v", err)
			continue
		}
		if raw.Code == "" || raw.Name == "" {
			warn(i, raw.Code, "dropped: missing codigo or nombre")
			continue
		}
		if err := errors.ValidateSubjectCode(raw.Code); err != nil {
			warn(i, "", "dropped: %v", err)
			continue
		}

		s := curriculum.Subject{
			Code:     raw.Code,
			Name:     raw.Name,
			Credits:  max(raw.Credits, 0),
			Semester: raw.Semester,
			ExamOnly: raw.ExamOnly,
		}
		if s.Semester <= 0 {
			s.Semester = 1
		}
		if d, ok := curriculum.ParseDictationSemester(raw.Dictation); ok {
			s.Dictation = d
		} else {
			warn(i, raw.Code, "unknown dictation_semester %q, using %s", raw.Dictation, curriculum.DictationBoth)
			s.Dictation = curriculum.DictationBoth
		}
		for _, rr := range raw.Prerequisites {
			req, notes := rr.toRequirement()
			for _, n := range notes {
				warn(i, raw.Code, "%s", n)
			}
			s.Requirements = append(s.Requirements, req)
		}
		doc.Subjects = append(doc.Subjects, s)
	}
	return doc, nil
}

func entriesOf(data any) ([]any, error) {
	switch v := data.(type) {
	case []any:
		return v, nil
	case map[string]any:
		for _, key := range []string{"materias", "subjects"} {
			if list, ok := v[key].([]any); ok {
				return list, nil
			}
		}
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "catalog object has no materias or subjects list")
	case nil:
		return nil, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "catalog must be a list of subjects, got %T", data)
	}
}

func weakDecode(input, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// toRequirement converts a decoded requirement tree. notes describes any
// part that had to be reinterpreted.
func (r requirement) toRequirement() (curriculum.Requirement, []string) {
	switch strings.ToUpper(strings.TrimSpace(r.Kind)) {
	case curriculum.KindSimple:
		return r.toSimple(), nil
	case curriculum.KindAllOf:
		conds, notes := r.flatten()
		return curriculum.AllOf{Description: r.Description, Conditions: conds}, notes
	case curriculum.KindAnyOf:
		var notes []string
		opts := make([]curriculum.Requirement, len(r.Options))
		for i, o := range r.Options {
			var n []string
			opts[i], n = o.toRequirement()
			notes = append(notes, n...)
		}
		return curriculum.AnyOf{Description: r.Description, Options: opts}, notes
	default:
		return curriculum.Unknown{Tag: r.Kind, Description: r.Description}, nil
	}
}

func (r requirement) toSimple() curriculum.Simple {
	return curriculum.Simple{
		Code:                r.Code,
		RequiresCourse:      r.RequiresCourse,
		RequiresExoneration: r.RequiresExoneration,
		Description:         r.Description,
	}
}

func (r requirement) flatten() ([]curriculum.Simple, []string) {
	var conds []curriculum.Simple
	var notes []string
	for _, c := range r.Conditions {
		switch strings.ToUpper(strings.TrimSpace(c.Kind)) {
		case curriculum.KindAllOf:
			sub, n := c.flatten()
			conds = append(conds, sub...)
			notes = append(notes, n...)
		case curriculum.KindAnyOf:
			notes = append(notes, "OR inside AND condition read as a simple condition")
			cond := c.toSimple()
			cond.Nested = c.leaves()
			conds = append(conds, cond)
		default:
			conds = append(conds, c.toSimple())
		}
	}
	return conds, notes
}

// leaves returns every simple condition below r, whatever the nesting.
func (r requirement) leaves() []curriculum.Simple {
	var out []curriculum.Simple
	for _, c := range slices.Concat(r.Conditions, r.Options) {
		switch strings.ToUpper(strings.TrimSpace(c.Kind)) {
		case curriculum.KindAllOf, curriculum.KindAnyOf:
			out = append(out, c.leaves()...)
		default:
			out = append(out, c.toSimple())
		}
	}
	return out
}

func encode(subjects []curriculum.Subject) []subject {
	return lo.Map(subjects, func(s curriculum.Subject, _ int) subject {
		return subject{
			Code:          s.Code,
			Name:          s.Name,
			Credits:       s.Credits,
			Semester:      s.Semester,
			Dictation:     string(s.Dictation),
			ExamOnly:      s.ExamOnly,
			Prerequisites: lo.Map(s.Requirements, func(r curriculum.Requirement, _ int) requirement { return fromRequirement(r) }),
		}
	})
}

func fromRequirement(req curriculum.Requirement) requirement {
	switch r := req.(type) {
	case curriculum.Simple:
		return fromSimple(r)
	case curriculum.AllOf:
		out := requirement{Kind: curriculum.KindAllOf, Description: r.Description}
		for _, c := range r.Conditions {
			out.Conditions = append(out.Conditions, fromSimple(c))
		}
		return out
	case curriculum.AnyOf:
		out := requirement{Kind: curriculum.KindAnyOf, Description: r.Description}
		for _, o := range r.Options {
			out.Options = append(out.Options, fromRequirement(o))
		}
		return out
	case curriculum.Unknown:
		return requirement{Kind: r.Tag, Description: r.Description}
	}
	return requirement{}
}

// fromSimple encodes s. A condition carrying nested conditions is written
// back as the OR it was read from.
func fromSimple(s curriculum.Simple) requirement {
	if len(s.Nested) > 0 {
		return requirement{
			Kind:                curriculum.KindAnyOf,
			Code:                s.Code,
			RequiresCourse:      s.RequiresCourse,
			RequiresExoneration: s.RequiresExoneration,
			Description:         s.Description,
			Options:             lo.Map(s.Nested, func(n curriculum.Simple, _ int) requirement { return fromSimple(n) }),
		}
	}
	return requirement{
		Kind:                curriculum.KindSimple,
		Code:                s.Code,
		RequiresCourse:      s.RequiresCourse,
		RequiresExoneration: s.RequiresExoneration,
		Description:         s.Description,
	}
}
