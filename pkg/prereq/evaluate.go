package prereq

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/manucepeda/materias-electrica/pkg/curriculum"
	"github.com/manucepeda/materias-electrica/pkg/progress"
)

// UnknownKindError reports a requirement whose kind tag is not recognized.
// Such requirements are never satisfied.
type UnknownKindError struct {
	Subject string // Owning subject, empty when raised during evaluation
	Kind    string
}

func (e *UnknownKindError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("unknown requirement kind %q", e.Kind)
	}
	return fmt.Sprintf("Subject %s has unknown requirement kind %q", e.Subject, e.Kind)
}

// Evaluator decides requirement satisfaction against a progress view.
type Evaluator struct {
	catalog *curriculum.Catalog
	logger  *log.Logger
	warned  map[string]bool
}

// NewEvaluator returns an evaluator that treats references to codes outside
// catalog as unsatisfiable. A nil catalog accepts every code.
func NewEvaluator(catalog *curriculum.Catalog, logger *log.Logger) *Evaluator {
	if logger == nil {
		logger = log.Default()
	}
	return &Evaluator{catalog: catalog, logger: logger, warned: make(map[string]bool)}
}

// IsRequirementSatisfied reports whether req holds for v.
func (e *Evaluator) IsRequirementSatisfied(req curriculum.Requirement, v progress.View) bool {
	switch r := req.(type) {
	case curriculum.Simple:
		return e.simple(r, v)
	case curriculum.AllOf:
		for _, c := range r.Conditions {
			if !e.simple(c, v) {
				return false
			}
		}
		return true
	case curriculum.AnyOf:
		for _, o := range r.Options {
			if e.IsRequirementSatisfied(o, v) {
				return true
			}
		}
		return false
	case curriculum.Unknown:
		e.warnUnknown(r.Tag)
		return false
	default:
		e.warnUnknown(fmt.Sprintf("%T", req))
		return false
	}
}

// IsSubjectAvailable reports whether every requirement of s holds for v.
func (e *Evaluator) IsSubjectAvailable(s curriculum.Subject, v progress.View) bool {
	for _, req := range s.Requirements {
		if !e.IsRequirementSatisfied(req, v) {
			return false
		}
	}
	return true
}

func (e *Evaluator) simple(s curriculum.Simple, v progress.View) bool {
	if s.Code == "" {
		return true
	}
	if e.catalog != nil && !e.catalog.Has(s.Code) {
		return false
	}
	if s.RequiresExoneration {
		return v.IsExonerated(s.Code)
	}
	return v.IsApproved(s.Code) || v.IsExonerated(s.Code)
}

func (e *Evaluator) warnUnknown(kind string) {
	if e.warned[kind] {
		return
	}
	e.warned[kind] = true
	e.logger.Warn("unknown requirement kind", "kind", kind)
}
