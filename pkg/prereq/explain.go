package prereq

import (
	"fmt"
	"strings"

	"github.com/manucepeda/materias-electrica/pkg/curriculum"
)

// Explain returns a human-readable account of why code cannot be taken yet.
// Unsatisfied top-level requirements are listed as "**Requisito i:**"
// blocks; AnyOf options are enumerated as "**Opción j:**" and AllOf
// conditions are joined with " **Y** ". Subject names replace codes.
func (e *Engine) Explain(code string) string {
	subject, ok := e.catalog.Subject(code)
	if !ok {
		return "Materia no encontrada."
	}
	var unsatisfied []curriculum.Requirement
	for _, req := range subject.Requirements {
		if !e.eval.IsRequirementSatisfied(req, e.state) {
			unsatisfied = append(unsatisfied, req)
		}
	}
	if len(unsatisfied) == 0 {
		return fmt.Sprintf("%s está disponible para cursar.", subject.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Para poder cursar %s se necesita cumplir con:\n\n", subject.Name)
	for i, req := range unsatisfied {
		fmt.Fprintf(&b, "**Requisito %d:** %s\n\n", i+1, e.Describe(req))
	}
	return strings.TrimSpace(b.String())
}

// Describe renders a requirement tree as text. Author descriptions take
// precedence for simple conditions.
func (e *Engine) Describe(req curriculum.Requirement) string {
	switch r := req.(type) {
	case curriculum.Simple:
		return e.describeSimple(r)
	case curriculum.AllOf:
		parts := make([]string, len(r.Conditions))
		for i, c := range r.Conditions {
			parts[i] = e.describeSimple(c)
		}
		return strings.Join(parts, " **Y** ")
	case curriculum.AnyOf:
		parts := make([]string, len(r.Options))
		for i, o := range r.Options {
			parts[i] = fmt.Sprintf("**Opción %d:** %s", i+1, e.Describe(o))
		}
		return strings.Join(parts, "\n\n")
	case curriculum.Unknown:
		if r.Description != "" {
			return r.Description
		}
	}
	return "Requisito desconocido"
}

func (e *Engine) describeSimple(s curriculum.Simple) string {
	if s.Description != "" {
		return s.Description
	}
	if s.Code == "" {
		return "Requisito inválido"
	}

	name := e.catalog.Name(s.Code)
	switch {
	case s.RequiresCourse && s.RequiresExoneration:
		return fmt.Sprintf("Salvar curso **%s** y Exonerar **%s**", name, name)
	case s.RequiresExoneration:
		return fmt.Sprintf("Exonerar **%s**", name)
	default:
		return fmt.Sprintf("Salvar curso **%s**", name)
	}
}
