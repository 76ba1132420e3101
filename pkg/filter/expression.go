package filter

import (
	"github.com/google/cel-go/cel"

	"github.com/manucepeda/materias-electrica/pkg/curriculum"
	"github.com/manucepeda/materias-electrica/pkg/errors"
)

// Facts are the per-student values an expression can refer to besides the
// subject's own fields.
type Facts struct {
	Available  bool
	Approved   bool
	Exonerated bool
}

// Expression is a compiled CEL condition over one subject. The variables
// are:
//
//	code, name, dictation           string
//	credits, semester               int
//	exam_only                       bool
//	available, approved, exonerated bool
//
// For example: credits >= 8 && semester <= 4 && !approved.
type Expression struct {
	src string
	prg cel.Program
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("code", cel.StringType),
		cel.Variable("name", cel.StringType),
		cel.Variable("dictation", cel.StringType),
		cel.Variable("credits", cel.IntType),
		cel.Variable("semester", cel.IntType),
		cel.Variable("exam_only", cel.BoolType),
		cel.Variable("available", cel.BoolType),
		cel.Variable("approved", cel.BoolType),
		cel.Variable("exonerated", cel.BoolType),
	)
}

// Compile parses and type-checks src. The expression must yield a bool.
func Compile(src string) (*Expression, error) {
	env, err := newEnv()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create CEL env")
	}
	ast, iss := env.Compile(src)
	if iss != nil && iss.Err() != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidExpression, iss.Err(), "compile %q", src)
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, errors.New(errors.ErrCodeInvalidExpression, "expression %q yields %s, want bool", src, ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidExpression, err, "program %q", src)
	}
	return &Expression{src: src, prg: prg}, nil
}

// String returns the source text.
func (x *Expression) String() string { return x.src }

// Match evaluates the expression for s.
func (x *Expression) Match(s curriculum.Subject, f Facts) (bool, error) {
	out, _, err := x.prg.Eval(map[string]any{
		"code":       s.Code,
		"name":       s.Name,
		"dictation":  string(s.EffectiveDictation()),
		"credits":    int64(s.Credits),
		"semester":   int64(s.Semester),
		"exam_only":  s.ExamOnly,
		"available":  f.Available,
		"approved":   f.Approved,
		"exonerated": f.Exonerated,
	})
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidExpression, err, "evaluate %q on %s", x.src, s.Code)
	}
	v, ok := out.Value().(bool)
	if !ok {
		return false, errors.New(errors.ErrCodeInvalidExpression, "expression %q did not return bool", x.src)
	}
	return v, nil
}

// Predicate adapts the expression to a Predicate. facts supplies the student
// values per code and may be nil. Evaluation errors count as no match.
func (x *Expression) Predicate(facts func(code string) Facts) Predicate {
	return func(s curriculum.Subject) bool {
		var f Facts
		if facts != nil {
			f = facts(s.Code)
		}
		ok, err := x.Match(s, f)
		return err == nil && ok
	}
}
