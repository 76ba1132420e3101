package prereq

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/manucepeda/materias-electrica/pkg/curriculum"
	"github.com/manucepeda/materias-electrica/pkg/observability"
	"github.com/manucepeda/materias-electrica/pkg/progress"
)

// Engine answers availability queries for one loaded catalog and one
// student's progress.
type Engine struct {
	catalog *curriculum.Catalog
	closure *Closure
	eval    *Evaluator
	diags   []error

	state  *progress.State
	logger *log.Logger
	hooks  observability.EngineHooks
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for diagnostics. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithState makes the engine read and mutate st instead of a fresh state.
func WithState(st *progress.State) Option {
	return func(e *Engine) {
		if st != nil {
			e.state = st
		}
	}
}

// WithHooks sets the observability hooks. Defaults to observability.Engine().
func WithHooks(h observability.EngineHooks) Option {
	return func(e *Engine) {
		if h != nil {
			e.hooks = h
		}
	}
}

// New creates an engine over subjects and returns it together with the load
// diagnostics (see [Engine.Load]). Diagnostics never prevent construction.
func New(subjects []curriculum.Subject, opts ...Option) (*Engine, []error) {
	e := &Engine{
		state:  progress.NewState(),
		logger: log.Default(),
		hooks:  observability.Engine(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.state.OnChange(func(code string, from, to progress.Status) {
		e.hooks.OnStateChange(code, from.String(), to.String())
	})
	return e, e.Load(subjects)
}

// Load replaces the catalog and rebuilds the closure. Progress is kept.
//
// The returned diagnostics are, in order: *curriculum.DuplicateError for
// repeated codes, *curriculum.ReferenceError for references to unknown codes,
// *UnknownKindError for unrecognized requirement kinds and *CycleError for
// every cycle edge dropped during closure construction.
func (e *Engine) Load(subjects []curriculum.Subject) []error {
	start := time.Now()

	catalog, diags := curriculum.NewCatalog(subjects)
	diags = append(diags, curriculum.Validate(catalog)...)
	diags = append(diags, unknownKinds(catalog)...)

	closure := BuildClosure(catalog, func(c *CycleError) {
		e.logger.Warn("circular prerequisite", "subject", c.Subject, "via", c.Via)
		e.hooks.OnCycleDetected(c.Subject, c.Via)
	})
	for _, c := range closure.Cycles() {
		diags = append(diags, c)
	}

	e.catalog = catalog
	e.closure = closure
	e.eval = NewEvaluator(catalog, e.logger)
	e.diags = diags

	e.hooks.OnCatalogLoad(catalog.Len(), len(diags), time.Since(start))
	e.logger.Debug("catalog loaded", "subjects", catalog.Len(), "diagnostics", len(diags), "duration", time.Since(start))
	return slices.Clone(diags)
}

func unknownKinds(c *curriculum.Catalog) []error {
	var errs []error
	var visit func(subject string, req curriculum.Requirement)
	visit = func(subject string, req curriculum.Requirement) {
		switch r := req.(type) {
		case curriculum.Unknown:
			errs = append(errs, &UnknownKindError{Subject: subject, Kind: r.Tag})
		case curriculum.AnyOf:
			for _, o := range r.Options {
				visit(subject, o)
			}
		}
	}
	for _, s := range c.Subjects() {
		for _, req := range s.Requirements {
			visit(s.Code, req)
		}
	}
	return errs
}

// Catalog returns the loaded catalog.
func (e *Engine) Catalog() *curriculum.Catalog { return e.catalog }

// Closure returns the ancestor closure of the loaded catalog.
func (e *Engine) Closure() *Closure { return e.closure }

// Evaluator returns the evaluator bound to the loaded catalog.
func (e *Engine) Evaluator() *Evaluator { return e.eval }

// State returns the progress state the engine reads.
func (e *Engine) State() *progress.State { return e.state }

// Diagnostics returns the diagnostics of the last load.
func (e *Engine) Diagnostics() []error { return slices.Clone(e.diags) }

// SetApprovalState records progress for code. Unknown codes are accepted.
func (e *Engine) SetApprovalState(code string, isApproved, isExonerated bool) {
	e.state.SetApprovalState(code, isApproved, isExonerated)
}

// ApprovalState returns the recorded progress for code.
func (e *Engine) ApprovalState(code string) progress.ApprovalState {
	return e.state.ApprovalState(code)
}

// IsSubjectAvailable reports whether the requirements of code are satisfied
// by the current progress. Codes outside the catalog are never available.
func (e *Engine) IsSubjectAvailable(code string) bool {
	return e.availableIn(code, e.state)
}

func (e *Engine) availableIn(code string, v progress.View) bool {
	s, ok := e.catalog.Subject(code)
	if !ok {
		return false
	}
	return e.eval.IsSubjectAvailable(s, v)
}

// Ancestors returns every code that gates code directly or indirectly.
func (e *Engine) Ancestors(code string) []string {
	return e.closure.Ancestors(code)
}

type standing int

const (
	standingCompleted standing = iota
	standingAvailable
	standingBlocked
)

// standing classifies a code for path and missing-prerequisite reports.
// Recorded progress takes precedence over availability.
func (e *Engine) standing(code string) standing {
	switch {
	case e.state.IsCompleted(code):
		return standingCompleted
	case e.IsSubjectAvailable(code):
		return standingAvailable
	default:
		return standingBlocked
	}
}

// MissingPrerequisites returns the ancestors of code that are neither
// completed nor currently available: the blocked frontier behind code,
// ordered by nominal semester and then code. Ancestors missing from the
// catalog are always reported.
func (e *Engine) MissingPrerequisites(code string) []string {
	blocked := lo.Filter(e.closure.Ancestors(code), func(anc string, _ int) bool {
		return e.standing(anc) == standingBlocked
	})
	slices.SortStableFunc(blocked, func(a, b string) int {
		return e.sortSemester(a) - e.sortSemester(b)
	})
	return blocked
}

func (e *Engine) sortSemester(code string) int {
	if s, ok := e.catalog.Subject(code); ok {
		return s.SortSemester()
	}
	return 99
}

// AvailableSubjects returns the subjects that can be taken now and are not
// yet completed, in catalog order.
func (e *Engine) AvailableSubjects() []curriculum.Subject {
	return lo.Filter(e.catalog.Subjects(), func(s curriculum.Subject, _ int) bool {
		return e.standing(s.Code) == standingAvailable
	})
}

// Summary aggregates the current progress over the loaded catalog.
type Summary struct {
	Approved   int // Subjects approved, not exonerated
	Exonerated int // Subjects exonerated
	Available  int // Subjects available and not completed
	Blocked    int // Subjects neither completed nor available
	Credits    int // Credits of completed subjects
}

// Summary reports progress counts and earned credits. Progress on codes
// outside the catalog is ignored.
func (e *Engine) Summary() Summary {
	var sum Summary
	for _, s := range e.catalog.Subjects() {
		switch e.state.Status(s.Code) {
		case progress.StatusApproved:
			sum.Approved++
			sum.Credits += s.Credits
		case progress.StatusExonerated:
			sum.Exonerated++
			sum.Credits += s.Credits
		default:
			if e.eval.IsSubjectAvailable(s, e.state) {
				sum.Available++
			} else {
				sum.Blocked++
			}
		}
	}
	return sum
}
