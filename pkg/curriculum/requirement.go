package curriculum

// Kind tags used by catalog files for each requirement variant.
const (
	KindSimple = "SIMPLE"
	KindAllOf  = "AND"
	KindAnyOf  = "OR"
)

// Requirement is a prerequisite condition tree. The interface is sealed;
// the only implementations are [Simple], [AllOf], [AnyOf] and [Unknown].
type Requirement interface {
	// Kind returns the catalog tag of the variant.
	Kind() string
	// Text returns the author-provided description, possibly empty.
	Text() string

	requirement()
}

// Simple is a condition on exactly one subject.
//
// With RequiresExoneration set only exoneration satisfies it; otherwise
// passing the course (or exonerating it) does. A Simple with an empty Code is
// a descriptive placeholder and is always satisfied.
//
// Nested holds the conditions of a composite found where only a simple
// condition is allowed, such as an OR inside an AND. They are reported by
// [Walk] so the subjects they name still gate the owner, but they take no
// part in evaluation: a Simple without Code stays a placeholder.
type Simple struct {
	Code                string
	RequiresCourse      bool
	RequiresExoneration bool
	Description         string
	Nested              []Simple
}

// AllOf holds when every condition holds.
type AllOf struct {
	Description string
	Conditions  []Simple
}

// AnyOf holds when at least one option holds. Options are Simple or AllOf.
type AnyOf struct {
	Description string
	Options     []Requirement
}

// Unknown keeps a requirement whose kind tag was not recognized on decode.
// It is never satisfied.
type Unknown struct {
	Tag         string
	Description string
}

func (Simple) Kind() string    { return KindSimple }
func (AllOf) Kind() string     { return KindAllOf }
func (AnyOf) Kind() string     { return KindAnyOf }
func (u Unknown) Kind() string { return u.Tag }

func (s Simple) Text() string  { return s.Description }
func (a AllOf) Text() string   { return a.Description }
func (a AnyOf) Text() string   { return a.Description }
func (u Unknown) Text() string { return u.Description }

func (Simple) requirement()  {}
func (AllOf) requirement()   {}
func (AnyOf) requirement()   {}
func (Unknown) requirement() {}

// CourseOnly builds the default Simple condition: pass the course of code.
func CourseOnly(code string) Simple {
	return Simple{Code: code, RequiresCourse: true}
}

// ExonerationOnly builds a Simple condition satisfied only by exonerating code.
func ExonerationOnly(code string) Simple {
	return Simple{Code: code, RequiresExoneration: true}
}

// Walk calls fn for every Simple node of req in depth-first order,
// regardless of its AND/OR position. Nested conditions are visited after
// the Simple that holds them. Unknown nodes and nil are skipped.
func Walk(req Requirement, fn func(Simple)) {
	switch r := req.(type) {
	case Simple:
		walkSimple(r, fn)
	case AllOf:
		for _, c := range r.Conditions {
			walkSimple(c, fn)
		}
	case AnyOf:
		for _, o := range r.Options {
			Walk(o, fn)
		}
	}
}

func walkSimple(s Simple, fn func(Simple)) {
	fn(s)
	for _, n := range s.Nested {
		walkSimple(n, fn)
	}
}

// Codes returns every subject code referenced by reqs, in first-seen order
// without duplicates. Placeholder conditions without a code are skipped.
func Codes(reqs ...Requirement) []string {
	seen := make(map[string]bool)
	var out []string
	for _, req := range reqs {
		Walk(req, func(s Simple) {
			if s.Code == "" || seen[s.Code] {
				return
			}
			seen[s.Code] = true
			out = append(out, s.Code)
		})
	}
	return out
}
