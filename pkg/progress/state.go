// Package progress holds a student's progress through the curriculum: which
// subjects have their course approved and which are exonerated.
//
// Each code has exactly one [Status], so a subject can never be approved and
// exonerated at the same time. [State] still exposes the two-set view
// (approved, exonerated) that evaluators read.
package progress

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Status is the progress of one subject.
type Status int

const (
	// StatusUnset means nothing has been recorded for the subject.
	StatusUnset Status = iota
	// StatusApproved means the course was passed but not exonerated.
	StatusApproved
	// StatusExonerated means the subject is fully cleared. It subsumes approval.
	StatusExonerated
)

func (s Status) String() string {
	switch s {
	case StatusApproved:
		return "approved"
	case StatusExonerated:
		return "exonerated"
	default:
		return "unset"
	}
}

// Next returns the following status in the toggle cycle
// unset -> approved -> exonerated -> unset.
func (s Status) Next() Status {
	switch s {
	case StatusUnset:
		return StatusApproved
	case StatusApproved:
		return StatusExonerated
	default:
		return StatusUnset
	}
}

// ParseStatus parses the names produced by [Status.String], plus the Spanish
// spellings used by the original data files.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unset", "none", "":
		return StatusUnset, nil
	case "approved", "aprobada", "curso":
		return StatusApproved, nil
	case "exonerated", "exonerada":
		return StatusExonerated, nil
	}
	return StatusUnset, fmt.Errorf("unknown status %q", s)
}

// ApprovalState is the two-flag view of a single subject's status.
type ApprovalState struct {
	IsApproved   bool `json:"isApproved"`
	IsExonerated bool `json:"isExonerated"`
}

// View is the read side of progress consumed by evaluators.
type View interface {
	IsApproved(code string) bool
	IsExonerated(code string) bool
}

// State maps subject codes to their status. Codes are not checked against any
// catalog. The zero value is not usable; use [NewState].
//
// State is not safe for concurrent use.
type State struct {
	statuses map[string]Status
	onChange func(code string, from, to Status)
}

// NewState returns an empty state.
func NewState() *State {
	return &State{statuses: make(map[string]Status)}
}

// FromSets builds a state from approved and exonerated code lists.
// A code present in both lists is exonerated.
func FromSets(approved, exonerated []string) *State {
	s := NewState()
	for _, code := range approved {
		s.statuses[code] = StatusApproved
	}
	for _, code := range exonerated {
		s.statuses[code] = StatusExonerated
	}
	return s
}

// OnChange registers fn to be called after every status transition.
// Setting a code to the status it already has does not call fn.
func (s *State) OnChange(fn func(code string, from, to Status)) {
	s.onChange = fn
}

// Status returns the status of code.
func (s *State) Status(code string) Status { return s.statuses[code] }

// SetStatus records st for code. StatusUnset removes the code.
func (s *State) SetStatus(code string, st Status) {
	prev := s.statuses[code]
	if st == StatusUnset {
		delete(s.statuses, code)
	} else {
		s.statuses[code] = st
	}
	if prev != st && s.onChange != nil {
		s.onChange(code, prev, st)
	}
}

// Toggle advances code one step through the toggle cycle and returns the
// new status.
func (s *State) Toggle(code string) Status {
	next := s.Status(code).Next()
	s.SetStatus(code, next)
	return next
}

// SetApprovalState reconciles code from the two-flag form. It is idempotent.
// Exoneration wins when both flags are set.
func (s *State) SetApprovalState(code string, isApproved, isExonerated bool) {
	switch {
	case isExonerated:
		s.SetStatus(code, StatusExonerated)
	case isApproved:
		s.SetStatus(code, StatusApproved)
	default:
		s.SetStatus(code, StatusUnset)
	}
}

// ApprovalState returns the two-flag form of code's status. The flags are
// never both true.
func (s *State) ApprovalState(code string) ApprovalState {
	st := s.statuses[code]
	return ApprovalState{
		IsApproved:   st == StatusApproved,
		IsExonerated: st == StatusExonerated,
	}
}

// IsApproved reports whether code's course is approved and not exonerated.
func (s *State) IsApproved(code string) bool { return s.statuses[code] == StatusApproved }

// IsExonerated reports whether code is exonerated.
func (s *State) IsExonerated(code string) bool { return s.statuses[code] == StatusExonerated }

// IsCompleted reports whether code is approved or exonerated.
func (s *State) IsCompleted(code string) bool { return s.statuses[code] != StatusUnset }

// Approved returns the sorted approved codes.
func (s *State) Approved() []string { return s.codes(StatusApproved) }

// Exonerated returns the sorted exonerated codes.
func (s *State) Exonerated() []string { return s.codes(StatusExonerated) }

// Len returns the number of codes with a status other than unset.
func (s *State) Len() int { return len(s.statuses) }

// Clone returns an independent copy. Change callbacks are not copied.
func (s *State) Clone() *State {
	return &State{statuses: maps.Clone(s.statuses)}
}

// Reset clears every status.
func (s *State) Reset() {
	for _, code := range slices.Sorted(maps.Keys(s.statuses)) {
		s.SetStatus(code, StatusUnset)
	}
}

func (s *State) codes(want Status) []string {
	var out []string
	for code, st := range s.statuses {
		if st == want {
			out = append(out, code)
		}
	}
	slices.Sort(out)
	return out
}

var _ View = (*State)(nil)
