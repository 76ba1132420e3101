package prereq

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/manucepeda/materias-electrica/pkg/curriculum"
)

// quietLogger discards output so expected warnings do not clutter test logs.
func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// scenarioSubjects is the four-subject chain used across tests:
//
//	P4 <- AllOf[P3]
//	P3 <- AnyOf[P2 course, P1 exoneration]
func scenarioSubjects() []curriculum.Subject {
	return []curriculum.Subject{
		{Code: "P1", Name: "Programación 1", Semester: 1, Credits: 10},
		{Code: "P2", Name: "Programación 2", Semester: 2, Credits: 12},
		{Code: "P3", Name: "Programación 3", Semester: 3, Credits: 12, Requirements: []curriculum.Requirement{
			curriculum.AnyOf{Options: []curriculum.Requirement{
				curriculum.CourseOnly("P2"),
				curriculum.ExonerationOnly("P1"),
			}},
		}},
		{Code: "P4", Name: "Programación 4", Semester: 4, Credits: 15, Requirements: []curriculum.Requirement{
			curriculum.AllOf{Conditions: []curriculum.Simple{curriculum.CourseOnly("P3")}},
		}},
	}
}

func newEngine(t *testing.T, subjects []curriculum.Subject, opts ...Option) (*Engine, []error) {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	e, diags := New(subjects, opts...)
	require.NotNil(t, e)
	return e, diags
}

func codesOf(subjects []curriculum.Subject) []string {
	out := make([]string, len(subjects))
	for i, s := range subjects {
		out[i] = s.Code
	}
	return out
}
