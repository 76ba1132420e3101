package nodelink

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/manucepeda/materias-electrica/pkg/curriculum"
	"github.com/manucepeda/materias-electrica/pkg/prereq"
)

func testSubjects() []curriculum.Subject {
	return []curriculum.Subject{
		{Code: "P1", Name: "Programación 1", Semester: 1},
		{Code: "P2", Name: "Programación 2", Semester: 2, Requirements: []curriculum.Requirement{curriculum.CourseOnly("P1")}},
		{Code: "P3", Name: "Programación 3", Semester: 3, Requirements: []curriculum.Requirement{
			curriculum.AnyOf{Options: []curriculum.Requirement{curriculum.CourseOnly("P2"), curriculum.ExonerationOnly("P1")}},
		}},
		{Code: "P4", Name: "Programación 4", Semester: 3, ExamOnly: true, Requirements: []curriculum.Requirement{
			curriculum.AllOf{Conditions: []curriculum.Simple{curriculum.ExonerationOnly("P3"), curriculum.CourseOnly("GONE")}},
		}},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testSubjects(), map[string]State{"P1": StateExonerated, "P2": StateAvailable}, Options{})

	for _, want := range []string{
		"digraph G {",
		`subgraph "semester_3" {`,
		`"P1" [label="P1\nProgramación 1", fillcolor=palegreen];`,
		`"P2" [label="P2\nProgramación 2", fillcolor=lightyellow];`,
		`"P3" [label="P3\nProgramación 3", fillcolor=white, fontcolor=gray30];`,
		"peripheries=2",
		`"P1" -> "P2";`,
		`"P2" -> "P3" [style=dotted];`,
		`"P1" -> "P3" [style=dashed];`,
		`"P3" -> "P4" [style=dashed];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "GONE") {
		t.Errorf("ToDOT() drew an edge from an unknown code:\n%s", dot)
	}
	if strings.Count(dot, "rank=same") != 3 {
		t.Errorf("ToDOT() want 3 semester ranks:\n%s", dot)
	}
}

func TestToDOT_Only(t *testing.T) {
	dot := ToDOT(testSubjects(), nil, Options{Only: []string{"P2", "P3"}})

	if strings.Contains(dot, `"P1"`) {
		t.Errorf("ToDOT() drew P1 outside Only:\n%s", dot)
	}
	if !strings.Contains(dot, `"P2" -> "P3"`) {
		t.Errorf("ToDOT() missing edge inside Only:\n%s", dot)
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT([]curriculum.Subject{{Code: "A", Name: "Alpha", Credits: 8, Semester: 2}}, nil, Options{Detailed: true})
	if !strings.Contains(dot, `8 créditos, semestre 2`) {
		t.Errorf("ToDOT() detailed label missing:\n%s", dot)
	}
}

func TestEdgesOf_StrongestRelation(t *testing.T) {
	s := curriculum.Subject{Code: "X", Requirements: []curriculum.Requirement{
		curriculum.AnyOf{Options: []curriculum.Requirement{curriculum.CourseOnly("A")}},
		curriculum.ExonerationOnly("A"),
		curriculum.CourseOnly("X"),
	}}
	got := edgesOf(s)
	if len(got) != 1 {
		t.Fatalf("edgesOf() = %v, want one edge", got)
	}
	if !got[0].exoneration || got[0].option {
		t.Errorf("edgesOf() = %+v, want mandatory exoneration edge", got[0])
	}
}

func TestEdgesOf_NestedConditionsAreOptions(t *testing.T) {
	s := curriculum.Subject{Code: "X", Requirements: []curriculum.Requirement{
		curriculum.AllOf{Conditions: []curriculum.Simple{
			curriculum.CourseOnly("A"),
			{Nested: []curriculum.Simple{curriculum.CourseOnly("B"), curriculum.ExonerationOnly("C")}},
		}},
	}}
	got := edgesOf(s)
	want := []edge{
		{from: "A", to: "X"},
		{from: "B", to: "X", option: true},
		{from: "C", to: "X", exoneration: true, option: true},
	}
	if len(got) != len(want) {
		t.Fatalf("edgesOf() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("edgesOf()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestStates(t *testing.T) {
	e, _ := prereq.New(testSubjects(), prereq.WithLogger(log.New(io.Discard)))
	e.SetApprovalState("P1", true, false)

	got := States(e)
	want := map[string]State{"P1": StateApproved, "P2": StateAvailable, "P3": StateBlocked, "P4": StateBlocked}
	for code, st := range want {
		if got[code] != st {
			t.Errorf("States()[%s] = %v, want %v", code, got[code], st)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testSubjects(), nil, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0`) {
		t.Errorf("RenderSVG() did not normalize the svg tag")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
	if string(normalizeViewBox([]byte("<svg>"))) != "<svg>" {
		t.Error("normalizeViewBox() changed input without viewBox")
	}
}
