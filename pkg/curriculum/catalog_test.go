package curriculum

import (
	"errors"
	"slices"
	"testing"
)

func TestNewCatalog_DuplicatesKeepFirst(t *testing.T) {
	c, errs := NewCatalog([]Subject{
		{Code: "GAL1", Name: "Geometría y Álgebra Lineal 1"},
		{Code: "CDIV", Name: "Cálculo Diferencial e Integral en una Variable"},
		{Code: "GAL1", Name: "Duplicado"},
	})

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1", len(errs))
	}
	var dup *DuplicateError
	if !errors.As(errs[0], &dup) || dup.Code != "GAL1" {
		t.Errorf("errs[0] = %v, want duplicate GAL1", errs[0])
	}
	if got := c.Name("GAL1"); got != "Geometría y Álgebra Lineal 1" {
		t.Errorf("Name(GAL1) = %q, want first occurrence", got)
	}
}

func TestCatalog_Lookup(t *testing.T) {
	c, _ := NewCatalog([]Subject{{Code: "F1", Name: "Física 1"}, {Code: "F2"}})

	if !c.Has("F1") || c.Has("F3") {
		t.Error("Has() returned wrong membership")
	}
	if _, ok := c.Subject("F3"); ok {
		t.Error("Subject(F3) ok = true, want false")
	}
	if got := c.Name("F2"); got != "F2" {
		t.Errorf("Name(F2) = %q, want code fallback", got)
	}
	if got := c.Name("missing"); got != "missing" {
		t.Errorf("Name(missing) = %q, want code fallback", got)
	}
	if got := c.Codes(); !slices.Equal(got, []string{"F1", "F2"}) {
		t.Errorf("Codes() = %v, want [F1 F2]", got)
	}
}

func TestCatalog_ZeroValue(t *testing.T) {
	var c Catalog
	if c.Len() != 0 || c.Has("x") {
		t.Error("zero Catalog should be empty")
	}
}

func TestSortBySemester(t *testing.T) {
	subjects := []Subject{
		{Code: "c", Semester: 3},
		{Code: "none"},
		{Code: "a", Semester: 1},
		{Code: "b", Semester: 3},
	}
	SortBySemester(subjects)

	var got []string
	for _, s := range subjects {
		got = append(got, s.Code)
	}
	want := []string{"a", "c", "b", "none"}
	if !slices.Equal(got, want) {
		t.Errorf("SortBySemester order = %v, want %v", got, want)
	}
}

func TestEffectiveDictation(t *testing.T) {
	tests := []struct {
		subject Subject
		want    DictationSemester
	}{
		{Subject{Semester: 1}, DictationOdd},
		{Subject{Semester: 4}, DictationEven},
		{Subject{Semester: 4, Dictation: DictationBoth}, DictationBoth},
	}
	for _, tt := range tests {
		if got := tt.subject.EffectiveDictation(); got != tt.want {
			t.Errorf("EffectiveDictation(%+v) = %q, want %q", tt.subject, got, tt.want)
		}
	}
}

func TestParseDictationSemester(t *testing.T) {
	tests := []struct {
		in     string
		want   DictationSemester
		wantOK bool
	}{
		{"", "", true},
		{"1", DictationOdd, true},
		{"even", DictationEven, true},
		{" Both ", DictationBoth, true},
		{"3", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseDictationSemester(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseDictationSemester(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
