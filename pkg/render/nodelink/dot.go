package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/samber/lo"

	"github.com/manucepeda/materias-electrica/pkg/curriculum"
	"github.com/manucepeda/materias-electrica/pkg/prereq"
	"github.com/manucepeda/materias-electrica/pkg/render"
)

// State is the standing of a subject for coloring.
type State int

const (
	StateBlocked State = iota
	StateAvailable
	StateApproved
	StateExonerated
)

var fills = map[State]string{
	StateBlocked:    "white",
	StateAvailable:  "lightyellow",
	StateApproved:   "lightblue",
	StateExonerated: "palegreen",
}

// States classifies every subject of the engine's catalog by the current
// progress.
func States(e *prereq.Engine) map[string]State {
	out := make(map[string]State, e.Catalog().Len())
	for _, code := range e.Catalog().Codes() {
		switch {
		case e.State().IsExonerated(code):
			out[code] = StateExonerated
		case e.State().IsApproved(code):
			out[code] = StateApproved
		case e.IsSubjectAvailable(code):
			out[code] = StateAvailable
		default:
			out[code] = StateBlocked
		}
	}
	return out
}

// Options configures diagram generation.
type Options struct {
	// Detailed adds credits and semester to node labels.
	Detailed bool
	// Only restricts the diagram to these codes. Nil draws every subject.
	Only []string
}

type edge struct {
	from, to    string
	exoneration bool
	option      bool
}

// ToDOT converts subjects to Graphviz DOT. states may be nil or incomplete;
// missing entries draw as blocked. References to codes that are not drawn
// are skipped.
func ToDOT(subjects []curriculum.Subject, states map[string]State, opts Options) string {
	if opts.Only != nil {
		keep := lo.SliceToMap(opts.Only, func(c string) (string, bool) { return c, true })
		subjects = lo.Filter(subjects, func(s curriculum.Subject, _ int) bool { return keep[s.Code] })
	}
	drawn := lo.SliceToMap(subjects, func(s curriculum.Subject) (string, bool) { return s.Code, true })

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")

	bySemester := lo.GroupBy(subjects, func(s curriculum.Subject) int { return s.SortSemester() })
	for _, sem := range slices.Sorted(maps.Keys(bySemester)) {
		fmt.Fprintf(&buf, "\n  subgraph \"semester_%d\" {\n    rank=same;\n", sem)
		for _, s := range bySemester[sem] {
			fmt.Fprintf(&buf, "    %q [%s];\n", s.Code, strings.Join(nodeAttrs(s, states[s.Code], opts.Detailed), ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, s := range subjects {
		for _, e := range edgesOf(s) {
			if !drawn[e.from] {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q%s;\n", e.from, e.to, edgeAttrs(e))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(s curriculum.Subject, st State, detailed bool) []string {
	label := s.Code + "\n" + s.Name
	if detailed {
		label += fmt.Sprintf("\n%d créditos, semestre %d", s.Credits, s.Semester)
	}
	attrs := []string{fmt.Sprintf("label=%q", label), "fillcolor=" + fills[st]}
	if st == StateBlocked {
		attrs = append(attrs, "fontcolor=gray30")
	}
	if s.ExamOnly {
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

func edgeAttrs(e edge) string {
	var attrs []string
	switch {
	case e.exoneration:
		attrs = append(attrs, "style=dashed")
	case e.option:
		attrs = append(attrs, "style=dotted")
	}
	if len(attrs) == 0 {
		return ""
	}
	return " [" + strings.Join(attrs, ", ") + "]"
}

// edgesOf lists one edge per referenced code of s, keeping the strongest
// relation when a code appears more than once.
func edgesOf(s curriculum.Subject) []edge {
	var out []edge
	index := make(map[string]int)
	var add func(c curriculum.Simple, option bool)
	add = func(c curriculum.Simple, option bool) {
		for _, n := range c.Nested {
			add(n, true)
		}
		if c.Code == "" || c.Code == s.Code {
			return
		}
		e := edge{from: c.Code, to: s.Code, exoneration: c.RequiresExoneration, option: option}
		if i, ok := index[c.Code]; ok {
			out[i].exoneration = out[i].exoneration || e.exoneration
			out[i].option = out[i].option && e.option
			return
		}
		index[c.Code] = len(out)
		out = append(out, e)
	}

	var visit func(req curriculum.Requirement, option bool)
	visit = func(req curriculum.Requirement, option bool) {
		switch r := req.(type) {
		case curriculum.Simple:
			add(r, option)
		case curriculum.AllOf:
			for _, c := range r.Conditions {
				add(c, option)
			}
		case curriculum.AnyOf:
			for _, o := range r.Options {
				visit(o, true)
			}
		}
	}
	for _, req := range s.Requirements {
		visit(req, false)
	}
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion at the given scale.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
