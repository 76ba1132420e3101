// Package nodelink renders the prerequisite graph as a node-link diagram.
//
// # Overview
//
// Every subject becomes a box and every referenced prerequisite an arrow
// from the prerequisite to the subject that needs it. Subjects of the same
// nominal semester share a rank, so the diagram reads top to bottom like
// the study plan.
//
//	dot := nodelink.ToDOT(catalog.Subjects(), nodelink.States(engine), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Styling
//
// Node fill encodes the student's standing (see [State]). Edges that need
// the prerequisite exonerated are dashed; edges that come from one option of
// an OR are dotted.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion lives in the parent render package and
// requires librsvg.
package nodelink
