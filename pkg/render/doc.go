// Package render holds the output formats shared by the graph renderers.
//
// The [nodelink] subpackage draws the prerequisite graph with Graphviz.
// [ToPDF] and [ToPNG] convert any SVG it produces using the external
// rsvg-convert tool (from librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/manucepeda/materias-electrica/pkg/render/nodelink
package render
