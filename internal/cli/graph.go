package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/manucepeda/materias-electrica/pkg/cache"
	"github.com/manucepeda/materias-electrica/pkg/errors"
	"github.com/manucepeda/materias-electrica/pkg/render"
	"github.com/manucepeda/materias-electrica/pkg/render/nodelink"
)

// Graph output formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"
)

var graphFormats = []string{formatDOT, formatSVG, formatPDF, formatPNG}

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output   string  // output file, stdout when empty
	format   string  // dot, svg, pdf or png
	target   string  // draw only this subject and its prerequisites
	detailed bool    // credits and semester in labels
	scale    float64 // PNG scale factor
	noCache  bool    // bypass the render cache
}

// graphCommand creates the graph command that draws the prerequisite graph.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{scale: 2}

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Draw the prerequisite graph",
		Long: `Graph draws subjects grouped by semester with an arrow from each
prerequisite to the subject it gates. Dashed arrows require exoneration and
dotted arrows are alternatives of an OR requirement. Node colors follow the
recorded progress.

DOT output needs nothing else. SVG uses the embedded Graphviz; PDF and PNG
also need rsvg-convert from librsvg.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format == "" {
				opts.format = formatFromPath(opts.output)
			}
			if !slices.Contains(graphFormats, opts.format) {
				return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (use %s)", opts.format, strings.Join(graphFormats, ", "))
			}
			ws, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			return c.runGraph(cmd.Context(), ws, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, pdf, png (default from --output, else dot)")
	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "only draw this subject and its prerequisites")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show credits and semester in nodes")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "always re-render instead of reusing cached output")
	_ = cmd.RegisterFlagCompletionFunc("target", c.completeSubjects)
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(graphFormats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// formatFromPath infers the output format from a file extension.
func formatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if slices.Contains(graphFormats, ext) {
		return ext
	}
	return formatDOT
}

func (c *CLI) runGraph(ctx context.Context, ws *workspace, opts graphOpts) error {
	nopts := nodelink.Options{Detailed: opts.detailed}
	if opts.target != "" {
		if err := ws.requireSubject(opts.target); err != nil {
			return err
		}
		nopts.Only = append(ws.engine.Ancestors(opts.target), opts.target)
	}

	dot := nodelink.ToDOT(ws.engine.Catalog().Subjects(), nodelink.States(ws.engine), nopts)

	data, err := c.render(ctx, dot, opts)
	if err != nil {
		return fmt.Errorf("render %s: %w", opts.format, err)
	}

	if opts.output == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Graph written")
	printFile(opts.output)
	return nil
}

// renderTTL bounds how long a cached render is reused.
const renderTTL = 30 * 24 * time.Hour

// render converts dot to the requested format, going through the render
// cache for formats that need Graphviz.
func (c *CLI) render(ctx context.Context, dot string, opts graphOpts) ([]byte, error) {
	if opts.format == formatDOT {
		return []byte(dot), nil
	}

	var store cache.Cache = cache.NewNullCache()
	if !opts.noCache {
		fc, err := openRenderCache()
		if err != nil {
			c.Logger.Warn("render cache disabled", "error", err)
		} else {
			store = fc
		}
	}
	defer store.Close()

	key := cache.ArtifactKey(dot, opts.format, opts.scale)
	if data, hit, err := store.Get(ctx, key); err == nil && hit {
		c.Logger.Debug("render cache hit", "format", opts.format)
		return data, nil
	}
	if opts.format != formatSVG && !render.CanConvert() {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "%s output requires rsvg-convert (librsvg); use --format svg or install librsvg", opts.format)
	}

	sw := newStopwatch(c.Logger)
	spin := startSpinner(ctx, "Rendering "+opts.format+"...")
	var (
		data []byte
		err  error
	)
	switch opts.format {
	case formatSVG:
		data, err = nodelink.RenderSVG(ctx, dot)
	case formatPDF:
		data, err = nodelink.RenderPDF(ctx, dot)
	case formatPNG:
		data, err = nodelink.RenderPNG(ctx, dot, opts.scale)
	}
	spin.stop()
	if err != nil {
		return nil, err
	}
	sw.done("Rendered " + opts.format)

	if err := store.Set(ctx, key, data, renderTTL); err != nil {
		c.Logger.Warn("render cache write failed", "error", err)
	}
	return data, nil
}
