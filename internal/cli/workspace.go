package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/manucepeda/materias-electrica/pkg/errors"
	"github.com/manucepeda/materias-electrica/pkg/filter"
	catalogio "github.com/manucepeda/materias-electrica/pkg/io"
	"github.com/manucepeda/materias-electrica/pkg/observability"
	"github.com/manucepeda/materias-electrica/pkg/prereq"
	"github.com/manucepeda/materias-electrica/pkg/profile"
	"github.com/manucepeda/materias-electrica/pkg/progress"
)

// workspace bundles everything a command needs: the engine over the loaded
// catalog and the student's stored progress.
type workspace struct {
	engine   *prereq.Engine
	store    *progress.FileStore
	profiles *profile.Set // nil when no profiles file is configured

	// Warnings from decoding the catalog file.
	warnings []error
	// Diagnostics from the engine load.
	diagnostics []error
}

// open loads config, catalog, progress and profiles.
func (c *CLI) open(ctx context.Context) (*workspace, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}

	sw := newStopwatch(c.Logger)
	doc, err := catalogio.Import(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	for _, w := range doc.Warnings {
		c.Logger.Warn("catalog entry", "file", cfg.Catalog, "problem", w)
	}

	store, err := progress.NewFileStore(cfg.Progress)
	if err != nil {
		return nil, fmt.Errorf("progress store: %w", err)
	}
	state, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load progress %s: %w", store.Path(), err)
	}

	engine, diags := prereq.New(doc.Subjects,
		prereq.WithLogger(c.Logger),
		prereq.WithState(state),
		prereq.WithHooks(logHooks{logger: c.Logger}),
	)
	sw.done(fmt.Sprintf("Loaded %d subjects", engine.Catalog().Len()))

	ws := &workspace{
		engine:      engine,
		store:       store,
		warnings:    doc.Warnings,
		diagnostics: diags,
	}

	if cfg.Profiles != "" {
		set, err := profile.Load(cfg.Profiles)
		if err != nil {
			return nil, fmt.Errorf("load profiles: %w", err)
		}
		ws.profiles = set
	}
	return ws, nil
}

// save writes the engine's progress back to the store.
func (ws *workspace) save(ctx context.Context) error {
	return ws.store.Save(ctx, ws.engine.State())
}

// requireSubject reports an error for codes outside the catalog.
func (ws *workspace) requireSubject(code string) error {
	if err := errors.ValidateSubjectCode(code); err != nil {
		return err
	}
	if !ws.engine.Catalog().Has(code) {
		return errors.New(errors.ErrCodeSubjectNotFound, "unknown subject %q", code)
	}
	return nil
}

// profile resolves the profile flag. An empty name yields nil.
func (ws *workspace) profile(name string) (*profile.Profile, error) {
	if name == "" {
		return nil, nil
	}
	if ws.profiles == nil {
		return nil, errors.New(errors.ErrCodeProfileNotFound, "no profiles file configured (use --profiles or the profiles config key)")
	}
	return ws.profiles.Lookup(name)
}

// logHooks reports engine events at debug level.
type logHooks struct {
	logger *log.Logger
}

var _ observability.EngineHooks = logHooks{}

func (h logHooks) OnCatalogLoad(subjects, diagnostics int, d time.Duration) {
	h.logger.Debug("engine loaded", "subjects", subjects, "diagnostics", diagnostics, "duration", d)
}

func (h logHooks) OnCycleDetected(subject, via string) {
	h.logger.Debug("cycle edge dropped", "subject", subject, "via", via)
}

func (h logHooks) OnStateChange(code, from, to string) {
	h.logger.Debug("progress changed", "subject", code, "from", from, "to", to)
}

// standingOf classifies code for display.
func (ws *workspace) standingOf(code string) standing {
	switch ws.engine.State().Status(code) {
	case progress.StatusExonerated:
		return standingExonerated
	case progress.StatusApproved:
		return standingApproved
	}
	if ws.engine.IsSubjectAvailable(code) {
		return standingAvailable
	}
	return standingBlocked
}

// facts exposes progress to filter expressions.
func (ws *workspace) facts(code string) filter.Facts {
	st := ws.engine.ApprovalState(code)
	return filter.Facts{
		Available:  ws.engine.IsSubjectAvailable(code),
		Approved:   st.IsApproved,
		Exonerated: st.IsExonerated,
	}
}
