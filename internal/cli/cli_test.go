package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/manucepeda/materias-electrica/pkg/cache"
	"github.com/manucepeda/materias-electrica/pkg/errors"
	"github.com/manucepeda/materias-electrica/pkg/render/nodelink"
)

const scenarioCatalog = `[
  {"codigo": "P1", "nombre": "Programación 1", "creditos": 10, "semestre": 1},
  {"codigo": "P2", "nombre": "Programación 2", "creditos": 12, "semestre": 2},
  {"codigo": "P3", "nombre": "Programación 3", "creditos": 12, "semestre": 3,
   "prerequisites": [
     {"tipo": "OR", "opciones": [
       {"tipo": "SIMPLE", "codigo": "P2", "requiere_curso": true},
       {"tipo": "SIMPLE", "codigo": "P1", "requiere_exoneracion": true}
     ]}
   ]},
  {"codigo": "P4", "nombre": "Programación 4", "creditos": 15, "semestre": 4,
   "prerequisites": [
     {"tipo": "AND", "condiciones": [{"codigo": "P3", "requiere_curso": true}]}
   ]}
]`

const scenarioProfiles = `
[[profile]]
name = "Software"
core = ["P1", "P2"]

  [[profile.emphasis]]
  name = "Avanzado"
  core = ["P4"]
`

// testEnv is an isolated set of files for running commands.
type testEnv struct {
	dir      string
	catalog  string
	progress string
	profiles string
}

func newTestEnv(t *testing.T, catalog string) testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	env := testEnv{
		dir:      dir,
		catalog:  filepath.Join(dir, "catalog.json"),
		progress: filepath.Join(dir, "progress.json"),
		profiles: filepath.Join(dir, "profiles.toml"),
	}
	writeFile(t, env.catalog, catalog)
	writeFile(t, env.profiles, scenarioProfiles)
	return env
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func (env testEnv) cli() *CLI {
	c := New(io.Discard, log.InfoLevel)
	c.catalogPath = env.catalog
	c.progressPath = env.progress
	c.profilesPath = env.profiles
	return c
}

// run executes the command line and returns what it printed.
func (env testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	captureStderr(t)

	root := env.cli().RootCommand()
	root.SetArgs(append([]string{
		"--catalog", env.catalog,
		"--progress", env.progress,
		"--profiles", env.profiles,
	}, args...))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func (env testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := env.run(t, args...)
	if err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func assertNotContains(t *testing.T, out string, unwanted ...string) {
	t.Helper()
	for _, w := range unwanted {
		if strings.Contains(out, w) {
			t.Errorf("output should not contain %q:\n%s", w, out)
		}
	}
}

func TestMarkUnlocksAndPersists(t *testing.T) {
	env := newTestEnv(t, scenarioCatalog)

	out := env.mustRun(t, "mark", "P2", "approved")
	assertContains(t, out, "P2", "now available: P3")

	data, err := os.ReadFile(env.progress)
	if err != nil {
		t.Fatalf("progress file not written: %v", err)
	}
	if !strings.Contains(string(data), `"P2"`) {
		t.Errorf("progress file = %s, want P2 recorded", data)
	}

	out = env.mustRun(t, "status", "P3")
	assertContains(t, out, "Programación 3", "available", "está disponible para cursar")

	out = env.mustRun(t, "mark", "P2", "unset")
	assertNotContains(t, out, "now available:")
	out = env.mustRun(t, "status", "P3")
	assertContains(t, out, "blocked", "Salvar curso Programación 2", "Exonerar Programación 1")
}

func TestMarkReportsOnlyNewlyUnlocked(t *testing.T) {
	env := newTestEnv(t, scenarioCatalog)

	out := env.mustRun(t, "mark", "P1", "approved")
	assertNotContains(t, out, "now available:")

	out = env.mustRun(t, "mark", "P1", "exonerated")
	assertContains(t, out, "P1 is now exonerated", "now available: P3")

	out = env.mustRun(t, "mark", "P1", "unset")
	assertContains(t, out, "P1 is now available")
	assertNotContains(t, out, "now available:")

	env.mustRun(t, "mark", "P2", "approved")
	out = env.mustRun(t, "mark", "P2", "exonerated")
	assertNotContains(t, out, "now available:")
}

func TestMarkErrors(t *testing.T) {
	env := newTestEnv(t, scenarioCatalog)

	_, err := env.run(t, "mark", "NOPE", "approved")
	if !errors.Is(err, errors.ErrCodeSubjectNotFound) {
		t.Errorf("unknown subject: got %v, want %s", err, errors.ErrCodeSubjectNotFound)
	}

	if _, err := env.run(t, "mark", "P1", "maybe"); err == nil {
		t.Error("unknown status should fail")
	}
	if _, err := os.Stat(env.progress); !os.IsNotExist(err) {
		t.Error("failed marks should not write progress")
	}
}

func TestStatusSummary(t *testing.T) {
	env := newTestEnv(t, scenarioCatalog)
	env.mustRun(t, "mark", "P1", "exonerated")

	out := env.mustRun(t, "status")
	assertContains(t, out, "Progress", "Exonerated", "Credits", "10")
}

func TestPath(t *testing.T) {
	env := newTestEnv(t, scenarioCatalog)

	out := env.mustRun(t, "path", "P4")
	assertContains(t, out, "Path to Programación 4", "Available now", "P1", "P2", "Still blocked", "P3")

	env.mustRun(t, "mark", "P3", "approved")
	out = env.mustRun(t, "path", "P4")
	assertContains(t, out, "Programación 4 can be taken now")
	assertNotContains(t, out, "Available now", "Still blocked")
}

func TestUnlocks(t *testing.T) {
	env := newTestEnv(t, scenarioCatalog)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"unlocks", "P2"}, "unlocks 1 subjects"},
		{[]string{"unlocks", "P1"}, "unlocks nothing new"},
		{[]string{"unlocks", "P1", "--exonerated"}, "Exonerating P1 unlocks 1 subjects"},
		{[]string{"unlocks", "P3"}, "P4"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			assertContains(t, env.mustRun(t, tt.args...), tt.want)
		})
	}

	if _, err := os.Stat(env.progress); !os.IsNotExist(err) {
		t.Error("unlocks should not write progress")
	}
}

func TestList(t *testing.T) {
	env := newTestEnv(t, scenarioCatalog)

	out := env.mustRun(t, "list")
	assertContains(t, out, "Code", "P1", "P4", "4 subjects, 49 credits")

	out = env.mustRun(t, "list", "--available")
	assertContains(t, out, "P1", "P2", "2 subjects")
	assertNotContains(t, out, "P3", "P4")

	out = env.mustRun(t, "list", "--where", "semester >= 3 && !available")
	assertContains(t, out, "P3", "P4", "2 subjects")

	out = env.mustRun(t, "list", "--credits", "16+")
	assertContains(t, out, "No subjects match")

	out = env.mustRun(t, "list", "--profile", "software")
	assertContains(t, out, "2 subjects, 22 credits")

	out = env.mustRun(t, "list", "--profile", "Software", "--emphasis", "Avanzado", "--sort", "code")
	assertContains(t, out, "P4", "3 subjects")
}

func TestListErrors(t *testing.T) {
	env := newTestEnv(t, scenarioCatalog)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad expression", []string{"list", "--where", "credits +"}, errors.ErrCodeInvalidExpression},
		{"bad credits", []string{"list", "--credits", "lots"}, errors.ErrCodeInvalidInput},
		{"bad sort", []string{"list", "--sort", "color"}, errors.ErrCodeInvalidInput},
		{"unknown profile", []string{"list", "--profile", "Biología"}, errors.ErrCodeProfileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := env.run(t, "list", "--emphasis", "Avanzado"); err == nil {
		t.Error("--emphasis without --profile should fail")
	}
}

func TestValidate(t *testing.T) {
	env := newTestEnv(t, scenarioCatalog)
	out := env.mustRun(t, "validate")
	assertContains(t, out, "4 subjects", "No problems found")

	broken := newTestEnv(t, `[
	  {"codigo": "MI", "nombre": "Materia inválida", "prerequisites": [{"tipo": "SIMPLE", "codigo": "XYZ", "requiere_curso": true}]},
	  {"codigo": "MI", "nombre": "Duplicada"}
	]`)
	out, err := broken.run(t, "validate")
	if !errors.Is(err, errors.ErrCodeInvalidReference) {
		t.Errorf("got %v, want %s", err, errors.ErrCodeInvalidReference)
	}
	assertContains(t, out, "XYZ", "MI")
}

func TestGraph(t *testing.T) {
	env := newTestEnv(t, scenarioCatalog)

	out := env.mustRun(t, "graph")
	assertContains(t, out, "digraph G", `"P3" -> "P4"`)

	file := filepath.Join(env.dir, "p3.dot")
	env.mustRun(t, "graph", "--target", "P3", "-o", file)
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, string(data), `"P2" -> "P3"`, `"P1" -> "P3"`)
	assertNotContains(t, string(data), `"P4"`)

	_, err = env.run(t, "graph", "--format", "gif")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("got %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"":            formatDOT,
		"out.svg":     formatSVG,
		"OUT.PNG":     formatPNG,
		"plan.pdf":    formatPDF,
		"graph.txt":   formatDOT,
		"dir/out.dot": formatDOT,
	}
	for path, want := range tests {
		if got := formatFromPath(path); got != want {
			t.Errorf("formatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestCompletion(t *testing.T) {
	env := newTestEnv(t, scenarioCatalog)
	out := env.mustRun(t, "completion", "bash")
	assertContains(t, out, "materias")

	root := env.cli().RootCommand()
	cmd, _, err := root.Find([]string{"status"})
	if err != nil {
		t.Fatal(err)
	}
	cmd.SetContext(context.Background())
	c := env.cli()
	got := c.subjectCompletions(cmd, "p")
	want := []string{"P1\tProgramación 1", "P2\tProgramación 2", "P3\tProgramación 3", "P4\tProgramación 4"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("completions = %q, want %q", got, want)
	}
}

func TestSampleDataIsClean(t *testing.T) {
	env := testEnv{
		dir:      t.TempDir(),
		catalog:  filepath.Join("..", "..", "data", "catalog.json"),
		profiles: filepath.Join("..", "..", "data", "profiles.toml"),
	}
	t.Setenv("XDG_CONFIG_HOME", env.dir)
	env.progress = filepath.Join(env.dir, "progress.json")

	out := env.mustRun(t, "validate")
	assertContains(t, out, "16 subjects", "No problems found")
}

func TestGraphUsesRenderCache(t *testing.T) {
	env := newTestEnv(t, scenarioCatalog)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(env.dir, "cache"))

	ws, err := env.cli().open(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	dot := nodelink.ToDOT(ws.engine.Catalog().Subjects(), nodelink.States(ws.engine), nodelink.Options{})
	fc, err := openRenderCache()
	if err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(t.Context(), cache.ArtifactKey(dot, formatSVG, 2), []byte("<svg>cached</svg>"), 0); err != nil {
		t.Fatal(err)
	}

	out := env.mustRun(t, "graph", "--format", "svg")
	if out != "<svg>cached</svg>" {
		t.Errorf("graph output = %q, want the cached render", out)
	}

	out = env.mustRun(t, "cache", "path")
	assertContains(t, out, filepath.Join(env.dir, "cache", appName))

	out = env.mustRun(t, "cache", "clear")
	assertContains(t, out, "Cleared 1 cached renders")
	out = env.mustRun(t, "cache", "clear")
	assertContains(t, out, "Cache is empty")
}
