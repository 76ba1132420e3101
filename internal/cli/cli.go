// Package cli implements the materias command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/manucepeda/materias-electrica/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "materias"

	// defaultCatalog is the catalog path used when neither flags nor the
	// config file name one.
	defaultCatalog = "data/catalog.json"
)

// Log levels accepted by New.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Persistent flag values. Empty means "use config or default".
	configPath   string
	catalogPath  string
	progressPath string
	profilesPath string
	verbose      bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Materias explores the electrical engineering curriculum",
		Long: `Materias answers which subjects you can take next in the electrical
engineering curriculum, what is still missing for the ones you cannot, and
what finishing a subject would unlock.

Progress is kept in a local file and updated with 'mark' or the interactive
'board'.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/materias/config.toml)")
	flags.StringVar(&c.catalogPath, "catalog", "", "subject catalog, .json or .yaml (default "+defaultCatalog+")")
	flags.StringVar(&c.progressPath, "progress", "", "progress file (default $XDG_DATA_HOME/materias/progress.json)")
	flags.StringVar(&c.profilesPath, "profiles", "", "profiles file (.toml)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log timings and data diagnostics")

	// Register all subcommands
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.statusCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.unlocksCommand())
	root.AddCommand(c.markCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.boardCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/materias/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// cacheDir returns the render cache directory using XDG standard (~/.cache/materias/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
