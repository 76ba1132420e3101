package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/manucepeda/materias-electrica/pkg/errors"
)

// Config is the contents of config.toml.
//
//	catalog = "~/materias/catalog.yaml"
//	progress = "~/materias/progress.json"
//	profiles = "~/materias/profiles.toml"
//
// Relative paths are resolved against the directory of the config file.
type Config struct {
	Catalog  string `toml:"catalog"`
	Progress string `toml:"progress"`
	Profiles string `toml:"profiles"`
}

// loadConfig reads the config file. An explicit path must exist; otherwise
// the XDG location is tried and a missing file yields the defaults.
func loadConfig(explicit string, logger *log.Logger) (Config, error) {
	cfg := Config{Catalog: defaultCatalog}

	path := explicit
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
		if _, err := os.Stat(path); err != nil {
			return cfg, nil
		}
	}

	var file Config
	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	for _, key := range md.Undecoded() {
		logger.Warn("unknown config key", "key", key.String(), "file", path)
	}
	logger.Debug("config loaded", "file", path)

	base := filepath.Dir(path)
	if file.Catalog != "" {
		cfg.Catalog = resolvePath(base, file.Catalog)
	}
	cfg.Progress = resolvePath(base, file.Progress)
	cfg.Profiles = resolvePath(base, file.Profiles)
	return cfg, nil
}

// resolvePath expands a leading ~ and makes p relative to base.
func resolvePath(base, p string) string {
	if p == "" {
		return ""
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// config returns the effective configuration: the config file overridden
// by any explicit flag.
func (c *CLI) config() (Config, error) {
	cfg, err := loadConfig(c.configPath, c.Logger)
	if err != nil {
		return cfg, err
	}
	if c.catalogPath != "" {
		cfg.Catalog = c.catalogPath
	}
	if c.progressPath != "" {
		cfg.Progress = c.progressPath
	}
	if c.profilesPath != "" {
		cfg.Profiles = c.profilesPath
	}
	return cfg, nil
}
