package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Project describes the source tree farrdist operates on. All relative paths
// are resolved against Root.
type Project struct {
	// Root is the project source tree; defaults to the working directory.
	Root string `toml:"root"`
	// MetadataFile carries the "<Name> <version>." first-line convention.
	MetadataFile string `toml:"metadata_file"`
	// SourceDir is scanned for translatable strings.
	SourceDir string `toml:"source_dir"`
	// PoDir holds the per-language translation sources and the template.
	PoDir string `toml:"po_dir"`
	// LocaleDir receives compiled catalogs for in-place builds.
	LocaleDir string `toml:"locale_dir"`
	// Scripts are the entry-point scripts whose shebangs are managed.
	Scripts []string `toml:"scripts"`
	// DesktopFile is the desktop entry installed under applications/.
	DesktopFile string `toml:"desktop_file"`
	// IconRoot contains the icon theme tree (icons/hicolor/<size>/apps).
	IconRoot string `toml:"icon_root"`
	// DocFiles are installed into the documentation directory.
	DocFiles []string `toml:"doc_files"`
}

// Paths contains install prefix configuration following GNU conventions.
type Paths struct {
	// Prefix is the install prefix (default /usr/local).
	Prefix string `toml:"prefix"`
	// ExecPrefix defaults to Prefix when empty.
	ExecPrefix string `toml:"exec_prefix"`
	// DataRootDir defaults to <prefix>/share when empty.
	DataRootDir string `toml:"datarootdir"`
	// DestDir is the staging root prepended to every destination path.
	DestDir string `toml:"destdir"`
}

// Packaging configures the external packaging collaborator.
type Packaging struct {
	// Command is the packaging executable exposing build / install / remove.
	Command string `toml:"command"`
	// PackageDirGlobs name the installed package directories removed directly
	// when the packaging remove hook fails.
	PackageDirGlobs []string `toml:"package_dir_globs"`
	// TimeoutSeconds bounds a single packaging invocation. Zero means no limit.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Shebang configures interpreter directive rewriting.
type Shebang struct {
	// Interpreter is the versioned interpreter looked up on PATH in forward mode.
	Interpreter string `toml:"interpreter"`
	// Fallback is the fixed directive written in reverse mode.
	Fallback string `toml:"fallback"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for farrdist.
//
// Configuration sections by subsystem:
//   - Project: source tree layout (metadata file, po dir, scripts, icons)
//   - Paths: install prefixes and the staging root
//   - Packaging: the external packaging command and its fallbacks
//   - Shebang: interpreter directive policy for entry-point scripts
//   - Logging: log format and level
type Config struct {
	Project   Project   `toml:"project"`
	Paths     Paths     `toml:"paths"`
	Packaging Packaging `toml:"packaging"`
	Shebang   Shebang   `toml:"shebang"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/farrdist/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized, and environment
// overrides applied.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("farrdist.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return projectPath, false, nil
}

// ProjectPath resolves a path relative to the project root.
func (c *Config) ProjectPath(elem ...string) string {
	return filepath.Join(append([]string{c.Project.Root}, elem...)...)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
