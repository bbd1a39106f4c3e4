package config

import (
	"fmt"
	"os"
	"path"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeProject(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePackaging()
	c.normalizeShebang()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeProject() error {
	var err error
	if strings.TrimSpace(c.Project.Root) == "" {
		c.Project.Root = "."
	}
	if c.Project.Root, err = expandPath(c.Project.Root); err != nil {
		return fmt.Errorf("project.root: %w", err)
	}
	if strings.TrimSpace(c.Project.MetadataFile) == "" {
		c.Project.MetadataFile = defaultMetadataFile
	}
	if strings.TrimSpace(c.Project.SourceDir) == "" {
		c.Project.SourceDir = defaultSourceDir
	}
	if strings.TrimSpace(c.Project.PoDir) == "" {
		c.Project.PoDir = defaultPoDir
	}
	if strings.TrimSpace(c.Project.LocaleDir) == "" {
		c.Project.LocaleDir = defaultLocaleDir
	}
	if strings.TrimSpace(c.Project.IconRoot) == "" {
		c.Project.IconRoot = defaultIconRoot
	}
	return nil
}

// normalizePaths applies the standard environment overrides and prefix
// fallback chain: exec_prefix defaults to prefix, datarootdir to
// <prefix>/share.
func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("PREFIX"); ok && strings.TrimSpace(value) != "" {
		c.Paths.Prefix = value
	}
	if value, ok := os.LookupEnv("EXEC_PREFIX"); ok && strings.TrimSpace(value) != "" {
		c.Paths.ExecPrefix = value
	}
	if value, ok := os.LookupEnv("DATAROOTDIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.DataRootDir = value
	}
	if value, ok := os.LookupEnv("DESTDIR"); ok {
		c.Paths.DestDir = value
	}

	if strings.TrimSpace(c.Paths.Prefix) == "" {
		c.Paths.Prefix = defaultPrefix
	}
	c.Paths.Prefix = path.Clean(c.Paths.Prefix)
	if strings.TrimSpace(c.Paths.ExecPrefix) == "" {
		c.Paths.ExecPrefix = c.Paths.Prefix
	} else {
		c.Paths.ExecPrefix = path.Clean(c.Paths.ExecPrefix)
	}
	if strings.TrimSpace(c.Paths.DataRootDir) == "" {
		c.Paths.DataRootDir = path.Join(c.Paths.Prefix, "share")
	} else {
		c.Paths.DataRootDir = path.Clean(c.Paths.DataRootDir)
	}
	if strings.TrimSpace(c.Paths.DestDir) != "" {
		c.Paths.DestDir = path.Clean(c.Paths.DestDir)
	} else {
		c.Paths.DestDir = ""
	}
	return nil
}

func (c *Config) normalizePackaging() {
	if strings.TrimSpace(c.Packaging.Command) == "" {
		c.Packaging.Command = defaultPackagingCommand
	}
	if c.Packaging.TimeoutSeconds < 0 {
		c.Packaging.TimeoutSeconds = 0
	}
}

func (c *Config) normalizeShebang() {
	if strings.TrimSpace(c.Shebang.Interpreter) == "" {
		c.Shebang.Interpreter = defaultInterpreter
	}
	if strings.TrimSpace(c.Shebang.Fallback) == "" {
		c.Shebang.Fallback = defaultFallback
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format == "" {
		format = defaultLogFormat
	}
	c.Logging.Format = format

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level
}
