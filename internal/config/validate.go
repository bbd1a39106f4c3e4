package config

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateProject(); err != nil {
		return err
	}
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validatePackaging(); err != nil {
		return err
	}
	if err := c.validateShebang(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateProject() error {
	if len(c.Project.Scripts) == 0 {
		return errors.New("project.scripts must name at least one entry-point script")
	}
	for _, script := range c.Project.Scripts {
		if strings.TrimSpace(script) == "" {
			return errors.New("project.scripts must not contain empty names")
		}
		if path.IsAbs(script) || strings.Contains(script, "..") {
			return fmt.Errorf("project.scripts entry %q must be relative to the project root", script)
		}
	}
	if !strings.HasSuffix(c.Project.DesktopFile, ".desktop") {
		return fmt.Errorf("project.desktop_file %q must have a .desktop extension", c.Project.DesktopFile)
	}
	return nil
}

func (c *Config) validatePaths() error {
	if !path.IsAbs(c.Paths.Prefix) {
		return fmt.Errorf("paths.prefix %q must be absolute", c.Paths.Prefix)
	}
	if !path.IsAbs(c.Paths.ExecPrefix) {
		return fmt.Errorf("paths.exec_prefix %q must be absolute", c.Paths.ExecPrefix)
	}
	if !path.IsAbs(c.Paths.DataRootDir) {
		return fmt.Errorf("paths.datarootdir %q must be absolute", c.Paths.DataRootDir)
	}
	if c.Paths.DestDir != "" && !path.IsAbs(c.Paths.DestDir) {
		return fmt.Errorf("paths.destdir %q must be absolute when set", c.Paths.DestDir)
	}
	return nil
}

func (c *Config) validatePackaging() error {
	if strings.TrimSpace(c.Packaging.Command) == "" {
		return errors.New("packaging.command must be set")
	}
	for _, glob := range c.Packaging.PackageDirGlobs {
		if path.IsAbs(glob) {
			return fmt.Errorf("packaging.package_dir_globs entry %q must be relative to the prefix", glob)
		}
	}
	return nil
}

func (c *Config) validateShebang() error {
	if strings.ContainsAny(c.Shebang.Interpreter, "/ ") {
		return fmt.Errorf("shebang.interpreter %q must be a bare command name for PATH lookup", c.Shebang.Interpreter)
	}
	if strings.TrimSpace(c.Shebang.Fallback) == "" {
		return errors.New("shebang.fallback must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
