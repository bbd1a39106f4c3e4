package main

import (
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"farrdist/internal/config"
	"farrdist/internal/installer"
	"farrdist/internal/logging"
	"farrdist/internal/metadata"
	"farrdist/internal/packaging"
	"farrdist/internal/shebang"
)

type commandContext struct {
	configFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	log        *slog.Logger
	logErr     error

	projectOnce sync.Once
	project     metadata.Project
	projectErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolvedPath, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolvedPath
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logErr = err
			return
		}
		c.log, c.logErr = logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
	})
	return c.log, c.logErr
}

// ensureProject reads the program identity from the metadata file once per
// invocation.
func (c *commandContext) ensureProject() (metadata.Project, error) {
	c.projectOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.projectErr = err
			return
		}
		c.project, c.projectErr = metadata.Load(cfg.ProjectPath(cfg.Project.MetadataFile))
	})
	return c.project, c.projectErr
}

// newFixer builds the shebang fixer from configuration; trace receives the
// names of modified scripts.
func (c *commandContext) newFixer(trace io.Writer) (*shebang.Fixer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.logger()
	if err != nil {
		return nil, err
	}
	opts := []shebang.Option{}
	if trace != nil {
		opts = append(opts, shebang.WithTrace(trace))
	}
	return shebang.New(
		cfg.Project.Root,
		cfg.Project.Scripts,
		cfg.Shebang.Interpreter,
		cfg.Shebang.Fallback,
		logger,
		opts...,
	), nil
}

// newInstaller wires the orchestrator with its packaging tool and fixer.
func (c *commandContext) newInstaller(trace io.Writer) (*installer.Installer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.logger()
	if err != nil {
		return nil, err
	}
	project, err := c.ensureProject()
	if err != nil {
		return nil, err
	}
	fixer, err := c.newFixer(trace)
	if err != nil {
		return nil, err
	}
	tool := packaging.NewCLI(cfg.Packaging.Command, logger,
		packaging.WithDir(cfg.Project.Root),
		packaging.WithTimeout(time.Duration(cfg.Packaging.TimeoutSeconds)*time.Second))
	return installer.New(cfg, project, tool, fixer, logger), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
