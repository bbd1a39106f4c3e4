package packaging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"farrdist/internal/logging"
	"farrdist/internal/ops"
)

var commandContext = exec.CommandContext

// Tool defines the packaging capability of the project being deployed.
type Tool interface {
	Build(ctx context.Context) error
	Install(ctx context.Context, prefix string) error
	Remove(ctx context.Context, prefix string) error
}

// Option configures the CLI tool.
type Option func(*CLI)

// WithDir sets the working directory for packaging command invocations,
// normally the project root.
func WithDir(dir string) Option {
	return func(c *CLI) {
		if dir != "" {
			c.dir = dir
		}
	}
}

// WithTimeout bounds each invocation. Zero means no bound.
func WithTimeout(timeout time.Duration) Option {
	return func(c *CLI) {
		c.timeout = timeout
	}
}

// CLI wraps the project's packaging command.
type CLI struct {
	command string
	dir     string
	timeout time.Duration
	logger  *slog.Logger
}

// NewCLI constructs a CLI tool around command.
func NewCLI(command string, logger *slog.Logger, opts ...Option) *CLI {
	cli := &CLI{
		command: command,
		logger:  logging.NewComponentLogger(logger, "packaging"),
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Build runs the packaging build hook.
func (c *CLI) Build(ctx context.Context) error {
	return c.run(ctx, os.Stderr, "build")
}

// Install runs the packaging install hook against prefix.
func (c *CLI) Install(ctx context.Context, prefix string) error {
	return c.run(ctx, os.Stderr, "install", "--prefix="+prefix)
}

// Remove runs the packaging remove hook against prefix. The hook's own
// diagnostics are discarded; callers treat a failure as a signal to remove
// the installed package directories directly.
func (c *CLI) Remove(ctx context.Context, prefix string) error {
	return c.run(ctx, io.Discard, "remove", "--prefix="+prefix)
}

func (c *CLI) run(ctx context.Context, stderr io.Writer, args ...string) error {
	if strings.TrimSpace(c.command) == "" {
		return ops.Wrap(ops.ErrConfiguration, "packaging", "command not configured", nil)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cmd := commandContext(ctx, c.command, args...) //nolint:gosec
	cmd.Dir = c.dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = stderr

	c.logger.Debug("running packaging command",
		logging.String("command", c.command),
		logging.String("args", strings.Join(args, " ")),
		logging.String("dir", c.dir))

	if err := cmd.Run(); err != nil {
		return ops.Wrap(ops.ErrExternalTool, "packaging", c.command+" "+strings.Join(args, " "), err)
	}
	return nil
}

var _ Tool = (*CLI)(nil)
