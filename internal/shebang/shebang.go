// Package shebang rewrites interpreter directives in the project's
// entry-point scripts.
//
// A directive has exactly two valid states: forward, pointing at a versioned
// interpreter discovered on PATH, and reverse, pointing at a fixed fallback.
// Forward mode is applied before installing the executable so the installed
// entry point invokes the target environment's interpreter by absolute path;
// reverse mode restores the distribution default.
package shebang

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"farrdist/internal/logging"
)

// Fixer rewrites the first line of a fixed set of scripts.
type Fixer struct {
	root        string
	scripts     []string
	interpreter string
	fallback    string
	logger      *slog.Logger
	trace       io.Writer

	// lookPath is swappable in tests.
	lookPath func(string) (string, error)
}

// Option configures the fixer.
type Option func(*Fixer)

// WithLookPath injects a custom PATH lookup (primarily for tests).
func WithLookPath(fn func(string) (string, error)) Option {
	return func(f *Fixer) {
		if fn != nil {
			f.lookPath = fn
		}
	}
}

// WithTrace sets the writer receiving the name of each modified script.
func WithTrace(w io.Writer) Option {
	return func(f *Fixer) {
		if w != nil {
			f.trace = w
		}
	}
}

// New constructs a fixer for the scripts (relative to root).
func New(root string, scripts []string, interpreter, fallback string, logger *slog.Logger, opts ...Option) *Fixer {
	fixer := &Fixer{
		root:        root,
		scripts:     scripts,
		interpreter: interpreter,
		fallback:    fallback,
		logger:      logging.NewComponentLogger(logger, "shebang"),
		trace:       os.Stdout,
		lookPath:    exec.LookPath,
	}
	for _, opt := range opts {
		opt(fixer)
	}
	return fixer
}

// Forward locates the versioned interpreter on PATH and rewrites every
// script's shebang to invoke it by absolute path. When the interpreter is not
// found, no script is touched and Forward returns nil; the scripts keep their
// current directive. That silent pass is long-standing behaviour, so it is
// only surfaced as a warning.
func (f *Fixer) Forward() error {
	path, err := f.lookPath(f.interpreter)
	if err != nil {
		f.logger.Warn("interpreter not found on PATH, leaving shebangs as-is",
			logging.String("interpreter", f.interpreter))
		return nil
	}
	return f.rewrite("#! " + path)
}

// Reverse rewrites every script's shebang to the fixed fallback directive,
// regardless of environment.
func (f *Fixer) Reverse() error {
	return f.rewrite("#! " + f.fallback)
}

func (f *Fixer) rewrite(directive string) error {
	for _, script := range f.scripts {
		path := filepath.Join(f.root, script)
		changed, err := rewriteFile(path, directive)
		if err != nil {
			return fmt.Errorf("fix shebang of %s: %w", script, err)
		}
		if changed {
			fmt.Fprintln(f.trace, script)
			f.logger.Debug("rewrote interpreter directive",
				logging.String("script", script),
				logging.String("directive", directive))
		}
	}
	return nil
}

// FixFile rewrites the shebang of a single file to invoke the detected
// interpreter, used when installing the executable. Unlike Forward, a missing
// interpreter leaves the file untouched without error.
func (f *Fixer) FixFile(path string) error {
	interp, err := f.lookPath(f.interpreter)
	if err != nil {
		f.logger.Warn("interpreter not found on PATH, installing with existing shebang",
			logging.String("interpreter", f.interpreter))
		return nil
	}
	if _, err := rewriteFile(path, "#! "+interp); err != nil {
		return fmt.Errorf("fix shebang of %s: %w", path, err)
	}
	return nil
}

// rewriteFile replaces the first line of path with directive when that line
// is a shebang. Returns whether the file was modified.
func rewriteFile(path, directive string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	first, rest, hasNewline := bytes.Cut(data, []byte("\n"))
	if !bytes.HasPrefix(first, []byte("#!")) {
		return false, nil
	}
	if string(first) == directive {
		return false, nil
	}

	var buf bytes.Buffer
	buf.Grow(len(directive) + 1 + len(rest))
	buf.WriteString(directive)
	if hasNewline {
		buf.WriteByte('\n')
		buf.Write(rest)
	}
	if err := os.WriteFile(path, buf.Bytes(), info.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}
