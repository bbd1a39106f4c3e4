package installer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"farrdist/internal/logging"
)

// Build delegates to the packaging build hook.
func (i *Installer) Build(ctx context.Context) error {
	return i.tool.Build(ctx)
}

// Inplace builds the package and compiles the catalogs into the in-tree
// locale directory, for running the project from its source tree.
func (i *Installer) Inplace(ctx context.Context) error {
	if err := i.Build(ctx); err != nil {
		return err
	}
	report, err := i.builder.Build(i.cfg.ProjectPath(i.cfg.Project.LocaleDir))
	if err != nil {
		return err
	}
	i.logger.Info("built in-tree locales",
		logging.Int("built", len(report.Built)),
		logging.Int("failed", len(report.Failed)))
	return nil
}

// Clean removes the in-tree build directory and the compiled catalogs of an
// in-place build. Translation sources are untouched.
func (i *Installer) Clean(_ context.Context) error {
	if err := os.RemoveAll(i.cfg.ProjectPath("build")); err != nil {
		return fmt.Errorf("remove build directory: %w", err)
	}

	localeDir := i.cfg.ProjectPath(i.cfg.Project.LocaleDir)
	if _, err := os.Stat(localeDir); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	matches, err := doublestar.Glob(os.DirFS(localeDir), "*/LC_MESSAGES/"+i.project.Ident+".mo")
	if err != nil {
		return fmt.Errorf("scan locale directory: %w", err)
	}
	for _, rel := range matches {
		path := filepath.Join(localeDir, filepath.FromSlash(rel))
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove catalog %s: %w", rel, err)
		}
		pruneEmptyDirs(filepath.Dir(path), localeDir)
	}
	// The locale directory itself is generated, so drop it once emptied.
	_ = os.Remove(localeDir)
	return nil
}

// Distclean cleans and restores the entry-point shebangs to the fallback
// directive, returning the tree to its distributed state.
func (i *Installer) Distclean(ctx context.Context) error {
	if err := i.Clean(ctx); err != nil {
		return err
	}
	return i.fixer.Reverse()
}
