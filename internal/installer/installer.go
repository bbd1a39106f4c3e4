package installer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"farrdist/internal/catalog"
	"farrdist/internal/config"
	"farrdist/internal/fileutil"
	"farrdist/internal/logging"
	"farrdist/internal/manifest"
	"farrdist/internal/metadata"
	"farrdist/internal/ops"
	"farrdist/internal/packaging"
	"farrdist/internal/shebang"
)

// Installer deploys one project into the destinations named by its manifest.
type Installer struct {
	cfg     *config.Config
	project metadata.Project
	man     manifest.Manifest
	tool    packaging.Tool
	fixer   *shebang.Fixer
	builder *catalog.Builder
	logger  *slog.Logger
}

// New constructs an installer. The packaging tool and shebang fixer are
// injected so orchestration can be tested without external processes.
func New(cfg *config.Config, project metadata.Project, tool packaging.Tool, fixer *shebang.Fixer, logger *slog.Logger) *Installer {
	return &Installer{
		cfg:     cfg,
		project: project,
		man:     manifest.Compute(cfg.Paths, project.Ident),
		tool:    tool,
		fixer:   fixer,
		builder: catalog.NewBuilder(cfg.ProjectPath(cfg.Project.PoDir), project.Ident, logger),
		logger:  logging.NewComponentLogger(logger, "installer"),
	}
}

// Manifest returns the computed destination paths for this installer.
func (i *Installer) Manifest() manifest.Manifest {
	return i.man
}

// Install deploys the project. Steps run in fixed order and a failing step
// aborts the sequence without undoing earlier steps.
func (i *Installer) Install(ctx context.Context) error {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := i.logger.With(logging.String(logging.FieldRunID, runID))
	logger.Info("installing",
		logging.String("ident", i.project.Ident),
		logging.String("version", i.project.Version),
		logging.String("destdir", i.man.DestDir))

	steps := []struct {
		name string
		run  func(context.Context, *slog.Logger) error
	}{
		{"icons", i.installIcons},
		{"executable", i.installExecutable},
		{"packaging", i.installPackage},
		{"documentation", i.installDocs},
		{"desktop entry", i.installDesktopEntry},
		{"locales", i.installLocales},
	}
	for _, step := range steps {
		stepLogger := logger.With(logging.String(logging.FieldStep, step.name))
		if err := step.run(ctx, stepLogger); err != nil {
			return ops.Wrap(ops.ErrExternalTool, step.name, "install step failed", err)
		}
	}
	logger.Info("install complete")
	return nil
}

// Uninstall removes the project's installed artifacts in the reverse of the
// install order. Already-missing paths are not errors.
func (i *Installer) Uninstall(ctx context.Context) error {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := i.logger.With(logging.String(logging.FieldRunID, runID))
	logger.Info("uninstalling",
		logging.String("ident", i.project.Ident),
		logging.String("destdir", i.man.DestDir))

	steps := []struct {
		name string
		run  func(context.Context, *slog.Logger) error
	}{
		{"locales", i.removeLocales},
		{"desktop entry", i.removeDesktopEntry},
		{"documentation", i.removeDocs},
		{"packaging", i.removePackage},
		{"executable", i.removeExecutable},
		{"icons", i.removeIcons},
	}
	for _, step := range steps {
		stepLogger := logger.With(logging.String(logging.FieldStep, step.name))
		if err := step.run(ctx, stepLogger); err != nil {
			return ops.Wrap(ops.ErrExternalTool, step.name, "uninstall step failed", err)
		}
	}
	logger.Info("uninstall complete")
	return nil
}

// iconFiles lists icon files below the source icon root as
// hicolor/<size>/apps/<name> slash paths. A missing icon root yields no
// files.
func (i *Installer) iconFiles() (string, []string, error) {
	iconRoot := i.cfg.ProjectPath(i.cfg.Project.IconRoot)
	if _, err := os.Stat(iconRoot); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return iconRoot, nil, nil
		}
		return iconRoot, nil, fmt.Errorf("stat icon root: %w", err)
	}

	fsys := os.DirFS(iconRoot)
	matches, err := doublestar.Glob(fsys, "hicolor/*/apps/*")
	if err != nil {
		return iconRoot, nil, fmt.Errorf("scan icon root: %w", err)
	}

	files := matches[:0]
	for _, rel := range matches {
		info, err := fs.Stat(fsys, rel)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, rel)
	}
	return iconRoot, files, nil
}

func (i *Installer) installIcons(_ context.Context, logger *slog.Logger) error {
	iconRoot, files, err := i.iconFiles()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Warn("no icons found, skipping", logging.String("icon_root", iconRoot))
		return nil
	}

	for _, rel := range files {
		size, name, ok := splitIconPath(rel)
		if !ok {
			continue
		}
		dir := i.man.IconDir(size)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create icon directory: %w", err)
		}
		src := filepath.Join(iconRoot, filepath.FromSlash(rel))
		if err := fileutil.CopyFile(src, filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("install icon %s: %w", rel, err)
		}
		logger.Debug("installed icon", logging.String("size", size), logging.String("file", name))
	}
	return nil
}

func (i *Installer) installExecutable(_ context.Context, logger *slog.Logger) error {
	src := i.cfg.ProjectPath(i.executableScript())
	dir := i.man.Staged(i.man.BinDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create bin directory: %w", err)
	}
	dst := i.man.Staged(i.man.Executable)
	if err := fileutil.CopyFileMode(src, dst, 0o755); err != nil {
		return fmt.Errorf("install executable: %w", err)
	}
	if err := i.fixer.FixFile(dst); err != nil {
		return err
	}
	logger.Info("installed executable", logging.String("path", dst))
	return nil
}

// executableScript picks the entry-point script installed as the program
// executable: the one named after the program if present, otherwise the
// first configured script.
func (i *Installer) executableScript() string {
	for _, script := range i.cfg.Project.Scripts {
		if filepath.Base(script) == i.project.Ident {
			return script
		}
	}
	return i.cfg.Project.Scripts[0]
}

func (i *Installer) installPackage(ctx context.Context, _ *slog.Logger) error {
	return i.tool.Install(ctx, i.man.Staged(i.cfg.Paths.Prefix))
}

func (i *Installer) installDocs(_ context.Context, logger *slog.Logger) error {
	dir := i.man.Staged(i.man.DocDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create doc directory: %w", err)
	}
	for _, doc := range i.cfg.Project.DocFiles {
		src := i.cfg.ProjectPath(doc)
		if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
			logger.Warn("doc file missing, skipping", logging.String("file", doc))
			continue
		}
		if err := fileutil.CopyFile(src, filepath.Join(dir, filepath.Base(doc))); err != nil {
			return fmt.Errorf("install doc %s: %w", doc, err)
		}
	}
	logger.Info("installed documentation", logging.String("path", dir))
	return nil
}

func (i *Installer) installDesktopEntry(_ context.Context, logger *slog.Logger) error {
	dir := i.man.Staged(i.man.Applications)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create applications directory: %w", err)
	}
	dst := i.man.Staged(i.man.DesktopEntry)
	if err := fileutil.CopyFile(i.cfg.ProjectPath(i.cfg.Project.DesktopFile), dst); err != nil {
		return fmt.Errorf("install desktop entry: %w", err)
	}
	logger.Info("installed desktop entry", logging.String("path", dst))
	return nil
}

func (i *Installer) installLocales(_ context.Context, logger *slog.Logger) error {
	report, err := i.builder.Build(i.man.Staged(i.man.LocaleDir))
	if err != nil {
		return err
	}
	logger.Info("installed locales",
		logging.Int("built", len(report.Built)),
		logging.Int("failed", len(report.Failed)))
	return nil
}

func (i *Installer) removeLocales(_ context.Context, logger *slog.Logger) error {
	root := i.man.Staged(i.man.LocaleDir)
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	matches, err := doublestar.Glob(os.DirFS(root), "*/LC_MESSAGES/"+i.project.Ident+".mo")
	if err != nil {
		return fmt.Errorf("scan locale tree: %w", err)
	}
	for _, rel := range matches {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := fileutil.RemoveIfExists(path); err != nil {
			return fmt.Errorf("remove catalog %s: %w", rel, err)
		}
		pruneEmptyDirs(filepath.Dir(path), root)
		logger.Debug("removed catalog", logging.String("path", path))
	}
	i.prune(root)
	return nil
}

func (i *Installer) removeDesktopEntry(_ context.Context, logger *slog.Logger) error {
	path := i.man.Staged(i.man.DesktopEntry)
	if err := fileutil.RemoveIfExists(path); err != nil {
		return err
	}
	i.prune(filepath.Dir(path))
	logger.Debug("removed desktop entry", logging.String("path", path))
	return nil
}

func (i *Installer) removeDocs(_ context.Context, logger *slog.Logger) error {
	path := i.man.Staged(i.man.DocDir)
	if err := os.RemoveAll(path); err != nil {
		return err
	}
	i.prune(filepath.Dir(path))
	logger.Debug("removed documentation", logging.String("path", path))
	return nil
}

// removePackage asks the packaging tool to remove itself. When the hook
// fails, the configured package directories are removed directly so an
// uninstall still converges.
func (i *Installer) removePackage(ctx context.Context, logger *slog.Logger) error {
	prefix := i.man.Staged(i.cfg.Paths.Prefix)
	err := i.tool.Remove(ctx, prefix)
	if err == nil {
		return nil
	}
	logger.Warn("packaging remove hook failed, removing package directories directly",
		logging.Error(err))

	for _, pattern := range i.cfg.Packaging.PackageDirGlobs {
		matches, err := doublestar.Glob(os.DirFS(prefix), pattern)
		if err != nil {
			return fmt.Errorf("scan package directories: %w", err)
		}
		for _, rel := range matches {
			path := filepath.Join(prefix, filepath.FromSlash(rel))
			if err := os.RemoveAll(path); err != nil {
				return fmt.Errorf("remove package directory %s: %w", rel, err)
			}
			i.prune(filepath.Dir(path))
			logger.Debug("removed package directory", logging.String("path", path))
		}
	}
	return nil
}

func (i *Installer) removeExecutable(_ context.Context, logger *slog.Logger) error {
	path := i.man.Staged(i.man.Executable)
	if err := fileutil.RemoveIfExists(path); err != nil {
		return err
	}
	i.prune(filepath.Dir(path))
	logger.Debug("removed executable", logging.String("path", path))
	return nil
}

// removeIcons deletes the installed copies of the icons present in the
// source tree. Icons the source tree no longer carries stay installed.
func (i *Installer) removeIcons(_ context.Context, logger *slog.Logger) error {
	_, files, err := i.iconFiles()
	if err != nil {
		return err
	}
	for _, rel := range files {
		size, name, ok := splitIconPath(rel)
		if !ok {
			continue
		}
		path := filepath.Join(i.man.IconDir(size), name)
		if err := fileutil.RemoveIfExists(path); err != nil {
			return fmt.Errorf("remove icon %s: %w", rel, err)
		}
		i.prune(filepath.Dir(path))
		logger.Debug("removed icon", logging.String("path", path))
	}
	return nil
}

// prune removes directories emptied by an uninstall step, walking up from
// dir to the staging root. Without a staging root the install prefixes are
// shared with other packages, so only the paths the manifest names are
// removed.
func (i *Installer) prune(dir string) {
	if i.man.DestDir == "" {
		return
	}
	pruneEmptyDirs(dir, filepath.Clean(i.man.DestDir))
}

// splitIconPath breaks a hicolor/<size>/apps/<name> slash path into its
// size and file name.
func splitIconPath(rel string) (size, name string, ok bool) {
	parts := strings.Split(rel, "/")
	if len(parts) != 4 {
		return "", "", false
	}
	return parts[1], parts[3], true
}

// pruneEmptyDirs removes now-empty directories from dir up to (but not
// including) stop. Non-empty directories end the walk.
func pruneEmptyDirs(dir, stop string) {
	for dir != stop && strings.HasPrefix(dir, stop) {
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}
