package manifest

import (
	"path"

	"farrdist/internal/config"
)

// Manifest holds the final (unstaged) destination paths for one install.
// Subpath conventions are fixed:
//
//	executable    <execprefix>/bin/<ident>
//	documentation <datarootdir>/doc/<ident>
//	desktop entry <datarootdir>/applications/<ident>.desktop
//	locale tree   <datarootdir>/locale/<lang>/LC_MESSAGES/<ident>.mo
//	icons         <datarootdir>/icons/hicolor/<size>/apps
type Manifest struct {
	Ident string

	// DestDir is the staging root; empty for a direct install.
	DestDir string

	BinDir       string
	Executable   string
	DocDir       string
	Applications string
	DesktopEntry string
	LocaleDir    string
	IconBase     string
}

// Compute derives the manifest from prefix configuration and the program
// identifier. It is pure: identical inputs always yield identical paths.
func Compute(paths config.Paths, ident string) Manifest {
	binDir := path.Join(paths.ExecPrefix, "bin")
	applications := path.Join(paths.DataRootDir, "applications")
	return Manifest{
		Ident:        ident,
		DestDir:      paths.DestDir,
		BinDir:       binDir,
		Executable:   path.Join(binDir, ident),
		DocDir:       path.Join(paths.DataRootDir, "doc", ident),
		Applications: applications,
		DesktopEntry: path.Join(applications, ident+".desktop"),
		LocaleDir:    path.Join(paths.DataRootDir, "locale"),
		IconBase:     path.Join(paths.DataRootDir, "icons", "hicolor"),
	}
}

// Staged prepends the staging root to a final path. With no staging root the
// path is returned unchanged.
func (m Manifest) Staged(final string) string {
	if m.DestDir == "" {
		return final
	}
	return path.Join(m.DestDir, final)
}

// IconDir returns the staged icon directory for one theme size, e.g. "48x48".
func (m Manifest) IconDir(size string) string {
	return m.Staged(path.Join(m.IconBase, size, "apps"))
}

// CatalogPath returns the staged compiled catalog path for one language.
func (m Manifest) CatalogPath(lang string) string {
	return m.Staged(path.Join(m.LocaleDir, lang, "LC_MESSAGES", m.Ident+".mo"))
}

// Entry is one named destination, for operator-facing listings.
type Entry struct {
	Name string
	Path string
}

// Entries lists the manifest's destinations in install order, staged.
func (m Manifest) Entries() []Entry {
	return []Entry{
		{Name: "icons", Path: m.Staged(m.IconBase)},
		{Name: "executable", Path: m.Staged(m.Executable)},
		{Name: "documentation", Path: m.Staged(m.DocDir)},
		{Name: "desktop entry", Path: m.Staged(m.DesktopEntry)},
		{Name: "locale tree", Path: m.Staged(m.LocaleDir)},
	}
}
