// Package installer sequences deployment of the project into an install
// prefix, optionally under a staging root.
//
// Key responsibilities:
//   - Install in fixed order: icons, executable, packaging, documentation,
//     desktop entry, locales. There is no rollback; a failing step leaves
//     the artifacts of earlier steps in place.
//   - Uninstall in the reverse order, treating already-missing paths as
//     success. When the packaging remove hook fails, fall back to removing
//     the configured package directories directly.
//   - Run the in-tree build targets: build, inplace, clean, distclean.
//
// Every install or uninstall run is tagged with a run identifier that
// appears on all of its log records.
package installer
