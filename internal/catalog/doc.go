// Package catalog compiles PO translation sources into binary MO catalogs.
//
// For every <lang>.po under the project's po directory the builder produces
// <root>/<lang>/LC_MESSAGES/<ident>.mo, creating intermediate directories as
// needed. A malformed language source is logged and skipped without aborting
// the remaining languages, matching msgfmt-driven build loops. Compiled
// catalogs are disposable artifacts and are regenerated on every build.
package catalog
