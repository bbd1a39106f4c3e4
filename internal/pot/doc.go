// Package pot maintains the translation template and per-language
// translation sources.
//
// Key responsibilities:
//   - Extract translatable strings from the application source tree into a
//     POT template stamped with the project name and version.
//   - Merge a regenerated template into each existing PO file: surviving
//     message IDs keep their translations, new IDs are added untranslated,
//     and IDs that disappeared are flagged obsolete (#~) instead of being
//     dropped. A previously obsolete ID that reappears is resurrected with
//     its old translation.
//   - Replace PO files atomically (temp file + rename) so an interrupted
//     merge never corrupts an existing translation.
package pot
