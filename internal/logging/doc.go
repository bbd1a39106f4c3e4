// Package logging configures the process-wide slog logger.
//
// Key responsibilities:
//   - Construct console or JSON handlers from configuration (level, format).
//   - Provide attribute helpers so call sites use one vocabulary for
//     structured fields.
//   - Carry the deployment run identifier through context so every step of an
//     install or uninstall run logs under the same correlation ID.
package logging
