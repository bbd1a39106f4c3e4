// Package packaging drives the external packaging command of the project
// being deployed.
//
// Key responsibilities:
//   - Expose the packaging capability as the Tool interface (Build,
//     Install into a prefix, Remove from a prefix) so the orchestrator can
//     be tested against a fake.
//   - Run the configured command with a per-invocation timeout, working
//     from the project root.
//   - Keep the remove hook quiet: its diagnostics are discarded because the
//     orchestrator falls back to direct removal when the hook fails.
package packaging
