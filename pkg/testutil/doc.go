// Package testutil provides utilities for testing zapp components.
//
// Key components:
//   - TestEnvironment: a configuration root and a home directory, either on
//     a temp dir (EnvIsolated) or in memory (EnvMemoryOnly)
//   - Write helpers that lay out config.yaml, tasks/, files/, templates/
//     and params/ inline from the test body
//
// Config loading and template parsing read the real disk, so tests that
// exercise them must use EnvIsolated.
package testutil
