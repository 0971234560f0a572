// Package testutil provides fixtures for testing packmapper components.
//
// Key components:
//   - TestPack: declarative builder for resource pack trees on disk
//   - ReadZip: reads an archive back into ordered entries
//   - RuleSet: small synthetic rule sets
//
// Usage guidelines:
//   - Packs live under t.TempDir() and are removed with the test
//   - All test data is defined inline, not in external files
//   - Pack paths are slash-separated, as inside a pack
package testutil
