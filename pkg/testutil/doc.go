// Package testutil provides fixtures for testing apkren components.
//
// Key components:
//   - TestEnvironment: an extracted-package tree, in memory or on disk
//   - BuildELF: a minimal little-endian ELF64 image with chosen string tables
//   - WriteZip: an archive fixture with ordered entries
//
// Usage guidelines:
//   - Handler tests use EnvMemoryOnly
//   - Anything that crosses the sandbox or the rewriters needs EnvIsolated,
//     since symlink resolution and in-place patching need a real disk
package testutil
