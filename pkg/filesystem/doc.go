// Package filesystem provides the filesystem abstraction used by command
// handlers, with an OS implementation and an afero-backed one for tests.
package filesystem
