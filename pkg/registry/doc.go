// Package registry provides a generic, type-safe registry keyed by name.
// The command catalog builds on it with case-insensitive keys.
package registry
