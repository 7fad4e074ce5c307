// Package sandbox confines script-supplied paths to a package directory.
//
// Every filesystem-touching command routes its arguments through Confine
// before any handler sees them. A path that resolves outside the package
// root, or onto the root itself when strict confinement is requested, is a
// hard failure.
package sandbox
