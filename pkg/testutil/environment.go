// pkg/testutil/environment.go
// DEPENDENCIES: filesystem
// PURPOSE: Build extracted-package trees for command and dispatcher tests

package testutil

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/arthur-debert/apkren/pkg/filesystem"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// FileTree maps package-relative paths to file content.
// A path ending in "/" creates an empty directory.
type FileTree map[string]string

// TestEnvironment is one extracted package rooted at PackageRoot
type TestEnvironment struct {
	PackageRoot string
	FS          filesystem.FS
	Type        EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.PackageRoot = "/virtual/package"
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		root, err := filepath.EvalSymlinks(t.TempDir())
		if err != nil {
			t.Fatalf("Failed to resolve temp dir: %v", err)
		}
		env.PackageRoot = filepath.Join(root, "package")
		env.FS = filesystem.NewOS()
	}

	if err := env.FS.MkdirAll(env.PackageRoot, 0755); err != nil {
		t.Fatalf("Failed to create package root: %v", err)
	}
	return env
}

// Path joins package-relative segments onto the package root
func (env *TestEnvironment) Path(rel ...string) string {
	return filepath.Join(append([]string{env.PackageRoot}, rel...)...)
}

// WithFileTree creates every file and directory of tree under the package root
func (env *TestEnvironment) WithFileTree(tree FileTree) *TestEnvironment {
	env.t.Helper()

	names := make([]string, 0, len(tree))
	for name := range tree {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		full := env.Path(filepath.FromSlash(name))
		if name[len(name)-1] == '/' {
			if err := env.FS.MkdirAll(full, 0755); err != nil {
				env.t.Fatalf("Failed to create directory %s: %v", name, err)
			}
			continue
		}
		if err := env.FS.MkdirAll(filepath.Dir(full), 0755); err != nil {
			env.t.Fatalf("Failed to create directory for %s: %v", name, err)
		}
		if err := env.FS.WriteFile(full, []byte(tree[name]), 0644); err != nil {
			env.t.Fatalf("Failed to write file %s: %v", name, err)
		}
	}
	return env
}

// Exists reports whether a package-relative path exists
func (env *TestEnvironment) Exists(rel string) bool {
	_, err := env.FS.Stat(env.Path(filepath.FromSlash(rel)))
	return err == nil
}

// Read returns the content of a package-relative file, failing the test if absent
func (env *TestEnvironment) Read(rel string) string {
	env.t.Helper()
	data, err := env.FS.ReadFile(env.Path(filepath.FromSlash(rel)))
	if err != nil {
		env.t.Fatalf("Failed to read %s: %v", rel, err)
	}
	return string(data)
}
