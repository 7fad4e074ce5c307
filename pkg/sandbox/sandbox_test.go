// pkg/sandbox/sandbox_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: OS temp dirs (symlink resolution needs a real disk)
// PURPOSE: Test path confinement against traversal, root targeting and symlink escapes

package sandbox_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/arthur-debert/apkren/pkg/errors"
	"github.com/arthur-debert/apkren/pkg/sandbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func canonicalRoot(t *testing.T) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return root
}

func TestConfine(t *testing.T) {
	root := canonicalRoot(t)

	tests := []struct {
		name     string
		userPath string
		strict   bool
		want     string
		wantErr  string
	}{
		{
			name:     "plain file",
			userPath: "AndroidManifest.xml",
			strict:   true,
			want:     filepath.Join(root, "AndroidManifest.xml"),
		},
		{
			name:     "dot dot inside package",
			userPath: `sub\..\sub\file.txt`,
			strict:   true,
			want:     filepath.Join(root, "sub", "file.txt"),
		},
		{
			name:     "forward slashes",
			userPath: "lib/arm64-v8a/libgame.so",
			strict:   true,
			want:     filepath.Join(root, "lib", "arm64-v8a", "libgame.so"),
		},
		{
			name:     "leading separator is root relative",
			userPath: "/smali/com",
			strict:   true,
			want:     filepath.Join(root, "smali", "com"),
		},
		{
			name:     "traversal escapes",
			userPath: "../../evil.txt",
			strict:   true,
			wantErr:  "escapes the package directory",
		},
		{
			name:     "sibling with shared prefix escapes",
			userPath: "../" + filepath.Base(root) + "-other/x",
			strict:   true,
			wantErr:  "escapes the package directory",
		},
		{
			name:     "empty path strict",
			userPath: "",
			strict:   true,
			wantErr:  "targets the project root",
		},
		{
			name:     "dot strict",
			userPath: "./",
			strict:   true,
			wantErr:  "targets the project root",
		},
		{
			name:     "empty path relaxed",
			userPath: "",
			strict:   false,
			want:     root,
		},
		{
			name:     "control character",
			userPath: "bad\x01name",
			strict:   true,
			wantErr:  "bad(0x01)name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sandbox.Confine(root, tt.userPath, tt.strict)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrUnsafePath), "got %v", err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfineRootIsCanonicalized(t *testing.T) {
	root := canonicalRoot(t)
	messy := filepath.Join(root, "sub", "..") + string(filepath.Separator)

	got, err := sandbox.Confine(messy, "a.txt", true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a.txt"), got)
}

func TestConfineSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated rights on windows")
	}

	outside := canonicalRoot(t)
	root := canonicalRoot(t)

	require.NoError(t, os.Mkdir(filepath.Join(root, "real"), 0755))
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "inside")))
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "escape")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "missing"), filepath.Join(root, "dangling")))

	t.Run("link within package resolves", func(t *testing.T) {
		got, err := sandbox.Confine(root, "inside/new.txt", true)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "real", "new.txt"), got)
	})

	t.Run("link out of package is refused", func(t *testing.T) {
		_, err := sandbox.Confine(root, "escape/passwd", true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "escapes the package directory")
	})

	t.Run("dangling link out of package is refused", func(t *testing.T) {
		_, err := sandbox.Confine(root, "dangling/child", true)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnsafePath))
	})
}

func TestCanonicalizeMissingComponents(t *testing.T) {
	root := canonicalRoot(t)

	got, err := sandbox.Canonicalize(filepath.Join(root, "a", "b", "..", "c"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", "c"), got)
}

func TestRenderControl(t *testing.T) {
	assert.Equal(t, "a(0x0a)b(0x7f)", sandbox.RenderControl("a\nb\x7f"))
	assert.Equal(t, "plain", sandbox.RenderControl("plain"))
}
