// pkg/filesystem/copy_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: afero memory filesystem, OS temp dirs
// PURPOSE: Test file and directory copying through the FS abstraction

package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/apkren/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func implementations(t *testing.T) map[string]struct {
	fs   filesystem.FS
	root string
} {
	return map[string]struct {
		fs   filesystem.FS
		root string
	}{
		"memory": {fs: filesystem.NewMemory(), root: "/pkg"},
		"os":     {fs: filesystem.NewOS(), root: t.TempDir()},
	}
}

func TestCopyFile(t *testing.T) {
	for name, impl := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			fsys, root := impl.fs, impl.root
			require.NoError(t, fsys.MkdirAll(root, 0755))

			src := filepath.Join(root, "a.txt")
			dst := filepath.Join(root, "b.txt")
			require.NoError(t, fsys.WriteFile(src, []byte("hello"), 0644))

			require.NoError(t, filesystem.CopyFile(fsys, src, dst))

			data, err := fsys.ReadFile(dst)
			require.NoError(t, err)
			assert.Equal(t, "hello", string(data))

			err = filesystem.CopyFile(fsys, src, dst)
			assert.ErrorIs(t, err, os.ErrExist)
		})
	}
}

func TestCopyTree(t *testing.T) {
	for name, impl := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			fsys, root := impl.fs, impl.root
			src := filepath.Join(root, "smali", "com", "old")
			require.NoError(t, fsys.MkdirAll(filepath.Join(src, "inner"), 0755))
			require.NoError(t, fsys.WriteFile(filepath.Join(src, "A.smali"), []byte("a"), 0644))
			require.NoError(t, fsys.WriteFile(filepath.Join(src, "inner", "B.smali"), []byte("b"), 0644))

			dst := filepath.Join(root, "smali", "com", "new")
			require.NoError(t, filesystem.CopyTree(fsys, src, dst))

			data, err := fsys.ReadFile(filepath.Join(dst, "inner", "B.smali"))
			require.NoError(t, err)
			assert.Equal(t, "b", string(data))

			_, err = fsys.Stat(filepath.Join(src, "A.smali"))
			assert.NoError(t, err, "source must be left in place")
		})
	}
}

func TestCopyTreeIntoOwnSubdirectory(t *testing.T) {
	for name, impl := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			fsys, root := impl.fs, impl.root
			src := filepath.Join(root, "sub")
			require.NoError(t, fsys.MkdirAll(filepath.Join(src, "deep"), 0755))
			require.NoError(t, fsys.WriteFile(filepath.Join(src, "a.txt"), []byte("a"), 0644))
			require.NoError(t, fsys.WriteFile(filepath.Join(src, "deep", "b.txt"), []byte("b"), 0644))

			dst := filepath.Join(src, "inner")
			require.NoError(t, filesystem.CopyTree(fsys, src, dst))

			data, err := fsys.ReadFile(filepath.Join(dst, "deep", "b.txt"))
			require.NoError(t, err)
			assert.Equal(t, "b", string(data))

			entries, err := fsys.ReadDir(dst)
			require.NoError(t, err)
			var names []string
			for _, e := range entries {
				names = append(names, e.Name())
			}
			assert.ElementsMatch(t, []string{"a.txt", "deep"}, names)
		})
	}
}

func TestCopyTreeSkipsSymlinks(t *testing.T) {
	base := t.TempDir()
	outside := filepath.Join(base, "outside")
	require.NoError(t, os.MkdirAll(outside, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.txt"), []byte("secret"), 0644))

	src := filepath.Join(base, "pkg", "sub")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "kept.txt"), []byte("kept"), 0644))
	require.NoError(t, os.Symlink(filepath.Join(outside, "secret.txt"), filepath.Join(src, "link.txt")))
	require.NoError(t, os.Symlink(outside, filepath.Join(src, "linkdir")))

	dst := filepath.Join(base, "pkg", "copy")
	require.NoError(t, filesystem.CopyTree(filesystem.NewOS(), src, dst))

	_, err := os.Stat(filepath.Join(dst, "kept.txt"))
	assert.NoError(t, err)
	_, err = os.Lstat(filepath.Join(dst, "link.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = os.Lstat(filepath.Join(dst, "linkdir"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadFileRejectsDirectory(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/dir", 0755))

	_, err := fsys.ReadFile("/dir")
	assert.Error(t, err)
}
