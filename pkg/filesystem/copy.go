package filesystem

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
)

// CopyFile copies a single file. The target must not exist.
func CopyFile(fsys FS, source, target string) error {
	info, err := fsys.Stat(source)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", source)
	}

	in, err := fsys.Open(source)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := fsys.CreateExclusive(target, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// CopyTree copies a directory and everything below it into target.
// Existing directories under target are reused; existing files are not overwritten.
// Symbolic links below source are not copied.
func CopyTree(fsys FS, source, target string) error {
	info, err := fsys.Stat(source)
	if err != nil {
		return err
	}

	// List before creating target so a target inside source is not copied into itself.
	entries, err := fsys.ReadDir(source)
	if err != nil {
		return err
	}
	if err := fsys.MkdirAll(target, info.Mode().Perm()); err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.Type()&fs.ModeSymlink != 0 {
			continue
		}
		from := filepath.Join(source, entry.Name())
		to := filepath.Join(target, entry.Name())
		if entry.IsDir() {
			err = CopyTree(fsys, from, to)
		} else {
			err = CopyFile(fsys, from, to)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
