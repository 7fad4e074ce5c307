package sandbox

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	"github.com/arthur-debert/apkren/pkg/errors"
)

// maxLinkHops bounds symlink resolution, matching the usual kernel ELOOP limit
const maxLinkHops = 40

// Confine joins userPath onto root and returns the canonical result.
//
// userPath is always treated as root-relative: both separator styles are
// accepted and leading separators are stripped. When strict is set the
// result may not be the root itself.
func Confine(root, userPath string, strict bool) (string, error) {
	if hasControl(userPath) {
		return "", errors.Newf(errors.ErrUnsafePath,
			"the given path '%s' contains control characters", RenderControl(userPath)).
			WithDetail("path", RenderControl(userPath))
	}

	relative := normalizeSeparators(userPath)
	relative = strings.TrimLeft(relative, string(filepath.Separator))

	canonicalRoot, err := Canonicalize(root)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrUnsafePath, "cannot resolve package root '%s'", root).
			WithDetail("path", root)
	}

	candidate, err := Canonicalize(filepath.Join(canonicalRoot, relative))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrUnsafePath, "cannot resolve path '%s'", userPath).
			WithDetail("path", userPath)
	}

	if samePath(candidate, canonicalRoot) {
		if strict {
			return "", errors.Newf(errors.ErrUnsafePath,
				"the given path '%s' targets the project root", userPath).
				WithDetail("path", userPath)
		}
		return candidate, nil
	}

	if !hasPathPrefix(candidate, canonicalRoot+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrUnsafePath,
			"the given path '%s' escapes the package directory", userPath).
			WithDetail("path", userPath)
	}

	return candidate, nil
}

// Canonicalize returns the absolute, cleaned form of path with every symlink
// in its existing prefix resolved. Components that do not exist yet are
// appended unchanged, so paths about to be created can still be confined.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	existing := abs
	var missing []string
	hops := 0

	for {
		resolved, err := filepath.EvalSymlinks(existing)
		if err == nil {
			return filepath.Join(append([]string{resolved}, missing...)...), nil
		}
		if !stderrors.Is(err, fs.ErrNotExist) {
			return "", err
		}

		// A dangling link still redirects anything created through it.
		if info, lerr := os.Lstat(existing); lerr == nil && info.Mode()&fs.ModeSymlink != 0 {
			hops++
			if hops > maxLinkHops {
				return "", fmt.Errorf("too many levels of symbolic links: %s", abs)
			}
			target, rerr := os.Readlink(existing)
			if rerr != nil {
				return "", rerr
			}
			if !filepath.IsAbs(target) {
				target = filepath.Join(filepath.Dir(existing), target)
			}
			existing = filepath.Clean(target)
			continue
		}

		parent := filepath.Dir(existing)
		if parent == existing {
			return filepath.Join(append([]string{existing}, missing...)...), nil
		}
		missing = append([]string{filepath.Base(existing)}, missing...)
		existing = parent
	}
}

// RenderControl replaces control characters with a (0xNN) rendering
func RenderControl(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) {
			fmt.Fprintf(&b, "(0x%02x)", byte(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func hasControl(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

func normalizeSeparators(p string) string {
	p = strings.ReplaceAll(p, "\\", string(filepath.Separator))
	return strings.ReplaceAll(p, "/", string(filepath.Separator))
}

func samePath(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func hasPathPrefix(path, prefix string) bool {
	if runtime.GOOS == "windows" {
		return len(path) >= len(prefix) && strings.EqualFold(path[:len(prefix)], prefix)
	}
	return strings.HasPrefix(path, prefix)
}
