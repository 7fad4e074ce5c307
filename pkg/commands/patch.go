package commands

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/apkren/pkg/errors"
	"github.com/arthur-debert/apkren/pkg/rewrite"
)

// DefaultLibraryExtensions selects native libraries inside directories
var DefaultLibraryExtensions = []string{".so"}

// DefaultLibrarySkip names libraries that are usually JSON or script payloads
var DefaultLibrarySkip = []string{"libscript.so"}

const configLibrarySuffix = ".config.so"

func patchLibraries(ctx context.Context, env *Env, call Call) (*Result, error) {
	if env.Rename == nil {
		return nil, errors.New(errors.ErrInvalidInput, "no rename rule configured for library patching")
	}

	files, err := libraryFiles(ctx, env, call.Args.Values)
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		if ctx.Err() != nil {
			return nil, nil
		}
		report, err := rewrite.RewriteELFStrings(ctx, file, env.Rename, rewrite.ELFOptions{
			ScratchSuffix: env.Library.ScratchSuffix,
			Logger:        call.Log,
			Progress:      env.Progress,
		})
		if err != nil {
			return nil, err
		}
		call.Log.Info().
			Str("file", file).
			Int("replaced", report.Replaced).
			Int("warnings", len(report.Warnings)).
			Msg("Library patched")
	}
	return nil, nil
}

func patchAssets(ctx context.Context, env *Env, call Call) (*Result, error) {
	if env.Rename == nil {
		return nil, errors.New(errors.ErrInvalidInput, "no rename rule configured for asset patching")
	}

	for _, archive := range call.Args.Values {
		if ctx.Err() != nil {
			return nil, nil
		}
		report, err := rewrite.RewriteArchiveStrings(ctx, archive, env.Rename, rewrite.ArchiveOptions{
			CatalogMarker: env.Assets.CatalogMarker,
			ExtraEntries:  env.Assets.ExtraEntries,
			Logger:        call.Log,
			Progress:      env.Progress,
		})
		if err != nil {
			return nil, err
		}
		call.Log.Info().Str("archive", archive).Msg(report.Summary())
	}
	return nil, nil
}

// libraryFiles expands directories into the library files below them.
// Files named explicitly are always kept.
func libraryFiles(ctx context.Context, env *Env, targets []string) ([]string, error) {
	extensions := env.Library.Extensions
	if len(extensions) == 0 {
		extensions = DefaultLibraryExtensions
	}
	skip := env.Library.Skip
	if skip == nil {
		skip = DefaultLibrarySkip
	}

	var out []string
	for _, target := range targets {
		info, err := env.FS.Stat(target)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrAssetNotFound, "library '%s' not found", target).
				WithDetail("path", target)
		}
		if !info.IsDir() {
			out = append(out, target)
			continue
		}

		found, err := walkLibraries(ctx, env, target, extensions, skip)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}
	return out, nil
}

func walkLibraries(ctx context.Context, env *Env, dir string, extensions, skip []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil
	}

	entries, err := env.FS.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var out []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.Type()&fs.ModeSymlink != 0 {
			continue
		}
		if entry.IsDir() {
			found, err := walkLibraries(ctx, env, path, extensions, skip)
			if err != nil {
				return nil, err
			}
			out = append(out, found...)
			continue
		}
		if isLibrary(entry, extensions, skip) {
			out = append(out, path)
		}
	}
	return out, nil
}

func isLibrary(entry fs.DirEntry, extensions, skip []string) bool {
	name := entry.Name()
	if strings.HasSuffix(name, configLibrarySuffix) {
		return false
	}
	for _, s := range skip {
		if name == s {
			return false
		}
	}
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
