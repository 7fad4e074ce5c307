package rewrite

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/apkren/pkg/errors"
	"github.com/arthur-debert/apkren/pkg/progress"
	"github.com/klauspost/compress/zip"
	"github.com/rs/zerolog"
)

// DefaultCatalogMarker selects archive entries by substring of their name
const DefaultCatalogMarker = "catalog"

// ArchiveOptions configures RewriteArchiveStrings
type ArchiveOptions struct {
	// CatalogMarker selects every entry whose name contains it
	CatalogMarker string
	// ExtraEntries selects entries by exact name
	ExtraEntries []string
	Logger       zerolog.Logger
	Progress     progress.Reporter
}

// RewriteArchiveStrings applies rule to the text of the selected entries of
// the zip archive at path. Changed entries are replaced whole; the archive is
// written back once, and only when at least one entry changed.
func RewriteArchiveStrings(ctx context.Context, path string, rule *Rule, opts ArchiveOptions) (*ArchiveReport, error) {
	if rule == nil {
		return nil, errors.New(errors.ErrInvalidInput, "rename rule is required")
	}
	logger := opts.Logger.With().Str("archive", filepath.Base(path)).Logger()
	report := &ArchiveReport{Path: path}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrAssetNotFound,
				"the asset '%s' could not be found in %s", filepath.Base(path), filepath.Dir(path)).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrRewriteIO, "cannot stat %s", path).WithDetail("path", path)
	}

	progress.Title(opts.Progress, "Renaming OBB internal")
	progress.Message(opts.Progress, "Indexing...")

	reader, err := zip.OpenReader(path)
	if err != nil {
		if stderrors.Is(err, zip.ErrFormat) {
			logger.Warn().Err(err).Msg("Asset is not a zip archive, skipping")
			report.Warnings = append(report.Warnings, Warning{Kind: NotAnArchive, Path: path, Message: err.Error()})
			return report, nil
		}
		return nil, errors.Wrapf(err, errors.ErrRewriteIO, "cannot open archive %s", path).WithDetail("path", path)
	}
	closed := false
	defer func() {
		if !closed {
			_ = reader.Close()
		}
	}()

	selected := entrySelector(opts)
	edits := make(map[string][]byte)

	for _, entry := range reader.File {
		if !selected(entry) {
			continue
		}
		if ctx.Err() != nil {
			logger.Info().Msg("Archive rewrite cancelled")
			report.Cancelled = true
			return report, nil
		}

		report.Selected++
		logger.Debug().Str("entry", entry.Name).Msg("Renaming OBB entry")
		progress.Message(opts.Progress, entry.Name)

		content, err := readEntry(entry)
		if err != nil {
			logger.Error().Err(err).Str("entry", entry.Name).Msg("Failed to read entry")
			return nil, errors.Wrapf(err, errors.ErrRewriteIO, "cannot read %s in %s", entry.Name, path).
				WithDetail("path", path)
		}
		if !utf8.Valid(content) {
			logger.Warn().Str("entry", entry.Name).Msg("Entry is not UTF-8 text, skipping")
			continue
		}

		updated, err := rule.Apply(string(content))
		if err != nil {
			return nil, err
		}
		if updated != string(content) {
			edits[entry.Name] = []byte(updated)
		}
	}

	if len(edits) == 0 {
		logger.Info().Msg("No edits, archive left unchanged")
		return report, nil
	}

	progress.Message(opts.Progress, "Saving...")
	if err := saveArchive(path, &reader.Reader, edits); err != nil {
		logger.Error().Err(err).Msg("Failed to save archive")
		return nil, errors.Wrapf(err, errors.ErrRewriteIO, "cannot save archive %s", path).WithDetail("path", path)
	}

	closed = true
	if err := reader.Close(); err != nil {
		logger.Debug().Err(err).Msg("Closing archive reader")
	}
	if err := replaceFile(path); err != nil {
		_ = os.Remove(pendingPath(path))
		return nil, errors.Wrapf(err, errors.ErrRewriteIO, "cannot replace archive %s", path).WithDetail("path", path)
	}

	report.Edited = len(edits)
	report.Saved = true

	logger.Info().Int("edits", report.Edited).Msg(report.Summary())
	return report, nil
}

func entrySelector(opts ArchiveOptions) func(*zip.File) bool {
	marker := opts.CatalogMarker
	if marker == "" {
		marker = DefaultCatalogMarker
	}
	extra := make(map[string]struct{}, len(opts.ExtraEntries))
	for _, name := range opts.ExtraEntries {
		extra[name] = struct{}{}
	}

	return func(f *zip.File) bool {
		if f.FileInfo().IsDir() {
			return false
		}
		if strings.Contains(f.Name, marker) {
			return true
		}
		_, ok := extra[f.Name]
		return ok
	}
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}

func pendingPath(path string) string {
	return path + ".pending"
}

// saveArchive writes a full copy of the archive with edited entries
// replaced next to the original. replaceFile then swaps it in.
func saveArchive(path string, reader *zip.Reader, edits map[string][]byte) (err error) {
	mode := os.FileMode(0644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	out, err := os.OpenFile(pendingPath(path), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = out.Close()
			_ = os.Remove(pendingPath(path))
		}
	}()

	writer := zip.NewWriter(out)
	if reader.Comment != "" {
		if err = writer.SetComment(reader.Comment); err != nil {
			return err
		}
	}

	for _, entry := range reader.File {
		content, edited := edits[entry.Name]
		if !edited {
			if err = writer.Copy(entry); err != nil {
				return err
			}
			continue
		}

		method := entry.Method
		if method != zip.Store {
			method = zip.Deflate
		}
		header := &zip.FileHeader{
			Name:          entry.Name,
			Comment:       entry.Comment,
			Method:        method,
			Modified:      entry.Modified,
			ExternalAttrs: entry.ExternalAttrs,
		}
		var w io.Writer
		if w, err = writer.CreateHeader(header); err != nil {
			return err
		}
		if _, err = w.Write(content); err != nil {
			return err
		}
	}

	if err = writer.Close(); err != nil {
		return err
	}
	return out.Close()
}

func replaceFile(path string) error {
	return os.Rename(pendingPath(path), path)
}
