package rewrite

import (
	"bytes"
	"context"
	"debug/elf"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/arthur-debert/apkren/pkg/errors"
	"github.com/arthur-debert/apkren/pkg/progress"
	"github.com/rs/zerolog"
)

// DefaultScratchSuffix names the parse copy made next to the library
const DefaultScratchSuffix = ".apkspare"

const sectionHeaderStrings = ".shstrtab"

// ELFOptions configures RewriteELFStrings
type ELFOptions struct {
	// ScratchSuffix is appended to the library path for the parse copy
	ScratchSuffix string
	Logger        zerolog.Logger
	Progress      progress.Reporter
}

// RewriteELFStrings applies rule to every string in the string tables of
// the object file at path, except the section-header string table.
//
// The section table is parsed from a scratch copy; edits go straight into
// the live file at each section's original offset. A replacement whose byte
// length differs from the original is discarded with a LengthMismatch
// warning. A file that does not parse as ELF is left untouched with a
// NotAnObjectFile warning.
func RewriteELFStrings(ctx context.Context, path string, rule *Rule, opts ELFOptions) (*ELFReport, error) {
	if rule == nil {
		return nil, errors.New(errors.ErrInvalidInput, "rename rule is required")
	}
	logger := opts.Logger.With().Str("file", filepath.Base(path)).Logger()
	report := &ELFReport{Path: path}

	progress.Title(opts.Progress, "Renaming library")

	suffix := opts.ScratchSuffix
	if suffix == "" {
		suffix = DefaultScratchSuffix
	}
	scratch := path + suffix

	if err := copyFile(path, scratch); err != nil {
		logger.Error().Err(err).Msg("Failed to create scratch copy")
		code := errors.ErrRewriteIO
		if os.IsNotExist(err) {
			code = errors.ErrAssetNotFound
		}
		return nil, errors.Wrapf(err, code, "cannot copy %s", path).WithDetail("path", path)
	}
	defer func() {
		if err := os.Remove(scratch); err != nil && !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("scratch", scratch).Msg("Failed to remove scratch copy")
		}
	}()

	parsed, err := elf.Open(scratch)
	if err != nil {
		logger.Warn().Err(err).Msg("Object file is not an ELF")
		report.Warnings = append(report.Warnings, Warning{Kind: NotAnObjectFile, Path: path, Message: err.Error()})
		return report, nil
	}
	defer func() { _ = parsed.Close() }()

	live, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open library for writing")
		return nil, errors.Wrapf(err, errors.ErrRewriteIO, "cannot open %s", path).WithDetail("path", path)
	}
	defer func() { _ = live.Close() }()

	info, err := live.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRewriteIO, "cannot stat %s", path).WithDetail("path", path)
	}

	for _, section := range parsed.Sections {
		if section.Type != elf.SHT_STRTAB || section.Name == sectionHeaderStrings {
			continue
		}
		if ctx.Err() != nil {
			logger.Info().Msg("Library rewrite cancelled")
			report.Cancelled = true
			return report, nil
		}

		if size := uint64(info.Size()); section.Size > size || section.Offset > size-section.Size {
			logger.Warn().
				Str("section", section.Name).
				Uint64("offset", section.Offset).
				Uint64("size", section.Size).
				Msg("Section extends past end of file, skipping")
			continue
		}

		progress.Message(opts.Progress, section.Name)
		report.Sections++

		data := make([]byte, section.Size)
		if _, err := live.ReadAt(data, int64(section.Offset)); err != nil && err != io.EOF {
			logger.Error().Err(err).Str("section", section.Name).Msg("Failed to read section")
			return nil, errors.Wrapf(err, errors.ErrRewriteIO, "cannot read section %s of %s", section.Name, path).
				WithDetail("path", path)
		}

		changed, cancelled, err := rewriteStringTable(ctx, data, rule, report, logger)
		if err != nil {
			logger.Error().Err(err).Str("section", section.Name).Msg("Failed to rewrite section")
			return nil, err
		}
		if cancelled {
			logger.Info().Str("section", section.Name).Msg("Library rewrite cancelled")
			report.Cancelled = true
			return report, nil
		}
		if !changed {
			continue
		}

		if _, err := live.WriteAt(data, int64(section.Offset)); err != nil {
			logger.Error().Err(err).Str("section", section.Name).Msg("Failed to write section")
			return nil, errors.Wrapf(err, errors.ErrRewriteIO, "cannot write section %s of %s", section.Name, path).
				WithDetail("path", path)
		}
	}

	logger.Debug().Int("sections", report.Sections).Int("replaced", report.Replaced).Msg("Library rewritten")
	return report, nil
}

// rewriteStringTable edits the NUL-terminated strings of data in place
func rewriteStringTable(ctx context.Context, data []byte, rule *Rule, report *ELFReport, logger zerolog.Logger) (changed, cancelled bool, err error) {
	for start := 0; start < len(data); {
		end := bytes.IndexByte(data[start:], 0)
		if end < 0 {
			end = len(data)
		} else {
			end += start
		}

		if end > start {
			if ctx.Err() != nil {
				return changed, true, nil
			}

			run := data[start:end]
			if utf8.Valid(run) {
				original := string(run)
				replaced, err := rule.Apply(original)
				if err != nil {
					return changed, false, err
				}

				switch {
				case replaced == original:
				case len(replaced) != len(run):
					logger.Warn().
						Str("original", original).
						Str("replacement", replaced).
						Msg("Replacement changes the string length, skipping")
					report.Warnings = append(report.Warnings, Warning{
						Kind:    LengthMismatch,
						Path:    report.Path,
						Message: fmt.Sprintf("%q -> %q", original, replaced),
					})
				default:
					copy(run, replaced)
					report.Replaced++
					changed = true
				}
			}
		}

		start = end + 1
	}
	return changed, false, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
