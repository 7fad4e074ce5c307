// pkg/rewrite/elf_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: OS temp dirs, testutil ELF builder
// PURPOSE: Test in-place string-table patching of native libraries

package rewrite_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/apkren/pkg/errors"
	"github.com/arthur-debert/apkren/pkg/progress"
	"github.com/arthur-debert/apkren/pkg/rewrite"
	"github.com/arthur-debert/apkren/pkg/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLibrary(t *testing.T, img testutil.ELFImage) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "libgame.so")
	require.NoError(t, os.WriteFile(path, img.Data, 0644))
	return path
}

func literalRule(t *testing.T, from, to string) *rewrite.Rule {
	t.Helper()
	rule, err := rewrite.NewRule(regexpQuote(from), to, time.Second)
	require.NoError(t, err)
	return rule
}

func regexpQuote(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		if r == '.' {
			b.WriteString(`\.`)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func elfOptions() rewrite.ELFOptions {
	return rewrite.ELFOptions{Logger: zerolog.Nop()}
}

func TestRewriteELFEqualLength(t *testing.T) {
	img := testutil.BuildELF(
		testutil.StringTable{Name: ".dynstr", Strings: []string{"libc.so", "com.old.app", "Java_com_old_app_Main"}},
		testutil.StringTable{Name: ".strtab", Strings: []string{"com.old.app.native"}},
	)
	path := writeLibrary(t, img)
	offset := img.Offset(".dynstr", "com.old.app")
	require.Positive(t, offset)

	report, err := rewrite.RewriteELFStrings(context.Background(), path, literalRule(t, "com.old.app", "com.new.pkg"), elfOptions())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Len(t, data, len(img.Data), "file size must not change")
	assert.Equal(t, "com.new.pkg", string(data[offset:offset+len("com.new.pkg")]))
	strtab := img.Offset(".strtab", "com.old.app.native")
	assert.Equal(t, "com.new.pkg.native", string(data[strtab:strtab+len("com.new.pkg.native")]))

	assert.Equal(t, 2, report.Sections, ".shstrtab is never processed")
	assert.Equal(t, 2, report.Replaced)
	assert.Empty(t, report.Warnings)

	_, err = os.Stat(path + rewrite.DefaultScratchSuffix)
	assert.True(t, os.IsNotExist(err), "scratch copy must be removed")
}

func TestRewriteELFLengthMismatchKeepsOriginal(t *testing.T) {
	img := testutil.BuildELF(testutil.StringTable{Name: ".dynstr", Strings: []string{"com.old.app"}})
	path := writeLibrary(t, img)

	report, err := rewrite.RewriteELFStrings(context.Background(), path, literalRule(t, "com.old.app", "com.longer.app"), elfOptions())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, img.Data, data)
	assert.True(t, report.HasWarning(rewrite.LengthMismatch))
	assert.Zero(t, report.Replaced)
}

func TestRewriteELFSkipsSectionHeaderStrings(t *testing.T) {
	img := testutil.BuildELF(testutil.StringTable{Name: ".dynstr", Strings: []string{"keep"}})
	path := writeLibrary(t, img)

	// ".dynstr" also appears in .shstrtab; renaming it there would corrupt section names
	_, err := rewrite.RewriteELFStrings(context.Background(), path, literalRule(t, ".dynstr", ".dynxxx"), elfOptions())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, img.Data, data)
}

func TestRewriteELFSkipsSectionPastEndOfFile(t *testing.T) {
	img := testutil.BuildELF(
		testutil.StringTable{Name: ".dynstr", Strings: []string{"com.old.app"}},
		testutil.StringTable{Name: ".strtab", Strings: []string{"com.old.app"}},
	)
	// Point .dynstr (section 1) far beyond the end of the file.
	shoff := binary.LittleEndian.Uint64(img.Data[40:48])
	header := img.Data[shoff+64:]
	binary.LittleEndian.PutUint64(header[24:32], 1<<62)
	binary.LittleEndian.PutUint64(header[32:40], 1<<62)
	path := writeLibrary(t, img)

	var report *rewrite.ELFReport
	var err error
	require.NotPanics(t, func() {
		report, err = rewrite.RewriteELFStrings(context.Background(), path, literalRule(t, "com.old.app", "com.new.app"), elfOptions())
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, data, len(img.Data))

	// debug/elf may refuse the header outright; otherwise only .strtab is touched
	if !report.HasWarning(rewrite.NotAnObjectFile) {
		assert.Equal(t, 1, report.Sections)
		strtab := img.Offset(".strtab", "com.old.app")
		assert.Equal(t, "com.new.app", string(data[strtab:strtab+len("com.new.app")]))
	}
}

func TestRewriteELFNotAnObjectFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "libfake.so")
	original := []byte("this is not an elf file at all")
	require.NoError(t, os.WriteFile(path, original, 0644))

	report, err := rewrite.RewriteELFStrings(context.Background(), path, literalRule(t, "elf", "ELF"), elfOptions())
	require.NoError(t, err)
	assert.True(t, report.HasWarning(rewrite.NotAnObjectFile))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, data)
}

func TestRewriteELFCancelled(t *testing.T) {
	img := testutil.BuildELF(testutil.StringTable{Name: ".dynstr", Strings: []string{"com.old.app"}})
	path := writeLibrary(t, img)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := rewrite.RewriteELFStrings(ctx, path, literalRule(t, "com.old.app", "com.new.pkg"), elfOptions())
	require.NoError(t, err)
	assert.True(t, report.Cancelled)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, img.Data, data)
}

func TestRewriteELFMissingFile(t *testing.T) {
	_, err := rewrite.RewriteELFStrings(context.Background(), filepath.Join(t.TempDir(), "nope.so"),
		literalRule(t, "a", "b"), elfOptions())
	assert.True(t, errors.IsErrorCode(err, errors.ErrAssetNotFound), "got %v", err)
}

func TestRewriteELFReportsProgress(t *testing.T) {
	img := testutil.BuildELF(testutil.StringTable{Name: ".dynstr", Strings: []string{"x"}})
	path := writeLibrary(t, img)
	rec := &progress.Recorder{}

	opts := elfOptions()
	opts.Progress = rec
	opts.ScratchSuffix = ".tmpcopy"
	_, err := rewrite.RewriteELFStrings(context.Background(), path, literalRule(t, "x", "y"), opts)
	require.NoError(t, err)

	assert.Equal(t, []string{".dynstr"}, rec.Messages())
}
