// pkg/config/config_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: temp dirs, environment variables
// PURPOSE: Test source layering, decoding and validation

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/apkren/pkg/errors"
	"github.com/arthur-debert/apkren/pkg/rewrite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func isolateUserConfig(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return home
}

func TestDefaults(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, rewrite.DefaultRenameTemplate, cfg.Rename.Regex)
	assert.Equal(t, 60*time.Second, cfg.Rename.RegexTimeout)
	assert.Equal(t, ".apkspare", cfg.Library.ScratchSuffix)
	assert.Equal(t, []string{".so"}, cfg.Library.Extensions)
	assert.Equal(t, []string{"libscript.so"}, cfg.Library.Skip)
	assert.Equal(t, "catalog", cfg.Assets.CatalogMarker)
	assert.Empty(t, cfg.Assets.ExtraEntries)
	assert.Equal(t, "", cfg.Script.DefaultPath)
	assert.Equal(t, 1, cfg.Run.Parallel)
}

func TestUserConfigFile(t *testing.T) {
	home := isolateUserConfig(t)
	writeConfig(t, filepath.Join(home, "apkren", "config.toml"), `
[assets]
catalog_marker = "manifest"
extra_entries = ["data/settings.json"]
`)

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "manifest", cfg.Assets.CatalogMarker)
	assert.Equal(t, []string{"data/settings.json"}, cfg.Assets.ExtraEntries)
	assert.Equal(t, ".apkspare", cfg.Library.ScratchSuffix, "untouched keys keep defaults")

	cfg, err = Load(Options{SkipUserConfig: true})
	require.NoError(t, err)
	assert.Equal(t, "catalog", cfg.Assets.CatalogMarker)
}

func TestLayering(t *testing.T) {
	home := isolateUserConfig(t)
	writeConfig(t, filepath.Join(home, "apkren", "config.toml"), "[run]\nparallel = 2\n[library]\nscratch_suffix = \".user\"\n")

	explicit := filepath.Join(t.TempDir(), "apkren.toml")
	writeConfig(t, explicit, "[run]\nparallel = 3\n[rename]\nregex_timeout = \"5s\"\n")

	t.Setenv("APKREN_RUN_PARALLEL", "4")
	t.Setenv("APKREN_LIBRARY_EXTENSIONS", ".so,.bin")

	cfg, err := Load(Options{File: explicit})
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Run.Parallel, "env beats files")
	assert.Equal(t, 5*time.Second, cfg.Rename.RegexTimeout)
	assert.Equal(t, ".user", cfg.Library.ScratchSuffix)
	assert.Equal(t, []string{".so", ".bin"}, cfg.Library.Extensions)

	cfg, err = Load(Options{File: explicit, Overrides: map[string]interface{}{"run.parallel": 8}})
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Run.Parallel, "overrides beat env")
}

func TestEnvSectionKeys(t *testing.T) {
	isolateUserConfig(t)
	t.Setenv("APKREN_ASSETS_CATALOG_MARKER", "index")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "index", cfg.Assets.CatalogMarker)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "assets.catalog_marker", envKey("APKREN_ASSETS_CATALOG_MARKER"))
	assert.Equal(t, "run.parallel", envKey("APKREN_RUN_PARALLEL"))
	assert.Equal(t, "rename.regex_timeout", envKey("APKREN_RENAME_REGEX_TIMEOUT"))
}

func TestLoadFailures(t *testing.T) {
	isolateUserConfig(t)

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(Options{File: filepath.Join(t.TempDir(), "nope.toml")})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		writeConfig(t, path, "[run\nparallel = ")
		_, err := Load(Options{File: path})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	tests := []struct {
		name      string
		overrides map[string]interface{}
		key       string
	}{
		{"regex without placeholder", map[string]interface{}{"rename.regex": "com"}, "rename.regex"},
		{"zero timeout", map[string]interface{}{"rename.regex_timeout": "0s"}, "rename.regex_timeout"},
		{"no parallelism", map[string]interface{}{"run.parallel": 0}, "run.parallel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(Options{Overrides: tt.overrides})
			require.True(t, errors.IsErrorCode(err, errors.ErrConfigParse), "got %v", err)
			key, _ := errors.Detail(err, "key")
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestDerivedOptions(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	rule, err := cfg.RenameRule("oldco", "newco")
	require.NoError(t, err)
	got, err := rule.Apply("com.oldco.game")
	require.NoError(t, err)
	assert.Equal(t, "com.newco.game", got)

	lib := cfg.LibraryOptions()
	assert.Equal(t, ".apkspare", lib.ScratchSuffix)
	assert.Equal(t, []string{"libscript.so"}, lib.Skip)

	cfg.Library.Skip = nil
	assert.NotNil(t, cfg.LibraryOptions().Skip, "an empty skip list disables the default")

	assert.Equal(t, "catalog", cfg.AssetOptions().CatalogMarker)
}
