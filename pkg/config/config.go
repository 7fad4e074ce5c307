package config

import (
	"strings"
	"time"

	"github.com/arthur-debert/apkren/pkg/commands"
	"github.com/arthur-debert/apkren/pkg/errors"
	"github.com/arthur-debert/apkren/pkg/rewrite"
)

// Rename configures the rename rule handed to the rewrite commands
type Rename struct {
	// Regex is a .NET-flavoured pattern with a {value} placeholder
	Regex        string        `koanf:"regex" toml:"regex" yaml:"regex" json:"regex"`
	RegexTimeout time.Duration `koanf:"regex_timeout" toml:"regex_timeout" yaml:"regexTimeout" json:"regexTimeout"`
}

// Library configures patchlib
type Library struct {
	ScratchSuffix string   `koanf:"scratch_suffix" toml:"scratch_suffix" yaml:"scratchSuffix" json:"scratchSuffix"`
	Extensions    []string `koanf:"extensions" toml:"extensions" yaml:"extensions" json:"extensions"`
	Skip          []string `koanf:"skip" toml:"skip" yaml:"skip" json:"skip"`
}

// Assets configures patchasset
type Assets struct {
	CatalogMarker string   `koanf:"catalog_marker" toml:"catalog_marker" yaml:"catalogMarker" json:"catalogMarker"`
	ExtraEntries  []string `koanf:"extra_entries" toml:"extra_entries" yaml:"extraEntries" json:"extraEntries"`
}

// Script holds script lookup settings
type Script struct {
	DefaultPath string `koanf:"default_path" toml:"default_path" yaml:"defaultPath" json:"defaultPath"`
}

// Run holds execution settings
type Run struct {
	// Parallel is the number of packages processed at once
	Parallel int `koanf:"parallel" toml:"parallel" yaml:"parallel" json:"parallel"`
}

// Config is the fully merged configuration
type Config struct {
	Rename  Rename  `koanf:"rename" toml:"rename" yaml:"rename" json:"rename"`
	Library Library `koanf:"library" toml:"library" yaml:"library" json:"library"`
	Assets  Assets  `koanf:"assets" toml:"assets" yaml:"assets" json:"assets"`
	Script  Script  `koanf:"script" toml:"script" yaml:"script" json:"script"`
	Run     Run     `koanf:"run" toml:"run" yaml:"run" json:"run"`
}

// Validate checks values the loaders cannot
func (c *Config) Validate() error {
	if !strings.Contains(c.Rename.Regex, rewrite.ValuePlaceholder) {
		return errors.Newf(errors.ErrConfigParse, "rename.regex must contain %s", rewrite.ValuePlaceholder).
			WithDetail("key", "rename.regex")
	}
	if c.Rename.RegexTimeout <= 0 {
		return errors.New(errors.ErrConfigParse, "rename.regex_timeout must be positive").
			WithDetail("key", "rename.regex_timeout")
	}
	if c.Run.Parallel < 1 {
		return errors.Newf(errors.ErrConfigParse, "run.parallel must be at least 1, got %d", c.Run.Parallel).
			WithDetail("key", "run.parallel")
	}
	return nil
}

// RenameRule builds the rule replacing the company name value with replacement
func (c *Config) RenameRule(value, replacement string) (*rewrite.Rule, error) {
	return rewrite.NewRenameRule(c.Rename.Regex, value, replacement, c.Rename.RegexTimeout)
}

// LibraryOptions returns the patchlib settings
func (c *Config) LibraryOptions() commands.LibraryOptions {
	return commands.LibraryOptions{
		ScratchSuffix: c.Library.ScratchSuffix,
		Extensions:    append([]string(nil), c.Library.Extensions...),
		Skip:          append([]string{}, c.Library.Skip...),
	}
}

// AssetOptions returns the patchasset settings
func (c *Config) AssetOptions() commands.AssetOptions {
	return commands.AssetOptions{
		CatalogMarker: c.Assets.CatalogMarker,
		ExtraEntries:  append([]string(nil), c.Assets.ExtraEntries...),
	}
}
