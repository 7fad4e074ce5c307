package apkren

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Rename extracted Android packages with stage scripts"
	MsgCompileShort    = "Compile a script and show its stages"
	MsgRunShort        = "Run a script over extracted packages"
	MsgPatchShort      = "Rewrite strings inside binaries and archives"
	MsgPatchELFShort   = "Rewrite string tables of a native library"
	MsgPatchZipShort   = "Rewrite catalog entries of an asset archive"
	MsgCommandsShort   = "List the builtin script commands"
	MsgSyntaxShort     = "Show the script syntax reference"
	MsgConfigShort     = "Show the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgWatching       = "Watching %s for changes (Ctrl-C to stop)"
	MsgRecompiled     = "[success]✓[/success] recompiled [path]%s[/path]"
	MsgCompileFailed  = "[error]✗[/error] %v"
	MsgRunningPackage = "Renaming %s"

	// Error messages
	MsgErrNoScript   = "no script given and script.default_path is not set"
	MsgErrReadScript = "failed to read script %s"
	MsgErrNoCompany  = "--new-company must not be blank"
	MsgErrNoRule     = "--from and --to are required"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat   = "Output format: auto, term, text, json, yaml, toml"
	MsgFlagConfig   = "Config file (default $XDG_CONFIG_HOME/apkren/config.toml)"
	MsgFlagWatch    = "Recompile whenever the script changes"
	MsgFlagCompany  = "New company name for every package"
	MsgFlagParallel = "Packages processed at once (overrides run.parallel)"
	MsgFlagVar      = "Extra script variable as name=value (repeatable)"
	MsgFlagStage    = "Only run these stages (repeatable)"
	MsgFlagFrom     = "Company name to replace"
	MsgFlagTo       = "Replacement company name"
	MsgFlagEntry    = "Extra archive entry to rewrite (repeatable)"
	MsgFlagDefaults = "Print the built-in defaults file instead"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/run-example.txt
	msgRunExampleRaw string
	MsgRunExample    = strings.TrimRight(msgRunExampleRaw, "\n")

	//go:embed msgs/compile-example.txt
	msgCompileExampleRaw string
	MsgCompileExample    = strings.TrimRight(msgCompileExampleRaw, "\n")

	//go:embed msgs/patch-example.txt
	msgPatchExampleRaw string
	MsgPatchExample    = strings.TrimRight(msgPatchExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/syntax.md
	MsgSyntax string
)
