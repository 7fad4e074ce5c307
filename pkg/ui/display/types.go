// Package display turns domain results into flat views every renderer can
// consume. Views carry json, yaml and toml tags for the structured
// renderers and expose Lines, marked up with pkg/style tags, for the text
// and terminal ones.
package display

// View is a result that can be printed line by line
type View interface {
	Lines() []string
}

// CommandView is one compiled command line
type CommandView struct {
	Line int      `json:"line" yaml:"line" toml:"line"`
	Name string   `json:"name" yaml:"name" toml:"name"`
	Args []string `json:"args" yaml:"args" toml:"args"`
}

// StageView is one compiled stage
type StageView struct {
	Kind     string        `json:"kind" yaml:"kind" toml:"kind"`
	Commands []CommandView `json:"commands" yaml:"commands" toml:"commands"`
}

// DocumentView is a compiled script
type DocumentView struct {
	Source   string            `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
	Version  string            `json:"version" yaml:"version" toml:"version"`
	Metadata map[string]string `json:"metadata" yaml:"metadata" toml:"metadata"`
	Stages   []StageView       `json:"stages" yaml:"stages" toml:"stages"`
}

// CommandInfo describes one builtin command
type CommandInfo struct {
	Name    string   `json:"name" yaml:"name" toml:"name"`
	Arity   string   `json:"arity" yaml:"arity" toml:"arity"`
	Access  []string `json:"access" yaml:"access" toml:"access"`
	Async   bool     `json:"async" yaml:"async" toml:"async"`
	Summary string   `json:"summary" yaml:"summary" toml:"summary"`
}

// CatalogView lists the builtin commands
type CatalogView struct {
	Commands []CommandInfo `json:"commands" yaml:"commands" toml:"commands"`
}

// StageResultView is the outcome of one dispatched stage
type StageResultView struct {
	Kind       string   `json:"kind" yaml:"kind" toml:"kind"`
	Inclusions []string `json:"inclusions" yaml:"inclusions" toml:"inclusions"`
	Exclusions []string `json:"exclusions" yaml:"exclusions" toml:"exclusions"`
}

// PackageView is the outcome of one package
type PackageView struct {
	Dir       string            `json:"dir" yaml:"dir" toml:"dir"`
	Variables map[string]string `json:"variables" yaml:"variables" toml:"variables"`
	Stages    []StageResultView `json:"stages" yaml:"stages" toml:"stages"`
	Skipped   []string          `json:"skipped" yaml:"skipped" toml:"skipped"`
	Error     string            `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// RunView is the outcome of a run over several packages
type RunView struct {
	Packages []PackageView `json:"packages" yaml:"packages" toml:"packages"`
}

// WarningView is one skipped rewrite
type WarningView struct {
	Kind    string `json:"kind" yaml:"kind" toml:"kind"`
	Message string `json:"message" yaml:"message" toml:"message"`
}

// PatchView is the outcome of one rewrite
type PatchView struct {
	Kind      string        `json:"kind" yaml:"kind" toml:"kind"`
	Path      string        `json:"path" yaml:"path" toml:"path"`
	Summary   string        `json:"summary" yaml:"summary" toml:"summary"`
	Cancelled bool          `json:"cancelled" yaml:"cancelled" toml:"cancelled"`
	Warnings  []WarningView `json:"warnings" yaml:"warnings" toml:"warnings"`
}

// PatchListView is the outcome of rewriting several files
type PatchListView struct {
	Patches []PatchView `json:"patches" yaml:"patches" toml:"patches"`
}
