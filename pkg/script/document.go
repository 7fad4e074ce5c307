package script

import (
	"fmt"
	"strconv"
	"strings"
)

// Command is one script line: a name and its raw arguments as written,
// before variable substitution.
type Command struct {
	Name string   `json:"name" yaml:"name" toml:"name"`
	Args []string `json:"args" yaml:"args" toml:"args"`
	Line int      `json:"line" yaml:"line" toml:"line"`
}

// Stage is the ordered command list of one stage kind
type Stage struct {
	Kind     StageKind `json:"kind" yaml:"kind" toml:"kind"`
	Commands []Command `json:"commands" yaml:"commands" toml:"commands"`
}

// Version is the four-part script version taken from the "version" meta key
type Version struct {
	Major    int
	Minor    int
	Build    int
	Revision int
}

// ParseVersion accepts two to four dot-separated non-negative integers.
// Missing trailing parts are zero.
func ParseVersion(s string) (Version, bool) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < 2 || len(parts) > 4 {
		return Version{}, false
	}

	var nums [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || strings.HasPrefix(p, "+") {
			return Version{}, false
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Build: nums[2], Revision: nums[3]}, true
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Build, v.Revision)
}

// MarshalText renders the dotted form
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Document is a compiled script. It is never modified after Compile returns;
// accessors hand out copies.
type Document struct {
	stages   []Stage
	metadata map[string]string
	version  Version
}

// Stages returns every declared stage in execution order
func (d *Document) Stages() []Stage {
	out := make([]Stage, len(d.stages))
	for i, s := range d.stages {
		out[i] = copyStage(s)
	}
	return out
}

// Stage returns the stage of the given kind, if the script declared it
func (d *Document) Stage(kind StageKind) (Stage, bool) {
	for _, s := range d.stages {
		if s.Kind == kind {
			return copyStage(s), true
		}
	}
	return Stage{}, false
}

// Metadata returns a copy of the meta-setter table
func (d *Document) Metadata() map[string]string {
	out := make(map[string]string, len(d.metadata))
	for k, v := range d.metadata {
		out[k] = v
	}
	return out
}

// Meta returns one metadata value
func (d *Document) Meta(key string) (string, bool) {
	v, ok := d.metadata[key]
	return v, ok
}

// Version returns the script version, 0.0.0.0 when absent or unparsable
func (d *Document) Version() Version {
	return d.version
}

func copyStage(s Stage) Stage {
	cmds := make([]Command, len(s.Commands))
	for i, c := range s.Commands {
		cmds[i] = Command{Name: c.Name, Args: append([]string(nil), c.Args...), Line: c.Line}
	}
	return Stage{Kind: s.Kind, Commands: cmds}
}

// builder accumulates stages while the parser walks the script
type builder struct {
	stages   map[StageKind]*Stage
	metadata map[string]string
}

func newBuilder() *builder {
	return &builder{
		stages:   make(map[StageKind]*Stage),
		metadata: make(map[string]string),
	}
}

func (b *builder) stage(kind StageKind) *Stage {
	s, ok := b.stages[kind]
	if !ok {
		s = &Stage{Kind: kind}
		b.stages[kind] = s
	}
	return s
}

func (b *builder) build() *Document {
	doc := &Document{metadata: b.metadata}
	for _, kind := range StageKinds {
		if s, ok := b.stages[kind]; ok {
			doc.stages = append(doc.stages, *s)
		}
	}
	if raw, ok := b.metadata["version"]; ok {
		if v, ok := ParseVersion(raw); ok {
			doc.version = v
		}
	}
	return doc
}
