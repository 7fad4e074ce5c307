package script

import (
	"fmt"
	"strings"
)

// StageKind identifies one phase of the rename pipeline.
// The numeric order is the execution order.
type StageKind int

const (
	StageUnpack StageKind = iota
	StageDirectory
	StageLibrary
	StageSmali
	StageAssets
	StagePack
)

// StageKinds lists every stage kind in execution order
var StageKinds = []StageKind{
	StageUnpack,
	StageDirectory,
	StageLibrary,
	StageSmali,
	StageAssets,
	StagePack,
}

var stageNames = map[StageKind]string{
	StageUnpack:    "Unpack",
	StageDirectory: "Directory",
	StageLibrary:   "Library",
	StageSmali:     "Smali",
	StageAssets:    "Assets",
	StagePack:      "Pack",
}

func (k StageKind) String() string {
	if name, ok := stageNames[k]; ok {
		return name
	}
	return fmt.Sprintf("StageKind(%d)", int(k))
}

// ParseStageKind matches name case-insensitively against the stage names
func ParseStageKind(name string) (StageKind, bool) {
	for _, kind := range StageKinds {
		if strings.EqualFold(stageNames[kind], name) {
			return kind, true
		}
	}
	return 0, false
}

// MarshalText renders the stage name for JSON, YAML and TOML output
func (k StageKind) MarshalText() ([]byte, error) {
	if _, ok := stageNames[k]; !ok {
		return nil, fmt.Errorf("invalid stage kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText parses a stage name
func (k *StageKind) UnmarshalText(text []byte) error {
	kind, ok := ParseStageKind(string(text))
	if !ok {
		return fmt.Errorf("unknown stage %q", string(text))
	}
	*k = kind
	return nil
}
