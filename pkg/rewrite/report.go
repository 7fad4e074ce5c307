package rewrite

import "fmt"

// WarningKind classifies a skipped piece of work
type WarningKind int

const (
	NotAnObjectFile WarningKind = iota + 1
	NotAnArchive
	LengthMismatch
)

func (k WarningKind) String() string {
	switch k {
	case NotAnObjectFile:
		return "NotAnObjectFile"
	case NotAnArchive:
		return "NotAnArchive"
	case LengthMismatch:
		return "LengthMismatch"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// MarshalText renders the kind name
func (k WarningKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Warning records work that was skipped rather than failed
type Warning struct {
	Kind    WarningKind `json:"kind" yaml:"kind"`
	Path    string      `json:"path" yaml:"path"`
	Message string      `json:"message" yaml:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", w.Kind, w.Path, w.Message)
}

// ELFReport summarizes one string-table rewrite
type ELFReport struct {
	Path      string    `json:"path" yaml:"path"`
	Sections  int       `json:"sections" yaml:"sections"`
	Replaced  int       `json:"replaced" yaml:"replaced"`
	Cancelled bool      `json:"cancelled,omitempty" yaml:"cancelled,omitempty"`
	Warnings  []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// HasWarning reports whether a warning of kind was recorded
func (r *ELFReport) HasWarning(kind WarningKind) bool {
	return hasWarning(r.Warnings, kind)
}

// ArchiveReport summarizes one archive rewrite
type ArchiveReport struct {
	Path      string    `json:"path" yaml:"path"`
	Selected  int       `json:"selected" yaml:"selected"`
	Edited    int       `json:"edited" yaml:"edited"`
	Saved     bool      `json:"saved" yaml:"saved"`
	Cancelled bool      `json:"cancelled,omitempty" yaml:"cancelled,omitempty"`
	Warnings  []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// HasWarning reports whether a warning of kind was recorded
func (r *ArchiveReport) HasWarning(kind WarningKind) bool {
	return hasWarning(r.Warnings, kind)
}

// Summary distinguishes an archive left alone from one that was re-saved
func (r *ArchiveReport) Summary() string {
	if !r.Saved {
		return "no edits"
	}
	if r.Edited == 1 {
		return "1 edit saved"
	}
	return fmt.Sprintf("%d edits saved", r.Edited)
}

func hasWarning(warnings []Warning, kind WarningKind) bool {
	for _, w := range warnings {
		if w.Kind == kind {
			return true
		}
	}
	return false
}
