package display

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/apkren/pkg/commands"
	"github.com/arthur-debert/apkren/pkg/rewrite"
	"github.com/arthur-debert/apkren/pkg/script"
	"github.com/arthur-debert/apkren/pkg/session"
)

// NewDocumentView flattens a compiled document
func NewDocumentView(source string, doc *script.Document) *DocumentView {
	v := &DocumentView{
		Source:   source,
		Version:  doc.Version().String(),
		Metadata: doc.Metadata(),
		Stages:   []StageView{},
	}
	for _, stage := range doc.Stages() {
		sv := StageView{Kind: stage.Kind.String(), Commands: []CommandView{}}
		for _, cmd := range stage.Commands {
			sv.Commands = append(sv.Commands, CommandView{Line: cmd.Line, Name: cmd.Name, Args: nonNil(cmd.Args)})
		}
		v.Stages = append(v.Stages, sv)
	}
	return v
}

// Lines implements View
func (v *DocumentView) Lines() []string {
	var lines []string
	if v.Source != "" {
		lines = append(lines, fmt.Sprintf("[title]%s[/title]", v.Source))
	}
	lines = append(lines, fmt.Sprintf("[muted]version[/muted] %s", v.Version))

	keys := make([]string, 0, len(v.Metadata))
	for k := range v.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("[muted]%s[/muted] = %s", k, v.Metadata[k]))
	}

	for _, stage := range v.Stages {
		lines = append(lines, "", fmt.Sprintf("[stage]%s[/stage] (%d)", stage.Kind, len(stage.Commands)))
		for _, cmd := range stage.Commands {
			lines = append(lines, fmt.Sprintf("  [muted]%4d[/muted]  [command]%s[/command] %s",
				cmd.Line, cmd.Name, strings.Join(cmd.Args, " ")))
		}
	}
	return lines
}

// NewCatalogView lists every command of catalog
func NewCatalogView(catalog *commands.Catalog) *CatalogView {
	v := &CatalogView{Commands: []CommandInfo{}}
	for _, d := range catalog.Descriptors() {
		access := make([]string, 0, len(d.Access))
		for _, a := range d.Access {
			access = append(access, a.String())
		}
		v.Commands = append(v.Commands, CommandInfo{
			Name:    d.Name,
			Arity:   d.Arity.String(),
			Access:  access,
			Async:   d.Async,
			Summary: d.Summary,
		})
	}
	return v
}

// Lines implements View
func (v *CatalogView) Lines() []string {
	lines := []string{"[title]Commands[/title]"}
	for _, c := range v.Commands {
		flags := ""
		if c.Async {
			flags = " [muted](async)[/muted]"
		}
		lines = append(lines, fmt.Sprintf("  [command]%-11s[/command] %-6s %-12s %s%s",
			c.Name, c.Arity, strings.Join(c.Access, ","), c.Summary, flags))
	}
	return lines
}

// NewRunView flattens session reports
func NewRunView(reports []*session.Report) *RunView {
	v := &RunView{Packages: []PackageView{}}
	for _, r := range reports {
		if r == nil {
			continue
		}
		pv := PackageView{
			Dir:       r.Dir,
			Variables: nonNilMap(r.Variables),
			Stages:    []StageResultView{},
			Skipped:   []string{},
		}
		for _, s := range r.Stages {
			pv.Stages = append(pv.Stages, StageResultView{
				Kind:       s.Kind.String(),
				Inclusions: nonNil(s.Result.Inclusions),
				Exclusions: nonNil(s.Result.Exclusions),
			})
		}
		for _, k := range r.Skipped {
			pv.Skipped = append(pv.Skipped, k.String())
		}
		pv.Error = r.Error
		v.Packages = append(v.Packages, pv)
	}
	return v
}

// Lines implements View
func (v *RunView) Lines() []string {
	var lines []string
	for _, p := range v.Packages {
		status := "[success]✓[/success]"
		if p.Error != "" {
			status = "[error]✗[/error]"
		}
		lines = append(lines, fmt.Sprintf("%s [path]%s[/path]", status, p.Dir))
		for _, s := range p.Stages {
			lines = append(lines, fmt.Sprintf("  [stage]%s[/stage] %d included, %d excluded",
				s.Kind, len(s.Inclusions), len(s.Exclusions)))
		}
		if len(p.Skipped) > 0 {
			lines = append(lines, fmt.Sprintf("  [muted]no alterations: %s[/muted]", strings.Join(p.Skipped, ", ")))
		}
		if p.Error != "" {
			lines = append(lines, fmt.Sprintf("  [error]%s[/error]", p.Error))
		}
	}
	return lines
}

// NewELFView describes a library rewrite
func NewELFView(r *rewrite.ELFReport) *PatchView {
	return &PatchView{
		Kind:      "elf",
		Path:      r.Path,
		Summary:   fmt.Sprintf("%d string(s) replaced in %d table(s)", r.Replaced, r.Sections),
		Cancelled: r.Cancelled,
		Warnings:  warnings(r.Warnings),
	}
}

// NewArchiveView describes an archive rewrite
func NewArchiveView(r *rewrite.ArchiveReport) *PatchView {
	return &PatchView{
		Kind:      "archive",
		Path:      r.Path,
		Summary:   r.Summary(),
		Cancelled: r.Cancelled,
		Warnings:  warnings(r.Warnings),
	}
}

// Lines implements View
func (v *PatchView) Lines() []string {
	lines := []string{fmt.Sprintf("[path]%s[/path]: %s", v.Path, v.Summary)}
	if v.Cancelled {
		lines = append(lines, "  [warning]cancelled[/warning]")
	}
	for _, w := range v.Warnings {
		lines = append(lines, fmt.Sprintf("  [warning]%s[/warning] %s", w.Kind, w.Message))
	}
	return lines
}

func warnings(in []rewrite.Warning) []WarningView {
	out := make([]WarningView, 0, len(in))
	for _, w := range in {
		out = append(out, WarningView{Kind: w.Kind.String(), Message: w.Message})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

// Add appends one rewrite outcome
func (v *PatchListView) Add(p *PatchView) {
	v.Patches = append(v.Patches, *p)
}

// Lines implements View
func (v *PatchListView) Lines() []string {
	var lines []string
	for i := range v.Patches {
		lines = append(lines, v.Patches[i].Lines()...)
	}
	return lines
}
