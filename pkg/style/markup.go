package style

import (
	"regexp"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

var tagPattern = regexp.MustCompile(`\[/?[a-z_]+\]`)

// MarkupParser renders [tag]text[/tag] markup with lipgloss styles
type MarkupParser struct {
	styles   map[string]lipgloss.Style
	patterns map[string]*regexp.Regexp
}

// NewMarkupParser creates a new markup parser with default styles
func NewMarkupParser() *MarkupParser {
	p := &MarkupParser{
		styles:   map[string]lipgloss.Style{},
		patterns: map[string]*regexp.Regexp{},
	}
	for tag, s := range map[string]lipgloss.Style{
		"title":    TitleStyle,
		"subtitle": SubtitleStyle,
		"success":  SuccessStyle,
		"error":    ErrorStyle,
		"warning":  WarningStyle,
		"info":     InfoStyle,
		"code":     CodeStyle,
		"path":     PathStyle,
		"muted":    MutedStyle,
		"stage":    StageStyle,
		"command":  CommandStyle,
		"bold":     lipgloss.NewStyle().Bold(true),
	} {
		p.AddStyle(tag, s)
	}
	return p
}

// AddStyle allows adding custom styles
func (p *MarkupParser) AddStyle(tag string, s lipgloss.Style) {
	p.styles[tag] = s
	p.patterns[tag] = regexp.MustCompile(`\[` + regexp.QuoteMeta(tag) + `\](.*?)\[/` + regexp.QuoteMeta(tag) + `\]`)
}

// Render processes markup text and returns styled output
func (p *MarkupParser) Render(text string) string {
	tags := make([]string, 0, len(p.styles))
	for tag := range p.styles {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	result := text
	for {
		before := result
		for _, tag := range tags {
			pattern, s := p.patterns[tag], p.styles[tag]
			result = pattern.ReplaceAllStringFunc(result, func(match string) string {
				return s.Render(pattern.FindStringSubmatch(match)[1])
			})
		}
		if result == before {
			return result
		}
	}
}

// Strip removes markup tags, leaving the plain text
func Strip(text string) string {
	return tagPattern.ReplaceAllString(text, "")
}

var defaultParser = NewMarkupParser()

// Render is a convenience function using the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}
