package script

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/apkren/pkg/errors"
	"github.com/arthur-debert/apkren/pkg/logging"
	"github.com/rs/zerolog"
)

// Compile turns script text into a Document
func Compile(text string) (*Document, error) {
	return CompileWithLogger(text, logging.GetLogger("script"))
}

// CompileWithLogger compiles text, logging every diagnostic to logger.
//
// Lexing problems win over parsing problems, and both win over semantic
// problems (unknown stage, command outside a section, bad argument token),
// since the latter are only meaningful for a syntactically valid script.
func CompileWithLogger(text string, logger zerolog.Logger) (*Document, error) {
	done := logging.LogOperationStart(logger, "compile")
	defer done()

	tokens, lexDiags := lex(text)
	for _, d := range lexDiags {
		logger.Error().Int("line", d.Line).Int("column", d.Column).Msg(d.String())
	}

	p := &parser{builder: newBuilder()}
	p.parse(tokens)
	for _, d := range p.diags {
		logger.Error().Int("line", d.Line).Int("column", d.Column).Msg(d.String())
	}

	if len(lexDiags) > 0 {
		return nil, diagnosticsError(errors.ErrLexingFailed, "failed to lex script", lexDiags)
	}
	if len(p.diags) > 0 {
		return nil, diagnosticsError(errors.ErrParsingFailed, "failed to parse script", p.diags)
	}
	if p.semantic != nil {
		logger.Error().Err(p.semantic).Msg("script rejected")
		return nil, p.semantic
	}

	doc := p.builder.build()
	logger.Debug().
		Int("stages", len(doc.stages)).
		Int("metadata", len(doc.metadata)).
		Str("version", doc.version.String()).
		Msg("script compiled")
	return doc, nil
}

func diagnosticsError(code errors.ErrorCode, message string, diags []Diagnostic) error {
	summary := diags[0].String()
	if len(diags) > 1 {
		summary = fmt.Sprintf("%s (and %d more)", summary, len(diags)-1)
	}
	return errors.Newf(code, "%s: %s", message, summary).
		WithDetail("diagnostics", diags).
		WithDetail("line", diags[0].Line).
		WithDetail("column", diags[0].Column)
}

// Diagnostics extracts the syntax diagnostics carried by a compile error
func Diagnostics(err error) []Diagnostic {
	v, ok := errors.Detail(err, "diagnostics")
	if !ok {
		return nil
	}
	diags, _ := v.([]Diagnostic)
	return diags
}

type parser struct {
	builder  *builder
	current  *Stage
	diags    []Diagnostic
	semantic error
}

func (p *parser) errorf(tok token, format string, args ...interface{}) {
	p.diags = append(p.diags, Diagnostic{Line: tok.line, Column: tok.col, Message: fmt.Sprintf(format, args...)})
}

// fail keeps only the first semantic error; later ones are usually consequences
func (p *parser) fail(err error) {
	if p.semantic == nil {
		p.semantic = err
	}
}

func (p *parser) parse(tokens []token) {
	var line []token
	for _, tok := range tokens {
		if tok.kind == tokenNewline || tok.kind == tokenEOF {
			if len(line) > 0 {
				p.parseLine(line)
			}
			line = line[:0]
			continue
		}
		line = append(line, tok)
	}
}

func (p *parser) parseLine(line []token) {
	first := line[0]

	if first.kind != tokenWord {
		p.errorf(first, "expected command, section header or meta-setter, found %s %q", first.kind, first.text)
		return
	}

	if len(line) > 1 && line[1].kind == tokenEquals {
		p.parseMetaSetter(line)
		return
	}

	if strings.HasPrefix(first.text, "@") {
		p.parseSection(first, token{kind: tokenWord, text: first.text[1:], line: first.line, col: first.col + 1}, line[1:])
		return
	}

	if strings.EqualFold(first.text, "section") {
		if len(line) < 2 {
			p.errorf(first, "expected stage name after 'section'")
			return
		}
		p.parseSection(first, line[1], line[2:])
		return
	}

	p.parseCommand(line)
}

func (p *parser) parseMetaSetter(line []token) {
	key := line[0]
	if !isIdentifier(key.text) {
		p.errorf(key, "invalid metadata key %q", key.text)
		return
	}
	if len(line) < 3 {
		p.errorf(line[1], "expected value after '='")
		return
	}
	if len(line) > 3 {
		p.errorf(line[3], "unexpected %s %q after metadata value", line[3].kind, line[3].text)
		return
	}
	if _, exists := p.builder.metadata[key.text]; exists {
		p.errorf(key, "duplicate metadata key %q", key.text)
		return
	}

	value, ok := argumentValue(line[2])
	if !ok {
		p.fail(unknownArgumentType(line[2]))
		return
	}
	p.builder.metadata[key.text] = value
}

func (p *parser) parseSection(header, name token, rest []token) {
	if name.kind != tokenWord || !isIdentifier(name.text) {
		p.errorf(name, "invalid stage name %q", name.text)
		return
	}
	if len(rest) > 0 {
		p.errorf(rest[0], "unexpected %s %q after stage name", rest[0].kind, rest[0].text)
		return
	}

	kind, ok := ParseStageKind(name.text)
	if !ok {
		p.current = nil
		p.fail(errors.Newf(errors.ErrUnknownStage, "unknown stage '%s' on line %d", name.text, header.line).
			WithDetail("stage", name.text).
			WithDetail("line", header.line))
		return
	}
	p.current = p.builder.stage(kind)
}

func (p *parser) parseCommand(line []token) {
	name := line[0]
	if !isIdentifier(name.text) {
		p.errorf(name, "invalid command name %q", name.text)
		return
	}

	args := make([]string, 0, len(line)-1)
	for _, tok := range line[1:] {
		value, ok := argumentValue(tok)
		if !ok {
			p.fail(unknownArgumentType(tok))
			return
		}
		args = append(args, value)
	}

	if p.current == nil {
		p.fail(errors.Newf(errors.ErrInvalidStageScope,
			"command '%s' on line %d appears before any section header", name.text, name.line).
			WithDetail("command", name.text).
			WithDetail("line", name.line))
		return
	}

	p.current.Commands = append(p.current.Commands, Command{Name: name.text, Args: args, Line: name.line})
}

// argumentValue unquotes strings by trimming the opening quote character
// from both ends. Numbers and bare words pass through verbatim.
func argumentValue(tok token) (string, bool) {
	switch tok.kind {
	case tokenString:
		return strings.Trim(tok.text, tok.text[:1]), true
	case tokenNumber, tokenWord:
		return tok.text, true
	default:
		return "", false
	}
}

func unknownArgumentType(tok token) error {
	return errors.Newf(errors.ErrUnknownArgumentType, "unknown argument type at %d:%d", tok.line, tok.col).
		WithDetail("line", tok.line).
		WithDetail("column", tok.col)
}
