package script

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNewline
	tokenWord
	tokenNumber
	tokenString
	tokenEquals
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "end of input"
	case tokenNewline:
		return "end of line"
	case tokenWord:
		return "word"
	case tokenNumber:
		return "number"
	case tokenString:
		return "string"
	case tokenEquals:
		return "'='"
	default:
		return "token"
	}
}

type token struct {
	kind tokenKind
	text string
	line int
	col  int
}

// Diagnostic is one syntax problem with its 1-based position
type Diagnostic struct {
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	Message string `json:"message" yaml:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d:%d: %s", d.Line, d.Column, d.Message)
}

type lexer struct {
	src   string
	pos   int
	line  int
	col   int
	diags []Diagnostic
}

func lex(src string) ([]token, []Diagnostic) {
	l := &lexer{src: src, line: 1, col: 1}
	var tokens []token
	for {
		tok, ok := l.next()
		if !ok {
			continue
		}
		tokens = append(tokens, tok)
		if tok.kind == tokenEOF {
			return tokens, l.diags
		}
	}
}

func (l *lexer) peek() (rune, int) {
	if l.pos >= len(l.src) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(l.src[l.pos:])
}

func (l *lexer) advance() rune {
	r, size := l.peek()
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) errorf(line, col int, format string, args ...interface{}) {
	l.diags = append(l.diags, Diagnostic{Line: line, Column: col, Message: fmt.Sprintf(format, args...)})
}

// next returns the next token; ok is false when the scanner consumed input
// without producing one (whitespace, comments, rejected characters).
func (l *lexer) next() (token, bool) {
	r, size := l.peek()
	if size == 0 {
		return token{kind: tokenEOF, line: l.line, col: l.col}, true
	}

	line, col := l.line, l.col

	switch {
	case r == utf8.RuneError && size == 1:
		l.advance()
		l.errorf(line, col, "invalid UTF-8 byte")
		return token{}, false
	case r == '\n':
		l.advance()
		return token{kind: tokenNewline, text: "\n", line: line, col: col}, true
	case r == '\r' || r == ' ' || r == '\t' || r == '\ufeff':
		l.advance()
		return token{}, false
	case r == ';' || r == '#':
		// Only reached at the start of a token; inside a word both are plain runes.
		l.skipComment()
		return token{}, false
	case r == '=':
		l.advance()
		return token{kind: tokenEquals, text: "=", line: line, col: col}, true
	case r == '"' || r == '\'':
		return l.quoted(r, line, col)
	case unicode.IsControl(r):
		l.advance()
		l.errorf(line, col, "unexpected control character 0x%02x", r)
		return token{}, false
	default:
		return l.bare(line, col), true
	}
}

func (l *lexer) skipComment() {
	for {
		r, size := l.peek()
		if size == 0 || r == '\n' {
			return
		}
		l.advance()
	}
}

func (l *lexer) quoted(quote rune, line, col int) (token, bool) {
	start := l.pos
	l.advance()
	for {
		r, size := l.peek()
		if size == 0 || r == '\n' {
			l.errorf(line, col, "unterminated string starting with %c", quote)
			return token{}, false
		}
		l.advance()
		if r == quote {
			return token{kind: tokenString, text: l.src[start:l.pos], line: line, col: col}, true
		}
	}
}

func (l *lexer) bare(line, col int) token {
	start := l.pos
	for {
		r, size := l.peek()
		if size == 0 || !isWordRune(r) || (r == utf8.RuneError && size == 1) {
			break
		}
		l.advance()
	}
	text := l.src[start:l.pos]
	kind := tokenWord
	if isNumber(text) {
		kind = tokenNumber
	}
	return token{kind: kind, text: text, line: line, col: col}
}

func isWordRune(r rune) bool {
	switch r {
	case '"', '\'', '=', '\ufeff':
		return false
	}
	return !unicode.IsSpace(r) && !unicode.IsControl(r)
}

// isNumber matches an optionally signed integer or decimal literal
func isNumber(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' || s[0] == '+' {
		i++
	}
	digits, dot := 0, false
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && !dot && digits > 0 && i < len(s)-1:
			dot = true
		default:
			return false
		}
	}
	return digits > 0
}

// isIdentifier reports whether a word can name a command, stage or meta key
func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return s != ""
}
