package rewrite

import (
	"strings"
	"time"

	"github.com/arthur-debert/apkren/pkg/errors"
	"github.com/dlclark/regexp2"
)

// ValuePlaceholder is replaced by the escaped search value in rename templates
const ValuePlaceholder = "{value}"

// DefaultRenameTemplate matches a value delimited by '.', '/' or '_' on both sides
const DefaultRenameTemplate = `(?<=[./_])({value})(?=[./_])`

// DefaultTimeout bounds a single pattern evaluation
const DefaultTimeout = 60 * time.Second

// Rule is a compiled pattern plus its replacement text.
// The pattern uses .NET-compatible syntax, including lookbehind.
type Rule struct {
	pattern     *regexp2.Regexp
	replacement string
}

// NewRule compiles pattern with a per-match timeout
func NewRule(pattern, replacement string, timeout time.Duration) (*Rule, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPattern, "invalid pattern %q", pattern)
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}
	return &Rule{pattern: re, replacement: replacement}, nil
}

// NewRenameRule builds a rule from a template containing {value}.
// value is escaped, so it always matches literally.
func NewRenameRule(template, value, replacement string, timeout time.Duration) (*Rule, error) {
	if value == "" {
		return nil, errors.New(errors.ErrInvalidInput, "rename value cannot be empty")
	}
	if !strings.Contains(template, ValuePlaceholder) {
		return nil, errors.Newf(errors.ErrPattern, "rename template %q has no %s placeholder", template, ValuePlaceholder)
	}
	pattern := strings.ReplaceAll(template, ValuePlaceholder, regexp2.Escape(value))
	return NewRule(pattern, replacement, timeout)
}

// Apply replaces every match in s
func (r *Rule) Apply(s string) (string, error) {
	out, err := r.pattern.Replace(s, r.replacement, -1, -1)
	if err != nil {
		return s, errors.Wrapf(err, errors.ErrPattern, "pattern %q failed", r.pattern.String())
	}
	return out, nil
}

// Pattern returns the source of the compiled pattern
func (r *Rule) Pattern() string {
	return r.pattern.String()
}

// Replacement returns the replacement text
func (r *Rule) Replacement() string {
	return r.replacement
}
