package dispatch

import (
	"regexp"

	"github.com/rs/zerolog"
)

var variablePattern = regexp.MustCompile(`%([^%]+)%`)

// Substitute replaces every %NAME% token in arg with its bound value.
// Names are case-sensitive; an unbound name becomes "" and is logged.
func Substitute(arg string, vars map[string]string, logger zerolog.Logger) string {
	return variablePattern.ReplaceAllStringFunc(arg, func(token string) string {
		name := token[1 : len(token)-1]
		if value, ok := vars[name]; ok {
			return value
		}
		logger.Warn().Str("variable", name).Str("argument", arg).Msg("Unresolved variable, using empty string")
		return ""
	})
}
