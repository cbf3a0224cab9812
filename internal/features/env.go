package features

import (
	"os"
	"strings"
	"unicode"
)

// DefaultEnvPrefix prefixes every flag's environment variable name.
const DefaultEnvPrefix = "PORTFOLIO_FEATURE_"

// LookupFunc looks up an environment variable, reporting whether it is set.
type LookupFunc func(name string) (string, bool)

// EnvResolver derives flag overrides from environment variables.
type EnvResolver struct {
	Prefix string
	Lookup LookupFunc
}

// NewEnvResolver returns a resolver reading the process environment.
// An empty prefix selects DefaultEnvPrefix.
func NewEnvResolver(prefix string) EnvResolver {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	return EnvResolver{Prefix: prefix, Lookup: os.LookupEnv}
}

// VarName returns the environment variable consulted for k.
func (r EnvResolver) VarName(k Key) string {
	return r.Prefix + upperSnake(k.String())
}

// Resolve returns an override for every key whose variable is set.
// "true" in any case enables the flag; any other value disables it.
func (r EnvResolver) Resolve() Partial {
	lookup := r.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	p := make(Partial)
	for _, k := range Keys() {
		v, ok := lookup(r.VarName(k))
		if !ok {
			continue
		}
		p[k] = ParseBool(v)
	}
	return p
}

// ParseBool reports whether v spells true. Malformed values read as false.
func ParseBool(v string) bool {
	return strings.EqualFold(v, "true")
}

// upperSnake converts a camelCase name to UPPER_SNAKE_CASE.
func upperSnake(name string) string {
	var sb strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				sb.WriteByte('_')
			}
		}
		sb.WriteRune(unicode.ToUpper(r))
	}
	return sb.String()
}
