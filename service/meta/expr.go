package meta

import (
	"os"
	"strings"
	"unicode"
)

const envPrefix = "${env."

// expandEnvExpr replaces all occurrences of ${env.KEY} in the input with the
// value of the environment variable KEY. ${env.KEY:-fallback} yields fallback
// when KEY is unset or empty.
func expandEnvExpr(value string) string {
	var b strings.Builder
	i := 0
	for {
		idx := strings.Index(value[i:], envPrefix)
		if idx < 0 {
			b.WriteString(value[i:])
			break
		}
		b.WriteString(value[i : i+idx])
		startKey := i + idx + len(envPrefix)

		endKey := strings.IndexByte(value[startKey:], '}')
		if endKey < 0 {
			// unterminated expression is kept literally
			b.WriteString(value[i+idx:])
			break
		}

		expr := value[startKey : startKey+endKey]
		key, fallback, hasFallback := strings.Cut(expr, ":-")
		if !isEnvKey(key) {
			// keep the prefix and rescan right after it so nested expressions still expand
			b.WriteString(value[i+idx : startKey])
			i = startKey
			continue
		}
		resolved := os.Getenv(key)
		if resolved == "" && hasFallback {
			resolved = fallback
		}
		b.WriteString(resolved)
		i = startKey + endKey + 1
	}
	return b.String()
}

// isEnvKey accepts letters, digits and '_' (empty key allowed)
func isEnvKey(key string) bool {
	for _, r := range key {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}
