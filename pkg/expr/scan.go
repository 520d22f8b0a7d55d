package expr

import "strings"

// splitTop splits s on occurrences of sep that sit at the top level: outside
// single/double quoted strings and outside parentheses. The separator must
// not contain quote or paren characters.
func splitTop(s, sep string) []string {
	var (
		parts []string
		depth int
		quote byte
		start int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' && i+1 < len(s) {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 && strings.HasPrefix(s[i:], sep) {
				parts = append(parts, s[start:i])
				i += len(sep) - 1
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// matchCall reports whether s is exactly one function call, name(args...),
// with a simple identifier name and no chained calls. It returns the name
// and the raw argument substring.
func matchCall(s string) (name, args string, ok bool) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || s[len(s)-1] != ')' {
		return "", "", false
	}
	name = s[:open]
	if !isIdent(name) {
		return "", "", false
	}

	// The opening paren must be matched by the final character, with no
	// intermediate return to depth zero (rules out a(1)(2) chains).
	depth := 0
	var quote byte
	for i := open; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' && i+1 < len(s) {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return "", "", false
			}
		}
	}
	if depth != 0 || quote != 0 {
		return "", "", false
	}
	return name, s[open+1 : len(s)-1], true
}

// isIdent reports whether s is a simple identifier.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_', c == '$':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// isNamespaceKey reports whether s can key a reserved namespace. Keys follow
// identifier rules but additionally allow interior dashes, since lower-cased
// HTTP header names (user-agent, x-forwarded-for) are namespace keys and the
// grammar has no minus operator to conflict with.
func isNamespaceKey(s string) bool {
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_', c == '$':
		case c == '-':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// isIdentPath reports whether s is a dotted identifier path (a, a.b, a.b.c).
func isIdentPath(s string) bool {
	parts := strings.Split(s, ".")
	for _, p := range parts {
		if !isIdent(p) {
			return false
		}
	}
	return true
}
