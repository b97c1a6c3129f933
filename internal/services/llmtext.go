package services

import "strings"

// extractBalanced returns the first balanced open...close substring of s,
// skipping brackets inside JSON string literals. LLM replies often wrap the
// requested JSON in prose or markdown fences, so a plain prefix/suffix trim
// is not enough.
func extractBalanced(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

func extractJSONArray(s string) (string, bool)  { return extractBalanced(s, '[', ']') }
func extractJSONObject(s string) (string, bool) { return extractBalanced(s, '{', '}') }
