package parser

import "strings"

// splitParameters tokenizes a parameter list on top-level commas. Commas
// nested in <>, () or [] do not split. Items are trimmed; an empty list
// yields one empty item. ok is false when the brackets do not balance.
func splitParameters(s string) (params []string, ok bool) {
	depth := 0
	ok = true
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			depth--
			if depth < 0 {
				ok = false
				depth = 0
			}
		case ',':
			if depth == 0 {
				params = append(params, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	params = append(params, strings.TrimSpace(s[start:]))
	if depth != 0 {
		ok = false
	}
	return params, ok
}
