package cssparse

import "strings"

// stripComments removes /* ... */ comments, grounded on the teacher's
// CSSTokenizer.skipComment. Comments are stripped before block-splitting
// rather than token-by-token, since the narrower grammar here only needs
// brace/selector/declaration boundaries, not a full token stream.
func stripComments(css string) string {
	var b strings.Builder
	i := 0
	for i < len(css) {
		if i+1 < len(css) && css[i] == '/' && css[i+1] == '*' {
			end := strings.Index(css[i+2:], "*/")
			if end < 0 {
				break
			}
			i += 2 + end + 2
			continue
		}
		b.WriteByte(css[i])
		i++
	}
	return b.String()
}

// rawRule is one selector-list/declaration-block pair as found in the
// source text, before the selector list or declarations are parsed.
type rawRule struct {
	selectorText string
	body         string
}

// splitRules walks top-level braces, pairing each "selector { body }"
// block. Nested braces (not expected in this grammar) are tolerated by
// depth-counting so a malformed stylesheet degrades gracefully rather
// than panicking.
func splitRules(css string) []rawRule {
	var rules []rawRule
	i := 0
	n := len(css)
	for i < n {
		openIdx := strings.IndexByte(css[i:], '{')
		if openIdx < 0 {
			break
		}
		openIdx += i
		selectorText := strings.TrimSpace(css[i:openIdx])

		depth := 1
		j := openIdx + 1
		for j < n && depth > 0 {
			switch css[j] {
			case '{':
				depth++
			case '}':
				depth--
			}
			if depth == 0 {
				break
			}
			j++
		}
		if j >= n {
			// Unterminated block: take the rest as the body and stop.
			rules = append(rules, rawRule{selectorText: selectorText, body: css[openIdx+1:]})
			break
		}
		body := css[openIdx+1 : j]
		if selectorText != "" {
			rules = append(rules, rawRule{selectorText: selectorText, body: body})
		}
		i = j + 1
	}
	return rules
}

// parseDeclarations parses a declaration block body ("color: red; margin: 0")
// into an ordered-insensitive map. Declarations with no colon, or an empty
// property name, are skipped — UnknownStyleValue handling belongs to the
// style resolver, not the parser (spec §7).
func parseDeclarations(body string) map[string]string {
	decls := make(map[string]string)
	for _, stmt := range splitTopLevel(body, ';') {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		idx := strings.IndexByte(stmt, ':')
		if idx < 0 {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(stmt[:idx]))
		value := strings.TrimSpace(stmt[idx+1:])
		if name == "" || value == "" {
			continue
		}
		decls[name] = value
	}
	return decls
}
