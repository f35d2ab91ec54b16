// Package cssparse implements the CssParser external collaborator: a CSS
// tokenizer and rule-list parser producing the Rule list the style resolver
// consumes (spec §3's Rule list / Selector data model).
package cssparse

import "strings"

// SelectorKind discriminates the Selector sum type from spec §3: Tag,
// Class, Pseudoclass, Descendant, plus two pragmatic extensions —
// ID (the teacher's matcher already treats id selectors as first-class,
// see DESIGN.md) and Compound (multiple simple selectors required on the
// same element, e.g. "div.foo:hover" — real CSS cannot be expressed
// without it, and it composes naturally with the variant design: a
// Compound is just an intersection of other Selector values).
type SelectorKind int

const (
	SelTag SelectorKind = iota
	SelClass
	SelID
	SelPseudoclass
	SelDescendant
	SelCompound
)

// Selector is the tagged union described in spec §3. Only the fields
// relevant to Kind are populated.
type Selector struct {
	Kind  SelectorKind
	Value string // tag/class/id/pseudoclass name

	Ancestor   *Selector // SelDescendant
	Descendant *Selector // SelDescendant

	Parts []Selector // SelCompound
}

// Specificity implements the CSS specificity weights the teacher's
// matcher uses (id=100, class/pseudoclass=10, tag=1), summed across
// compound and descendant selectors.
func (s Selector) Specificity() int {
	switch s.Kind {
	case SelTag:
		return 1
	case SelClass, SelPseudoclass:
		return 10
	case SelID:
		return 100
	case SelCompound:
		total := 0
		for _, p := range s.Parts {
			total += p.Specificity()
		}
		return total
	case SelDescendant:
		return s.Ancestor.Specificity() + s.Descendant.Specificity()
	}
	return 0
}

// ParseSelectorList splits a comma-separated selector list (CSS selector
// grouping) into individual Selector values.
func ParseSelectorList(s string) []Selector {
	var out []Selector
	for _, part := range splitTopLevel(s, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, parseSelector(part))
	}
	return out
}

func splitTopLevel(s string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

// parseSelector parses a single (non-grouped) selector such as
// "div.foo:hover span#bar" into a left-folded Descendant chain, outermost
// ancestor first.
func parseSelector(s string) Selector {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Selector{Kind: SelTag, Value: "*"}
	}
	result := parseCompound(fields[0])
	for _, f := range fields[1:] {
		result = Selector{
			Kind:       SelDescendant,
			Ancestor:   cloneSelector(result),
			Descendant: cloneSelector(parseCompound(f)),
		}
	}
	return result
}

func cloneSelector(s Selector) *Selector {
	c := s
	return &c
}

// parseCompound parses one whitespace-delimited token like "div.foo#bar:hover"
// into a SelCompound of its simple selectors (or a bare simple selector when
// there's only one constraint).
func parseCompound(token string) Selector {
	var parts []Selector
	i := 0
	n := len(token)
	readName := func() string {
		start := i
		for i < n && token[i] != '.' && token[i] != '#' && token[i] != ':' {
			i++
		}
		return token[start:i]
	}
	for i < n {
		switch token[i] {
		case '.':
			i++
			name := readName()
			if name != "" {
				parts = append(parts, Selector{Kind: SelClass, Value: name})
			}
		case '#':
			i++
			name := readName()
			if name != "" {
				parts = append(parts, Selector{Kind: SelID, Value: name})
			}
		case ':':
			i++
			// Tolerate the pseudo-element form "::before" by skipping the
			// second colon; the name is kept as a pseudoclass that no
			// element ever carries, so it never matches — the core's
			// selector model has no pseudo-element variant.
			if i < n && token[i] == ':' {
				i++
			}
			name := readName()
			if name != "" {
				parts = append(parts, Selector{Kind: SelPseudoclass, Value: name})
			}
		default:
			name := readName()
			if name != "" && name != "*" {
				parts = append(parts, Selector{Kind: SelTag, Value: name})
			}
		}
	}
	if len(parts) == 1 {
		return parts[0]
	}
	if len(parts) == 0 {
		return Selector{Kind: SelTag, Value: "*"}
	}
	return Selector{Kind: SelCompound, Parts: parts}
}
