package cssparse

import "sort"

// Priority orders rules for cascade application: ascending Specificity,
// ties broken by Order (source order). A stable sort by Specificity alone
// is sufficient because Order already reflects source order and ties in
// Specificity should resolve to "later rule wins" (spec §3/§4.1).
type Priority struct {
	Specificity int
	Order       int
}

// Rule pairs a Selector with its declarations and cascade Priority.
type Rule struct {
	Selector     Selector
	Declarations map[string]string
	Priority     Priority
}

// Stylesheet is a parsed, cascade-ordered rule list.
type Stylesheet struct {
	Rules []Rule
}

// ParseStylesheet parses CSS source text into a Stylesheet. Rules are
// returned sorted ascending by Priority (lowest specificity/order first),
// so a caller applying them in order and overwriting property-by-property
// gets correct cascade resolution for free — this matches the teacher's
// ComputeStyle loop shape (apply rules ascending, later rule wins ties).
func ParseStylesheet(css string) (*Stylesheet, error) {
	css = stripComments(css)
	var rules []Rule
	order := 0
	for _, raw := range splitRules(css) {
		decls := parseDeclarations(raw.body)
		if len(decls) == 0 {
			continue
		}
		for _, sel := range ParseSelectorList(raw.selectorText) {
			rules = append(rules, Rule{
				Selector:     sel,
				Declarations: decls,
				Priority:     Priority{Specificity: sel.Specificity(), Order: order},
			})
			order++
		}
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority.Specificity < rules[j].Priority.Specificity
	})
	return &Stylesheet{Rules: rules}, nil
}

// Merge concatenates stylesheets in document order, renumbering Order so
// that source order across sheets (e.g. multiple <style> tags) is
// preserved, then re-sorts ascending by specificity.
func Merge(sheets ...*Stylesheet) *Stylesheet {
	var all []Rule
	order := 0
	for _, s := range sheets {
		if s == nil {
			continue
		}
		for _, r := range s.Rules {
			r.Priority.Order = order
			order++
			all = append(all, r)
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Priority.Specificity < all[j].Priority.Specificity
	})
	return &Stylesheet{Rules: all}
}
