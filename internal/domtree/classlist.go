package domtree

import "strings"

// ClassList returns the space-separated tokens of n's class attribute.
func (n *Node) ClassList() []string {
	attr, _ := n.GetAttribute("class")
	if attr == "" {
		return nil
	}
	return strings.Fields(attr)
}

// HasClass reports whether token is present in n's class attribute.
func (n *Node) HasClass(token string) bool {
	for _, c := range n.ClassList() {
		if c == token {
			return true
		}
	}
	return false
}

// AddClass adds token to n's class attribute if not already present.
func (n *Node) AddClass(token string) {
	classes := n.ClassList()
	for _, c := range classes {
		if c == token {
			return
		}
	}
	classes = append(classes, token)
	n.SetAttribute("class", strings.Join(classes, " "))
}

// RemoveClass removes token from n's class attribute.
func (n *Node) RemoveClass(token string) {
	classes := n.ClassList()
	out := classes[:0]
	for _, c := range classes {
		if c != token {
			out = append(out, c)
		}
	}
	n.SetAttribute("class", strings.Join(out, " "))
}

// ToggleClass adds token if absent and removes it if present, returning the
// resulting presence state.
func (n *Node) ToggleClass(token string) bool {
	if n.HasClass(token) {
		n.RemoveClass(token)
		return false
	}
	n.AddClass(token)
	return true
}
