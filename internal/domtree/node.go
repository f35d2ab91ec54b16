// Package domtree implements the element tree: Element and Text nodes with
// parent/children links, attributes, and the pseudoclass set used by style
// matching and hit testing.
package domtree

import (
	"sort"
	"strings"
)

// NodeType distinguishes element and text nodes.
type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// Node is either an Element (TagName/Attributes/Children/PseudoClasses set)
// or a Text node (Text). Every non-root node has exactly one Parent, and
// Parent.Children contains the node — callers must use AddChild/RemoveChild/
// InsertBefore to keep that invariant rather than mutating Children directly.
type Node struct {
	Type          NodeType
	TagName       string
	Attributes    map[string]string
	Text          string
	Children      []*Node
	Parent        *Node
	PseudoClasses map[string]bool
}

// NewElement creates a detached element node with the given tag.
func NewElement(tag string) *Node {
	return &Node{
		Type:       ElementNode,
		TagName:    tag,
		Attributes: make(map[string]string),
	}
}

// NewText creates a detached text node.
func NewText(text string) *Node {
	return &Node{Type: TextNode, Text: text}
}

// GetAttribute returns the named attribute and whether it was present.
func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[name]
	return val, ok
}

// SetAttribute sets an attribute, creating the attribute map if needed.
func (n *Node) SetAttribute(name, value string) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[name] = value
}

// RemoveAttribute deletes an attribute if present.
func (n *Node) RemoveAttribute(name string) {
	if n.Attributes == nil {
		return
	}
	delete(n.Attributes, name)
}

// HasPseudoClass reports whether the given pseudoclass (e.g. "hover",
// "focus") is set on this element. Pseudoclasses are per-element only —
// they are never inherited or propagated to ancestors (Open Question (a)).
func (n *Node) HasPseudoClass(name string) bool {
	if n.PseudoClasses == nil {
		return false
	}
	return n.PseudoClasses[name]
}

// SetPseudoClass adds or removes a pseudoclass on this element.
func (n *Node) SetPseudoClass(name string, on bool) {
	if on {
		if n.PseudoClasses == nil {
			n.PseudoClasses = make(map[string]bool)
		}
		n.PseudoClasses[name] = true
		return
	}
	if n.PseudoClasses != nil {
		delete(n.PseudoClasses, name)
	}
}

// AddChild appends child, setting its parent to n.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// AppendText appends a new text node with the given content. A no-op for
// empty strings, matching how parsers skip producing empty text runs.
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	n.AddChild(NewText(text))
}

// RemoveChild removes child from n's children, clears its parent, and
// returns it. Returns nil if child is not a child of n.
func (n *Node) RemoveChild(child *Node) *Node {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return child
		}
	}
	return nil
}

// InsertBefore inserts newChild before refChild among n's children. If
// refChild is nil, newChild is appended. If newChild already has a parent,
// it is detached from it first.
func (n *Node) InsertBefore(newChild, refChild *Node) *Node {
	if newChild.Parent != nil {
		newChild.Parent.RemoveChild(newChild)
	}
	if refChild == nil {
		n.AddChild(newChild)
		return newChild
	}
	for i, c := range n.Children {
		if c == refChild {
			n.Children = append(n.Children, nil)
			copy(n.Children[i+1:], n.Children[i:])
			n.Children[i] = newChild
			newChild.Parent = n
			return newChild
		}
	}
	n.AddChild(newChild)
	return newChild
}

// CloneNode copies n. If deep is true, descendants are cloned recursively.
// The clone is detached (Parent is nil) and never shares PseudoClasses
// state with the source — pseudoclasses are interaction state, not markup.
func (n *Node) CloneNode(deep bool) *Node {
	clone := &Node{
		Type:    n.Type,
		TagName: n.TagName,
		Text:    n.Text,
	}
	if n.Attributes != nil {
		clone.Attributes = make(map[string]string, len(n.Attributes))
		for k, v := range n.Attributes {
			clone.Attributes[k] = v
		}
	}
	if deep {
		clone.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c := child.CloneNode(true)
			c.Parent = clone
			clone.Children[i] = c
		}
	}
	return clone
}

// Contains reports whether other is n itself or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	if n == other {
		return true
	}
	for _, child := range n.Children {
		if child.Contains(other) {
			return true
		}
	}
	return false
}

// IndexInParent returns n's index among Parent.Children, or -1 if detached.
func (n *Node) IndexInParent() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// Ancestors yields n's parent, grandparent, and so on up to the root.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for p := n.Parent; p != nil; p = p.Parent {
		out = append(out, p)
	}
	return out
}

// Serialize returns the innerHTML of n: the serialized markup of its
// children, not including n's own tags.
func (n *Node) Serialize() string {
	var sb strings.Builder
	for _, child := range n.Children {
		serializeNode(&sb, child)
	}
	return sb.String()
}

// SerializeOuter returns the outerHTML of n, including n's own tags.
func (n *Node) SerializeOuter() string {
	var sb strings.Builder
	serializeNode(&sb, n)
	return sb.String()
}

func serializeNode(sb *strings.Builder, n *Node) {
	if n.Type == TextNode {
		sb.WriteString(escapeHTML(n.Text))
		return
	}
	sb.WriteByte('<')
	sb.WriteString(n.TagName)
	if len(n.Attributes) > 0 {
		keys := make([]string, 0, len(n.Attributes))
		for k := range n.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteByte(' ')
			sb.WriteString(k)
			sb.WriteString(`="`)
			sb.WriteString(escapeAttr(n.Attributes[k]))
			sb.WriteByte('"')
		}
	}
	if IsVoidElement(n.TagName) {
		sb.WriteString(">")
		return
	}
	sb.WriteByte('>')
	for _, child := range n.Children {
		serializeNode(sb, child)
	}
	sb.WriteString("</")
	sb.WriteString(n.TagName)
	sb.WriteByte('>')
}

func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// IsVoidElement reports whether tag is a void (self-closing) HTML element.
func IsVoidElement(tag string) bool {
	switch tag {
	case "br", "hr", "img", "input", "meta", "link", "area", "base",
		"col", "embed", "param", "source", "track", "wbr":
		return true
	}
	return false
}

// Document is the root of a parsed page: the element tree plus the
// embedded/external stylesheet and script text collected while parsing.
type Document struct {
	Root        *Node
	Stylesheets []string
	Scripts     []string
}

// NewDocument creates an empty document with a synthetic "document" root.
func NewDocument() *Document {
	return &Document{
		Root: &Node{Type: ElementNode, TagName: "document"},
	}
}

// ElementByID returns the first element with the given id attribute, or nil.
func ElementByID(root *Node, id string) *Node {
	if root.Type == ElementNode {
		if v, ok := root.GetAttribute("id"); ok && v == id {
			return root
		}
	}
	for _, child := range root.Children {
		if found := ElementByID(child, id); found != nil {
			return found
		}
	}
	return nil
}

// ElementsByTagName collects root and its descendant elements with the
// given tag, in document (pre-)order.
func ElementsByTagName(root *Node, tag string) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		if n.Type == ElementNode && n.TagName == tag {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return out
}
