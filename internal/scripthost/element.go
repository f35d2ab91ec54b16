package scripthost

import (
	"strings"

	"github.com/dop251/goja"

	"kestrel/internal/domtree"
)

var elementKeys = []string{
	"tagName", "nodeName", "nodeType", "nodeValue", "id", "className",
	"textContent", "innerHTML", "outerHTML",
	"getAttribute", "setAttribute", "hasAttribute", "removeAttribute",
	"children", "childNodes", "parentElement", "parentNode", "style", "classList",
	"appendChild", "removeChild", "remove",
	"querySelector", "querySelectorAll", "matches", "closest",
}

// elementAccessor implements goja.DynamicObject for one *domtree.Node,
// grounded on pkg/js/dom.go's elementAccessor property switch, narrowed
// to the subset this module's DOM actually needs (no phase-numbered
// convenience methods the teacher accreted over time — append/prepend/
// before/after/replaceWith/replaceChildren are not part of this spec).
type elementAccessor struct {
	ctx  *domContext
	node *domtree.Node
}

func (e *elementAccessor) Get(key string) goja.Value {
	vm := e.ctx.vm
	n := e.node

	switch key {
	case "nodeType":
		if n.Type == domtree.TextNode {
			return vm.ToValue(3)
		}
		return vm.ToValue(1)
	case "nodeName":
		if n.Type == domtree.TextNode {
			return vm.ToValue("#text")
		}
		return vm.ToValue(strings.ToUpper(n.TagName))
	case "nodeValue":
		if n.Type == domtree.TextNode {
			return vm.ToValue(n.Text)
		}
		return goja.Null()
	case "tagName":
		if n.Type == domtree.TextNode {
			return goja.Undefined()
		}
		return vm.ToValue(strings.ToUpper(n.TagName))
	case "id":
		id, _ := n.GetAttribute("id")
		return vm.ToValue(id)
	case "className":
		cls, _ := n.GetAttribute("class")
		return vm.ToValue(cls)
	case "textContent":
		return vm.ToValue(textContent(n))
	case "innerHTML":
		return vm.ToValue(n.Serialize())
	case "outerHTML":
		return vm.ToValue(n.SerializeOuter())
	case "getAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return goja.Null()
			}
			v, ok := n.GetAttribute(call.Arguments[0].String())
			if !ok {
				return goja.Null()
			}
			return vm.ToValue(v)
		})
	case "setAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) < 2 {
				return goja.Undefined()
			}
			n.SetAttribute(call.Arguments[0].String(), call.Arguments[1].String())
			e.ctx.markDirty(n)
			return goja.Undefined()
		})
	case "hasAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return vm.ToValue(false)
			}
			_, ok := n.GetAttribute(call.Arguments[0].String())
			return vm.ToValue(ok)
		})
	case "removeAttribute":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) > 0 {
				n.RemoveAttribute(call.Arguments[0].String())
				e.ctx.markDirty(n)
			}
			return goja.Undefined()
		})
	case "children":
		var els []*domtree.Node
		for _, c := range n.Children {
			if c.Type == domtree.ElementNode {
				els = append(els, c)
			}
		}
		return e.ctx.array(els)
	case "childNodes":
		return e.ctx.array(n.Children)
	case "parentElement", "parentNode":
		if n.Parent != nil && n.Parent.TagName != "document" {
			return e.ctx.proxy(n.Parent)
		}
		return goja.Null()
	case "style":
		return newStyleProxy(e.ctx, n)
	case "classList":
		return newClassListProxy(e.ctx, n)
	case "appendChild":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return goja.Undefined()
			}
			child := e.ctx.unwrap(call.Arguments[0])
			if child != nil {
				n.AddChild(child)
				e.ctx.markDirty(n)
			}
			return call.Arguments[0]
		})
	case "removeChild":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return goja.Undefined()
			}
			child := e.ctx.unwrap(call.Arguments[0])
			if child != nil {
				n.RemoveChild(child)
				e.ctx.markDirty(n)
			}
			return call.Arguments[0]
		})
	case "remove":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if n.Parent != nil {
				parent := n.Parent
				parent.RemoveChild(n)
				e.ctx.markDirty(parent)
			}
			return goja.Undefined()
		})
	case "querySelector":
		return vm.ToValue(e.ctx.querySelectorFn(n))
	case "querySelectorAll":
		return vm.ToValue(e.ctx.querySelectorAllFn(n))
	case "matches":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return vm.ToValue(false)
			}
			return vm.ToValue(matchesAny(n, call.Arguments[0].String()))
		})
	case "closest":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return goja.Null()
			}
			sel := call.Arguments[0].String()
			for cur := n; cur != nil; cur = cur.Parent {
				if cur.Type != domtree.ElementNode || cur.TagName == "document" {
					continue
				}
				if matchesAny(cur, sel) {
					return e.ctx.proxy(cur)
				}
			}
			return goja.Null()
		})
	}
	return goja.Undefined()
}

func (e *elementAccessor) Set(key string, val goja.Value) bool {
	switch key {
	case "textContent":
		setTextContent(e.node, val.String())
		e.ctx.markDirty(e.node)
		return true
	case "className":
		e.node.SetAttribute("class", val.String())
		e.ctx.markDirty(e.node)
		return true
	case "id":
		e.node.SetAttribute("id", val.String())
		e.ctx.markDirty(e.node)
		return true
	case "nodeValue":
		if e.node.Type == domtree.TextNode {
			e.node.Text = val.String()
			e.ctx.markDirty(e.node)
		}
		return true
	}
	return false
}

func (e *elementAccessor) Has(key string) bool {
	for _, k := range elementKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (e *elementAccessor) Delete(key string) bool { return false }

func (e *elementAccessor) Keys() []string { return elementKeys }

func textContent(n *domtree.Node) string {
	if n.Type == domtree.TextNode {
		return n.Text
	}
	var sb strings.Builder
	for _, c := range n.Children {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

func setTextContent(n *domtree.Node, text string) {
	n.Children = nil
	if text != "" {
		n.AppendText(text)
	}
}
