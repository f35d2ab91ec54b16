package scripthost

import (
	"strconv"
	"strings"

	"github.com/dop251/goja"

	"kestrel/internal/cssparse"
	"kestrel/internal/domtree"
)

// domContext mirrors pkg/js/dom.go's domContext: shared runtime state for
// one document's bindings, plus a node-to-proxy cache so the same
// *domtree.Node always yields the same JS object (needed for === checks).
type domContext struct {
	vm    *goja.Runtime
	doc   *domtree.Document
	hooks Hooks
	cache map[*domtree.Node]goja.Value
}

// markDirty notifies the owning tab that node was mutated, if the host
// was constructed with a MarkDirty hook.
func (ctx *domContext) markDirty(node *domtree.Node) {
	if ctx.hooks.MarkDirty != nil {
		ctx.hooks.MarkDirty(node)
	}
}

// registerDocument installs the global `document` object.
func registerDocument(vm *goja.Runtime, doc *domtree.Document, hooks Hooks) *domContext {
	ctx := &domContext{vm: vm, doc: doc, hooks: hooks, cache: make(map[*domtree.Node]goja.Value)}

	docObj := vm.NewObject()
	docObj.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Null()
		}
		node := domtree.ElementByID(doc.Root, call.Arguments[0].String())
		if node == nil {
			return goja.Null()
		}
		return ctx.proxy(node)
	})
	docObj.Set("getElementsByTagName", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return ctx.array(nil)
		}
		tag := strings.ToLower(call.Arguments[0].String())
		return ctx.array(domtree.ElementsByTagName(doc.Root, tag))
	})
	docObj.Set("getElementsByClassName", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return ctx.array(nil)
		}
		cls := call.Arguments[0].String()
		return ctx.array(elementsByClassName(doc.Root, cls))
	})
	docObj.Set("querySelector", ctx.querySelectorFn(doc.Root))
	docObj.Set("querySelectorAll", ctx.querySelectorAllFn(doc.Root))
	docObj.Set("createElement", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(vm.NewTypeError("createElement requires 1 argument"))
		}
		return ctx.proxy(domtree.NewElement(strings.ToLower(call.Arguments[0].String())))
	})
	docObj.Set("createTextNode", func(call goja.FunctionCall) goja.Value {
		text := ""
		if len(call.Arguments) > 0 {
			text = call.Arguments[0].String()
		}
		return ctx.proxy(domtree.NewText(text))
	})

	if body := findFirst(doc.Root, "body"); body != nil {
		docObj.Set("body", ctx.proxy(body))
	}
	if head := findFirst(doc.Root, "head"); head != nil {
		docObj.Set("head", ctx.proxy(head))
	}

	vm.Set("document", docObj)
	return ctx
}

func findFirst(root *domtree.Node, tag string) *domtree.Node {
	nodes := domtree.ElementsByTagName(root, tag)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

func elementsByClassName(root *domtree.Node, cls string) []*domtree.Node {
	var out []*domtree.Node
	var walk func(*domtree.Node)
	walk = func(n *domtree.Node) {
		if n.Type == domtree.ElementNode && n.HasClass(cls) {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, c := range root.Children {
		walk(c)
	}
	return out
}

func (ctx *domContext) array(nodes []*domtree.Node) goja.Value {
	arr := ctx.vm.NewArray()
	for i, n := range nodes {
		arr.Set(strconv.Itoa(i), ctx.proxy(n))
	}
	arr.Set("length", len(nodes))
	return arr
}

// proxy returns (or creates and caches) a JS DynamicObject for node.
func (ctx *domContext) proxy(node *domtree.Node) goja.Value {
	if node == nil {
		return goja.Null()
	}
	if v, ok := ctx.cache[node]; ok {
		return v
	}
	v := ctx.vm.NewDynamicObject(&elementAccessor{ctx: ctx, node: node})
	ctx.cache[node] = v
	return v
}

func (ctx *domContext) unwrap(val goja.Value) *domtree.Node {
	if val == nil || goja.IsNull(val) || goja.IsUndefined(val) {
		return nil
	}
	obj := val.ToObject(ctx.vm)
	for node, cached := range ctx.cache {
		if cached.SameAs(obj) {
			return node
		}
	}
	return nil
}

func matchesAny(node *domtree.Node, selectorList string) bool {
	for _, sel := range cssparse.ParseSelectorList(selectorList) {
		if cssparse.Matches(sel, node) {
			return true
		}
	}
	return false
}

func (ctx *domContext) querySelectorFn(root *domtree.Node) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(ctx.vm.NewTypeError("querySelector requires 1 argument"))
		}
		sel := call.Arguments[0].String()
		var found *domtree.Node
		walkElements(root, func(n *domtree.Node) bool {
			if n == root {
				return false
			}
			if matchesAny(n, sel) {
				found = n
				return true
			}
			return false
		})
		return ctx.proxy(found)
	}
}

func (ctx *domContext) querySelectorAllFn(root *domtree.Node) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(ctx.vm.NewTypeError("querySelectorAll requires 1 argument"))
		}
		sel := call.Arguments[0].String()
		var results []*domtree.Node
		walkElements(root, func(n *domtree.Node) bool {
			if n != root && matchesAny(n, sel) {
				results = append(results, n)
			}
			return false
		})
		return ctx.array(results)
	}
}

func walkElements(node *domtree.Node, fn func(*domtree.Node) bool) bool {
	if node.Type == domtree.ElementNode {
		if fn(node) {
			return true
		}
	}
	for _, c := range node.Children {
		if walkElements(c, fn) {
			return true
		}
	}
	return false
}
