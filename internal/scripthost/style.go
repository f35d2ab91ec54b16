package scripthost

import (
	"sort"
	"strings"

	"github.com/dop251/goja"

	"kestrel/internal/domtree"
)

// styleAccessor exposes element.style as a live view over the element's
// inline "style" attribute string, parsed and re-serialized on every
// access. Grounded on pkg/js/dom.go's styleAccessor, which does the same
// parse-on-read/write-on-set round trip against a single attribute
// string rather than keeping a separate declaration map in sync.
type styleAccessor struct {
	ctx  *domContext
	node *domtree.Node
}

func newStyleProxy(ctx *domContext, node *domtree.Node) goja.Value {
	return ctx.vm.NewDynamicObject(&styleAccessor{ctx: ctx, node: node})
}

func (s *styleAccessor) decls() map[string]string {
	raw, _ := s.node.GetAttribute("style")
	decls := make(map[string]string)
	for _, stmt := range strings.Split(raw, ";") {
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
		if name != "" && value != "" {
			decls[name] = value
		}
	}
	return decls
}

func (s *styleAccessor) save(decls map[string]string) {
	names := make([]string, 0, len(decls))
	for name := range decls {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+decls[name])
	}
	s.node.SetAttribute("style", strings.Join(parts, "; "))
	s.ctx.markDirty(s.node)
}

func cssProp(key string) string {
	var sb strings.Builder
	for _, r := range key {
		if r >= 'A' && r <= 'Z' {
			sb.WriteByte('-')
			sb.WriteRune(r - 'A' + 'a')
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func (s *styleAccessor) Get(key string) goja.Value {
	vm := s.ctx.vm
	if key == "setProperty" {
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) < 2 {
				return goja.Undefined()
			}
			decls := s.decls()
			decls[strings.ToLower(call.Arguments[0].String())] = call.Arguments[1].String()
			s.save(decls)
			return goja.Undefined()
		})
	}
	if key == "removeProperty" {
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return goja.Undefined()
			}
			decls := s.decls()
			delete(decls, strings.ToLower(call.Arguments[0].String()))
			s.save(decls)
			return goja.Undefined()
		})
	}
	return vm.ToValue(s.decls()[cssProp(key)])
}

func (s *styleAccessor) Set(key string, val goja.Value) bool {
	decls := s.decls()
	decls[cssProp(key)] = val.String()
	s.save(decls)
	return true
}

func (s *styleAccessor) Has(key string) bool {
	_, ok := s.decls()[cssProp(key)]
	return ok
}

func (s *styleAccessor) Delete(key string) bool {
	decls := s.decls()
	delete(decls, cssProp(key))
	s.save(decls)
	return true
}

func (s *styleAccessor) Keys() []string {
	decls := s.decls()
	keys := make([]string, 0, len(decls))
	for k := range decls {
		keys = append(keys, k)
	}
	return keys
}

// classListAccessor exposes element.classList, delegating to
// *domtree.Node's own class-token helpers instead of tracking a
// separate set.
type classListAccessor struct {
	ctx  *domContext
	node *domtree.Node
}

func newClassListProxy(ctx *domContext, node *domtree.Node) goja.Value {
	return ctx.vm.NewDynamicObject(&classListAccessor{ctx: ctx, node: node})
}

func (c *classListAccessor) Get(key string) goja.Value {
	vm := c.ctx.vm
	switch key {
	case "add":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			for _, a := range call.Arguments {
				c.node.AddClass(a.String())
			}
			c.ctx.markDirty(c.node)
			return goja.Undefined()
		})
	case "remove":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			for _, a := range call.Arguments {
				c.node.RemoveClass(a.String())
			}
			c.ctx.markDirty(c.node)
			return goja.Undefined()
		})
	case "toggle":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return vm.ToValue(false)
			}
			result := c.node.ToggleClass(call.Arguments[0].String())
			c.ctx.markDirty(c.node)
			return vm.ToValue(result)
		})
	case "contains":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return vm.ToValue(false)
			}
			return vm.ToValue(c.node.HasClass(call.Arguments[0].String()))
		})
	case "length":
		return vm.ToValue(len(c.node.ClassList()))
	}
	return goja.Undefined()
}

func (c *classListAccessor) Set(key string, val goja.Value) bool { return false }

func (c *classListAccessor) Has(key string) bool {
	switch key {
	case "add", "remove", "toggle", "contains", "length":
		return true
	}
	return false
}

func (c *classListAccessor) Delete(key string) bool { return false }

func (c *classListAccessor) Keys() []string {
	return []string{"add", "remove", "toggle", "contains", "length"}
}
