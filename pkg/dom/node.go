package dom

import (
	"fmt"
	"strings"

	"github.com/vango-dev/vtree/pkg/surface"
)

// NodeType is the node type discriminator.
type NodeType uint8

const (
	ElementNode NodeType = iota
	TextNode
)

// Node is a live node. It implements surface.Node.
type Node struct {
	doc       *Document
	id        int
	typ       NodeType
	tag       string
	text      string
	attrs     []attr
	flags     map[string]bool
	value     string
	listeners map[string]surface.Listener
	parent    *Node
	children  []*Node
}

type attr struct {
	name  string
	value string
}

var _ surface.Node = (*Node)(nil)

// Type returns the node type.
func (n *Node) Type() NodeType { return n.typ }

// Tag returns the element tag name, or "" for text nodes.
func (n *Node) Tag() string { return n.tag }

// Text returns the text of a text node.
func (n *Node) Text() string { return n.text }

// Parent returns the parent node, or nil if detached.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Label returns a short description for logs: "div#3", "text#4".
func (n *Node) Label() string {
	if n == nil {
		return "<nil>"
	}
	if n.typ == TextNode {
		return fmt.Sprintf("text#%d", n.id)
	}
	return fmt.Sprintf("%s#%d", n.tag, n.id)
}

// TextContent returns the concatenated text of the subtree.
func (n *Node) TextContent() string {
	if n.typ == TextNode {
		return n.text
	}
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// Attrs returns the attributes in the order they were first set.
func (n *Node) Attrs() map[string]string {
	m := make(map[string]string, len(n.attrs))
	for _, a := range n.attrs {
		m[a.name] = a.value
	}
	return m
}

// Attr implements surface.Node.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.name == name {
			return a.value, true
		}
	}
	return "", false
}

// SetAttr implements surface.Node. Text nodes and invalid attribute names are
// rejected.
func (n *Node) SetAttr(name, value string) error {
	if n.typ == TextNode {
		return fmt.Errorf("dom: cannot set attribute %q on a text node", name)
	}
	if !validAttrName(name) {
		return fmt.Errorf("dom: invalid attribute name %q", name)
	}
	n.doc.log(Call{Op: "setAttr", Node: n.Label(), Name: name, Value: value})
	for i := range n.attrs {
		if n.attrs[i].name == name {
			n.attrs[i].value = value
			return nil
		}
	}
	n.attrs = append(n.attrs, attr{name: name, value: value})
	return nil
}

// RemoveAttr implements surface.Node.
func (n *Node) RemoveAttr(name string) {
	for i := range n.attrs {
		if n.attrs[i].name == name {
			n.doc.log(Call{Op: "removeAttr", Node: n.Label(), Name: name})
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return
		}
	}
}

// Flag implements surface.Node.
func (n *Node) Flag(name string) bool {
	return n.flags[name]
}

// SetFlag implements surface.Node.
func (n *Node) SetFlag(name string, on bool) {
	n.doc.log(Call{Op: "setFlag", Node: n.Label(), Name: name, Value: fmt.Sprint(on)})
	if !on {
		delete(n.flags, name)
		return
	}
	if n.flags == nil {
		n.flags = make(map[string]bool)
	}
	n.flags[name] = true
}

// Value implements surface.Node.
func (n *Node) Value() string {
	return n.value
}

// SetValue implements surface.Node.
func (n *Node) SetValue(value string) {
	n.doc.log(Call{Op: "setValue", Node: n.Label(), Value: value})
	n.value = value
}

// Listen implements surface.Node.
func (n *Node) Listen(event string, fn surface.Listener) {
	n.doc.log(Call{Op: "listen", Node: n.Label(), Name: event})
	if n.listeners == nil {
		n.listeners = make(map[string]surface.Listener)
	}
	n.listeners[event] = fn
}

// Unlisten implements surface.Node.
func (n *Node) Unlisten(event string) {
	n.doc.log(Call{Op: "unlisten", Node: n.Label(), Name: event})
	delete(n.listeners, event)
}

// HasListener reports whether a listener is bound for event.
func (n *Node) HasListener(event string) bool {
	_, ok := n.listeners[event]
	return ok
}

// ChildCount implements surface.Node.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// ChildAt implements surface.Node. Out of range indices return nil.
func (n *Node) ChildAt(i int) surface.Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// InsertBefore implements surface.Node. An attached child is moved. A ref
// that is not a child of n makes this a no-op.
func (n *Node) InsertBefore(child, ref surface.Node) {
	c, ok := n.own(child)
	if !ok {
		return
	}
	r, ok := ref.(*Node)
	if !ok || r == nil || r.parent != n {
		return
	}
	if c == r {
		return
	}
	n.doc.log(Call{Op: "insertBefore", Node: n.Label(), Child: c.Label(), Ref: r.Label()})
	c.detach()
	i := n.indexOf(r)
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
	c.parent = n
}

// AppendChild implements surface.Node. An attached child is moved.
func (n *Node) AppendChild(child surface.Node) {
	c, ok := n.own(child)
	if !ok {
		return
	}
	n.doc.log(Call{Op: "appendChild", Node: n.Label(), Child: c.Label()})
	c.detach()
	n.children = append(n.children, c)
	c.parent = n
}

// RemoveChild implements surface.Node.
func (n *Node) RemoveChild(child surface.Node) {
	c, ok := child.(*Node)
	if !ok || c == nil || c.parent != n {
		return
	}
	n.doc.log(Call{Op: "removeChild", Node: n.Label(), Child: c.Label()})
	c.detach()
}

// ReplaceChild implements surface.Node.
func (n *Node) ReplaceChild(newChild, oldChild surface.Node) {
	nc, ok := n.own(newChild)
	if !ok {
		return
	}
	oc, ok := oldChild.(*Node)
	if !ok || oc == nil || oc.parent != n || nc == oc {
		return
	}
	n.doc.log(Call{Op: "replaceChild", Node: n.Label(), Child: nc.Label(), Ref: oc.Label()})
	nc.detach()
	i := n.indexOf(oc)
	n.children[i] = nc
	nc.parent = n
	oc.parent = nil
}

// own checks that child is a node of the same document that can be placed
// under n.
func (n *Node) own(child surface.Node) (*Node, bool) {
	c, ok := child.(*Node)
	if !ok || c == nil || c.doc != n.doc || n.typ == TextNode {
		return nil, false
	}
	for p := n; p != nil; p = p.parent {
		if p == c {
			return nil, false
		}
	}
	return c, true
}

func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	i := p.indexOf(n)
	if i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	n.parent = nil
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// validAttrName rejects names the HTML serializer could not write back.
func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch r {
		case ' ', '\t', '\n', '\r', '\f', '"', '\'', '>', '/', '=', '<':
			return false
		}
	}
	return true
}
