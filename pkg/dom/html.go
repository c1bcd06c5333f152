package dom

import (
	"bytes"
	"fmt"
	"io"
	"sort"
)

// RenderConfig configures HTML output.
type RenderConfig struct {
	// Pretty enables indentation and line breaks between block elements.
	Pretty bool

	// Indent is the string used per indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string

	// Outer includes the node's own tag. When false only the children of
	// an element are written.
	Outer bool
}

// RenderToString writes the subtree rooted at n as HTML.
func RenderToString(n *Node, config RenderConfig) (string, error) {
	var buf bytes.Buffer
	if err := RenderToWriter(&buf, n, config); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams the subtree rooted at n as HTML.
func RenderToWriter(w io.Writer, n *Node, config RenderConfig) error {
	if n == nil {
		return nil
	}
	if config.Indent == "" {
		config.Indent = "  "
	}
	r := &renderer{w: w, config: config}
	if config.Outer || n.typ == TextNode {
		r.node(n, 0)
	} else {
		for _, c := range n.children {
			r.node(c, 0)
		}
	}
	return r.err
}

// OuterHTML returns the compact HTML of n including its own tag.
func (n *Node) OuterHTML() string {
	s, _ := RenderToString(n, RenderConfig{Outer: true})
	return s
}

// InnerHTML returns the compact HTML of the children of n.
func (n *Node) InnerHTML() string {
	s, _ := RenderToString(n, RenderConfig{})
	return s
}

type renderer struct {
	w      io.Writer
	config RenderConfig
	err    error
}

func (r *renderer) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s)
}

func (r *renderer) node(n *Node, depth int) {
	if n.typ == TextNode {
		r.write(escapeHTML(n.text))
		return
	}
	r.element(n, depth)
}

func (r *renderer) element(n *Node, depth int) {
	if r.config.Pretty && depth > 0 {
		r.indent(depth)
	}

	r.write("<")
	r.write(n.tag)
	r.attributes(n)

	if isVoidElement(n.tag) {
		r.write(">")
		if r.config.Pretty {
			r.write("\n")
		}
		return
	}
	r.write(">")

	if n.tag == "textarea" && len(n.children) == 0 {
		r.write(escapeHTML(n.value))
	}

	block := len(n.children) > 0 && !isInlineElement(n.tag) && hasElementChild(n)
	if r.config.Pretty && block {
		r.write("\n")
	}
	for _, c := range n.children {
		r.node(c, depth+1)
	}
	if r.config.Pretty && block {
		r.indent(depth)
	}

	r.write(fmt.Sprintf("</%s>", n.tag))
	if r.config.Pretty {
		r.write("\n")
	}
}

// attributes writes attributes sorted by name for deterministic output.
func (r *renderer) attributes(n *Node) {
	attrs := make([]attr, len(n.attrs))
	copy(attrs, n.attrs)
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].name < attrs[j].name })

	hasValue := false
	for _, a := range attrs {
		if a.name == "value" {
			hasValue = true
		}
		if isBooleanAttr(a.name) && (a.value == a.name || a.value == "") {
			r.write(" " + a.name)
			continue
		}
		r.write(fmt.Sprintf(` %s="%s"`, a.name, escapeAttr(a.value)))
	}
	if !hasValue && n.value != "" && n.tag != "textarea" {
		r.write(fmt.Sprintf(` value="%s"`, escapeAttr(n.value)))
	}
}

func (r *renderer) indent(depth int) {
	for i := 0; i < depth; i++ {
		r.write(r.config.Indent)
	}
}

func hasElementChild(n *Node) bool {
	for _, c := range n.children {
		if c.typ == ElementNode {
			return true
		}
	}
	return false
}
