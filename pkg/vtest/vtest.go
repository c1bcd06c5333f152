package vtest

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/metrics"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// EnvBuilder allows fluent construction of test environments.
type EnvBuilder struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	target  string
}

// NewEnv creates a new environment builder.
//
// Example:
//
//	env := vtest.NewEnv().WithTarget("app").Build()
func NewEnv() *EnvBuilder {
	return &EnvBuilder{}
}

// WithLogger sets the reconciler logger.
func (b *EnvBuilder) WithLogger(logger *slog.Logger) *EnvBuilder {
	b.logger = logger
	return b
}

// WithMetrics records reconciler operations into m.
func (b *EnvBuilder) WithMetrics(m *metrics.Metrics) *EnvBuilder {
	b.metrics = m
	return b
}

// WithTarget renders into a <main> element with the given id instead of
// the document body.
//
// Example:
//
//	env := vtest.NewEnv().WithTarget("app").Build()
//	handle, _ := component.Make(env.Rec, render, state, "#app")
func (b *EnvBuilder) WithTarget(id string) *EnvBuilder {
	b.target = id
	return b
}

// Build returns the environment.
func (b *EnvBuilder) Build() *Env {
	doc := dom.NewDocument()
	root := doc.Body()
	if b.target != "" {
		root = doc.CreateElement("main").(*dom.Node)
		_ = root.SetAttr("id", b.target)
		doc.Body().AppendChild(root)
	}
	opts := []vdom.Option{vdom.WithMetrics(b.metrics)}
	if b.logger != nil {
		opts = append(opts, vdom.WithLogger(b.logger))
	}
	return &Env{
		Doc:  doc,
		Rec:  vdom.NewReconciler(doc, opts...),
		Root: root,
	}
}

// Env is an in-memory document with a reconciler rendering into Root.
type Env struct {
	Doc  *dom.Document
	Rec  *vdom.Reconciler
	Root *dom.Node

	current *vdom.VNode
}

// Render reconciles node against the previously rendered descriptor and
// returns the operations performed. A nil node clears Root.
func (e *Env) Render(node *vdom.VNode) (vdom.Stats, error) {
	before := e.Rec.Stats()
	node = e.Rec.Claim(node, e.current)
	err := e.Rec.Patch(context.Background(), e.Root, node, e.current, 0)
	if err != nil {
		return e.Rec.Stats().Sub(before), err
	}
	e.current = node
	return e.Rec.Stats().Sub(before), nil
}

// Current returns the last rendered descriptor.
func (e *Env) Current() *vdom.VNode {
	return e.current
}

// HTML returns the compact HTML of Root's children.
func (e *Env) HTML() string {
	return e.Root.InnerHTML()
}

// Find returns the first node matching selector ("#id" or a tag name).
func (e *Env) Find(selector string) *dom.Node {
	return e.Doc.Find(selector)
}

// Click dispatches a click on the node matching selector. It reports false
// when no node matches or no listener handled the event.
func (e *Env) Click(selector string) bool {
	n := e.Find(selector)
	if n == nil {
		return false
	}
	return dom.Click(n)
}

// Input sets the value of the node matching selector and dispatches an
// input event.
func (e *Env) Input(selector, value string) bool {
	n := e.Find(selector)
	if n == nil {
		return false
	}
	return dom.Input(n, value)
}

// Dispose releases the rendered descriptor, disposing nested components.
func (e *Env) Dispose() {
	if e.current != nil {
		e.Rec.Dispose(e.current)
		e.current = nil
	}
}

// RenderToString mounts node into a fresh document and returns its HTML.
//
// Example:
//
//	html := vtest.RenderToString(Card("title"))
//	if !strings.Contains(html, "title") {
//	    t.Error("missing title")
//	}
func RenderToString(node *vdom.VNode) string {
	env := NewEnv().WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))).Build()
	if _, err := env.Render(node); err != nil {
		return ""
	}
	defer env.Dispose()
	return env.HTML()
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, Card("Welcome"), "Welcome")
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
//
// Example:
//
//	vtest.ExpectElement(t, Form(), "button")
func ExpectElement(t testing.TB, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
//
// Example:
//
//	vtest.ExpectAttribute(t, Button(), "class", "btn-primary")
func ExpectAttribute(t testing.TB, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// ExpectNoMutations asserts that a render changed nothing on the surface.
func ExpectNoMutations(t testing.TB, stats vdom.Stats) {
	t.Helper()
	if n := stats.Mutations(); n != 0 {
		t.Errorf("expected no surface mutations, got %d: %v", n, stats.Map())
	}
}

// ExpectOps asserts the exact count of each listed op. Ops not listed are
// not checked.
//
// Example:
//
//	vtest.ExpectOps(t, stats, map[vdom.Op]int{vdom.OpAppend: 1, vdom.OpRemove: 0})
func ExpectOps(t testing.TB, stats vdom.Stats, want map[vdom.Op]int) {
	t.Helper()
	for op, n := range want {
		if got := stats.Count(op); got != n {
			t.Errorf("%s count = %d, want %d (all: %v)", op, got, n, stats.Map())
		}
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
