package vdom

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/surface"
)

type fixture struct {
	doc  *dom.Document
	rec  *Reconciler
	root *dom.Node
	logs *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	doc := dom.NewDocument()
	return &fixture{
		doc:  doc,
		rec:  NewReconciler(doc, WithLogger(logger)),
		root: doc.Body(),
		logs: logs,
	}
}

// mount patches node into an empty root and resets the stats.
func (f *fixture) mount(t *testing.T, node *VNode) {
	t.Helper()
	if err := f.rec.Patch(context.Background(), f.root, node, nil, 0); err != nil {
		t.Fatalf("Patch(mount): %v", err)
	}
	f.rec.ResetStats()
}

func (f *fixture) patch(t *testing.T, next, prev *VNode) Stats {
	t.Helper()
	f.rec.ResetStats()
	if err := f.rec.Patch(context.Background(), f.root, next, prev, 0); err != nil {
		t.Fatalf("Patch: %v", err)
	}
	return f.rec.Stats()
}

func (f *fixture) first() *dom.Node {
	n, _ := f.root.ChildAt(0).(*dom.Node)
	return n
}

// testFactory mounts a <span data-state=...> per instance.
type testFactory struct {
	name      string
	mounts    int
	failWith  error
	instances []*testInstance
}

func (f *testFactory) Name() string { return f.name }

func (f *testFactory) Instantiate(ctx context.Context, r *Reconciler, initState any) (Instance, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mounts++
	root := r.Document().CreateElement("span")
	if err := root.SetAttr("data-state", fmt.Sprint(initState)); err != nil {
		return nil, err
	}
	inst := &testInstance{root: root}
	f.instances = append(f.instances, inst)
	return inst, nil
}

type testInstance struct {
	root       surface.Node
	refreshes  int
	disposed   int
	refreshErr error
}

func (i *testInstance) Root() surface.Node { return i.root }

func (i *testInstance) Refresh(ctx context.Context) error {
	i.refreshes++
	return i.refreshErr
}

func (i *testInstance) Dispose() { i.disposed++ }

// funcFactory is a factory of a type == cannot compare.
type funcFactory func(ctx context.Context, r *Reconciler, initState any) (Instance, error)

func (f funcFactory) Instantiate(ctx context.Context, r *Reconciler, initState any) (Instance, error) {
	return f(ctx, r, initState)
}

var errBoom = errors.New("boom")

// list builds a <ul> of keyed <li> items.
func list(keys ...string) *VNode {
	items := make([]*VNode, 0, len(keys))
	for _, k := range keys {
		items = append(items, Li(Key(k), k))
	}
	return Ul(items)
}

func liveChildren(n *dom.Node) []*dom.Node {
	return n.Children()
}
