package vdom

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/surface"
)

func TestPatchBothNil(t *testing.T) {
	f := newFixture(t)
	stats := f.patch(t, nil, nil)
	if stats.Mutations() != 0 {
		t.Errorf("Mutations() = %d, want 0", stats.Mutations())
	}
}

func TestPatchCreate(t *testing.T) {
	f := newFixture(t)
	stats := f.patch(t, Div(Class("card"), H1("Title")), nil)

	if got := f.root.InnerHTML(); got != `<div class="card"><h1>Title</h1></div>` {
		t.Errorf("html = %q", got)
	}
	if stats.Created() != 3 {
		t.Errorf("Created() = %d, want 3", stats.Created())
	}
	if stats.Count(OpAppend) != 1 {
		t.Errorf("Append = %d, want 1", stats.Count(OpAppend))
	}
}

func TestPatchCreateInsertsAtIndex(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if err := f.rec.Patch(ctx, f.root, Text("b"), nil, 0); err != nil {
		t.Fatal(err)
	}
	if err := f.rec.Patch(ctx, f.root, Text("a"), nil, 0); err != nil {
		t.Fatal(err)
	}
	if err := f.rec.Patch(ctx, f.root, Text("c"), nil, 9); err != nil {
		t.Fatal(err)
	}
	if got := f.root.TextContent(); got != "abc" {
		t.Errorf("TextContent() = %q, want abc", got)
	}
}

func TestPatchRemove(t *testing.T) {
	f := newFixture(t)
	prev := Div()
	f.mount(t, prev)

	stats := f.patch(t, nil, prev)
	if f.root.ChildCount() != 0 {
		t.Errorf("ChildCount() = %d, want 0", f.root.ChildCount())
	}
	if stats.Count(OpRemove) != 1 {
		t.Errorf("Remove = %d, want 1", stats.Count(OpRemove))
	}
}

func TestPatchTypeChangeReplacesOnce(t *testing.T) {
	tests := []struct {
		name       string
		prev, next *VNode
	}{
		{"tag", Div(Span("x")), Section(Span("x"))},
		{"text", Text("a"), Text("b")},
		{"kind", Text("a"), Para("a")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.mount(t, tt.prev)
			old := f.first()

			stats := f.patch(t, tt.next, tt.prev)
			if stats.Count(OpReplace) != 1 {
				t.Errorf("Replace = %d, want 1", stats.Count(OpReplace))
			}
			if stats.Count(OpRemove)+stats.Count(OpInsert)+stats.Count(OpAppend) != 0 {
				t.Errorf("unexpected structural ops: %v", stats.Map())
			}
			if f.root.ChildCount() != 1 || f.first() == old {
				t.Errorf("live node was not replaced")
			}
		})
	}
}

func TestPatchUpdatesPropsInPlace(t *testing.T) {
	f := newFixture(t)
	prev := Div(Class("a"), ID("x"))
	f.mount(t, prev)
	node := f.first()

	stats := f.patch(t, Div(Class("b")), prev)
	if f.first() != node {
		t.Fatalf("live node replaced")
	}
	if v, _ := node.Attr("class"); v != "b" {
		t.Errorf("class = %q, want b", v)
	}
	if _, ok := node.Attr("id"); ok {
		t.Errorf("id still set")
	}
	want := map[string]int{"SetAttr": 1, "RemoveAttr": 1}
	for op, n := range want {
		if stats.Map()[op] != n {
			t.Errorf("%s = %d, want %d (stats %v)", op, stats.Map()[op], n, stats.Map())
		}
	}
}

func TestPatchIdempotent(t *testing.T) {
	clicks := 0
	factory := &testFactory{name: "child"}
	build := func() *VNode {
		return Div(Class("todo"),
			Input(Type("checkbox"), CheckedIf(true), Value("v")),
			Button(OnClick(func() { clicks++ }), "add"),
			Ul(Range([]string{"a", "b", "c"}, func(s string, i int) *VNode {
				return Li(Key(s), s)
			})),
			H(factory, nil),
		)
	}

	f := newFixture(t)
	prev := build()
	f.mount(t, prev)
	before := f.root.InnerHTML()

	stats := f.patch(t, build(), prev)
	if stats.Mutations() != 0 {
		t.Errorf("Mutations() = %d, want 0 (stats %v)", stats.Mutations(), stats.Map())
	}
	if after := f.root.InnerHTML(); after != before {
		t.Errorf("html changed:\n%s\n%s", before, after)
	}
	if factory.mounts != 1 {
		t.Errorf("mounts = %d, want 1", factory.mounts)
	}

	dom.Click(f.doc.Find("button"))
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestPatchKeyedReverse(t *testing.T) {
	f := newFixture(t)
	prev := list("a", "b", "c")
	f.mount(t, prev)
	ul := f.first()
	before := liveChildren(ul)

	stats := f.patch(t, list("c", "b", "a"), prev)
	if stats.Created() != 0 || stats.Count(OpRemove) != 0 {
		t.Errorf("created %d removed %d, want 0 and 0 (stats %v)",
			stats.Created(), stats.Count(OpRemove), stats.Map())
	}
	if got := ul.TextContent(); got != "cba" {
		t.Errorf("TextContent() = %q, want cba", got)
	}
	after := liveChildren(ul)
	for i := range after {
		if after[i] != before[len(before)-1-i] {
			t.Errorf("child %d is not the reused node", i)
		}
	}
}

func TestPatchKeyedInsert(t *testing.T) {
	f := newFixture(t)
	prev := list("a", "c")
	f.mount(t, prev)
	ul := f.first()
	before := liveChildren(ul)

	stats := f.patch(t, list("a", "b", "c"), prev)
	if stats.Count(OpInsert) != 1 || stats.Count(OpRemove) != 0 || stats.Count(OpMove) != 0 {
		t.Errorf("stats = %v, want a single insert", stats.Map())
	}
	if stats.Count(OpCreateElement) != 1 {
		t.Errorf("CreateElement = %d, want 1", stats.Count(OpCreateElement))
	}
	after := liveChildren(ul)
	if after[0] != before[0] || after[2] != before[1] {
		t.Errorf("existing items were not reused")
	}
	if got := ul.TextContent(); got != "abc" {
		t.Errorf("TextContent() = %q, want abc", got)
	}
}

func TestPatchKeyedRemove(t *testing.T) {
	f := newFixture(t)
	prev := list("a", "b", "c")
	f.mount(t, prev)
	ul := f.first()

	stats := f.patch(t, list("a", "c"), prev)
	if stats.Count(OpRemove) != 1 || stats.Created() != 0 {
		t.Errorf("stats = %v, want a single remove", stats.Map())
	}
	if got := ul.TextContent(); got != "ac" {
		t.Errorf("TextContent() = %q, want ac", got)
	}
}

func TestPatchKeyedShuffle(t *testing.T) {
	steps := [][]string{
		{"a", "b", "c", "d", "e"},
		{"e", "a", "d", "b"},
		{"b", "x", "e", "a", "y"},
		{"y", "x"},
		{"a", "y", "b", "x", "c"},
		{},
		{"q"},
	}
	f := newFixture(t)
	prev := list(steps[0]...)
	f.mount(t, prev)
	for _, keys := range steps[1:] {
		next := list(keys...)
		f.patch(t, next, prev)
		if got, want := f.first().TextContent(), strings.Join(keys, ""); got != want {
			t.Fatalf("after %v: TextContent() = %q, want %q", keys, got, want)
		}
		prev = next
	}
}

func TestPatchComponentTransparency(t *testing.T) {
	f := newFixture(t)
	factory := &testFactory{name: "counter"}
	prev := Div(H(factory, P(PropInitState, 1)))
	f.mount(t, prev)

	if factory.mounts != 1 {
		t.Fatalf("mounts = %d, want 1", factory.mounts)
	}
	inst := factory.instances[0]
	span := f.doc.Find("span")
	if v, _ := span.Attr("data-state"); v != "1" {
		t.Errorf("data-state = %q, want 1", v)
	}

	next := Div(H(factory, P(PropInitState, 99)))
	stats := f.patch(t, next, prev)
	if factory.mounts != 1 {
		t.Errorf("mounts = %d, want 1", factory.mounts)
	}
	if inst.refreshes != 1 {
		t.Errorf("refreshes = %d, want 1", inst.refreshes)
	}
	if next.Children[0].Instance != inst {
		t.Errorf("instance not carried to the new descriptor")
	}
	if stats.Mutations() != 0 {
		t.Errorf("Mutations() = %d, want 0", stats.Mutations())
	}
	if f.doc.Find("span") != span {
		t.Errorf("component root replaced")
	}
}

func TestPatchComponentFactoryChange(t *testing.T) {
	f := newFixture(t)
	one := &testFactory{name: "one"}
	two := &testFactory{name: "two"}
	prev := Div(H(one, nil))
	f.mount(t, prev)

	stats := f.patch(t, Div(H(two, nil)), prev)
	if stats.Count(OpReplace) != 1 || stats.Count(OpMount) != 1 {
		t.Errorf("stats = %v, want one replace and one mount", stats.Map())
	}
	if one.instances[0].disposed != 1 {
		t.Errorf("old instance disposed %d times, want 1", one.instances[0].disposed)
	}
}

func TestPatchDisposesRemovedComponents(t *testing.T) {
	f := newFixture(t)
	factory := &testFactory{name: "row"}
	prev := Div(Section(H(factory, nil)), H(factory, nil))
	f.mount(t, prev)

	f.patch(t, nil, prev)
	for i, inst := range factory.instances {
		if inst.disposed != 1 {
			t.Errorf("instance %d disposed %d times, want 1", i, inst.disposed)
		}
	}
}

func TestPatchComponentErrors(t *testing.T) {
	f := newFixture(t)
	ok := &testFactory{name: "ok"}
	bad := &testFactory{name: "bad", failWith: errBoom}

	err := f.rec.Patch(context.Background(), f.root, Div(H(ok, nil), H(bad, nil)), nil, 0)
	if !errors.Is(err, errBoom) {
		t.Fatalf("Patch() error = %v, want %v", err, errBoom)
	}
	if ok.instances[0].disposed != 1 {
		t.Errorf("partially built subtree was not disposed")
	}

	prev := Div(H(ok, nil))
	f2 := newFixture(t)
	f2.mount(t, prev)
	ok.instances[len(ok.instances)-1].refreshErr = errBoom
	if err := f2.rec.Patch(context.Background(), f2.root, Div(H(ok, nil)), prev, 0); !errors.Is(err, errBoom) {
		t.Errorf("refresh error = %v, want %v", err, errBoom)
	}
}

func TestPatchListeners(t *testing.T) {
	f := newFixture(t)
	var got []string
	prev := Button(OnClick(func() { got = append(got, "first") }))
	f.mount(t, prev)
	btn := f.first()

	next := Button(OnClick(func() { got = append(got, "second") }))
	stats := f.patch(t, next, prev)
	if stats.Count(OpListen) != 0 {
		t.Errorf("handler swap re-bound the listener")
	}
	dom.Click(btn)

	stats = f.patch(t, Button(), next)
	if stats.Count(OpUnlisten) != 1 {
		t.Errorf("Unlisten = %d, want 1", stats.Count(OpUnlisten))
	}
	if dom.Click(btn) {
		t.Errorf("listener still bound")
	}
	if len(got) != 1 || got[0] != "second" {
		t.Errorf("calls = %v, want [second]", got)
	}
}

func TestPatchSharedDescriptor(t *testing.T) {
	t.Run("listeners", func(t *testing.T) {
		f := newFixture(t)
		var got []string
		shared := Button(OnClick(func() { got = append(got, "old") }))
		prev := Div(shared, shared)
		f.mount(t, prev)

		next := Div(
			Button(OnClick(func() { got = append(got, "new0") })),
			Button(OnClick(func() { got = append(got, "new1") })),
		)
		f.patch(t, next, prev)
		for _, btn := range f.first().Children() {
			dom.Click(btn)
		}
		if strings.Join(got, " ") != "new0 new1" {
			t.Errorf("calls = %v, want [new0 new1]", got)
		}
	})

	t.Run("nested listeners", func(t *testing.T) {
		f := newFixture(t)
		var got []string
		row := Li(Button(OnClick(func() { got = append(got, "old") })))
		prev := Ul(row, row)
		f.mount(t, prev)
		if len(row.Children) != 1 || prev.Children[1].Children[0] == row.Children[0] {
			t.Fatalf("second slot still shares the first slot's descriptors")
		}

		next := Ul(
			Li(Button(OnClick(func() { got = append(got, "new0") }))),
			Li(Button(OnClick(func() { got = append(got, "new1") }))),
		)
		f.patch(t, next, prev)
		for _, li := range f.first().Children() {
			dom.Click(li.Children()[0])
		}
		if strings.Join(got, " ") != "new0 new1" {
			t.Errorf("calls = %v, want [new0 new1]", got)
		}
	})

	t.Run("components", func(t *testing.T) {
		f := newFixture(t)
		factory := &testFactory{name: "shared"}
		shared := H(factory, nil)
		prev := Div(shared, shared)
		f.mount(t, prev)
		if factory.mounts != 2 {
			t.Fatalf("mounts = %d, want 2", factory.mounts)
		}

		f.patch(t, Div(H(factory, nil), H(factory, nil)), prev)
		for i, inst := range factory.instances {
			if inst.refreshes != 1 {
				t.Errorf("instance %d refreshed %d times, want 1", i, inst.refreshes)
			}
		}
	})

	t.Run("repeated in the next render", func(t *testing.T) {
		f := newFixture(t)
		factory := &testFactory{name: "shared"}
		prev := Div(H(factory, nil), H(factory, nil))
		f.mount(t, prev)

		shared := H(factory, nil)
		next := Div(shared, shared)
		f.patch(t, next, prev)
		if next.Children[0].Instance == next.Children[1].Instance {
			t.Fatalf("both slots hold the same instance")
		}

		f.patch(t, Div(H(factory, nil), H(factory, nil)), next)
		for i, inst := range factory.instances {
			if inst.refreshes != 2 {
				t.Errorf("instance %d refreshed %d times, want 2", i, inst.refreshes)
			}
		}
	})
}

func TestClaim(t *testing.T) {
	f := newFixture(t)
	n := Div(Class("x"), "text")
	if f.rec.Claim(n, nil) != n {
		t.Errorf("an unmounted descriptor should be used as is")
	}
	f.mount(t, n)

	if f.rec.Claim(n, n) != n {
		t.Errorf("a descriptor retained in its own slot should be used as is")
	}
	other := f.rec.Claim(n, Div())
	if other == n {
		t.Fatalf("a mounted descriptor should be copied for another slot")
	}
	if class, _ := other.Props.Get("class"); other.Tag != "div" || class != "x" || len(other.Children) != 1 {
		t.Errorf("copy = %s, want the same shape", other)
	}
	if f.rec.Claim(nil, n) != nil {
		t.Errorf("Claim(nil) should be nil")
	}
}

func TestPatchListenerValueHandler(t *testing.T) {
	f := newFixture(t)
	var typed string
	f.mount(t, Input(OnInput(func(v string) { typed = v })))
	dom.Input(f.first(), "hello")
	if typed != "hello" {
		t.Errorf("typed = %q, want hello", typed)
	}

	var ev surface.Event
	f2 := newFixture(t)
	f2.mount(t, Div(On("keydown", func(e surface.Event) { ev = e })))
	dom.Dispatch(f2.first(), surface.Event{Type: "keydown", Key: "Enter"})
	if ev.Key != "Enter" || ev.Target != f2.first() {
		t.Errorf("event = %+v", ev)
	}
}

func TestPatchBooleanProps(t *testing.T) {
	f := newFixture(t)
	prev := Input(CheckedIf(true))
	f.mount(t, prev)
	in := f.first()
	if v, ok := in.Attr("checked"); !ok || v != "checked" || !in.Flag("checked") {
		t.Errorf("checked = %q, %v, flag %v", v, ok, in.Flag("checked"))
	}

	f.patch(t, Input(CheckedIf(false)), prev)
	if _, ok := in.Attr("checked"); ok || in.Flag("checked") {
		t.Errorf("checked still set")
	}
}

func TestPatchValueFollowsRender(t *testing.T) {
	f := newFixture(t)
	prev := Input(Value("a"))
	f.mount(t, prev)
	in := f.first()
	if in.Value() != "a" {
		t.Fatalf("Value() = %q, want a", in.Value())
	}

	in.SetValue("user typed")
	stats := f.patch(t, Input(Value("a")), prev)
	if stats.Count(OpSetValue) != 1 || in.Value() != "a" {
		t.Errorf("Value() = %q, SetValue = %d", in.Value(), stats.Count(OpSetValue))
	}
}

func TestPatchSkipsReservedAndAliases(t *testing.T) {
	f := newFixture(t)
	f.mount(t, H("label", P("key", "k", "className", "c", "htmlFor", "x", "initState", 3)))
	n := f.first()
	if _, ok := n.Attr("key"); ok {
		t.Errorf("reserved key applied")
	}
	if _, ok := n.Attr("initState"); ok {
		t.Errorf("reserved initState applied")
	}
	if v, _ := n.Attr("class"); v != "c" {
		t.Errorf("class = %q, want c", v)
	}
	if v, _ := n.Attr("for"); v != "x" {
		t.Errorf("for = %q, want x", v)
	}
}

func TestPatchRejectedAttrIsLogged(t *testing.T) {
	f := newFixture(t)
	f.mount(t, Div(P("bad name", "1", "data-fn", func() {}, "title", "ok")))
	n := f.first()
	if v, _ := n.Attr("title"); v != "ok" {
		t.Errorf("title = %q, want ok", v)
	}
	if len(n.Attrs()) != 1 {
		t.Errorf("attrs = %v, want only title", n.Attrs())
	}
	if !strings.Contains(f.logs.String(), "E010") {
		t.Errorf("expected E010 warning, logs:\n%s", f.logs.String())
	}
}
