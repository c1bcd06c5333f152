package dom

import (
	"strings"
	"testing"

	"github.com/vango-dev/vtree/pkg/surface"
)

func el(d *Document, tag string) *Node {
	return d.CreateElement(tag).(*Node)
}

func txt(d *Document, s string) *Node {
	return d.CreateText(s).(*Node)
}

func TestAppendAndInsert(t *testing.T) {
	d := NewDocument()
	ul := el(d, "ul")
	a, b, c := el(d, "li"), el(d, "li"), el(d, "li")
	ul.AppendChild(a)
	ul.AppendChild(c)
	ul.InsertBefore(b, c)

	if ul.ChildCount() != 3 {
		t.Fatalf("ChildCount() = %d, want 3", ul.ChildCount())
	}
	for i, want := range []*Node{a, b, c} {
		if got := ul.ChildAt(i); got != want {
			t.Errorf("ChildAt(%d) = %v, want %v", i, got, want)
		}
	}
	if b.Parent() != ul {
		t.Errorf("Parent() = %v, want ul", b.Parent())
	}
}

func TestInsertBeforeMovesAttachedNode(t *testing.T) {
	d := NewDocument()
	ul := el(d, "ul")
	a, b, c := el(d, "li"), el(d, "li"), el(d, "li")
	ul.AppendChild(a)
	ul.AppendChild(b)
	ul.AppendChild(c)

	ul.InsertBefore(c, a)
	got := ul.Children()
	want := []*Node{c, a, b}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	other := el(d, "ol")
	other.AppendChild(a)
	if ul.ChildCount() != 2 || a.Parent() != other {
		t.Errorf("AppendChild did not move across parents")
	}
}

func TestInvalidStructuralOpsIgnored(t *testing.T) {
	d := NewDocument()
	div := el(d, "div")
	span := el(d, "span")
	stray := el(d, "p")

	div.AppendChild(span)
	div.InsertBefore(el(d, "b"), stray)
	div.RemoveChild(stray)
	div.ReplaceChild(el(d, "i"), stray)
	span.AppendChild(div)
	txt(d, "x").AppendChild(el(d, "em"))
	div.AppendChild(NewDocument().Body())

	if div.ChildCount() != 1 || div.ChildAt(0) != span {
		t.Errorf("children = %v, want [span]", div.Children())
	}
	if got := div.ChildAt(5); got != nil {
		t.Errorf("ChildAt(5) = %v, want nil", got)
	}
}

func TestReplaceChild(t *testing.T) {
	d := NewDocument()
	div := el(d, "div")
	old := el(d, "span")
	div.AppendChild(old)
	repl := txt(d, "hi")
	div.ReplaceChild(repl, old)

	if div.ChildAt(0) != repl {
		t.Errorf("ChildAt(0) = %v, want text", div.ChildAt(0))
	}
	if old.Parent() != nil {
		t.Errorf("old node still attached")
	}
}

func TestAttributes(t *testing.T) {
	d := NewDocument()
	div := el(d, "div")

	if err := div.SetAttr("id", "main"); err != nil {
		t.Fatalf("SetAttr: %v", err)
	}
	if v, ok := div.Attr("id"); !ok || v != "main" {
		t.Errorf("Attr(id) = %q, %v, want main, true", v, ok)
	}
	for _, bad := range []string{"", "a b", `x"y`, "a=b"} {
		if err := div.SetAttr(bad, "1"); err == nil {
			t.Errorf("SetAttr(%q) succeeded, want error", bad)
		}
	}
	if err := txt(d, "t").SetAttr("id", "x"); err == nil {
		t.Errorf("SetAttr on text succeeded, want error")
	}

	div.RemoveAttr("id")
	if _, ok := div.Attr("id"); ok {
		t.Errorf("Attr(id) still present after RemoveAttr")
	}
}

func TestFlagsAndValue(t *testing.T) {
	d := NewDocument()
	in := el(d, "input")
	in.SetFlag("checked", true)
	if !in.Flag("checked") {
		t.Errorf("Flag(checked) = false, want true")
	}
	in.SetFlag("checked", false)
	if in.Flag("checked") {
		t.Errorf("Flag(checked) = true, want false")
	}
	in.SetValue("abc")
	if in.Value() != "abc" {
		t.Errorf("Value() = %q, want abc", in.Value())
	}
}

func TestQuery(t *testing.T) {
	d := NewDocument()
	main := el(d, "main")
	sec := el(d, "section")
	_ = sec.SetAttr("id", "app")
	main.AppendChild(sec)
	d.Body().AppendChild(main)

	if got := d.Query("#app"); got != sec {
		t.Errorf("Query(#app) = %v, want section", got)
	}
	if got := d.Query("MAIN"); got != main {
		t.Errorf("Query(MAIN) = %v, want main", got)
	}
	if got := d.Query("#missing"); got != nil {
		t.Errorf("Query(#missing) = %v, want nil", got)
	}
	if got := d.Query(""); got != nil {
		t.Errorf("Query(\"\") = %v, want nil", got)
	}
}

func TestDispatch(t *testing.T) {
	d := NewDocument()
	btn := el(d, "button")
	var got []surface.Event
	btn.Listen("click", func(e surface.Event) { got = append(got, e) })

	if !Click(btn) {
		t.Fatalf("Click() = false, want true")
	}
	if len(got) != 1 || got[0].Target != btn {
		t.Errorf("events = %v, want one click targeting btn", got)
	}
	btn.Unlisten("click")
	if Click(btn) {
		t.Errorf("Click() after Unlisten = true, want false")
	}

	in := el(d, "input")
	var value string
	in.Listen("input", func(e surface.Event) { value = e.Value })
	Input(in, "typed")
	if value != "typed" || in.Value() != "typed" {
		t.Errorf("input value = %q / %q, want typed", value, in.Value())
	}
}

func TestRecording(t *testing.T) {
	d := NewDocument()
	div := el(d, "div")
	d.StartRecording()
	_ = div.SetAttr("class", "x")
	div.AppendChild(txt(d, "hi"))
	calls := d.StopRecording()
	_ = div.SetAttr("class", "y")

	var ops []string
	for _, c := range calls {
		ops = append(ops, c.Op)
	}
	want := "setAttr,createText,appendChild"
	if got := strings.Join(ops, ","); got != want {
		t.Errorf("ops = %s, want %s", got, want)
	}
	if len(d.Calls()) != 3 {
		t.Errorf("len(Calls()) = %d, want 3", len(d.Calls()))
	}
	if s := calls[0].String(); s != "setAttr div#2 class=x" {
		t.Errorf("String() = %q", s)
	}
}

func TestTextContent(t *testing.T) {
	d := NewDocument()
	p := el(d, "p")
	p.AppendChild(txt(d, "a"))
	b := el(d, "b")
	b.AppendChild(txt(d, "b"))
	p.AppendChild(b)

	if got := p.TextContent(); got != "ab" {
		t.Errorf("TextContent() = %q, want ab", got)
	}
}
