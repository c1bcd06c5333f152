package dom

import (
	"strings"
	"sync"

	"github.com/vango-dev/vtree/pkg/surface"
)

// Call is one recorded mutation.
type Call struct {
	Op    string
	Node  string
	Name  string
	Value string
	Child string
	Ref   string
}

// String formats the call on one line.
func (c Call) String() string {
	var b strings.Builder
	b.WriteString(c.Op)
	b.WriteByte(' ')
	b.WriteString(c.Node)
	if c.Name != "" {
		b.WriteString(" " + c.Name)
	}
	if c.Value != "" {
		b.WriteString("=" + c.Value)
	}
	if c.Child != "" {
		b.WriteString(" " + c.Child)
	}
	if c.Ref != "" {
		b.WriteString(" @" + c.Ref)
	}
	return b.String()
}

// Document owns a tree of nodes rooted at a body element.
type Document struct {
	body *Node
	next int

	mu        sync.Mutex
	recording bool
	calls     []Call
}

var _ surface.Document = (*Document)(nil)

// NewDocument creates an empty document with a body element.
func NewDocument() *Document {
	d := &Document{}
	d.body = d.newNode(ElementNode, "body", "")
	return d
}

// Body returns the root element.
func (d *Document) Body() *Node { return d.body }

// CreateText implements surface.Document.
func (d *Document) CreateText(text string) surface.Node {
	n := d.newNode(TextNode, "", text)
	d.log(Call{Op: "createText", Node: n.Label(), Value: text})
	return n
}

// CreateElement implements surface.Document.
func (d *Document) CreateElement(tag string) surface.Node {
	n := d.newNode(ElementNode, strings.ToLower(tag), "")
	d.log(Call{Op: "createElement", Node: n.Label()})
	return n
}

// Query implements surface.Document. It returns nil when nothing matches,
// never a typed nil.
func (d *Document) Query(selector string) surface.Node {
	if n := d.Find(selector); n != nil {
		return n
	}
	return nil
}

// Find is Query returning the concrete node type.
func (d *Document) Find(selector string) *Node {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil
	}
	var match func(*Node) bool
	if id, ok := strings.CutPrefix(selector, "#"); ok {
		match = func(n *Node) bool {
			v, ok := n.Attr("id")
			return ok && v == id
		}
	} else {
		tag := strings.ToLower(selector)
		match = func(n *Node) bool { return n.tag == tag }
	}
	return find(d.body, match)
}

func find(n *Node, match func(*Node) bool) *Node {
	if n.typ == ElementNode && match(n) {
		return n
	}
	for _, c := range n.children {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

// StartRecording clears the call log and starts recording mutations.
func (d *Document) StartRecording() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.recording = true
	d.calls = nil
}

// StopRecording stops recording and returns the log.
func (d *Document) StopRecording() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.recording = false
	return d.calls
}

// Calls returns a copy of the call log.
func (d *Document) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Call, len(d.calls))
	copy(out, d.calls)
	return out
}

func (d *Document) log(c Call) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.recording {
		d.calls = append(d.calls, c)
	}
}

func (d *Document) newNode(typ NodeType, tag, text string) *Node {
	d.next++
	return &Node{doc: d, id: d.next, typ: typ, tag: tag, text: text}
}

// Dispatch fires the listener bound to event.Type on target. It reports
// whether a listener was found. Events do not bubble.
func Dispatch(target *Node, event surface.Event) bool {
	if target == nil {
		return false
	}
	fn, ok := target.listeners[event.Type]
	if !ok || fn == nil {
		return false
	}
	if event.Target == nil {
		event.Target = target
	}
	fn(event)
	return true
}

// Click dispatches a click event on target.
func Click(target *Node) bool {
	return Dispatch(target, surface.Event{Type: "click"})
}

// Input sets the value of target and dispatches an input event.
func Input(target *Node, value string) bool {
	target.value = value
	return Dispatch(target, surface.Event{Type: "input", Value: value})
}
