// Package surface defines the capability set the reconciler needs from a
// retained-tree rendering surface.
//
// A surface is anything that can create text and element nodes, hold
// attributes, boolean flags, an input value and event listeners on those
// nodes, and arrange them into an ordered child list. The reconciler in
// package vdom never inspects nodes beyond this interface, so any UI tree
// (a browser DOM bridge, a terminal widget tree, the in-memory tree in
// package dom) can host it.
package surface

// Event is delivered to listeners bound on a node.
type Event struct {
	// Type is the event name without the "on" prefix, e.g. "click".
	Type string

	// Target is the node the event was dispatched on.
	Target Node

	// Value carries the target's input value for input-like events.
	Value string

	// Key is the key name for keyboard events.
	Key string

	// Ctrl reports whether the control modifier was held.
	Ctrl bool
}

// Listener handles an event.
type Listener func(Event)

// Document creates nodes and resolves lookup names.
type Document interface {
	// CreateText creates a detached text leaf.
	CreateText(text string) Node

	// CreateElement creates a detached element node.
	CreateElement(tag string) Node

	// Query resolves a lookup name to a node, or nil if none matches.
	Query(selector string) Node
}

// Node is a live node on the surface.
//
// Structural operations with invalid arguments (a reference node that is not
// a child, a foreign node) are ignored by implementations rather than
// reported; only SetAttr reports failure because a rejected attribute is a
// per-attribute condition the reconciler degrades around.
//
// Implementations must be comparable: node identity is checked with ==.
type Node interface {
	Attr(name string) (string, bool)
	SetAttr(name, value string) error
	RemoveAttr(name string)

	Flag(name string) bool
	SetFlag(name string, on bool)

	Value() string
	SetValue(value string)

	Listen(event string, fn Listener)
	Unlisten(event string)

	ChildCount() int
	ChildAt(i int) Node

	// InsertBefore inserts child before ref. If child is already attached
	// it is moved.
	InsertBefore(child, ref Node)
	AppendChild(child Node)
	RemoveChild(child Node)
	ReplaceChild(newChild, oldChild Node)
}
