package vdom

import (
	"context"
	"fmt"
	"slices"

	"github.com/vango-dev/vtree/pkg/surface"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindText      VKind = iota // Plain text leaf
	KindElement                // <div>, <button>, etc.
	KindComponent              // Nested component
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// ComponentTag is the Tag carried by every component descriptor.
const ComponentTag = "vtree-component"

// Reserved prop names. They carry reconciliation bookkeeping and are never
// applied to a live node.
const (
	PropKey       = "key"
	PropComponent = "component"
	PropInitState = "initState"
)

// ReservedProps lists the prop names callers must not use for ordinary
// attributes.
var ReservedProps = []string{PropKey, PropComponent, PropInitState}

// IsReserved reports whether name is a reserved prop name.
func IsReserved(name string) bool {
	switch name {
	case PropKey, PropComponent, PropInitState:
		return true
	}
	return false
}

// VNode is a node descriptor. Descriptors are immutable by convention once
// built, except for the live bookkeeping the reconciler carries forward from
// one render to the next (Instance and listener bindings). That bookkeeping
// belongs to one live node: a descriptor placed in a second slot, or in two
// places of one child list, is reconciled through a copy stored in its
// place.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name, or ComponentTag
	Props    Props    // Attributes and event handlers
	Children []*VNode // Flattened child descriptors
	Text     string   // For KindText
	Factory  Factory  // For KindComponent

	// Instance is the mounted component for a KindComponent descriptor. It is
	// set when the descriptor is first materialized and transferred to the
	// next descriptor at the same position on every update.
	Instance Instance

	listeners map[string]*binding

	// mounted is set once the descriptor backs a live node. A mounted
	// descriptor is only reconciled again in the slot that owns it.
	mounted bool
}

// fresh returns an unmounted copy of v with its own child list. The children
// themselves are shared until they are claimed.
func (v *VNode) fresh() *VNode {
	return &VNode{
		Kind:     v.Kind,
		Tag:      v.Tag,
		Props:    v.Props,
		Children: slices.Clone(v.Children),
		Text:     v.Text,
		Factory:  v.Factory,
	}
}

// Key returns the explicit reconciliation key, or "" if none was given.
func (v *VNode) Key() string {
	if v == nil {
		return ""
	}
	val, ok := v.Props.Get(PropKey)
	if !ok || val == nil {
		return ""
	}
	return fmt.Sprint(val)
}

// InitState returns the initial component state carried in props, or nil.
func (v *VNode) InitState() any {
	if v == nil {
		return nil
	}
	val, _ := v.Props.Get(PropInitState)
	return val
}

// String returns a short description of the node for logs.
func (v *VNode) String() string {
	if v == nil {
		return "<nil>"
	}
	switch v.Kind {
	case KindText:
		return fmt.Sprintf("%q", v.Text)
	case KindComponent:
		return "<" + factoryName(v.Factory) + ">"
	default:
		if k := v.Key(); k != "" {
			return fmt.Sprintf("<%s key=%s>", v.Tag, k)
		}
		return "<" + v.Tag + ">"
	}
}

// Factory constructs component instances for component descriptors.
//
// Factories are compared by identity when deciding whether a component slot
// can be updated in place. Pointer types are the usual choice; func, map and
// slice types are compared by their pointer instead of panicking.
type Factory interface {
	Instantiate(ctx context.Context, r *Reconciler, initState any) (Instance, error)
}

// Instance is a mounted component as seen by its parent's reconciliation.
type Instance interface {
	// Root is the live node the component manages.
	Root() surface.Node

	// Refresh re-renders the component with its last-known state.
	Refresh(ctx context.Context) error

	// Dispose is called once the component's slot has been removed or
	// replaced. The instance must not be refreshed afterwards.
	Dispose()
}

// Named is implemented by factories that carry a display name.
type Named interface {
	Name() string
}

func factoryName(f Factory) string {
	if n, ok := f.(Named); ok && n.Name() != "" {
		return n.Name()
	}
	if f == nil {
		return ComponentTag
	}
	return fmt.Sprintf("%T", f)
}

// Attr represents a single attribute or event handler.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}
