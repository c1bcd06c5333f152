package vdom

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/surface"
)

// binding is the stable listener registered on a live node for one event.
// Re-renders swap fn without touching the surface.
type binding struct {
	fn surface.Listener
}

func (b *binding) dispatch(ev surface.Event) {
	if b.fn != nil {
		b.fn(ev)
	}
}

// reconcileProps applies the difference between prev's and next's props to
// node. prev may be nil when node was just created. Every name in the union
// of both prop sets is visited once: next's names in order, then names only
// prev had.
func (r *Reconciler) reconcileProps(node surface.Node, next, prev *VNode) {
	var prevProps Props
	if prev != nil {
		prevProps = prev.Props
		if prev != next && next.listeners == nil {
			next.listeners = prev.listeners
		}
	}

	for _, a := range next.Props {
		oldVal, _ := prevProps.Get(a.Key)
		r.updateProp(node, next, a.Key, a.Value, oldVal)
	}
	for _, a := range prevProps {
		if !next.Props.Has(a.Key) {
			r.updateProp(node, next, a.Key, nil, a.Value)
		}
	}
}

func (r *Reconciler) updateProp(node surface.Node, owner *VNode, name string, newVal, oldVal any) {
	switch {
	case newVal == nil && oldVal == nil:
		return
	case newVal == nil:
		r.removeProp(node, owner, name, oldVal)
	case oldVal == nil || !propsEqual(newVal, oldVal):
		r.setProp(node, owner, name, newVal)
	case name == "value":
		// The live value drifts with user input, so compare against it
		// rather than against the previous descriptor.
		if s, err := propToString(newVal); err == nil && s != node.Value() {
			r.setProp(node, owner, name, newVal)
		}
	}
}

func (r *Reconciler) setProp(node surface.Node, owner *VNode, name string, value any) {
	if IsReserved(name) {
		return
	}
	if isEventProp(name) {
		r.bindEvent(node, owner, eventName(name), value)
		return
	}
	name = attrName(name)
	if b, ok := value.(bool); ok {
		r.setBooleanProp(node, name, b)
		return
	}
	s, err := propToString(value)
	if err != nil {
		r.rejectAttr(name, err)
		return
	}
	if name == "value" {
		node.SetValue(s)
		r.record(OpSetValue)
		return
	}
	if err := node.SetAttr(name, s); err != nil {
		r.rejectAttr(name, err)
		return
	}
	r.record(OpSetAttr)
}

func (r *Reconciler) removeProp(node surface.Node, owner *VNode, name string, oldVal any) {
	if IsReserved(name) {
		return
	}
	if isEventProp(name) {
		r.unbindEvent(node, owner, eventName(name))
		return
	}
	name = attrName(name)
	if _, ok := oldVal.(bool); ok {
		r.setBooleanProp(node, name, false)
		return
	}
	if name == "value" {
		node.SetValue("")
		r.record(OpSetValue)
		return
	}
	node.RemoveAttr(name)
	r.record(OpRemoveAttr)
}

// setBooleanProp mirrors a presence attribute into both the attribute and the
// live flag.
func (r *Reconciler) setBooleanProp(node surface.Node, name string, on bool) {
	if on {
		if err := node.SetAttr(name, name); err != nil {
			r.rejectAttr(name, err)
			return
		}
		r.record(OpSetAttr)
	} else {
		node.RemoveAttr(name)
		r.record(OpRemoveAttr)
	}
	node.SetFlag(name, on)
	r.record(OpSetFlag)
}

func (r *Reconciler) bindEvent(node surface.Node, owner *VNode, event string, value any) {
	fn := asListener(value)
	if fn == nil {
		r.unbindEvent(node, owner, event)
		return
	}
	if b, ok := owner.listeners[event]; ok {
		b.fn = fn
		return
	}
	if owner.listeners == nil {
		owner.listeners = make(map[string]*binding)
	}
	b := &binding{fn: fn}
	owner.listeners[event] = b
	node.Listen(event, b.dispatch)
	r.record(OpListen)
}

func (r *Reconciler) unbindEvent(node surface.Node, owner *VNode, event string) {
	if _, ok := owner.listeners[event]; !ok {
		return
	}
	delete(owner.listeners, event)
	node.Unlisten(event)
	r.record(OpUnlisten)
}

func (r *Reconciler) rejectAttr(name string, err error) {
	r.logger.Warn("attribute rejected",
		"code", "E010",
		"attr", name,
		"error", errors.FromError(err, "E010").Error(),
	)
}

// asListener converts a handler value to a Listener, or nil if the value is
// not callable.
func asListener(value any) surface.Listener {
	switch fn := value.(type) {
	case surface.Listener:
		return fn
	case func(surface.Event):
		return fn
	case func():
		if fn == nil {
			return nil
		}
		return func(surface.Event) { fn() }
	case func(string):
		if fn == nil {
			return nil
		}
		return func(ev surface.Event) { fn(ev.Value) }
	}
	return nil
}

// isEventProp returns true if the prop name is an event handler (starts with "on").
// Case-insensitive to accept onclick, onClick, OnLoad, etc.
func isEventProp(name string) bool {
	return len(name) > 2 && strings.EqualFold(name[:2], "on")
}

// eventName extracts the surface event name: onClick -> click.
func eventName(name string) string {
	return strings.ToLower(name[2:])
}

// attrName maps prop aliases to attribute names.
func attrName(name string) string {
	switch name {
	case "className":
		return "class"
	case "htmlFor":
		return "for"
	}
	return name
}

// propsEqual compares two prop values for equality.
func propsEqual(a, b any) bool {
	// Fast path for common types
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return av == bv
		}
		return false
	case int:
		if bv, ok := b.(int); ok {
			return av == bv
		}
		return false
	case int64:
		if bv, ok := b.(int64); ok {
			return av == bv
		}
		return false
	case float64:
		if bv, ok := b.(float64); ok {
			return av == bv
		}
		return false
	case bool:
		if bv, ok := b.(bool); ok {
			return av == bv
		}
		return false
	case nil:
		return b == nil
	}
	// Fallback to reflect for complex types. Funcs are never equal, so
	// handlers are always re-assigned to their binding.
	return reflect.DeepEqual(a, b)
}

// propToString converts a prop value to its attribute text.
func propToString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case bool:
		if val {
			return "true", nil
		}
		return "false", nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case fmt.Stringer:
		return val.String(), nil
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return "", fmt.Errorf("cannot use %T as attribute value", v)
	}
	return fmt.Sprintf("%v", v), nil
}
