// Package component provides the component runtime: long-lived units that
// own a render function, a piece of state and a live root node, and that
// re-render and reconcile themselves on Update.
//
// # Creating Components
//
// Make mounts a render function directly:
//
//	h, err := component.Make(rec, func(n int, update func(int) error) (any, error) {
//	    return vdom.Button(vdom.OnClick(func() { update(n + 1) }), vdom.Textf("%d", n)), nil
//	}, 0, "#app")
//
// Define returns a factory that can be used as a descriptor tag, so the
// component can be nested inside other components:
//
//	Counter := component.Define(renderCounter, 0, component.WithName("counter"))
//	vdom.H(Counter, vdom.P(vdom.PropInitState, 5))
//
// # Update Loop
//
// Update renders synchronously and reconciles the result against the
// previous commit before returning. There is no scheduling or batching:
// each call is one full pass. Calling Update from inside a render function
// of the same component is undefined ordering and the caller's
// responsibility; the runtime only logs a warning.
//
// # Mounting
//
// AppendTo attaches a component's root to a host resolved from a lookup
// name, a resolver func or a direct node.
package component
