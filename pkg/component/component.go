package component

import (
	"context"
	"log/slog"
	"reflect"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/surface"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// RenderFunc renders a component's state.
//
// The result is a single descriptor (*vdom.VNode, a string, nil) or a
// sequence of descriptors ([]*vdom.VNode, []any, any other slice), which is
// flattened. update re-renders the component with a new state; it is meant
// for event handlers, not for the render pass itself.
type RenderFunc[S any] func(state S, update func(S) error) (any, error)

// Handle is a mounted component.
type Handle[S any] struct {
	id     string
	name   string
	render RenderFunc[S]
	rec    *vdom.Reconciler
	logger *slog.Logger
	target surface.Node
	state  S

	// Previous commit. prevList records which form it took.
	prevNode  *vdom.VNode
	prevNodes []*vdom.VNode
	prevList  bool

	// partial holds the descriptors of a commit that failed part way.
	partial []*vdom.VNode

	depth     int
	disposed  bool
	onDispose []func()
}

var _ vdom.Instance = (*Handle[any])(nil)

// Make mounts render with initialState on target and runs the first update.
//
// target is resolved like a host reference (see ResolveTarget). A nil
// target, or a lookup that resolves to nothing, gets a fresh detached
// "vtree-component" element that can be attached later with AppendTo.
func Make[S any](rec *vdom.Reconciler, render RenderFunc[S], initialState S, target any, opts ...Option) (*Handle[S], error) {
	return mount(context.Background(), rec, render, initialState, target, buildOptions(opts))
}

func mount[S any](ctx context.Context, rec *vdom.Reconciler, render RenderFunc[S], state S, target any, o options) (*Handle[S], error) {
	h := &Handle[S]{
		id:     rec.NewInstanceID(),
		name:   o.name,
		render: render,
		rec:    rec,
		state:  state,
	}
	if h.name == "" {
		h.name = h.id
	}
	h.logger = o.logger
	if h.logger == nil {
		h.logger = rec.Logger().With("instance", h.id, "name", h.name)
	}

	node, err := resolveMountTarget(rec.Document(), target)
	if err != nil {
		return nil, err
	}
	if node == nil {
		if target != nil {
			h.logger.Warn("mount target not found, using a detached root", "target", describeRef(target))
		}
		node = rec.Document().CreateElement(vdom.ComponentTag)
	}
	h.target = node

	if err := h.UpdateContext(ctx); err != nil {
		for _, n := range h.partial {
			rec.Dispose(n)
		}
		h.partial = nil
		h.Dispose()
		return nil, err
	}
	return h, nil
}

// ID returns the instance identifier.
func (h *Handle[S]) ID() string { return h.id }

// Name returns the component name.
func (h *Handle[S]) Name() string { return h.name }

// Root returns the live node the component renders into.
func (h *Handle[S]) Root() surface.Node { return h.target }

// State returns the last committed state.
func (h *Handle[S]) State() S { return h.state }

// Update re-renders the component. With no argument the last committed
// state is used; otherwise the first argument replaces it.
func (h *Handle[S]) Update(state ...S) error {
	return h.UpdateContext(context.Background(), state...)
}

// Refresh re-renders with the last committed state. Parents call it when
// reconciling an unchanged component slot.
func (h *Handle[S]) Refresh(ctx context.Context) error {
	return h.UpdateContext(ctx)
}

// UpdateContext is Update with a context for trace propagation.
//
// Render errors are returned wrapped in an E001 error and nothing is
// committed. Errors from nested components abort the pass after whatever
// surface mutations were already applied.
func (h *Handle[S]) UpdateContext(ctx context.Context, state ...S) error {
	if h.disposed {
		return errors.New("E005").WithDetail("component " + h.name + " was disposed")
	}
	if h.depth > 0 {
		h.logger.Warn("re-entrant update")
	}
	h.depth++
	defer func() { h.depth-- }()

	st := h.state
	if len(state) > 0 {
		st = state[0]
	}

	ctx, span := h.rec.Tracer().Start(ctx, "vtree.component.update",
		trace.WithAttributes(
			attribute.String("vtree.component", h.name),
			attribute.String("vtree.instance", h.id),
		),
	)
	defer span.End()

	start := time.Now()
	before := h.rec.Stats()
	slots, err := h.commit(ctx, st)
	delta := h.rec.Stats().Sub(before)
	h.rec.Metrics().ObserveRender(h.name, time.Since(start), err)

	span.SetAttributes(
		attribute.Int("vtree.slots", slots),
		attribute.Int("vtree.mutations", delta.Mutations()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	h.logger.Debug("component updated",
		"slots", slots,
		"mutations", delta.Mutations(),
		"created", delta.Created(),
	)
	return nil
}

// commit renders st and reconciles the result against the previous commit.
// It returns the number of top-level slots rendered.
func (h *Handle[S]) commit(ctx context.Context, st S) (int, error) {
	content, err := h.render(st, h.set)
	if err != nil {
		return 0, errors.New("E001").
			WithDetail("component " + h.name + " failed to render").
			Wrap(err)
	}

	node, nodes, list := normalize(content)

	if !list && !h.prevList {
		node = h.rec.Claim(node, h.prevNode)
		if err := h.rec.Patch(ctx, h.target, node, h.prevNode, 0); err != nil {
			h.partial = []*vdom.VNode{node}
			return 1, err
		}
		h.partial = nil
		h.prevNode, h.prevNodes, h.prevList = node, nil, false
		h.state = st
		return 1, nil
	}

	// List form, or a switch between forms: reconcile both sides as lists.
	if !list {
		nodes = nil
		if node != nil {
			nodes = []*vdom.VNode{node}
		}
	}
	if err := h.rec.PatchChildren(ctx, h.target, nodes, h.previous()); err != nil {
		h.partial = nodes
		return len(nodes), err
	}
	h.partial = nil
	if list {
		h.prevNode, h.prevNodes, h.prevList = nil, nodes, true
	} else {
		h.prevNode, h.prevNodes, h.prevList = node, nil, false
	}
	h.state = st
	return len(nodes), nil
}

// previous returns the previous commit in list form.
func (h *Handle[S]) previous() []*vdom.VNode {
	if h.prevList {
		return h.prevNodes
	}
	if h.prevNode == nil {
		return nil
	}
	return []*vdom.VNode{h.prevNode}
}

func (h *Handle[S]) set(state S) error {
	return h.Update(state)
}

// OnDispose registers fn to run when the component is disposed.
func (h *Handle[S]) OnDispose(fn func()) {
	if h.disposed {
		fn()
		return
	}
	h.onDispose = append(h.onDispose, fn)
}

// Dispose releases nested components and runs OnDispose hooks. The live root
// is left in place; detaching it is the owner's job. Further updates fail
// with E005.
func (h *Handle[S]) Dispose() {
	if h.disposed {
		return
	}
	h.disposed = true
	for _, n := range h.previous() {
		h.rec.Dispose(n)
	}
	for _, fn := range h.onDispose {
		fn()
	}
	h.onDispose = nil
	h.logger.Debug("component disposed")
}

// IsDisposed reports whether Dispose was called.
func (h *Handle[S]) IsDisposed() bool { return h.disposed }

// AppendTo attaches the component's root to host.
func (h *Handle[S]) AppendTo(host any) error {
	parent, err := ResolveTarget(h.rec.Document(), host)
	if err != nil {
		return err
	}
	parent.AppendChild(h.target)
	return nil
}

// normalize classifies render output into the single or list form.
func normalize(content any) (*vdom.VNode, []*vdom.VNode, bool) {
	switch c := content.(type) {
	case nil:
		return nil, nil, false
	case *vdom.VNode:
		return c, nil, false
	case string:
		return vdom.Text(c), nil, false
	}
	switch reflect.ValueOf(content).Kind() {
	case reflect.Slice, reflect.Array:
		return nil, vdom.Flatten(content), true
	}
	if flat := vdom.Flatten(content); len(flat) > 0 {
		return flat[0], nil, false
	}
	return nil, nil, false
}
