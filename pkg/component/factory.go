package component

import (
	"context"
	"fmt"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Factory builds instances of one component. A *Factory is a vdom.Factory,
// so it can be used as a descriptor tag; two descriptors refer to the same
// component exactly when they hold the same *Factory.
type Factory[S any] struct {
	render       RenderFunc[S]
	defaultState S
	opts         options
}

var _ vdom.Factory = (*Factory[any])(nil)

// Define returns a factory for render. defaultState is used whenever an
// instance is created without an initial state.
func Define[S any](render RenderFunc[S], defaultState S, opts ...Option) *Factory[S] {
	return &Factory[S]{
		render:       render,
		defaultState: defaultState,
		opts:         buildOptions(opts),
	}
}

// Name returns the component name given with WithName.
func (f *Factory[S]) Name() string {
	return f.opts.name
}

// Instantiate implements vdom.Factory. initState must be nil or assignable
// to S.
func (f *Factory[S]) Instantiate(ctx context.Context, r *vdom.Reconciler, initState any) (vdom.Instance, error) {
	st := f.defaultState
	if initState != nil {
		s, ok := initState.(S)
		if !ok {
			return nil, errors.New("E002").WithDetail(fmt.Sprintf(
				"component %s expects state of type %T, got %T", f.display(), f.defaultState, initState))
		}
		st = s
	}
	return mount(ctx, r, f.render, st, nil, f.opts)
}

// New creates an instance explicitly on target. The first state argument,
// if any, replaces the default state.
func (f *Factory[S]) New(r *vdom.Reconciler, target any, state ...S) (*Handle[S], error) {
	st := f.defaultState
	if len(state) > 0 {
		st = state[0]
	}
	return mount(context.Background(), r, f.render, st, target, f.opts)
}

// Node returns a component descriptor for this factory with the given
// initial state and extra props (typically a key).
func (f *Factory[S]) Node(initState S, props ...vdom.Attr) *vdom.VNode {
	all := make(vdom.Props, 0, len(props)+1)
	all = append(all, props...)
	all = append(all, vdom.Attr{Key: vdom.PropInitState, Value: initState})
	return vdom.H(f, all)
}

func (f *Factory[S]) display() string {
	if f.opts.name != "" {
		return f.opts.name
	}
	return fmt.Sprintf("%T", f)
}
