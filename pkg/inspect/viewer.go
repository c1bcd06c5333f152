package inspect

import (
	"github.com/vango-dev/vtree/pkg/component"
)

// State is the Viewer component state.
type State struct {
	// Value is the value shown.
	Value any

	// MaxDepth overrides DefaultMaxDepth when positive.
	MaxDepth int
}

// Viewer is a component showing State.Value. Updating it with a changed
// value reconciles the view in place, rows matched by index or record key.
var Viewer = component.Define(renderViewer, State{}, component.WithName("inspect.Viewer"))

func renderViewer(s State, _ func(State) error) (any, error) {
	return View(s.Value, WithMaxDepth(s.MaxDepth)), nil
}
