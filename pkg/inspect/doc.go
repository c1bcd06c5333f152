// Package inspect renders arbitrary Go values as read-only descriptor trees.
//
// Maps and structs become record views, slices and arrays list views, and
// everything else a scalar leaf. Every row carries an explicit key (the list
// index or the record key), so re-rendering a changed value reconciles
// row by row instead of rebuilding the view.
//
// The walk keeps the chain of container ancestors. A value already on that
// chain is drawn as a cycle indicator "^N^", N being how many levels up the
// repeated ancestor sits, and containers deeper than the depth limit are
// drawn as "...". Self-referencing values therefore always produce a finite
// tree.
//
//	rec := vdom.NewReconciler(doc)
//	h, _ := inspect.Viewer.New(rec, "#app", inspect.State{Value: cfg})
//	h.Update(inspect.State{Value: cfg}) // after cfg changed
package inspect
