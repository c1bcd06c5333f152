// Package vdom builds node descriptors and reconciles them against a live
// surface tree.
//
// A descriptor (VNode) is a plain value describing one text node, element or
// component instance. Descriptors are rebuilt on every render; the
// Reconciler compares the new tree with the previous one and applies the
// smallest set of surface mutations that makes the live tree match.
//
// # Building
//
// H is the primitive builder. The element helpers wrap it and accept props
// and children in any order:
//
//	Div(Class("card"), ID("main"),
//	    H1("Title"),
//	    Para(Text("Content")),
//	    OnClick(handler),
//	)
//
// # Reconciling
//
// Patch reconciles one child slot of a live parent, PatchChildren a whole
// child list. Children are paired by explicit key, or by position when no
// key is given, and keyed children that moved are re-inserted rather than
// recreated. Every mutation is counted in the Reconciler's Stats.
//
// # Components
//
// A component descriptor carries a Factory. The first reconciliation calls
// Factory.Instantiate; later ones hand the mounted Instance to the new
// descriptor and call Instance.Refresh, so nested components keep their state
// across parent renders.
package vdom
