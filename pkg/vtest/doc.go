// Package vtest provides testing helpers for vtree descriptors and
// components.
//
// The vtest package reduces boilerplate when testing views by providing a
// fluent environment builder over the in-memory document and render
// assertions.
//
// # Quick Start
//
//	func TestGreeting(t *testing.T) {
//	    vtest.ExpectContains(t, Greeting("Ada"), "Hello, Ada")
//	}
//
// # Fluent Environment Builder
//
// The builder allows chaining multiple setup operations:
//
//	env := vtest.NewEnv().
//	    WithTarget("app").
//	    WithLogger(logger).
//	    Build()
//
// # Re-rendering
//
// Env.Render patches the previous descriptor into the new one and returns
// the operations performed, so tests can assert on reconciliation cost:
//
//	env.Render(List(items))
//	stats, _ := env.Render(List(items))
//	vtest.ExpectNoMutations(t, stats)
//
// # Events
//
// Listeners bound by the reconciler can be fired through the document:
//
//	env.Click("button")
//	env.Input("#name", "Ada")
package vtest
