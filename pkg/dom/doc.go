// Package dom is an in-memory retained node tree implementing the
// surface.Document and surface.Node capabilities.
//
// It backs the CLI and the tests: every mutation can be recorded in a call
// log, listeners can be fired with Dispatch, and any subtree can be written
// out as HTML.
//
//	doc := dom.NewDocument()
//	rec := vdom.NewReconciler(doc)
//	h, _ := component.Make(rec, render, state, doc.Body())
//	html, _ := dom.RenderToString(doc.Body(), dom.RenderConfig{Pretty: true})
//
// # Call Log
//
// Recording is off by default. StartRecording clears the log and records
// every mutation until StopRecording; Calls returns the log.
//
// # Lookup
//
// Query accepts "#id" (element whose id attribute matches) or a tag name,
// and returns the first match in document order under the body.
package dom
