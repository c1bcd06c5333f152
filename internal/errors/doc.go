// Package errors provides structured, coded errors for vtree.
//
// Every error carries a code (e.g. "E001") registered with a category, a
// short message and a longer explanation. Callers add detail, a fix
// suggestion, a source location (for configuration files) and the wrapped
// cause.
//
// # Error Categories
//
//   - render: a component render function failed
//   - reconcile: the reconciler could not apply a descriptor
//   - mount: a host or target reference could not be used
//   - config: the vtree.json file is missing or invalid
//   - input: a document handed to the CLI could not be decoded
//
// # Usage
//
//	err := errors.New("E020").
//	    WithLocation("vtree.json", 4, 17).
//	    WithSuggestion(`Use "text" or "json"`)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E020: Invalid configuration
//	//
//	//   vtree.json:4:17
//	//
//	//      2 │   "log": {
//	//      3 │     "level": "info",
//	//   →  4 │     "format": "yaml"
//	//        │                 ^
//	//      5 │   }
//	//
//	//   Hint: Use "text" or "json"
package errors
