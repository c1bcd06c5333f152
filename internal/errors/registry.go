package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Render Errors (E001-E009)
	// ============================================

	"E001": {
		Category: CategoryRender,
		Message:  "Component render failed",
		Detail:   "The component's render function returned an error. Nothing from this render was committed; surface changes already applied by earlier updates remain.",
	},
	"E002": {
		Category: CategoryRender,
		Message:  "Component state type mismatch",
		Detail:   "The initState prop of a component descriptor does not have the state type the component was defined with.",
	},
	"E005": {
		Category: CategoryRender,
		Message:  "Component disposed",
		Detail:   "The component was removed by its parent's reconciliation or disposed explicitly and can no longer be updated.",
	},

	// ============================================
	// Mount Errors (E003-E004)
	// ============================================

	"E003": {
		Category: CategoryMount,
		Message:  "Host not found",
		Detail:   "The host reference did not resolve to a node. Lookup names are either \"#id\" or a tag name.",
	},
	"E004": {
		Category: CategoryMount,
		Message:  "Invalid host reference",
		Detail:   "A host reference must be a lookup name, a func() surface.Node resolver or a surface.Node.",
	},

	// ============================================
	// Reconcile Errors (E010-E019)
	// ============================================

	"E010": {
		Category: CategoryReconcile,
		Message:  "Attribute rejected",
		Detail:   "The surface refused an attribute, or the prop value cannot be written as attribute text. The attribute was skipped and the rest of the pass continued.",
	},
	"E011": {
		Category: CategoryReconcile,
		Message:  "Invalid descriptor tag",
		Detail:   "A descriptor tag must be a tag name, a component factory or a previously built element descriptor.",
	},

	// ============================================
	// Config Errors (E020-E029)
	// ============================================

	"E020": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "A value in vtree.json is out of range or not one of the accepted options.",
	},
	"E021": {
		Category: CategoryConfig,
		Message:  "Configuration not found",
		Detail:   "No vtree.json was found in the directory or any of its parents.",
	},
	"E022": {
		Category: CategoryConfig,
		Message:  "Configuration parse error",
		Detail:   "vtree.json is not valid JSON.",
	},

	// ============================================
	// Input Errors (E030-E039)
	// ============================================

	"E030": {
		Category: CategoryInput,
		Message:  "Input document could not be decoded",
		Detail:   "The document is neither valid YAML nor valid JSON.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
