package vdom

import (
	"sort"
	"strconv"
	"strings"
)

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// flag renders a boolean as the "true"/"false" text enumerated attributes
// such as aria-* expect. Plain bool values are presence attributes.
func flag(b bool) string {
	return strconv.FormatBool(b)
}

// Reconciliation

// Key sets the reconciliation key. Keys are compared by their text form.
func Key(key any) Attr { return attr(PropKey, key) }

// InitState sets the initial state of a component descriptor.
func InitState(state any) Attr { return attr(PropInitState, state) }

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute. Multiple classes are joined with spaces.
func Class(classes ...string) Attr { return attr("class", ClassNames(classes...)) }

// StyleAttr sets the inline style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data sets a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Accessibility attributes

// Role sets the ARIA role.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets aria-label.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// AriaHidden sets aria-hidden.
func AriaHidden(hidden bool) Attr { return attr("aria-hidden", flag(hidden)) }

// AriaExpanded sets aria-expanded.
func AriaExpanded(expanded bool) Attr { return attr("aria-expanded", flag(expanded)) }

// AriaControls sets aria-controls.
func AriaControls(id string) Attr { return attr("aria-controls", id) }

// AriaLevel sets aria-level, used by tree views.
func AriaLevel(level int) Attr { return attr("aria-level", level) }

// TabIndex sets the tab order.
func TabIndex(index int) Attr { return attr("tabindex", index) }

// Global attributes

// Hidden sets the hidden attribute.
func Hidden() Attr { return attr("hidden", true) }

// TitleAttr sets the title attribute (tooltip).
func TitleAttr(title string) Attr { return attr("title", title) }

// Lang sets the language.
func Lang(lang string) Attr { return attr("lang", lang) }

// Links

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Target sets the target attribute.
func Target(target string) Attr { return attr("target", target) }

// Rel sets the rel attribute.
func Rel(rel string) Attr { return attr("rel", rel) }

// Forms

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Value sets the live input value. It is applied as a value, not an
// attribute, so user edits are overwritten when the rendered value differs.
func Value(value string) Attr { return attr("value", value) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder text.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// Disabled sets the disabled attribute.
func Disabled() Attr { return attr("disabled", true) }

// DisabledIf sets or clears the disabled attribute.
func DisabledIf(disabled bool) Attr { return attr("disabled", disabled) }

// Readonly sets the readonly attribute.
func Readonly() Attr { return attr("readonly", true) }

// Required sets the required attribute.
func Required() Attr { return attr("required", true) }

// Checked sets the checked attribute.
func Checked() Attr { return attr("checked", true) }

// CheckedIf sets or clears the checked attribute.
func CheckedIf(checked bool) Attr { return attr("checked", checked) }

// Selected sets the selected attribute.
func Selected() Attr { return attr("selected", true) }

// Autofocus sets the autofocus attribute.
func Autofocus() Attr { return attr("autofocus", true) }

// For sets the for attribute on labels.
func For(id string) Attr { return attr("for", id) }

// Min sets the min attribute.
func Min(value string) Attr { return attr("min", value) }

// Max sets the max attribute.
func Max(value string) Attr { return attr("max", value) }

// Rows sets the number of visible rows for textarea.
func Rows(n int) Attr { return attr("rows", n) }

// Media

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Alt sets the alt text.
func Alt(text string) Attr { return attr("alt", text) }

// Width sets the width attribute.
func Width(w int) Attr { return attr("width", w) }

// Height sets the height attribute.
func Height(h int) Attr { return attr("height", h) }

// Tables

// Colspan sets the colspan attribute.
func Colspan(n int) Attr { return attr("colspan", n) }

// Scope sets the scope attribute on header cells.
func Scope(scope string) Attr { return attr("scope", scope) }

// Details

// Open sets the open attribute (for details, dialog).
func Open() Attr { return attr("open", true) }

// OpenIf sets or clears the open attribute.
func OpenIf(open bool) Attr { return attr("open", open) }

// Conditional attributes

// ClassIf adds a class conditionally.
func ClassIf(condition bool, class string) Attr {
	if condition {
		return attr("class", class)
	}
	return Attr{} // Empty attr, will be ignored
}

// AttrIf adds any attribute conditionally.
func AttrIf(condition bool, a Attr) Attr {
	if condition {
		return a
	}
	return Attr{}
}

// Classes merges multiple class values.
// Accepts string, []string, and map[string]bool. Map entries are added in
// sorted order.
func Classes(classes ...any) Attr {
	var result []string
	for _, c := range classes {
		switch v := c.(type) {
		case string:
			result = append(result, v)
		case []string:
			result = append(result, v...)
		case map[string]bool:
			names := make([]string, 0, len(v))
			for class, include := range v {
				if include {
					names = append(names, class)
				}
			}
			sort.Strings(names)
			result = append(result, names...)
		}
	}
	return attr("class", ClassNames(result...))
}

// Styles joins style declarations with ";".
func Styles(decls ...string) Attr {
	parts := decls[:0:0]
	for _, d := range decls {
		if d = strings.Trim(strings.TrimSpace(d), ";"); d != "" {
			parts = append(parts, d)
		}
	}
	return attr("style", strings.Join(parts, ";"))
}
