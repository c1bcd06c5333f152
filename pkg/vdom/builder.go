package vdom

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/vango-dev/vtree/internal/errors"
)

// Mergeable props are concatenated rather than overwritten when a descriptor
// is derived from a base descriptor. Keys are attribute names, so className
// merges with class.
var mergeSeparators = map[string]string{
	"class": " ",
	"style": ";",
}

// H builds a descriptor.
//
// tag selects the descriptor shape:
//   - string: an element with that tag name.
//   - Factory: a component descriptor; props[PropInitState] becomes the
//     component's initial state.
//   - *VNode: a descriptor derived from a previously built element. Props are
//     the union of the base props and props, with class and style joined
//     instead of overwritten; children are the base children followed by
//     children.
//
// children are flattened recursively: nested slices collapse into one
// ordered sequence, strings become text descriptors and nils are dropped.
// Any other tag panics, since descriptors must only come from this builder.
func H(tag any, props Props, children ...any) *VNode {
	props = props.normalize()
	flat := Flatten(children...)

	switch t := tag.(type) {
	case string:
		return &VNode{
			Kind:     KindElement,
			Tag:      t,
			Props:    props,
			Children: flat,
		}
	case Factory:
		if t == nil {
			break
		}
		return &VNode{
			Kind:     KindComponent,
			Tag:      ComponentTag,
			Props:    props,
			Children: flat,
			Factory:  t,
		}
	case *VNode:
		if t == nil || t.Kind != KindElement {
			break
		}
		return derive(t, props, flat)
	}
	panic(errors.New("E011").WithDetail(fmt.Sprintf("H called with tag of type %T", tag)))
}

// derive extends base with props and children without mutating base. A prop
// naming the same attribute as a base prop (class and className, for and
// htmlFor) replaces or merges with it in place.
func derive(base *VNode, props Props, children []*VNode) *VNode {
	merged := make(Props, 0, len(base.Props)+len(props))
	merged = append(merged, base.Props...)
	for _, a := range props {
		name := attrName(a.Key)
		i := slices.IndexFunc(merged, func(b Attr) bool { return attrName(b.Key) == name })
		if i < 0 {
			merged = append(merged, a)
			continue
		}
		merged[i].Value = mergeValue(name, merged[i].Value, a.Value)
	}

	all := make([]*VNode, 0, len(base.Children)+len(children))
	all = append(all, base.Children...)
	all = append(all, children...)

	return &VNode{
		Kind:     KindElement,
		Tag:      base.Tag,
		Props:    merged.normalize(),
		Children: all,
	}
}

func mergeValue(name string, prev, next any) any {
	sep, ok := mergeSeparators[name]
	ps, pok := prev.(string)
	ns, nok := next.(string)
	if ok && pok && nok && ps != "" && ns != "" {
		return ps + sep + ns
	}
	return next
}

// Flatten collapses arbitrarily nested child arguments into one sequence.
func Flatten(children ...any) []*VNode {
	if len(children) == 0 {
		return nil
	}
	out := make([]*VNode, 0, len(children))
	for _, c := range children {
		out = appendFlat(out, c)
	}
	return out
}

func appendFlat(out []*VNode, child any) []*VNode {
	switch v := child.(type) {
	case nil:
		return out
	case *VNode:
		if v != nil {
			out = append(out, v)
		}
		return out
	case string:
		return append(out, Text(v))
	case []*VNode:
		for _, c := range v {
			if c != nil {
				out = append(out, c)
			}
		}
		return out
	case []any:
		for _, c := range v {
			out = appendFlat(out, c)
		}
		return out
	case []string:
		for _, s := range v {
			out = append(out, Text(s))
		}
		return out
	case Factory:
		return append(out, H(v, nil))
	case fmt.Stringer:
		return append(out, Text(v.String()))
	}

	rv := reflect.ValueOf(child)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return out
		}
		for i := 0; i < rv.Len(); i++ {
			out = appendFlat(out, rv.Index(i).Interface())
		}
		return out
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return out
		}
	}
	return append(out, Text(fmt.Sprint(child)))
}

// Text creates a text descriptor.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text descriptor.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// ClassNames joins the non-empty class names with spaces.
func ClassNames(names ...string) string {
	parts := names[:0:0]
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, " ")
}
