package inspect

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// DefaultMaxDepth is the depth limit used when none is configured.
const DefaultMaxDepth = 16

// Options configures View.
type Options struct {
	// MaxDepth is the number of nested containers drawn before the depth
	// indicator replaces the rest. Zero or less means DefaultMaxDepth.
	MaxDepth int
}

// Option configures View.
type Option func(*Options)

// WithMaxDepth sets the depth limit.
func WithMaxDepth(n int) Option {
	return func(o *Options) {
		o.MaxDepth = n
	}
}

// Class names used by the generated views.
const (
	ClassRecord = "record-view"
	ClassList   = "list-view"
	ClassRow    = "view-row"
	ClassKey    = "view-key"
	ClassScalar = "scalar"
	ClassCycle  = "cycle-indicator"
	ClassDepth  = "depth-indicator"
)

var stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()

// View returns a descriptor tree showing value.
func View(value any, opts ...Option) *vdom.VNode {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	w := &walker{maxDepth: o.MaxDepth}
	return w.walk(reflect.ValueOf(value), nil)
}

// ancestor identifies one container on the path from the root. Containers
// without reference identity (structs reached by value, arrays) get a zero
// ptr and never match.
type ancestor struct {
	typ reflect.Type
	ptr uintptr
	len int
}

func (a ancestor) matches(b ancestor) bool {
	return a.ptr != 0 && a == b
}

type walker struct {
	maxDepth int
}

// walk renders rv below the ancestors in path. path is never modified in
// place; each level extends a copy.
func (w *walker) walk(rv reflect.Value, path []ancestor) *vdom.VNode {
	var (
		self  ancestor
		chain []ancestor
	)
	for rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return scalar("null", "null")
		}
		if rv.Kind() == reflect.Pointer {
			if self.ptr == 0 {
				if leaf, ok := stringer(rv); ok {
					return leaf
				}
			}
			p := ancestor{typ: rv.Type(), ptr: rv.Pointer()}
			for k, q := range chain {
				if q.matches(p) {
					return cycle(len(chain) - k)
				}
			}
			if n, ok := distance(path, p); ok {
				return cycle(n)
			}
			if self.ptr == 0 {
				self = p
			}
			chain = append(chain, p)
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return scalar("null", "null")
	}
	if leaf, ok := stringer(rv); ok {
		return leaf
	}

	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return scalar("null", "null")
		}
		if self.ptr == 0 && rv.Len() > 0 {
			self = ancestor{typ: rv.Type(), ptr: rv.Pointer(), len: rv.Len()}
		}
	case reflect.Struct, reflect.Array:
	default:
		return leafOf(rv)
	}

	if n, ok := distance(path, self); ok {
		return cycle(n)
	}
	if len(path) >= w.maxDepth {
		return vdom.Div(vdom.Class(ClassDepth), "...")
	}

	next := make([]ancestor, len(path), len(path)+1)
	copy(next, path)
	next = append(next, self)

	switch rv.Kind() {
	case reflect.Map:
		return w.mapView(rv, next)
	case reflect.Struct:
		return w.structView(rv, next)
	default:
		return w.listView(rv, next)
	}
}

// distance returns how many levels up path the nearest container with a's
// identity sits.
func distance(path []ancestor, a ancestor) (int, bool) {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i].matches(a) {
			return len(path) - i, true
		}
	}
	return 0, false
}

func cycle(n int) *vdom.VNode {
	return vdom.Div(vdom.Class(ClassCycle), "^"+strconv.Itoa(n)+"^")
}

func (w *walker) listView(rv reflect.Value, path []ancestor) *vdom.VNode {
	rows := vdom.Repeat(rv.Len(), func(i int) *vdom.VNode {
		return vdom.Div(vdom.Class(ClassRow), vdom.Key(i), w.walk(rv.Index(i), path))
	})
	return vdom.Div(vdom.Class(ClassList), vdom.Data("len", strconv.Itoa(rv.Len())), rows)
}

func (w *walker) mapView(rv reflect.Value, path []ancestor) *vdom.VNode {
	keys := rv.MapKeys()
	slices.SortFunc(keys, compareKeys)
	rows := vdom.Range(keys, func(k reflect.Value, _ int) *vdom.VNode {
		return record(keyText(k), w.walk(rv.MapIndex(k), path))
	})
	return vdom.Div(vdom.Class(ClassRecord), rows)
}

func (w *walker) structView(rv reflect.Value, path []ancestor) *vdom.VNode {
	t := rv.Type()
	rows := vdom.Repeat(t.NumField(), func(i int) *vdom.VNode {
		f := t.Field(i)
		return vdom.When(f.IsExported(), func() *vdom.VNode {
			return record(f.Name, w.walk(rv.Field(i), path))
		})
	})
	return vdom.Div(vdom.Class(ClassRecord), vdom.Data("type", t.String()), rows)
}

func record(name string, value *vdom.VNode) *vdom.VNode {
	return vdom.Div(vdom.Class(ClassRow), vdom.Key(name),
		vdom.Span(vdom.Class(ClassKey), name),
		vdom.Span(vdom.Class("colon"), ":"),
		value,
	)
}

func scalar(kind, text string) *vdom.VNode {
	return vdom.Span(vdom.Class(ClassScalar, kind), text)
}

// stringer renders values with a String method as a scalar.
func stringer(rv reflect.Value) (*vdom.VNode, bool) {
	if !rv.CanInterface() || !rv.Type().Implements(stringerType) {
		return nil, false
	}
	s, ok := rv.Interface().(fmt.Stringer)
	if !ok {
		return nil, false
	}
	return scalar("text", s.String()), true
}

func leafOf(rv reflect.Value) *vdom.VNode {
	switch rv.Kind() {
	case reflect.String:
		return scalar("string", strconv.Quote(rv.String()))
	case reflect.Bool:
		return scalar("bool", strconv.FormatBool(rv.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return scalar("number", strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return scalar("number", strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		return scalar("number", strconv.FormatFloat(rv.Float(), 'g', -1, 64))
	case reflect.Complex64, reflect.Complex128:
		return scalar("number", strconv.FormatComplex(rv.Complex(), 'g', -1, 128))
	case reflect.Func:
		if rv.IsNil() {
			return scalar("null", "null")
		}
		return scalar("func", rv.Type().String())
	case reflect.Chan:
		if rv.IsNil() {
			return scalar("null", "null")
		}
		return scalar("chan", fmt.Sprintf("%s (len %d)", rv.Type(), rv.Len()))
	}
	return scalar("other", rv.Type().String())
}

// keyText is the row key of a map entry.
func keyText(k reflect.Value) string {
	for k.Kind() == reflect.Interface && !k.IsNil() {
		k = k.Elem()
	}
	if k.Kind() == reflect.String {
		return k.String()
	}
	if k.CanInterface() {
		return fmt.Sprint(k.Interface())
	}
	return k.String()
}

// compareKeys orders map keys numerically when both are numbers and by their
// text otherwise.
func compareKeys(a, b reflect.Value) int {
	for a.Kind() == reflect.Interface && !a.IsNil() {
		a = a.Elem()
	}
	for b.Kind() == reflect.Interface && !b.IsNil() {
		b = b.Elem()
	}
	switch {
	case isInt(a) && isInt(b):
		return cmp.Compare(a.Int(), b.Int())
	case isUint(a) && isUint(b):
		return cmp.Compare(a.Uint(), b.Uint())
	case isFloat(a) && isFloat(b):
		return cmp.Compare(a.Float(), b.Float())
	}
	return cmp.Compare(keyText(a), keyText(b))
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(v reflect.Value) bool {
	return v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64
}
