package vdom

// Props is an ordered list of attributes and event handlers.
//
// Descriptors built with H hold normalized props: one entry per name, in
// first-seen order, carrying the last value given for that name.
type Props []Attr

// P builds Props from alternating name/value pairs. A trailing name without a
// value is ignored, as are non-string names.
//
//	P("class", "row", "onclick", handler)
func P(pairs ...any) Props {
	props := make(Props, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok || name == "" {
			continue
		}
		props = append(props, Attr{Key: name, Value: pairs[i+1]})
	}
	return props.normalize()
}

// Get returns the value stored under name.
func (p Props) Get(name string) (any, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i].Key == name {
			return p[i].Value, true
		}
	}
	return nil, false
}

// Has reports whether name is present.
func (p Props) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Names returns the prop names in order.
func (p Props) Names() []string {
	names := make([]string, 0, len(p))
	for _, a := range p {
		names = append(names, a.Key)
	}
	return names
}

// With returns a copy of p with name set to value. An existing entry keeps
// its position.
func (p Props) With(name string, value any) Props {
	out := make(Props, len(p), len(p)+1)
	copy(out, p)
	for i := range out {
		if out[i].Key == name {
			out[i].Value = value
			return out
		}
	}
	return append(out, Attr{Key: name, Value: value})
}

// normalize collapses duplicate names, keeping the first position and the
// last value, and drops empty names.
func (p Props) normalize() Props {
	if len(p) == 0 {
		return nil
	}
	out := make(Props, 0, len(p))
	index := make(map[string]int, len(p))
	for _, a := range p {
		if a.Key == "" {
			continue
		}
		if i, ok := index[a.Key]; ok {
			out[i].Value = a.Value
			continue
		}
		index[a.Key] = len(out)
		out = append(out, a)
	}
	return out
}
