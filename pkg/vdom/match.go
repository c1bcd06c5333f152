package vdom

import (
	"reflect"
	"strconv"
)

// HasChanged reports whether next cannot be reconciled in place against prev
// and must replace it: the kinds differ, two texts differ, two tags differ,
// or two components were built by different factories.
func HasChanged(next, prev *VNode) bool {
	if next == nil || prev == nil {
		return next != prev
	}
	if next.Kind != prev.Kind {
		return true
	}
	switch next.Kind {
	case KindText:
		return next.Text != prev.Text
	case KindComponent:
		return next.Tag != prev.Tag || !sameFactory(next.Factory, prev.Factory)
	default:
		return next.Tag != prev.Tag
	}
}

// sameFactory compares factories by identity. Factories whose dynamic value
// cannot be compared with == (func, map or slice types) are the same when
// they share a type and a pointer; for funcs that is the code pointer, so
// two closures of one literal count as one factory.
func sameFactory(a, b Factory) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	switch va.Kind() {
	case reflect.Func, reflect.Map, reflect.Slice:
		return va.Pointer() == vb.Pointer()
	}
	return false
}

// Pair is one step of a child list reconciliation. New is nil for a pure
// removal, Old is nil for a pure insertion.
type Pair struct {
	New *VNode
	Old *VNode
}

// IsInsert reports whether the pair inserts a new child.
func (p Pair) IsInsert() bool { return p.Old == nil && p.New != nil }

// IsRemove reports whether the pair removes an old child.
func (p Pair) IsRemove() bool { return p.New == nil && p.Old != nil }

// childKey identifies a child within its sibling list. Explicit keys never
// collide with positional ones.
type childKey struct {
	positional bool
	id         string
}

// String returns the key as written in logs: the explicit key, or
// "position-N".
func (k childKey) String() string {
	if k.positional {
		return "position-" + k.id
	}
	return k.id
}

// keyOf returns the explicit key of node, or the positional key for index i.
func keyOf(node *VNode, i int) childKey {
	if k := node.Key(); k != "" {
		return childKey{id: k}
	}
	return childKey{positional: true, id: strconv.Itoa(i)}
}

// MatchChildren pairs an old child list with a new one.
//
// Old children are scanned in order. Each one is matched with the first new
// child at or after the cursor that has the same key; new children skipped
// over on the way are emitted as insertions, and old children without a match
// as removals. New children left after the old list is exhausted are
// insertions. Matched pairs keep the old relative order.
//
// When a sibling list holds duplicate keys the first unconsumed match wins;
// later duplicates turn into insert/remove pairs.
func MatchChildren(next, prev []*VNode) []Pair {
	newKeys := make([]childKey, len(next))
	for i, n := range next {
		newKeys[i] = keyOf(n, i)
	}

	pairs := make([]Pair, 0, max(len(next), len(prev)))
	ni := 0
	for oi, old := range prev {
		key := keyOf(old, oi)
		mi := -1
		for j := ni; j < len(next); j++ {
			if newKeys[j] == key {
				mi = j
				break
			}
		}
		if mi < 0 {
			pairs = append(pairs, Pair{Old: old})
			continue
		}
		for _, n := range next[ni:mi] {
			pairs = append(pairs, Pair{New: n})
		}
		pairs = append(pairs, Pair{New: next[mi], Old: old})
		ni = mi + 1
	}
	for _, n := range next[ni:] {
		pairs = append(pairs, Pair{New: n})
	}
	return pairs
}
