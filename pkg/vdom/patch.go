package vdom

// Op is a kind of operation the reconciler performs on the surface.
type Op uint8

const (
	OpCreateText    Op = iota // Create a text leaf
	OpCreateElement           // Create an element node
	OpInsert                  // Insert a new subtree before an existing child
	OpAppend                  // Append a new subtree
	OpRemove                  // Remove a child
	OpReplace                 // Replace a child with a new subtree
	OpMove                    // Reposition an existing child
	OpSetAttr                 // Set/update attribute
	OpRemoveAttr              // Remove attribute
	OpSetFlag                 // Set a boolean presence flag
	OpSetValue                // Set input value
	OpListen                  // Bind an event listener
	OpUnlisten                // Unbind an event listener
	OpMount                   // Instantiate a nested component
	OpRefresh                 // Re-render a nested component in place

	numOps
)

// String returns the string representation of the Op.
func (op Op) String() string {
	switch op {
	case OpCreateText:
		return "CreateText"
	case OpCreateElement:
		return "CreateElement"
	case OpInsert:
		return "Insert"
	case OpAppend:
		return "Append"
	case OpRemove:
		return "Remove"
	case OpReplace:
		return "Replace"
	case OpMove:
		return "Move"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpSetFlag:
		return "SetFlag"
	case OpSetValue:
		return "SetValue"
	case OpListen:
		return "Listen"
	case OpUnlisten:
		return "Unlisten"
	case OpMount:
		return "Mount"
	case OpRefresh:
		return "Refresh"
	default:
		return "Unknown"
	}
}

// Mutates reports whether the op changes the live surface. Mount and Refresh
// only account for nested component activity; the surface changes they cause
// are counted separately.
func (op Op) Mutates() bool {
	return op < OpMount
}

// Structural reports whether the op changes the shape of the live tree.
func (op Op) Structural() bool {
	switch op {
	case OpInsert, OpAppend, OpRemove, OpReplace, OpMove:
		return true
	}
	return false
}

// Stats counts reconciler operations.
type Stats struct {
	counts [numOps]int
}

// Count returns how many times op was performed.
func (s Stats) Count(op Op) int {
	if op >= numOps {
		return 0
	}
	return s.counts[op]
}

// Mutations returns the number of surface mutations.
func (s Stats) Mutations() int {
	n := 0
	for op := Op(0); op < numOps; op++ {
		if op.Mutates() {
			n += s.counts[op]
		}
	}
	return n
}

// Created returns the number of nodes created.
func (s Stats) Created() int {
	return s.counts[OpCreateText] + s.counts[OpCreateElement]
}

// Sub returns the per-op difference s - other.
func (s Stats) Sub(other Stats) Stats {
	var d Stats
	for i := range s.counts {
		d.counts[i] = s.counts[i] - other.counts[i]
	}
	return d
}

// Map returns the non-zero counts keyed by op name.
func (s Stats) Map() map[string]int {
	m := make(map[string]int)
	for op := Op(0); op < numOps; op++ {
		if s.counts[op] != 0 {
			m[op.String()] = s.counts[op]
		}
	}
	return m
}

func (s *Stats) add(op Op) {
	if op < numOps {
		s.counts[op]++
	}
}
