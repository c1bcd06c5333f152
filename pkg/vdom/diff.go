package vdom

import (
	"context"

	"github.com/vango-dev/vtree/pkg/surface"
)

// Patch reconciles the child slot at index of parent, turning the live node
// built from prev into one matching next.
//
//   - both nil: nothing to do.
//   - prev nil: next is created and inserted at index (appended when index is
//     at or past the child count).
//   - next nil: the child at index is removed.
//   - HasChanged: the child at index is replaced by a fresh node.
//   - same component factory: prev's instance moves to next and re-renders
//     with its last-known state.
//   - same element tag: props are reconciled, then children via
//     PatchChildren.
//
// Component instances dropped by a removal or replacement are disposed.
// Errors come from nested component renders and abort the pass; surface
// mutations already applied are not rolled back.
//
// next should come from Claim when it may already be bound to another slot.
func (r *Reconciler) Patch(ctx context.Context, parent surface.Node, next, prev *VNode, index int) error {
	switch {
	case next == nil && prev == nil:
		return nil

	case prev == nil:
		node, err := r.create(ctx, next)
		if err != nil {
			return err
		}
		r.insertAt(parent, node, index)
		return nil

	case next == nil:
		if child := parent.ChildAt(index); child != nil {
			parent.RemoveChild(child)
			r.record(OpRemove)
		}
		r.dispose(prev)
		return nil

	case HasChanged(next, prev), next.Kind == KindComponent && prev.Instance == nil:
		return r.replace(ctx, parent, next, prev, index)
	}

	return r.update(ctx, parent.ChildAt(index), next, prev)
}

// PatchChildren reconciles parent's children, currently built from prev,
// against next.
//
// Pairs from MatchChildren are applied in order at i - removedSoFar: every
// removal already applied shifts later positions left by one. A keyed
// insertion whose key is removed later in the same pass reuses that live
// node instead, so reordering a keyed list moves nodes rather than rebuilding
// them.
func (r *Reconciler) PatchChildren(ctx context.Context, parent surface.Node, next, prev []*VNode) error {
	claimChildren(next, prev)
	pairs := MatchChildren(next, prev)
	moves := planMoves(pairs)

	var (
		movedNodes map[int]surface.Node // removal pair index -> live node
		movedAway  map[int]bool
	)
	if len(moves) > 0 {
		movedNodes = make(map[int]surface.Node, len(moves))
		movedAway = make(map[int]bool, len(moves))
		for _, j := range moves {
			movedAway[j] = true
		}
		oldIndex := 0
		for j, p := range pairs {
			if p.Old == nil {
				continue
			}
			if movedAway[j] {
				movedNodes[j] = parent.ChildAt(oldIndex)
			}
			oldIndex++
		}
	}

	removed := 0
	for i, p := range pairs {
		pos := i - removed

		if j, ok := moves[i]; ok && movedNodes[j] != nil {
			node := movedNodes[j]
			r.moveTo(parent, node, pos)
			if err := r.update(ctx, node, p.New, pairs[j].Old); err != nil {
				return err
			}
			continue
		}
		if movedAway[i] && movedNodes[i] != nil {
			// Already repositioned by its insertion; it holds no slot here.
			removed++
			continue
		}

		if err := r.Patch(ctx, parent, p.New, p.Old, pos); err != nil {
			return err
		}
		if p.New == nil {
			removed++
		}
	}
	return nil
}

// planMoves pairs keyed insertions with a later removal of the same key and
// the same shape. It returns insertion pair index -> removal pair index.
// Duplicated keys are never moved.
func planMoves(pairs []Pair) map[int]int {
	removals := make(map[string]int)
	duplicate := make(map[string]bool)
	for j, p := range pairs {
		if !p.IsRemove() {
			continue
		}
		k := p.Old.Key()
		if k == "" {
			continue
		}
		if _, ok := removals[k]; ok {
			duplicate[k] = true
			continue
		}
		removals[k] = j
	}
	if len(removals) == 0 {
		return nil
	}

	var moves map[int]int
	for i, p := range pairs {
		if !p.IsInsert() {
			continue
		}
		k := p.New.Key()
		if k == "" || duplicate[k] {
			continue
		}
		j, ok := removals[k]
		if !ok || j < i || HasChanged(p.New, pairs[j].Old) {
			continue
		}
		if p.New.Kind == KindComponent && pairs[j].Old.Instance == nil {
			continue
		}
		if moves == nil {
			moves = make(map[int]int)
		}
		moves[i] = j
		delete(removals, k)
	}
	return moves
}

// update reconciles node in place. next and prev have the same shape.
func (r *Reconciler) update(ctx context.Context, node surface.Node, next, prev *VNode) error {
	switch next.Kind {
	case KindComponent:
		if next != prev {
			next.Instance = prev.Instance
		}
		next.mounted = true
		r.record(OpRefresh)
		return next.Instance.Refresh(ctx)

	case KindElement:
		if node == nil {
			r.logger.Warn("live tree out of sync with descriptors", "node", next.String())
			return nil
		}
		next.mounted = true
		r.reconcileProps(node, next, prev)
		return r.PatchChildren(ctx, node, next.Children, prev.Children)
	}
	return nil
}

func (r *Reconciler) replace(ctx context.Context, parent surface.Node, next, prev *VNode, index int) error {
	node, err := r.create(ctx, next)
	if err != nil {
		return err
	}
	if old := parent.ChildAt(index); old != nil {
		parent.ReplaceChild(node, old)
		r.record(OpReplace)
	} else {
		r.insertAt(parent, node, index)
	}
	r.dispose(prev)
	return nil
}

// create materializes n into a detached live node.
func (r *Reconciler) create(ctx context.Context, n *VNode) (surface.Node, error) {
	switch n.Kind {
	case KindText:
		r.record(OpCreateText)
		return r.doc.CreateText(n.Text), nil

	case KindComponent:
		inst, err := n.Factory.Instantiate(ctx, r, n.InitState())
		if err != nil {
			return nil, err
		}
		n.Instance = inst
		n.mounted = true
		r.record(OpMount)
		return inst.Root(), nil
	}

	node := r.doc.CreateElement(n.Tag)
	r.record(OpCreateElement)
	n.listeners = nil
	n.mounted = true
	r.reconcileProps(node, n, nil)
	claimChildren(n.Children, nil)
	for i, c := range n.Children {
		child, err := r.create(ctx, c)
		if err != nil {
			for _, done := range n.Children[:i] {
				r.dispose(done)
			}
			return nil, err
		}
		node.AppendChild(child)
	}
	return node, nil
}

// Claim returns the descriptor to reconcile into a slot currently built from
// prev. A descriptor already bound to another live node is copied, so each
// slot keeps its own component instances and listener bindings.
func (r *Reconciler) Claim(next, prev *VNode) *VNode {
	if next == nil || next == prev || !next.mounted {
		return next
	}
	r.logger.Debug("descriptor reused across slots", "node", next.String())
	return next.fresh()
}

// claimChildren replaces, in place, every entry of next that is bound to a
// node outside prev or that repeats an earlier entry.
func claimChildren(next, prev []*VNode) {
	var (
		seen  map[*VNode]bool
		owned map[*VNode]bool
	)
	for i, c := range next {
		if c == nil || c.Kind == KindText {
			continue
		}
		if seen == nil {
			seen = make(map[*VNode]bool, len(next))
		}
		if c.mounted && owned == nil {
			owned = make(map[*VNode]bool, len(prev))
			for _, p := range prev {
				owned[p] = true
			}
		}
		if seen[c] || (c.mounted && !owned[c]) {
			next[i] = c.fresh()
		}
		seen[c] = true
	}
}

func (r *Reconciler) insertAt(parent, node surface.Node, index int) {
	if index < parent.ChildCount() {
		parent.InsertBefore(node, parent.ChildAt(index))
		r.record(OpInsert)
		return
	}
	parent.AppendChild(node)
	r.record(OpAppend)
}

func (r *Reconciler) moveTo(parent, node surface.Node, index int) {
	ref := parent.ChildAt(index)
	if ref == node {
		return
	}
	if ref == nil {
		parent.AppendChild(node)
	} else {
		parent.InsertBefore(node, ref)
	}
	r.record(OpMove)
}

// dispose releases every component instance in the subtree of n. Each
// descriptor gives up its instance, so disposing a subtree twice is safe.
func (r *Reconciler) dispose(n *VNode) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindComponent:
		if n.Instance != nil {
			r.logger.Debug("component disposed", "node", n.String())
			n.Instance.Dispose()
			n.Instance = nil
		}
	case KindElement:
		for _, c := range n.Children {
			r.dispose(c)
		}
	}
}
