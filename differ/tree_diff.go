// Package differ computes the minimal change set between two
// observations, filters out semantic noise, and folds long runs of
// unchanged structure into a one-line landmark summary.
package differ

import "github.com/sanjitr11/browserlens/state"

// comparedProps are the node properties tree diffing checks for changes;
// anything else (children, structural shape) is handled by add/remove.
var comparedProps = []string{"value", "checked", "expanded", "disabled", "focused", "live"}

// indexedNode pairs a node with its fingerprint (which includes the parent
// role) and whether it has been matched yet. indexNodes returns these in a
// slice in traversal order, so fingerprint matching can scan
// deterministically instead of relying on map iteration order.
type indexedNode struct {
	node       *state.StateNode
	fingerprint state.Fingerprint
	matched    bool
}

func indexNodes(ps *state.PageState) []*indexedNode {
	if ps == nil || ps.Root == nil {
		return nil
	}
	var out []*indexedNode
	var walk func(n *state.StateNode, parentRole string)
	walk = func(n *state.StateNode, parentRole string) {
		out = append(out, &indexedNode{node: n, fingerprint: n.Fingerprint(parentRole)})
		for _, c := range n.Children {
			walk(c, n.Role)
		}
	}
	walk(ps.Root, "")
	return out
}

// DiffTrees compares old and new PageStates and returns the minimal Delta:
// refs carried over by exact ref match first, then by fingerprint match
// against not-yet-matched old nodes (scanned in traversal order — the
// first match wins, which keeps results deterministic across runs).
func DiffTrees(old, new_ *state.PageState, refByFingerprint func(state.Fingerprint) string) *state.Delta {
	oldNodes := indexNodes(old)
	newNodes := indexNodes(new_)

	byRef := make(map[string]*indexedNode, len(oldNodes))
	for _, on := range oldNodes {
		if on.node.Ref != "" {
			byRef[on.node.Ref] = on
		}
	}

	delta := &state.Delta{}

	for _, nn := range newNodes {
		ref := refByFingerprint(nn.fingerprint)
		nn.node.Ref = ref

		if old == nil {
			delta.Added = append(delta.Added, nn.node)
			continue
		}

		match := matchOldNode(ref, nn.fingerprint, byRef, oldNodes)
		if match == nil {
			delta.Added = append(delta.Added, nn.node)
			continue
		}
		match.matched = true

		if changes := compareProps(match.node, nn.node, ref); changes != nil {
			delta.Changed = append(delta.Changed, changes)
		} else {
			delta.UnchangedCount++
		}
	}

	for _, on := range oldNodes {
		if !on.matched {
			delta.Removed = append(delta.Removed, on.node)
		}
	}

	return delta
}

// AssignRefs walks ps and sets each node's Ref via refFn, without
// comparing against any previous state. Used for the first observation
// (or any forced full-state render), where there is nothing to diff yet
// but refs must still be stable across later observations.
func AssignRefs(ps *state.PageState, refFn func(state.Fingerprint) string) {
	for _, n := range indexNodes(ps) {
		n.node.Ref = refFn(n.fingerprint)
	}
}

func matchOldNode(ref string, fp state.Fingerprint, byRef map[string]*indexedNode, oldNodes []*indexedNode) *indexedNode {
	if m, ok := byRef[ref]; ok && !m.matched {
		return m
	}
	for _, on := range oldNodes {
		if !on.matched && on.fingerprint == fp {
			return on
		}
	}
	return nil
}

func compareProps(oldNode, newNode *state.StateNode, ref string) *state.NodeChange {
	changed := make(map[string][2]string)

	cmp := func(name, oldVal, newVal string) {
		if oldVal != newVal {
			changed[name] = [2]string{oldVal, newVal}
		}
	}
	cmp("value", oldNode.Value, newNode.Value)
	cmp("checked", oldNode.Checked.String(), newNode.Checked.String())
	cmp("expanded", oldNode.Expanded.String(), newNode.Expanded.String())
	cmp("disabled", boolStr(oldNode.Disabled), boolStr(newNode.Disabled))
	cmp("focused", boolStr(oldNode.Focused), boolStr(newNode.Focused))
	cmp("live", oldNode.Live, newNode.Live)

	if len(changed) == 0 {
		return nil
	}
	return &state.NodeChange{Ref: ref, Role: newNode.Role, Name: newNode.Name, ChangedProps: changed}
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
