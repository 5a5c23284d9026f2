// Package extract turns a live page into a normalized state.PageState, one
// extractor per representation the Router can choose.
package extract

import (
	"github.com/sanjitr11/browserlens/pageio"
	"github.com/sanjitr11/browserlens/state"
)

// internalRoleMap renames CDP-specific role spellings to the plainer
// vocabulary the rest of BrowserLens uses. Grounded verbatim on
// extractors/_cdp.py's _INTERNAL_ROLE_MAP.
var internalRoleMap = map[string]string{
	"RootWebArea":          "document",
	"StaticText":           "text",
	"InlineTextBox":        "text",
	"GenericContainer":     "generic",
	"Iframe":               "iframe",
	"IframePresentational": "iframe",
	"LineBreak":            "text",
	"LayoutTable":          "table",
	"LayoutTableRow":       "row",
	"LayoutTableCell":      "cell",
}

// pruneRoles are wrapper roles worth dropping when they carry no name and
// no children of their own; every other role is always kept. Grounded
// verbatim on extractors/_cdp.py's _is_interesting prune set.
var pruneRoles = map[string]bool{
	"generic":      true,
	"none":         true,
	"presentation": true,
	"text":         true,
	"document":     true,
}

// axTreeToStateTree builds a state.StateNode tree from a flat CDP AX node
// list, dropping ignored nodes and re-parenting their unignored
// descendants, then dropping wrappers that have neither a name nor
// surviving children. Grounded on extractors/_cdp.py's _build_tree /
// _collect_unignored / _is_interesting.
//
// Spec §7: if the tree has no discoverable root, extraction degrades to a
// single document node rather than failing the caller.
func axTreeToStateTree(nodes []pageio.AXNode) *state.StateNode {
	byID := make(map[string]pageio.AXNode, len(nodes))
	for _, n := range nodes {
		byID[n.NodeID] = n
	}

	var rootID string
	for _, n := range nodes {
		if n.ParentID == "" {
			rootID = n.NodeID
			break
		}
	}
	if rootID == "" && len(nodes) > 0 {
		rootID = nodes[0].NodeID
	}
	if rootID == "" {
		return &state.StateNode{Role: "document"}
	}

	built := buildNode(rootID, byID)
	if len(built) == 0 {
		return &state.StateNode{Role: "document"}
	}
	// A node with children is always interesting (see isInteresting), so
	// the root, having at least its own subtree, is never itself pruned:
	// buildNode returns it as the sole element.
	return built[0]
}

// buildNode returns the zero-or-more nodes id contributes to its parent's
// child list: one node when id is interesting, or nothing when id is a
// nameless, childless prune-set wrapper (its built child list is then
// empty, and that empty list is what is returned).
func buildNode(id string, byID map[string]pageio.AXNode) []*state.StateNode {
	n, ok := byID[id]
	if !ok {
		return nil
	}

	var children []*state.StateNode
	for _, childID := range n.ChildIDs {
		child, ok := byID[childID]
		if !ok {
			continue
		}
		if child.Ignored {
			// Re-parent the ignored node's own children onto us.
			for _, grandchildID := range child.ChildIDs {
				children = append(children, buildNode(grandchildID, byID)...)
			}
			continue
		}
		children = append(children, buildNode(childID, byID)...)
	}

	node := &state.StateNode{
		Role:     normalizeRole(n.Role),
		Name:     n.Name,
		Value:    n.Value,
		Checked:  triStateFromString(n.Checked),
		Expanded: triStateFromString(n.Expanded),
		Disabled: n.Disabled,
		Focused:  n.Focused,
		Live:     n.Live,
		Children: children,
	}

	if !isInteresting(node) {
		return children
	}
	return []*state.StateNode{node}
}

func normalizeRole(role string) string {
	if mapped, ok := internalRoleMap[role]; ok {
		return mapped
	}
	return role
}

func triStateFromString(v string) state.TriState {
	switch v {
	case "true":
		return state.TriTrue
	case "false":
		return state.TriFalse
	default:
		return state.TriUnset
	}
}

// isInteresting mirrors _cdp.py's _is_interesting: any role outside the
// prune set is always kept. A prune-set role (generic, none, presentation,
// text, document) is kept only if it has a name or already-surviving
// children; a nameless, childless instance is a pure layout artifact and
// is dropped.
func isInteresting(n *state.StateNode) bool {
	if !pruneRoles[n.Role] {
		return true
	}
	return n.Name != "" || len(n.Children) > 0
}
