package expr

import "fmt"

// Selection identifies a subtree by where it hangs: Parent and Slot locate it
// for in-place replacement, Node is the subtree itself. A nil Parent means the
// whole tree was selected.
type Selection struct {
	Parent *BinaryNode
	Slot   Slot
	Node   Node
}

// IsRoot reports whether the selection covers the whole tree.
func (s Selection) IsRoot() bool { return s.Parent == nil }

// SelectNode returns the n-th node (0-based, pre-order, left before right)
// among the nodes whose class matches wantNonterminal. n must come from a
// fresh CountNodes on the same tree; running past the last match is an
// ErrInvariant.
func SelectNode(root Node, n int, wantNonterminal bool) (Selection, error) {
	if root == nil {
		return Selection{}, fmt.Errorf("%w: select on nil tree", ErrInvariant)
	}
	if n < 0 {
		return Selection{}, fmt.Errorf("%w: negative selection ordinal %d", ErrInvariant, n)
	}
	countdown := n
	sel, found := selectNode(root, nil, SlotLeft, &countdown, wantNonterminal)
	if !found {
		return Selection{}, fmt.Errorf("%w: ordinal %d exceeds matching nodes (nonterminal=%t)", ErrInvariant, n, wantNonterminal)
	}
	return sel, nil
}

func selectNode(node Node, parent *BinaryNode, slot Slot, countdown *int, wantNonterminal bool) (Selection, bool) {
	if node.IsTerminal() != wantNonterminal {
		if *countdown == 0 {
			return Selection{Parent: parent, Slot: slot, Node: node}, true
		}
		*countdown--
	}
	b, ok := node.(*BinaryNode)
	if !ok {
		return Selection{}, false
	}
	if sel, found := selectNode(b.Left, b, SlotLeft, countdown, wantNonterminal); found {
		return sel, true
	}
	return selectNode(b.Right, b, SlotRight, countdown, wantNonterminal)
}

// Replace splices donor into the position described by sel and returns the
// tree's (possibly new) root. The replaced subtree is detached from the tree.
// donor must not already belong to another tree.
func Replace(root Node, sel Selection, donor Node) Node {
	if sel.IsRoot() {
		if root != nil && root != donor {
			root.setParent(nil, SlotLeft)
		}
		donor.setParent(nil, SlotLeft)
		return donor
	}
	sel.Parent.SetChild(sel.Slot, donor)
	return root
}
