package expr

import "fmt"

// Depth is measured in edges: a lone leaf has depth 0.
func (v *VarNode) Depth() int   { return 0 }
func (c *ConstNode) Depth() int { return 0 }
func (b *BinaryNode) Depth() int {
	ld := b.Left.Depth()
	rd := b.Right.Depth()
	if ld > rd {
		return 1 + ld
	}
	return 1 + rd
}

// CountNodes walks the whole tree and returns its terminal and nonterminal
// counts. The walk also re-stamps every child's parent link and slot, so it is
// the repair step to run after any structural edit.
func CountNodes(root Node) (terminals, nonterminals int) {
	if root == nil {
		return 0, 0
	}
	countNodes(root, &terminals, &nonterminals)
	return terminals, nonterminals
}

func countNodes(node Node, terminals, nonterminals *int) {
	b, ok := node.(*BinaryNode)
	if !ok {
		*terminals++
		return
	}
	*nonterminals++
	b.Left.setParent(b, SlotLeft)
	b.Right.setParent(b, SlotRight)
	countNodes(b.Left, terminals, nonterminals)
	countNodes(b.Right, terminals, nonterminals)
}

// NodeCount returns the total number of nodes under root.
func NodeCount(root Node) int {
	t, n := CountNodes(root)
	return t + n
}

// Validate checks that every operator has two children whose parent links
// point back at it, and that every variable index is in [0, varCount).
func Validate(root Node, varCount int) error {
	if root == nil {
		return fmt.Errorf("%w: nil root", ErrInvariant)
	}
	return validate(root, varCount)
}

func validate(node Node, varCount int) error {
	switch n := node.(type) {
	case *VarNode:
		if n.Index < 0 || n.Index >= varCount {
			return fmt.Errorf("%w: variable X_%d outside [0, %d)", ErrInvariant, n.Index, varCount)
		}
	case *ConstNode:
	case *BinaryNode:
		for _, s := range []Slot{SlotLeft, SlotRight} {
			child := n.Child(s)
			if child == nil {
				return fmt.Errorf("%w: operator %s missing %s child", ErrInvariant, binaryOpSymbols[n.Op], s)
			}
			if p, ps := child.Parent(); p != n || ps != s {
				return fmt.Errorf("%w: stale parent link on %s child of %s", ErrInvariant, s, binaryOpSymbols[n.Op])
			}
			if err := validate(child, varCount); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: unknown node type %T", ErrInvariant, node)
	}
	return nil
}
