package expr

import "errors"

// ErrInvariant reports a broken tree invariant: a traversal ran past the last
// matching node, or a node's parent link disagrees with its position.
var ErrInvariant = errors.New("expression tree invariant violated")

// Node is the interface for all expression tree nodes. The set of
// implementations is closed: *BinaryNode, *ConstNode and *VarNode.
type Node interface {
	Eval(x []float64) (float64, bool)
	String() string
	LaTeX() string
	Clone() Node
	Depth() int
	IsTerminal() bool

	// Parent returns the operator holding this node and the slot it sits in.
	// A nil parent means the node is a root.
	Parent() (*BinaryNode, Slot)

	setParent(p *BinaryNode, s Slot)
}

// BinaryOp identifies a binary operation.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
)

// BinaryOps lists every operator a tree may contain.
var BinaryOps = []BinaryOp{OpAdd, OpSub, OpMul, OpDiv}

// Slot is a child position under a BinaryNode.
type Slot int

const (
	SlotLeft Slot = iota
	SlotRight
)

func (s Slot) String() string {
	if s == SlotLeft {
		return "left"
	}
	return "right"
}

// link is the non-owning back-reference every node carries. Ownership runs
// strictly downward through BinaryNode.Left/Right.
type link struct {
	parent *BinaryNode
	slot   Slot
}

func (l *link) Parent() (*BinaryNode, Slot) { return l.parent, l.slot }

func (l *link) setParent(p *BinaryNode, s Slot) {
	l.parent = p
	l.slot = s
}

// VarNode reads one input of a sample.
type VarNode struct {
	link
	Index int
}

// ConstNode represents a real constant.
type ConstNode struct {
	link
	Val float64
}

// BinaryNode applies a binary operation to two child expressions.
type BinaryNode struct {
	link
	Op          BinaryOp
	Left, Right Node
}

// NewBinary builds an operator node and links both children to it.
func NewBinary(op BinaryOp, left, right Node) *BinaryNode {
	b := &BinaryNode{Op: op}
	b.SetChild(SlotLeft, left)
	b.SetChild(SlotRight, right)
	return b
}

// Child returns the node in slot s.
func (b *BinaryNode) Child(s Slot) Node {
	if s == SlotLeft {
		return b.Left
	}
	return b.Right
}

// SetChild places n in slot s and points n back at b. The previous occupant,
// if any, is detached.
func (b *BinaryNode) SetChild(s Slot, n Node) {
	if old := b.Child(s); old != nil && old != n {
		old.setParent(nil, SlotLeft)
	}
	if s == SlotLeft {
		b.Left = n
	} else {
		b.Right = n
	}
	if n != nil {
		n.setParent(b, s)
	}
}

func (v *VarNode) IsTerminal() bool    { return true }
func (c *ConstNode) IsTerminal() bool  { return true }
func (b *BinaryNode) IsTerminal() bool { return false }
