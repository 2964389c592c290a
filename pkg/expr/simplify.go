package expr

import "math"

// Simplify returns a reduced copy of root; root itself is not modified.
// Every rewrite gives the same value as the original tree, protected
// division included, wherever the subexpressions it touches are finite.
func Simplify(root Node) Node {
	node := simplifyOnce(root)
	for i := 0; i < 20; i++ { // cap iterations
		next := simplifyOnce(node)
		if Equal(next, node) {
			return next
		}
		node = next
	}
	return node
}

func simplifyOnce(node Node) Node {
	n, ok := node.(*BinaryNode)
	if !ok {
		return node.Clone()
	}

	left := simplifyOnce(n.Left)
	right := simplifyOnce(n.Right)

	lc, lok := left.(*ConstNode)
	rc, rok := right.(*ConstNode)

	// Constant folding
	if lok && rok {
		if v, ok := NewBinary(n.Op, lc, rc).Eval(nil); ok && !math.IsInf(v, 0) && !math.IsNaN(v) {
			return &ConstNode{Val: v}
		}
		left, right = &ConstNode{Val: lc.Val}, &ConstNode{Val: rc.Val}
	}

	switch n.Op {
	case OpAdd:
		// x + 0 = x
		if rok && rc.Val == 0 {
			return left
		}
		// 0 + x = x
		if lok && lc.Val == 0 {
			return right
		}
		// x + (-k) = x - k
		if rok && rc.Val < 0 {
			return NewBinary(OpSub, left, &ConstNode{Val: -rc.Val})
		}

	case OpSub:
		// x - 0 = x
		if rok && rc.Val == 0 {
			return left
		}
		// x - (-k) = x + k
		if rok && rc.Val < 0 {
			return NewBinary(OpAdd, left, &ConstNode{Val: -rc.Val})
		}
		// x - x = 0
		if Equal(left, right) {
			return &ConstNode{Val: 0}
		}

	case OpMul:
		// x * 0 = 0
		if (rok && rc.Val == 0) || (lok && lc.Val == 0) {
			return &ConstNode{Val: 0}
		}
		// x * 1 = x
		if rok && rc.Val == 1 {
			return left
		}
		// 1 * x = x
		if lok && lc.Val == 1 {
			return right
		}

	case OpDiv:
		// x / 1 = x
		if rok && rc.Val == 1 {
			return left
		}
		// x / 0 = 1
		if rok && rc.Val == 0 {
			return &ConstNode{Val: 1}
		}
		// x / x = 1, for x = 0 as well
		if Equal(left, right) {
			return &ConstNode{Val: 1}
		}
	}

	return NewBinary(n.Op, left, right)
}

// Equal reports whether a and b have the same shape, operators, variable
// indices and exact constant values.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case *VarNode:
		y, ok := b.(*VarNode)
		return ok && x.Index == y.Index
	case *ConstNode:
		y, ok := b.(*ConstNode)
		return ok && x.Val == y.Val
	case *BinaryNode:
		y, ok := b.(*BinaryNode)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	}
	return false
}
