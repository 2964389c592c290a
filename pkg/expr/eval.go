package expr

// Eval for VarNode returns x[Index]. An index outside x reports ok=false
// instead of reading out of bounds.
func (v *VarNode) Eval(x []float64) (float64, bool) {
	if v.Index < 0 || v.Index >= len(x) {
		return 0, false
	}
	return x[v.Index], true
}

// Eval for ConstNode returns the constant value.
func (c *ConstNode) Eval(x []float64) (float64, bool) {
	return c.Val, true
}

// Eval for BinaryNode evaluates both children then applies Op.
// Division by exactly zero yields 1.
func (b *BinaryNode) Eval(x []float64) (float64, bool) {
	left, ok := b.Left.Eval(x)
	if !ok {
		return 0, false
	}
	right, ok := b.Right.Eval(x)
	if !ok {
		return 0, false
	}

	switch b.Op {
	case OpAdd:
		return left + right, true
	case OpSub:
		return left - right, true
	case OpMul:
		return left * right, true
	case OpDiv:
		if right == 0 {
			return 1, true
		}
		return left / right, true
	default:
		return 0, false
	}
}
