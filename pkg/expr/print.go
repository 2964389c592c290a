package expr

import "fmt"

var binaryOpSymbols = map[BinaryOp]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
}

func (op BinaryOp) String() string {
	if s, ok := binaryOpSymbols[op]; ok {
		return s
	}
	return fmt.Sprintf("BinaryOp(%d)", int(op))
}

// String methods

func (v *VarNode) String() string {
	return fmt.Sprintf("X_%d", v.Index)
}

func (c *ConstNode) String() string {
	return fmt.Sprintf("%f", c.Val)
}

func (b *BinaryNode) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), binaryOpSymbols[b.Op], b.Right.String())
}

// LaTeX methods

func (v *VarNode) LaTeX() string {
	return fmt.Sprintf("x_{%d}", v.Index)
}

func (c *ConstNode) LaTeX() string {
	return fmt.Sprintf("%g", c.Val)
}

func (b *BinaryNode) LaTeX() string {
	left := b.Left.LaTeX()
	right := b.Right.LaTeX()
	switch b.Op {
	case OpAdd:
		return fmt.Sprintf("\\left({%s} + {%s}\\right)", left, right)
	case OpSub:
		return fmt.Sprintf("\\left({%s} - {%s}\\right)", left, right)
	case OpMul:
		return fmt.Sprintf("{%s} \\cdot {%s}", left, right)
	case OpDiv:
		return fmt.Sprintf("\\frac{%s}{%s}", left, right)
	default:
		return ""
	}
}
