package expr

// Clone methods return detached deep copies: the copy's root has no parent and
// every operator in the copy owns freshly allocated children.

func (v *VarNode) Clone() Node {
	return &VarNode{Index: v.Index}
}

func (c *ConstNode) Clone() Node {
	return &ConstNode{Val: c.Val}
}

func (b *BinaryNode) Clone() Node {
	return NewBinary(b.Op, b.Left.Clone(), b.Right.Clone())
}
