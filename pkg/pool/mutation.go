package pool

import (
	"math/rand"

	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/expr"
)

// Mutate visits every node and, with probability rate, replaces it with a
// fresh primitive of the same class: operators get a new operator kind and
// keep their children, terminals are swapped for a new terminal in the same
// slot. The tree's shape never changes. Mutate returns the root, which is a
// new node when a terminal root was replaced.
func (p *Pool) Mutate(rng *rand.Rand, root expr.Node, rate float64) expr.Node {
	return p.mutate(rng, root, rate)
}

func (p *Pool) mutate(rng *rand.Rand, node expr.Node, rate float64) expr.Node {
	switch n := node.(type) {
	case *expr.BinaryNode:
		if rng.Float64() < rate {
			n.Op = p.RandomBinary(rng)
		}
		n.SetChild(expr.SlotLeft, p.mutate(rng, n.Left, rate))
		n.SetChild(expr.SlotRight, p.mutate(rng, n.Right, rate))
		return n
	default:
		if rng.Float64() < rate {
			return p.RandomLeaf(rng)
		}
		return n
	}
}
