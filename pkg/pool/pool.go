package pool

import (
	"fmt"
	"math/rand"

	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/expr"
)

// Mode selects the tree shape produced by Generate.
type Mode int

const (
	// Grow allows terminals at any depth, producing irregular trees.
	Grow Mode = iota
	// Full forces operators until the depth limit, producing perfect trees.
	Full
)

func (m Mode) String() string {
	if m == Full {
		return "full"
	}
	return "grow"
}

// Pool provides random building blocks for constructing expression trees:
// the four arithmetic operators, constants drawn from [ConstMin, ConstMax]
// and variables X_0 .. X_{VarCount-1}.
type Pool struct {
	VarCount int
	ConstMin float64
	ConstMax float64
}

// New returns a pool for samples with varCount inputs. An inverted constant
// range is swapped.
func New(varCount int, constMin, constMax float64) (*Pool, error) {
	if varCount < 1 {
		return nil, fmt.Errorf("pool needs at least one variable, got %d", varCount)
	}
	if constMin > constMax {
		constMin, constMax = constMax, constMin
	}
	return &Pool{VarCount: varCount, ConstMin: constMin, ConstMax: constMax}, nil
}

// RandomLeaf returns a constant or a variable with equal probability.
func (p *Pool) RandomLeaf(rng *rand.Rand) expr.Node {
	if rng.Intn(2) == 0 {
		return p.RandomConst(rng)
	}
	return p.RandomVar(rng)
}

// RandomConst draws a constant uniformly from [ConstMin, ConstMax].
func (p *Pool) RandomConst(rng *rand.Rand) *expr.ConstNode {
	return &expr.ConstNode{Val: p.ConstMin + rng.Float64()*(p.ConstMax-p.ConstMin)}
}

// RandomVar draws a variable index uniformly from [0, VarCount).
func (p *Pool) RandomVar(rng *rand.Rand) *expr.VarNode {
	return &expr.VarNode{Index: rng.Intn(p.VarCount)}
}

// RandomBinary returns one of the four operators uniformly.
func (p *Pool) RandomBinary(rng *rand.Rand) expr.BinaryOp {
	return expr.BinaryOps[rng.Intn(len(expr.BinaryOps))]
}

// RandomTree generates a tree rooted at depth 0.
func (p *Pool) RandomTree(rng *rand.Rand, maxDepth int, mode Mode) expr.Node {
	return p.Generate(rng, 0, maxDepth, mode)
}

// Generate builds a subtree whose root sits at depth. At or past maxDepth the
// node is always a terminal; in Full mode every shallower node is an
// operator; in Grow mode the node is drawn uniformly from the four operators
// and the two terminal kinds.
func (p *Pool) Generate(rng *rand.Rand, depth, maxDepth int, mode Mode) expr.Node {
	if depth >= maxDepth {
		return p.RandomLeaf(rng)
	}
	if mode == Grow {
		// 4 operators + constant + variable
		switch k := rng.Intn(len(expr.BinaryOps) + 2); {
		case k == len(expr.BinaryOps):
			return p.RandomConst(rng)
		case k == len(expr.BinaryOps)+1:
			return p.RandomVar(rng)
		default:
			return expr.NewBinary(expr.BinaryOps[k],
				p.Generate(rng, depth+1, maxDepth, mode),
				p.Generate(rng, depth+1, maxDepth, mode))
		}
	}
	return expr.NewBinary(p.RandomBinary(rng),
		p.Generate(rng, depth+1, maxDepth, mode),
		p.Generate(rng, depth+1, maxDepth, mode))
}
