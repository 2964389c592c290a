package individual

import (
	"fmt"
	"math/rand"

	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/expr"
	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/pool"
)

// Individual is one candidate expression plus the metadata the population
// ranks it by. Terminal and nonterminal counts are cached and must be
// refreshed (Recount) after every structural edit; every method here that
// edits the tree does so before returning.
type Individual struct {
	root         expr.Node
	fitness      float64
	weighted     float64
	terminals    int
	nonterminals int
}

// New wraps an existing tree. The individual takes ownership of root.
func New(root expr.Node) *Individual {
	ind := &Individual{root: root}
	ind.Recount()
	return ind
}

// Generate creates an individual with a random tree of at most depthMax.
func Generate(rng *rand.Rand, p *pool.Pool, depthMax int, mode pool.Mode) *Individual {
	return New(p.RandomTree(rng, depthMax, mode))
}

// Clone returns a deep copy of the individual, including its cached fitness.
func (ind *Individual) Clone() *Individual {
	return &Individual{
		root:         ind.root.Clone(),
		fitness:      ind.fitness,
		weighted:     ind.weighted,
		terminals:    ind.terminals,
		nonterminals: ind.nonterminals,
	}
}

// Recount refreshes the cached terminal and nonterminal counts.
func (ind *Individual) Recount() {
	ind.terminals, ind.nonterminals = expr.CountNodes(ind.root)
}

// Mutate applies per-node point mutation with the given rate.
func (ind *Individual) Mutate(rng *rand.Rand, p *pool.Pool, rate float64) {
	ind.root = p.Mutate(rng, ind.root, rate)
	ind.Recount()
}

// CrossoverPoint picks a random crossover point. When wantNonterminal is set
// but the tree has no operators, a terminal (the root leaf) is chosen instead.
func (ind *Individual) CrossoverPoint(rng *rand.Rand, wantNonterminal bool) (expr.Selection, error) {
	count := ind.terminals
	if wantNonterminal {
		if ind.nonterminals == 0 {
			wantNonterminal = false
		} else {
			count = ind.nonterminals
		}
	}
	if count <= 0 {
		return expr.Selection{}, fmt.Errorf("%w: individual has no nodes", expr.ErrInvariant)
	}
	return expr.SelectNode(ind.root, rng.Intn(count), wantNonterminal)
}

// Splice replaces the subtree at sel with donor and recounts. donor must be
// a detached tree no other individual references.
func (ind *Individual) Splice(sel expr.Selection, donor expr.Node) {
	ind.root = expr.Replace(ind.root, sel, donor)
	ind.Recount()
}

// Root exposes the tree for read-only inspection.
func (ind *Individual) Root() expr.Node { return ind.root }

func (ind *Individual) Fitness() float64  { return ind.fitness }
func (ind *Individual) Weighted() float64 { return ind.weighted }
func (ind *Individual) Terminals() int    { return ind.terminals }
func (ind *Individual) Nonterminals() int { return ind.nonterminals }
func (ind *Individual) Depth() int        { return ind.root.Depth() }

// Size returns the total node count.
func (ind *Individual) Size() int {
	return ind.terminals + ind.nonterminals
}

// String returns the fully parenthesized infix expression.
func (ind *Individual) String() string {
	return ind.root.String()
}

// LaTeX returns a LaTeX representation.
func (ind *Individual) LaTeX() string {
	return ind.root.LaTeX()
}
