package rings

import (
	"fmt"

	"github.com/dd0wney/cluso-paperchain/pkg/molecule"
)

// BackEdge is a bond that is not part of the spanning forest. Src < Dst.
type BackEdge struct {
	Src, Dst int
}

type treeState uint8

const (
	unvisited treeState = iota
	root
	child
)

// treeNode is one atom's place in the spanning forest.
type treeNode struct {
	state  treeState
	parent int
}

func (n treeNode) isParent(atom int) bool {
	return n.state == child && n.parent == atom
}

// FindBackEdges builds a spanning forest of g by iterative depth-first
// search and returns the bonds it did not use. Every independent cycle of
// the graph contains at least one of them.
func FindBackEdges(g molecule.BondGraph) ([]BackEdge, error) {
	n := g.AtomCount()
	tree := make([]treeNode, n)
	var edges []BackEdge
	var stack []int

	for start := 0; start < n; start++ {
		if tree[start].state != unvisited {
			continue
		}
		tree[start] = treeNode{state: root}
		stack = append(stack[:0], start)

		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			for _, nb := range g.Neighbors(cur) {
				if nb < 0 || nb >= n {
					return nil, fmt.Errorf("atom %d lists neighbor %d: %w", cur, nb, molecule.ErrInvalidAdjacency)
				}
				if tree[nb].state != unvisited {
					if !tree[cur].isParent(nb) && nb > cur {
						edges = append(edges, BackEdge{Src: cur, Dst: nb})
					}
					continue
				}
				tree[nb] = treeNode{state: child, parent: cur}
				stack = append(stack, nb)
			}
		}
	}
	return edges, nil
}
