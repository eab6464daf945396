/*
 * graph.go, part of gochemkit.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chemgraph

import (
	"sort"

	chem "github.com/rmera/gochemkit"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

//Atom is a chem.Atom that can be used as a gonum graph node.
//Its ID is the index of the atom in the molecule.
type Atom struct {
	*chem.Atom
}

func (A Atom) ID() int64 {
	return int64(A.Index())
}

//Bond is a chem.Bond that can be used as an undirected gonum graph edge.
type Bond struct {
	*chem.Bond
	F, T Atom
}

func (B Bond) From() graph.Node {
	return B.F
}

func (B Bond) To() graph.Node {
	return B.T
}

//ReversedEdge returns a copy of the bond with the ends swapped.
//The underlying chem.Bond is shared.
func (B Bond) ReversedEdge() graph.Edge {
	return Bond{Bond: B.Bond, F: B.T, T: B.F}
}

//Graph is the molecular graph of a topology.
type Graph struct {
	*simple.UndirectedGraph
	mol chem.Atomer
}

//New returns the graph of mol, with one node per atom and one edge per bond.
//If heavyOnly is true, hydrogens and their bonds are left out.
//New fills the indexes of the atoms in mol.
func New(mol chem.AtomIndexesFiller, heavyOnly bool) *Graph {
	mol.FillIndexes()
	g := &Graph{UndirectedGraph: simple.NewUndirectedGraph(), mol: mol}
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		if heavyOnly && at.IsH() {
			continue
		}
		g.AddNode(Atom{at})
	}
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		if heavyOnly && at.IsH() {
			continue
		}
		for _, b := range at.Bonds {
			o := b.Cross(at)
			if o.Index() <= i || (heavyOnly && o.IsH()) || o.Index() >= mol.Len() || mol.Atom(o.Index()) != o {
				continue
			}
			g.SetEdge(Bond{Bond: b, F: Atom{at}, T: Atom{o}})
		}
	}
	return g
}

//Atom returns the atom for the node with the given ID.
func (G *Graph) Atom(id int64) *chem.Atom {
	return G.mol.Atom(int(id))
}

func nodeIndexes(nodes []graph.Node) []int {
	ret := make([]int, len(nodes))
	for i, n := range nodes {
		ret[i] = int(n.ID())
	}
	return ret
}

//Components returns the atom indexes of each connected fragment, each sorted, with the
//fragments sorted by their first atom.
func (G *Graph) Components() [][]int {
	cc := topo.ConnectedComponents(G)
	ret := make([][]int, 0, len(cc))
	for _, c := range cc {
		idx := nodeIndexes(c)
		sort.Ints(idx)
		ret = append(ret, idx)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i][0] < ret[j][0] })
	return ret
}

//CycleRank returns the number of independent rings in the graph
//(the size of a cycle basis).
func (G *Graph) CycleRank() int {
	return len(topo.UndirectedCyclesIn(G))
}

//cutGraph is the graph without the edge u-v. Neighbors are
//returned in ID order so the shortest paths found are reproducible.
type cutGraph struct {
	g    *simple.UndirectedGraph
	u, v int64
}

func (c cutGraph) cut(uid, vid int64) bool {
	return (uid == c.u && vid == c.v) || (uid == c.v && vid == c.u)
}

func (c cutGraph) From(id int64) graph.Nodes {
	nodes := graph.NodesOf(c.g.From(id))
	ret := make([]graph.Node, 0, len(nodes))
	for _, n := range nodes {
		if !c.cut(id, n.ID()) {
			ret = append(ret, n)
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].ID() < ret[j].ID() })
	return iterator.NewOrderedNodes(ret)
}

func (c cutGraph) Edge(uid, vid int64) graph.Edge {
	if c.cut(uid, vid) {
		return nil
	}
	return c.g.Edge(uid, vid)
}

//Rings returns, for every bond in a ring, the smallest ring containing it, without
//repetitions. Rings larger than maxSize are ignored (maxSize <= 0 means no limit).
//Each ring is given as atom indexes in bond order, starting with the smallest index.
//The rings are sorted by size and then by their atoms.
func (G *Graph) Rings(maxSize int) [][]int {
	seen := make(map[string]bool)
	var ret [][]int
	edges := graph.EdgesOf(G.Edges())
	for _, e := range edges {
		u, v := e.From(), e.To()
		p, _ := path.DijkstraFrom(u, cutGraph{g: G.UndirectedGraph, u: u.ID(), v: v.ID()}).To(v.ID())
		if p == nil || (maxSize > 0 && len(p) > maxSize) {
			continue
		}
		ring := canonicalRing(nodeIndexes(p))
		key := ringKey(ring)
		if seen[key] {
			continue
		}
		seen[key] = true
		ret = append(ret, ring)
	}
	sort.Slice(ret, func(i, j int) bool {
		if len(ret[i]) != len(ret[j]) {
			return len(ret[i]) < len(ret[j])
		}
		for k := range ret[i] {
			if ret[i][k] != ret[j][k] {
				return ret[i][k] < ret[j][k]
			}
		}
		return false
	})
	return ret
}

//canonicalRing rotates the ring so it starts at its smallest
//index and goes towards the smaller of the two neighbors of that index.
func canonicalRing(ring []int) []int {
	n := len(ring)
	first := 0
	for i, v := range ring {
		if v < ring[first] {
			first = i
		}
	}
	ret := make([]int, n)
	for i := range ring {
		ret[i] = ring[(first+i)%n]
	}
	if n > 2 && ret[1] > ret[n-1] {
		for i, j := 1, n-1; i < j; i, j = i+1, j-1 {
			ret[i], ret[j] = ret[j], ret[i]
		}
	}
	return ret
}

func ringKey(ring []int) string {
	s := make([]int, len(ring))
	copy(s, ring)
	sort.Ints(s)
	b := make([]byte, 0, 4*len(s))
	for _, v := range s {
		b = append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
	return string(b)
}
