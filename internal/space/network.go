package space

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
)

// Network treats an externally supplied graph as a discrete space: each
// node becomes a cell and each edge a radius-1 connection. There is no
// coordinate geometry; a cell's coordinate is its node identifier. Capacity
// defaults to unbounded per node unless the caller passes a bound.
type Network struct {
	*Space[NodeID]
	graph graph.Graph
}

// NewNetwork builds a network space over g. Cells are created in ascending
// node-id order so that construction is deterministic regardless of the
// graph's internal iteration order.
func NewNetwork(g graph.Graph, capacity int, seed int64) (*Network, error) {
	return NewNetworkWithCapacities(g, capacity, nil, seed)
}

// NewNetworkWithCapacities builds a network space with a per-node capacity
// override: nodes absent from caps get the default capacity.
func NewNetworkWithCapacities(g graph.Graph, capacity int, caps map[int64]int, seed int64) (*Network, error) {
	if g == nil {
		return nil, fmt.Errorf("network: nil graph")
	}
	nodes := graph.NodesOf(g.Nodes())
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })

	net := &Network{
		Space: newSpace[NodeID](seed),
		graph: g,
	}
	for _, n := range nodes {
		nodeCap := capacity
		if c, ok := caps[n.ID()]; ok {
			nodeCap = c
		}
		net.addCell(NodeID(n.ID()), nodeCap)
	}

	// Second pass: graph edges become connections. For undirected graphs
	// From yields each edge from both ends, which makes the relation
	// symmetric without bidirectional linking; directed graphs keep their
	// edge directions.
	for _, n := range nodes {
		cell := net.byCoord[NodeID(n.ID())]
		to := graph.NodesOf(g.From(n.ID()))
		sort.Slice(to, func(i, j int) bool { return to[i].ID() < to[j].ID() })
		for _, m := range to {
			cell.Connect(net.byCoord[NodeID(m.ID())], false)
		}
	}
	net.finish()
	return net, nil
}

// Graph returns the underlying graph the space was built from.
func (n *Network) Graph() graph.Graph { return n.graph }

// CellForNode resolves a graph node id to its cell.
func (n *Network) CellForNode(id int64) (*Cell[NodeID], error) {
	return n.CellAt(NodeID(id))
}
