package pathfind

import (
	"container/heap"

	"voxelworld/internal/coords"
	"voxelworld/internal/nav/graph"
)

// outerStep is one frontier entry in the area-level A* search.
type outerStep struct {
	node     graph.NodeID
	priority float64
	index    int
}

type outerQueue []*outerStep

func (q outerQueue) Len() int            { return len(q) }
func (q outerQueue) Less(i, j int) bool  { return q[i].priority < q[j].priority }
func (q outerQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i]; q[i].index = i; q[j].index = j }
func (q *outerQueue) Push(x interface{}) { item := x.(*outerStep); item.index = len(*q); *q = append(*q, item) }
func (q *outerQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}

// outerEdge records which graph.Edge was used to reach a node, so the
// caller can recover the boundary blocks for the inner search.
type outerEdge struct {
	from graph.NodeID
	edge graph.Edge
}

// outerSearch runs area-level A* from start to goal over g, filtered by
// req, weighted by policy. expansionLimit bounds the search (0 means
// unbounded), matching §5's synchronous node-expansion cap.
func outerSearch(chunks ChunkProvider, g *graph.Graph, start, goal graph.NodeID, req NavRequirement, policy CostPolicy, expansionLimit int) ([]graph.NodeID, []graph.Edge, error) {
	if start == goal {
		return []graph.NodeID{start}, nil, nil
	}

	goalCentroid, ok := centroid(chunks, g, goal)
	if !ok {
		return nil, nil, errNoEndArea
	}

	open := &outerQueue{}
	heap.Init(open)
	heap.Push(open, &outerStep{node: start, priority: 0})

	cameFrom := map[graph.NodeID]outerEdge{}
	gScore := map[graph.NodeID]float64{start: 0}
	expanded := 0

	for open.Len() > 0 {
		current := heap.Pop(open).(*outerStep)
		if expansionLimit > 0 {
			expanded++
			if expanded > expansionLimit {
				return nil, nil, errNoPath
			}
		}

		if current.node == goal {
			nodes, edges := reconstructNodes(cameFrom, current.node)
			return nodes, edges, nil
		}

		for _, e := range g.Edges(current.node) {
			if e.Clearance < req.Height {
				continue
			}
			if e.MaxStep > req.StepHeight {
				continue
			}

			multiplier := policy.WalkMultiplier
			if e.MaxStep > 0 {
				multiplier = policy.JumpMultiplier
			}
			tentative := gScore[current.node] + e.Cost*multiplier

			if score, ok := gScore[e.To]; ok {
				if tentative > score {
					continue
				}
				if tentative == score && !graph.BlockLess(e.FromBlock, cameFrom[e.To].edge.FromBlock) {
					continue
				}
			}
			gScore[e.To] = tentative
			cameFrom[e.To] = outerEdge{from: current.node, edge: e}

			h := 0.0
			if c, ok := centroid(chunks, g, e.To); ok {
				h = chebyshev(c, goalCentroid)
			}
			heap.Push(open, &outerStep{node: e.To, priority: tentative + h})
		}
	}

	return nil, nil, errNoPath
}

// reconstructNodes walks cameFrom back to the start, returning the node
// sequence and the edge used for each hop (len(edges) == len(nodes)-1).
func reconstructNodes(cameFrom map[graph.NodeID]outerEdge, goal graph.NodeID) ([]graph.NodeID, []graph.Edge) {
	nodes := []graph.NodeID{goal}
	var edges []graph.Edge
	current := goal
	for {
		oe, ok := cameFrom[current]
		if !ok {
			break
		}
		nodes = append([]graph.NodeID{oe.from}, nodes...)
		edges = append([]graph.Edge{oe.edge}, edges...)
		current = oe.from
	}
	return nodes, edges
}

// chebyshev is the outer search's heuristic: the Chebyshev distance between
// two area centroids, scaled by the level-walk cost (1.0). A jump down costs
// less than that (area.CostJumpDown), so on routes that drop down the
// estimate can exceed the true remaining cost.
func chebyshev(a, b coords.WorldPosition) float64 {
	dx := abs32(int64(a.X) - int64(b.X))
	dy := abs32(int64(a.Y) - int64(b.Y))
	dz := abs32(int64(a.Z) - int64(b.Z))
	m := dx
	if dy > m {
		m = dy
	}
	if dz > m {
		m = dz
	}
	return float64(m)
}

func abs32(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
