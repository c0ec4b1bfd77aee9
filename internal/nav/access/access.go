package access

import "voxelworld/internal/nav/graph"

// ExtentProvider supplies the walkable footprint rectangle for a world
// graph node, in the same world-point coordinate space as Rect.
type ExtentProvider interface {
	Extent(id graph.NodeID) (Rect, bool)
}

// Calculator answers "does an agent with this footprint fit somewhere in
// the connected region reachable from this starting node" queries by BFS
// over world-graph edges plus iterative rectangle subtraction.
type Calculator struct {
	Graph   *graph.Graph
	Extents ExtentProvider
}

// Check runs the algorithm: starting from startNode, walk edges whose
// clearance meets minClearance, subtracting each visited area's extent from
// the agent's (possibly already-split) footprint. Returns true as soon as
// the footprint is fully covered; false if the reachable frontier is
// exhausted first.
func (c *Calculator) Check(startNode graph.NodeID, footprint Rect, minClearance int) bool {
	agentRects := []Rect{footprint}

	visited := map[graph.NodeID]bool{startNode: true}
	queue := []graph.NodeID{startNode}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if ext, ok := c.Extents.Extent(cur); ok {
			var next []Rect
			for _, ar := range agentRects {
				next = append(next, ar.Subtract(ext)...)
			}
			agentRects = next
			if len(agentRects) == 0 {
				return true
			}
		}

		for _, e := range c.Graph.Edges(cur) {
			if e.Clearance < minClearance {
				continue
			}
			if !visited[e.To] {
				visited[e.To] = true
				queue = append(queue, e.To)
			}
		}
	}

	return len(agentRects) == 0
}
