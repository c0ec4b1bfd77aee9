package pathfind

import (
	"voxelworld/internal/coords"
	"voxelworld/internal/nav/access"
	"voxelworld/internal/nav/graph"
)

// Pathfinder answers path and accessibility queries over a world's chunk
// store and navigation graph. It holds no lock of its own: the caller
// (the world package) is responsible for taking whatever read lock its
// concurrency model requires before calling in.
type Pathfinder struct {
	chunks         ChunkProvider
	graph          *graph.Graph
	ExpansionLimit int
}

// New builds a Pathfinder over the given chunk store and navigation graph.
func New(chunks ChunkProvider, g *graph.Graph) *Pathfinder {
	return &Pathfinder{chunks: chunks, graph: g, ExpansionLimit: 20000}
}

// FindPath runs the two-level A* search described by the navigation
// design: an outer search over world-graph areas, then one inner search
// per consecutive area pair, concatenated into a single block path.
func (p *Pathfinder) FindPath(from coords.WorldPosition, goal SearchGoal, req NavRequirement, policy CostPolicy) (*Path, error) {
	startNode, ok := nodeAt(p.chunks, p.graph, from)
	if !ok {
		return nil, errNoStartArea
	}

	goalBlock, ok := p.resolveGoal(goal)
	if !ok {
		return nil, errNoEndArea
	}
	goalNode, ok := nodeAt(p.chunks, p.graph, goalBlock)
	if !ok {
		return nil, errNoEndArea
	}

	nodes, edges, err := outerSearch(p.chunks, p.graph, startNode, goalNode, req, policy, p.ExpansionLimit)
	if err != nil {
		return nil, err
	}

	return p.stitchPath(from, goalBlock, nodes, edges)
}

// stitchPath runs one inner A* per area the outer search passed through,
// entering at the previous hop's landing block and exiting at either the
// next outer edge's boundary block or, in the final area, the goal block.
// It concatenates the per-area block paths, leaving out the start position
// itself, and sums their costs together with the outer edges' own stored
// crossing costs.
func (p *Pathfinder) stitchPath(from, goalBlock coords.WorldPosition, nodes []graph.NodeID, edges []graph.Edge) (*Path, error) {
	var steps []coords.WorldPosition
	cost := 0.0
	entryWorld := from

	for i, node := range nodes {
		loc, areaID, ok := p.graph.Location(node)
		if !ok {
			return nil, errPartiallyBlocked
		}
		sa, ok := blockGraphFor(p.chunks, loc, areaID)
		if !ok {
			return nil, errPartiallyBlocked
		}

		entryBlock := blockIn(entryWorld)
		var exitBlock coords.SlabBlock
		if i < len(edges) {
			exitBlock = edges[i].FromBlock
		} else {
			exitBlock = blockIn(goalBlock)
		}

		blocks, hopCost, ok := innerSearch(sa.Graph, entryBlock, exitBlock)
		if !ok {
			return nil, errPartiallyBlocked
		}
		for _, b := range blocks {
			wp := b.ToWorldPosition(loc)
			if n := len(steps); n > 0 && steps[n-1] == wp {
				continue // entry block coincides with the previous hop's last step
			}
			if len(steps) == 0 && wp == from {
				continue // the start position is not itself a step
			}
			steps = append(steps, wp)
		}
		cost += hopCost

		if i < len(edges) {
			cost += edges[i].Cost
			nextLoc, _, _ := p.graph.Location(nodes[i+1])
			entryWorld = edges[i].ToBlock.ToWorldPosition(nextLoc)
		}
	}

	return &Path{Steps: steps, Cost: cost}, nil
}

func blockIn(wp coords.WorldPosition) coords.SlabBlock {
	_, _, local := wp.Split()
	_, x, y, z := coords.LocalBlockPosition(local)
	return coords.SlabBlock{X: x, Y: y, Z: z}
}

// resolveGoal turns a SearchGoal into a concrete walkable world position.
func (p *Pathfinder) resolveGoal(goal SearchGoal) (coords.WorldPosition, bool) {
	switch goal.Kind {
	case Arrive:
		if _, ok := nodeAt(p.chunks, p.graph, goal.Target); ok {
			return goal.Target, true
		}
		return coords.WorldPosition{}, false

	case Adjacent:
		offsets := [6][3]int32{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
		for _, o := range offsets {
			cand := coords.WorldPosition{X: goal.Target.X + o[0], Y: goal.Target.Y + o[1], Z: goal.Target.Z + coords.SliceIndex(o[2])}
			if _, ok := nodeAt(p.chunks, p.graph, cand); ok {
				return cand, true
			}
		}
		return coords.WorldPosition{}, false

	case Nearby:
		if _, ok := nodeAt(p.chunks, p.graph, goal.Target); ok {
			return goal.Target, true
		}
		for radius := 1; radius <= goal.Radius; radius++ {
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					if absInt(dx)+absInt(dy) != radius {
						continue
					}
					cand := coords.WorldPosition{X: goal.Target.X + int32(dx), Y: goal.Target.Y + int32(dy), Z: goal.Target.Z}
					if _, ok := nodeAt(p.chunks, p.graph, cand); ok {
						return cand, true
					}
				}
			}
		}
		return coords.WorldPosition{}, false
	}
	return coords.WorldPosition{}, false
}

// IsAccessible reports whether an agent with the given footprint and
// clearance requirement fits somewhere in the connected region starting at
// the area containing the footprint's centre.
func (p *Pathfinder) IsAccessible(center coords.WorldPosition, footprint access.Rect, req NavRequirement) bool {
	startNode, ok := nodeAt(p.chunks, p.graph, center)
	if !ok {
		return false
	}
	calc := &access.Calculator{Graph: p.graph, Extents: &nodeExtents{chunks: p.chunks, graph: p.graph}}
	return calc.Check(startNode, footprint, req.Height)
}
