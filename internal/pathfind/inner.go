package pathfind

import (
	"container/heap"

	"voxelworld/internal/coords"
	"voxelworld/internal/nav/area"
	"voxelworld/internal/nav/graph"
)

type innerStep struct {
	block    coords.SlabBlock
	priority float64
	index    int
}

type innerQueue []*innerStep

func (q innerQueue) Len() int            { return len(q) }
func (q innerQueue) Less(i, j int) bool  { return q[i].priority < q[j].priority }
func (q innerQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i]; q[i].index = i; q[j].index = j }
func (q *innerQueue) Push(x interface{}) { item := x.(*innerStep); item.index = len(*q); *q = append(*q, item) }
func (q *innerQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}

// innerSearch runs block-level A* within a single area's BlockGraph, from
// entry to exit, using a Manhattan heuristic. Returns the block path and
// its total traversal cost.
func innerSearch(g *area.BlockGraph, entry, exit coords.SlabBlock) ([]coords.SlabBlock, float64, bool) {
	if entry == exit {
		return []coords.SlabBlock{entry}, 0, true
	}

	open := &innerQueue{}
	heap.Init(open)
	heap.Push(open, &innerStep{block: entry, priority: 0})

	cameFrom := map[coords.SlabBlock]coords.SlabBlock{}
	gScore := map[coords.SlabBlock]float64{entry: 0}

	for open.Len() > 0 {
		current := heap.Pop(open).(*innerStep)
		if current.block == exit {
			return reconstructBlocks(cameFrom, exit), gScore[exit], true
		}

		for _, e := range g.Neighbors(current.block) {
			tentative := gScore[current.block] + e.Cost
			if score, ok := gScore[e.To]; ok {
				if tentative > score {
					continue
				}
				if tentative == score && !graph.BlockLess(current.block, cameFrom[e.To]) {
					continue
				}
			}
			gScore[e.To] = tentative
			cameFrom[e.To] = current.block
			priority := tentative + manhattan(e.To, exit)
			heap.Push(open, &innerStep{block: e.To, priority: priority})
		}
	}

	return nil, 0, false
}

func manhattan(a, b coords.SlabBlock) float64 {
	dx := int(a.X) - int(b.X)
	dy := int(a.Y) - int(b.Y)
	dz := int(a.Z) - int(b.Z)
	return float64(absInt(dx) + absInt(dy) + absInt(dz))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func reconstructBlocks(cameFrom map[coords.SlabBlock]coords.SlabBlock, goal coords.SlabBlock) []coords.SlabBlock {
	path := []coords.SlabBlock{goal}
	current := goal
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append([]coords.SlabBlock{prev}, path...)
		current = prev
	}
	return path
}
