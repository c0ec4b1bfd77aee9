// Package pathfind implements the two-level A* path search over the world
// navigation graph (outer search, area-to-area) and each area's block
// graph (inner search, block-to-block), concatenating the two into a
// single block-level path. It depends only on nav/graph, nav/area,
// nav/access and chunk — never on world — so the world package can sit on
// top of it without an import cycle.
package pathfind

import (
	"voxelworld/internal/coords"
)

// GoalKind distinguishes the three ways a search target can be expressed.
type GoalKind uint8

const (
	Arrive GoalKind = iota
	Adjacent
	Nearby
)

// SearchGoal is the path's target, along with how exactly the caller wants
// to arrive at it.
type SearchGoal struct {
	Kind   GoalKind
	Target coords.WorldPosition
	Radius int // only meaningful for Nearby
}

// NavRequirement constrains what an agent can traverse: its width in
// blocks, the vertical clearance it needs (Height, in blocks), and the
// largest single vertical step (up or down) it can take without it counting
// as a fall/climb the path finder must route around.
type NavRequirement struct {
	Width      int
	Height     int // vertical clearance required, in blocks
	StepHeight int
}

// DefaultNavRequirement matches a human-scale ground unit: one block wide,
// two tall, able to step up or down a single block.
func DefaultNavRequirement() NavRequirement {
	return NavRequirement{Width: 1, Height: 2, StepHeight: 1}
}

// CostPolicy scales the stored traversal cost of world-graph edges,
// letting a caller bias the search (e.g. a unit that avoids jumps sets a
// high multiplier on jump edges).
type CostPolicy struct {
	WalkMultiplier float64
	JumpMultiplier float64
}

// DefaultCostPolicy applies stored costs unmodified.
func DefaultCostPolicy() CostPolicy {
	return CostPolicy{WalkMultiplier: 1, JumpMultiplier: 1}
}

// NavigationError is the failure outcome of a path query.
type NavigationError struct {
	Kind NavigationErrorKind
}

type NavigationErrorKind uint8

const (
	NoPath NavigationErrorKind = iota
	PartiallyBlocked
	NoStartArea
	NoEndArea
)

func (e *NavigationError) Error() string {
	switch e.Kind {
	case NoPath:
		return "pathfind: no path"
	case PartiallyBlocked:
		return "pathfind: partially blocked"
	case NoStartArea:
		return "pathfind: start position is not in any walkable area"
	case NoEndArea:
		return "pathfind: goal position is not in any walkable area"
	default:
		return "pathfind: navigation error"
	}
}

var (
	errNoPath           = &NavigationError{Kind: NoPath}
	errPartiallyBlocked = &NavigationError{Kind: PartiallyBlocked}
	errNoStartArea      = &NavigationError{Kind: NoStartArea}
	errNoEndArea        = &NavigationError{Kind: NoEndArea}
)

// Path is the sequence of block-level world positions moved into after the
// start (the start itself is not included), ending at the goal, plus its
// total cost.
type Path struct {
	Steps []coords.WorldPosition
	Cost  float64
}
