// Package access implements the world's accessibility calculator (see
// the accessibility section of the project's navigation design): given a
// starting area and an agent footprint, it determines whether the agent
// fits somewhere in the connected region reachable from that area.
package access

import "github.com/chewxy/math32"

// Rect is an axis-aligned rectangle in continuous world coordinates, used
// both for an agent's footprint and for an area's walkable extent.
type Rect struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

func (r Rect) empty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Intersects reports whether two rectangles overlap with positive area.
func (r Rect) Intersects(o Rect) bool {
	return r.MinX < o.MaxX && r.MaxX > o.MinX && r.MinY < o.MaxY && r.MaxY > o.MinY
}

// IsFullyCoveredBy reports whether o entirely contains r.
func (r Rect) IsFullyCoveredBy(o Rect) bool {
	return o.MinX <= r.MinX && o.MaxX >= r.MaxX && o.MinY <= r.MinY && o.MaxY >= r.MaxY
}

func (r Rect) intersection(o Rect) Rect {
	return Rect{
		MinX: math32.Max(r.MinX, o.MinX),
		MinY: math32.Max(r.MinY, o.MinY),
		MaxX: math32.Min(r.MaxX, o.MaxX),
		MaxY: math32.Min(r.MaxY, o.MaxY),
	}
}

// Subtract removes o from r, returning up to four residual rectangles that
// together cover exactly r \ o. Returns {r} unchanged if they don't
// intersect, and nil if o fully covers r.
func (r Rect) Subtract(o Rect) []Rect {
	if !r.Intersects(o) {
		return []Rect{r}
	}
	if r.IsFullyCoveredBy(o) {
		return nil
	}

	i := r.intersection(o)
	var out []Rect
	if r.MinY < i.MinY {
		out = append(out, Rect{r.MinX, r.MinY, r.MaxX, i.MinY})
	}
	if r.MaxY > i.MaxY {
		out = append(out, Rect{r.MinX, i.MaxY, r.MaxX, r.MaxY})
	}
	if r.MinX < i.MinX {
		out = append(out, Rect{r.MinX, i.MinY, i.MinX, i.MaxY})
	}
	if r.MaxX > i.MaxX {
		out = append(out, Rect{i.MaxX, i.MinY, r.MaxX, i.MaxY})
	}

	final := out[:0]
	for _, rect := range out {
		if !rect.empty() {
			final = append(final, rect)
		}
	}
	return final
}
