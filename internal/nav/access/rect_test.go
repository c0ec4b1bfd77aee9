package access

import "testing"

func TestSubtractNoOverlapReturnsOriginal(t *testing.T) {
	r := Rect{0, 0, 2, 2}
	o := Rect{5, 5, 6, 6}
	got := r.Subtract(o)
	if len(got) != 1 || got[0] != r {
		t.Fatalf("got %v, want [%v]", got, r)
	}
}

func TestSubtractFullCoverReturnsEmpty(t *testing.T) {
	r := Rect{0, 0, 2, 2}
	o := Rect{-1, -1, 3, 3}
	got := r.Subtract(o)
	if len(got) != 0 {
		t.Fatalf("got %v, want none", got)
	}
}

func TestSubtractCenterPunchReturnsFourResiduals(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	o := Rect{4, 4, 6, 6}
	got := r.Subtract(o)
	if len(got) != 4 {
		t.Fatalf("got %d residuals, want 4: %v", len(got), got)
	}
	var area float32
	for _, rect := range got {
		area += (rect.MaxX - rect.MinX) * (rect.MaxY - rect.MinY)
	}
	want := float32(10*10 - 2*2)
	if area != want {
		t.Fatalf("residual area = %v, want %v", area, want)
	}
}

func TestSubtractEdgeOverlapReturnsOneStrip(t *testing.T) {
	// o covers the full width but only the top half: a single bottom strip.
	r := Rect{0, 0, 10, 10}
	o := Rect{0, 5, 10, 15}
	got := r.Subtract(o)
	if len(got) != 1 {
		t.Fatalf("got %d residuals, want 1: %v", len(got), got)
	}
	want := Rect{0, 0, 10, 5}
	if got[0] != want {
		t.Fatalf("got %v, want %v", got[0], want)
	}
}

func TestIsFullyCoveredBy(t *testing.T) {
	inner := Rect{1, 1, 2, 2}
	outer := Rect{0, 0, 3, 3}
	if !inner.IsFullyCoveredBy(outer) {
		t.Fatal("expected inner to be fully covered by outer")
	}
	if outer.IsFullyCoveredBy(inner) {
		t.Fatal("outer should not be covered by inner")
	}
}
