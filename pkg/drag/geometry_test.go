package drag

import "testing"

func TestRectOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want float64
	}{
		{"identical", Rect{0, 0, 10, 10}, Rect{0, 0, 10, 10}, 100},
		{"partial", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, 25},
		{"touching edges", Rect{0, 0, 10, 10}, Rect{10, 0, 10, 10}, 0},
		{"disjoint", Rect{0, 0, 10, 10}, Rect{50, 50, 10, 10}, 0},
		{"contained", Rect{0, 0, 10, 10}, Rect{2, 2, 2, 2}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlap(tt.b); got != tt.want {
				t.Errorf("Overlap() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectHelpers(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 20}
	if c := r.Center(); c != (Point{5, 10}) {
		t.Errorf("Center() = %v", c)
	}
	if m := r.Translate(Point{3, -4}); m != (Rect{3, -4, 10, 20}) {
		t.Errorf("Translate() = %v", m)
	}
	if !(Rect{W: 0, H: 5}).Empty() || r.Empty() {
		t.Error("Empty() mismatch")
	}
	if d := (Point{0, 0}).Dist(Point{3, 4}); d != 5 {
		t.Errorf("Dist() = %v", d)
	}
}
