package utils

import (
	"math"
	"testing"
)

func TestRectIntersects(t *testing.T) {
	ground := Rect{X: 0, Y: 500, W: 800, H: 100}

	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"resting on top edge", Rect{X: 100, Y: 420, W: 50, H: 80}, false},
		{"sunk into top", Rect{X: 100, Y: 420.6, W: 50, H: 80}, true},
		{"fully above", Rect{X: 100, Y: 0, W: 50, H: 80}, false},
		{"touching left edge", Rect{X: -50, Y: 520, W: 50, H: 80}, false},
		{"overlapping left edge", Rect{X: -49, Y: 520, W: 50, H: 80}, true},
		{"contained", Rect{X: 10, Y: 510, W: 5, H: 5}, true},
		{"past right edge", Rect{X: 800, Y: 520, W: 50, H: 80}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Intersects(ground); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			if got := ground.Intersects(tt.r); got != tt.want {
				t.Errorf("Intersects() is not symmetric for %+v", tt.r)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := Rect{X: 200, Y: 400, W: 200, H: 30}
	if r.Right() != 400 || r.Bottom() != 430 {
		t.Errorf("edges: got right=%v bottom=%v", r.Right(), r.Bottom())
	}
	cx, cy := r.Center()
	if cx != 300 || cy != 415 {
		t.Errorf("center: got (%v, %v)", cx, cy)
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(0, -1, 1e300) {
		t.Error("finite values reported as non-finite")
	}
	if IsFinite(1, math.NaN()) {
		t.Error("NaN not detected")
	}
	if IsFinite(math.Inf(-1)) {
		t.Error("-Inf not detected")
	}
	if !IsFinite() {
		t.Error("empty input should be finite")
	}
}

func TestSign(t *testing.T) {
	if Sign(3) != 1 || Sign(-0.2) != -1 || Sign(0) != 0 {
		t.Error("Sign returned unexpected values")
	}
}
