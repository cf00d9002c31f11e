package dynamo

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestVecHelpers(t *testing.T) {
	a, b := V(1, 2), V(4, 6)
	if d := Dist2(a, b); d != 25 {
		t.Errorf("expected squared distance 25, got %f", d)
	}
	if n := Norm(r2.Sub(b, a)); n != 5 {
		t.Errorf("expected norm 5, got %f", n)
	}
	if n := Norm2(a); n != 5 {
		t.Errorf("expected squared norm 5, got %f", n)
	}
}

func TestVecArithmetic(t *testing.T) {
	a, b := V(1, 2), V(3, 4)
	if got := r2.Add(a, r2.Scale(2, b)); got != V(7, 10) {
		t.Errorf("a+2b: got %v", got)
	}
	if got := r2.Sub(b, a); got != V(2, 2) {
		t.Errorf("b-a: got %v", got)
	}
	if got := r2.Dot(a, b); got != 11 {
		t.Errorf("a.b: got %f", got)
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		v    Vec
		want bool
	}{
		{V(0, 0), true},
		{V(1e300, -1e300), true},
		{V(math.NaN(), 0), false},
		{V(0, math.Inf(-1)), false},
	}
	for _, tt := range tests {
		if got := IsFinite(tt.v); got != tt.want {
			t.Errorf("IsFinite(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestSimulationErrorUnwraps(t *testing.T) {
	err := &SimulationError{Frame: 12, Time: 0.2, Wrapped: ErrUnstable}
	if !errors.Is(err, ErrUnstable) {
		t.Error("expected SimulationError to unwrap to ErrUnstable")
	}
	if err.Error() != "frame 12 (t=0.2000): dynamo: simulation unstable (state diverged)" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
