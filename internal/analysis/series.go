package analysis

import (
	"fmt"

	"github.com/P4GAN/PhysicsSims/internal/dynamo"
)

// Coordinate selects one axis of a particle.
type Coordinate int

const (
	X Coordinate = iota
	Y
)

func (c Coordinate) String() string {
	if c == X {
		return "x"
	}
	return "y"
}

// ParseCoordinate accepts "x" or "y".
func ParseCoordinate(s string) (Coordinate, error) {
	switch s {
	case "x":
		return X, nil
	case "y":
		return Y, nil
	}
	return 0, fmt.Errorf("%w: coordinate %q", dynamo.ErrParameterBounds, s)
}

// Series extracts one coordinate of particle p from every recorded row.
func Series(states [][]float64, p int, c Coordinate) ([]float64, error) {
	col := 2*p + int(c)
	out := make([]float64, 0, len(states))
	for i, row := range states {
		if p < 0 || col >= len(row) {
			return nil, fmt.Errorf("%w: particle %d in frame %d of width %d", dynamo.ErrUnknownParticle, p, i, len(row)/2)
		}
		out = append(out, row[col])
	}
	return out, nil
}

// Points extracts the path of particle p.
func Points(states [][]float64, p int) ([]dynamo.Vec, error) {
	xs, err := Series(states, p, X)
	if err != nil {
		return nil, err
	}
	ys, err := Series(states, p, Y)
	if err != nil {
		return nil, err
	}
	out := make([]dynamo.Vec, len(xs))
	for i := range xs {
		out[i] = dynamo.V(xs[i], ys[i])
	}
	return out, nil
}
