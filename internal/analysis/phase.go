package analysis

import (
	"strings"

	"github.com/P4GAN/PhysicsSims/internal/dynamo"
)

// PhasePortrait2D holds one coordinate of a particle against its velocity.
type PhasePortrait2D struct {
	Particle   int
	Coordinate Coordinate
	Points     []dynamo.Vec
}

// GeneratePhasePortrait differentiates a recorded coordinate with central
// differences. dt is the frame interval.
func GeneratePhasePortrait(states [][]float64, p int, c Coordinate, dt float64) (*PhasePortrait2D, error) {
	xs, err := Series(states, p, c)
	if err != nil {
		return nil, err
	}

	portrait := &PhasePortrait2D{
		Particle:   p,
		Coordinate: c,
		Points:     make([]dynamo.Vec, 0, len(xs)),
	}
	for i := 1; i+1 < len(xs); i++ {
		v := (xs[i+1] - xs[i-1]) / (2 * dt)
		portrait.Points = append(portrait.Points, dynamo.V(xs[i], v))
	}
	return portrait, nil
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX, minY, maxY := bounds(portrait.Points)

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	// Zero velocity axis
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/(maxY-minY)*float64(height-1))
		for col := 0; col < width; col++ {
			canvas[row][col] = '─'
		}
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / (maxX - minX) * float64(width-1))
		row := height - 1 - int((p.Y-minY)/(maxY-minY)*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// bounds returns the padded extent of points. Flat extents get a unit range.
func bounds(points []dynamo.Vec) (minX, maxX, minY, maxY float64) {
	minX, maxX = points[0].X, points[0].X
	minY, maxY = points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	return minX - rangeX*0.1, maxX + rangeX*0.1, minY - rangeY*0.1, maxY + rangeY*0.1
}
