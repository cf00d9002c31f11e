package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/P4GAN/PhysicsSims/internal/dynamo"
	"github.com/P4GAN/PhysicsSims/internal/sim"
	"github.com/P4GAN/PhysicsSims/internal/viewport"
)

const (
	backgroundColor = "#0a0a0a"
	particleColor   = "#e0e0e0"
	pinColor        = "#ff5f87"
	anchorColor     = "#00ff87"
)

// FrameToSVG draws a frame the way the live views do: springs as lines and
// particles as circles with pixel radii.
func FrameToSVG(f sim.Frame, m viewport.Mapping) string {
	d := f.Display(m)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g stroke-width="1.5">
`, m.SurfaceWidth, m.SurfaceHeight, m.SurfaceWidth, m.SurfaceHeight, backgroundColor))

	for _, l := range d.Lines {
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>
`, l.From.X, l.From.Y, l.To.X, l.To.Y, StrainColor(l.Strain)))
	}

	sb.WriteString("</g>\n<g>\n")
	for _, c := range d.Circles {
		fill := particleColor
		switch {
		case c.Anchor:
			fill = anchorColor
		case c.Fixed:
			fill = pinColor
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, c.Center.X, c.Center.Y, math.Max(c.Radius, 1), fill))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// StrainColor shades stretched springs red and compressed springs blue.
// Strain saturates at ±50%.
func StrainColor(strain float64) string {
	s := math.Max(-1, math.Min(1, strain*2))
	if math.IsNaN(s) {
		s = 0
	}
	base := 0xc0
	switch {
	case s > 0:
		return fmt.Sprintf("#%02x%02x%02x", base+int(s*0x3f), int(float64(base)*(1-s)), int(float64(base)*(1-s)))
	case s < 0:
		return fmt.Sprintf("#%02x%02x%02x", int(float64(base)*(1+s)), int(float64(base)*(1+s)), base-int(s*0x3f))
	}
	return fmt.Sprintf("#%02x%02x%02x", base, base, base)
}

// TrajectoryToSVG creates an SVG from trajectory data
func TrajectoryToSVG(points []dynamo.Vec, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	// Find bounds
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, backgroundColor, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
