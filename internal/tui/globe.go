package tui

import (
	"math"

	"github.com/irokhan/earth-trending/internal/dotfield"
	"github.com/irokhan/earth-trending/internal/geo"
)

// MarkKind tags a screen cell occupied by an overlay marker. Higher kinds
// win when markers collide on a cell.
type MarkKind int

const (
	MarkNone MarkKind = iota
	MarkCountry
	MarkListener
	MarkSelected
)

// Marker is a geographic overlay the globe draws on top of the dot field.
type Marker struct {
	Point geo.GeoPoint
	Kind  MarkKind
}

func (k MarkKind) glyph() rune {
	switch k {
	case MarkCountry:
		return 'o'
	case MarkListener:
		return '*'
	case MarkSelected:
		return '@'
	}
	return ' '
}

// Globe turns a generated dot field into terminal frames. It owns the
// DotRecords for the scene's lifetime; the generator is never re-run unless
// the sphere radius changes.
type Globe struct {
	Radius      float64 // screen radius in cells
	Width       int
	Height      int
	AspectRatio float64

	sphereRadius float64 // world radius the dots were projected at
	dots         []dotfield.DotRecord
}

// NewGlobe sizes a globe for the given screen area. Dots were generated at
// sphereRadius; rendering scales them down to the screen radius.
func NewGlobe(width, height int, aspectRatio, sphereRadius float64, dots []dotfield.DotRecord) *Globe {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	effectiveHeight := float64(height) * aspectRatio
	radius := math.Min(float64(width)/2.5, effectiveHeight/2.5)
	if radius < 1.0 {
		radius = 1.0
	}

	return &Globe{
		Radius:       radius,
		Width:        width,
		Height:       height,
		AspectRatio:  aspectRatio,
		sphereRadius: sphereRadius,
		dots:         dots,
	}
}

// projectPoint rotates a world-space point by the current spin and projects
// it orthographically onto the screen. Points on the far hemisphere are not
// visible.
func (g *Globe) projectPoint(p geo.Point3, rotation float64) (int, int, bool) {
	p = p.RotateY(rotation)
	if p.Z < 0 {
		return 0, 0, false
	}

	scale := g.Radius / g.sphereRadius
	screenX := int(p.X*scale) + g.Width/2
	screenY := int(-p.Y*scale/g.AspectRatio) + g.Height/2

	if screenX < 0 || screenX >= g.Width || screenY < 0 || screenY >= g.Height {
		return 0, 0, false
	}
	return screenX, screenY, true
}

// render produces one frame: the rune grid and a parallel marker layer the
// caller uses to style overlay cells.
func (g *Globe) render(rotation float64, charset Charset, markers []Marker) ([][]rune, [][]MarkKind) {
	if g.Width <= 0 || g.Height <= 0 {
		return [][]rune{{' '}}, [][]MarkKind{{MarkNone}}
	}

	screen := make([][]rune, g.Height)
	marks := make([][]MarkKind, g.Height)
	density := make([][]float64, g.Height)
	for i := range screen {
		screen[i] = make([]rune, g.Width)
		marks[i] = make([]MarkKind, g.Width)
		density[i] = make([]float64, g.Width)
		for j := range screen[i] {
			screen[i][j] = ' '
		}
	}

	// Accumulate the dot field, with a little bleed into neighbor cells so
	// coastlines read as edges instead of isolated specks.
	for _, dot := range g.dots {
		x, y, visible := g.projectPoint(dot.Position, rotation)
		if !visible {
			continue
		}
		density[y][x] += 1.0
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx >= 0 && nx < g.Width && ny >= 0 && ny < g.Height {
					density[ny][nx] += 0.05
				}
			}
		}
	}

	// Circular limb so the sphere reads even over open ocean.
	centerX, centerY := g.Width/2, g.Height/2
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			dx := float64(x - centerX)
			dy := float64(y-centerY) * g.AspectRatio
			distance := math.Sqrt(dx*dx + dy*dy)
			if distance > g.Radius-0.5 && distance < g.Radius+0.5 {
				density[y][x] += 0.2
			}
		}
	}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			screen[y][x] = densityToChar(density[y][x], charset)
		}
	}

	for _, m := range markers {
		pos := geo.Project(m.Point.Lat, m.Point.Lon, g.sphereRadius)
		x, y, visible := g.projectPoint(pos, rotation)
		if !visible {
			continue
		}
		if m.Kind > marks[y][x] {
			marks[y][x] = m.Kind
			screen[y][x] = m.Kind.glyph()
		}
	}

	return screen, marks
}
