// Package cursor holds the absolute pointer position on the target surface.
package cursor

import "github.com/mobile-next/remotepad/types"

// EdgeMargin keeps the cursor glyph fully on-surface at the right and bottom edges.
const EdgeMargin = 5.0

// DefaultStart is where the cursor sits before any motion is applied.
var DefaultStart = types.Point{X: 500, Y: 500}

// Model accumulates relative motion into a clamped absolute position.
// It is not safe for concurrent use; the engine serializes access.
type Model struct {
	position types.Point
	bounds   types.Size
}

// NewModel creates a cursor at start with no known bounds.
func NewModel(start types.Point) *Model {
	return &Model{position: start}
}

// ApplyDelta moves the cursor by (dx, dy) and clamps each axis independently,
// so the in-bounds component of a diagonal motion is still applied.
func (m *Model) ApplyDelta(dx, dy float64) types.Point {
	m.position.X = clamp(m.position.X+dx, float64(m.bounds.Width)-EdgeMargin)
	m.position.Y = clamp(m.position.Y+dy, float64(m.bounds.Height)-EdgeMargin)
	return m.position
}

// SetBounds replaces the surface bounds. The position is not re-clamped here;
// the next ApplyDelta enforces the new bounds.
func (m *Model) SetBounds(size types.Size) {
	m.bounds = size
}

// Position returns the current cursor position.
func (m *Model) Position() types.Point {
	return m.position
}

// Bounds returns the last bounds supplied with SetBounds.
func (m *Model) Bounds() types.Size {
	return m.bounds
}

func clamp(v, max float64) float64 {
	if max < 0 {
		max = 0
	}
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
