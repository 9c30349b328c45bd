package types

import "math"

// Point is a position in surface pixels. Fractional values are kept so that
// small relative motions accumulate instead of being truncated away.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) (dx, dy float64) {
	return p.X - q.X, p.Y - q.Y
}

// Distance returns the euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rounded returns integer coordinates, as consumed by injection backends.
func (p Point) Rounded() (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}

// Size represents width and height dimensions.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// IsZero reports whether the size carries no usable area.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}
