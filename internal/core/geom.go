// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Coord is a cell position on a game grid.
type Coord struct {
	X, Y int
}

// Add returns the component-wise sum of two coordinates.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// InBounds reports whether the coordinate lies within a size x size grid.
func (c Coord) InBounds(size int) bool {
	return c.X >= 0 && c.X < size && c.Y >= 0 && c.Y < size
}

// Heading is one of the four grid directions.
type Heading int

const (
	HeadingRight Heading = iota
	HeadingDown
	HeadingLeft
	HeadingUp
)

// Vector returns the unit step for the heading.
// Y grows downwards, matching screen rows.
func (h Heading) Vector() Coord {
	switch h {
	case HeadingUp:
		return Coord{X: 0, Y: -1}
	case HeadingDown:
		return Coord{X: 0, Y: 1}
	case HeadingLeft:
		return Coord{X: -1, Y: 0}
	case HeadingRight:
		return Coord{X: 1, Y: 0}
	default:
		return Coord{}
	}
}

// Opposite returns the heading pointing the other way.
func (h Heading) Opposite() Heading {
	switch h {
	case HeadingUp:
		return HeadingDown
	case HeadingDown:
		return HeadingUp
	case HeadingLeft:
		return HeadingRight
	default:
		return HeadingLeft
	}
}

// Valid reports whether h is one of the four named headings.
func (h Heading) Valid() bool {
	return h >= HeadingRight && h <= HeadingUp
}

func (h Heading) String() string {
	switch h {
	case HeadingUp:
		return "up"
	case HeadingDown:
		return "down"
	case HeadingLeft:
		return "left"
	case HeadingRight:
		return "right"
	default:
		return "unknown"
	}
}

// HeadingForAction maps a directional action to a heading.
func HeadingForAction(a Action) (Heading, bool) {
	switch a {
	case ActionUp:
		return HeadingUp, true
	case ActionDown:
		return HeadingDown, true
	case ActionLeft:
		return HeadingLeft, true
	case ActionRight:
		return HeadingRight, true
	default:
		return 0, false
	}
}

// Rect represents an axis-aligned box on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
