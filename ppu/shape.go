package ppu

import "github.com/jakecoffman/cp"

// ShapeKind tags the geometry held by a Shape.
type ShapeKind uint8

const (
	// ShapeNone is a zero-sized point at the body position.
	ShapeNone ShapeKind = iota
	ShapeRectangle
	ShapeCircle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRectangle:
		return "rectangle"
	case ShapeCircle:
		return "circle"
	default:
		return "none"
	}
}

// Shape is body-local collision geometry. Shapes are values: a body gets a
// new shape by assignment, never by mutating a shared instance.
//
// Rectangles use X, Y as the top-left corner with W, H extents. Circles use
// X, Y as the center with Radius.
type Shape struct {
	Kind   ShapeKind
	X      float64
	Y      float64
	W      float64
	H      float64
	Radius float64
}

// Rectangle returns a rectangle shape with its top-left corner at x, y.
func Rectangle(x, y, w, h float64) Shape {
	return Shape{Kind: ShapeRectangle, X: x, Y: y, W: w, H: h}
}

// Circle returns a circle shape centered on cx, cy.
func Circle(cx, cy, radius float64) Shape {
	return Shape{Kind: ShapeCircle, X: cx, Y: cy, Radius: radius}
}

func (s Shape) Left() float64 {
	switch s.Kind {
	case ShapeRectangle:
		return s.X
	case ShapeCircle:
		return s.X - s.Radius
	default:
		return 0
	}
}

func (s Shape) Top() float64 {
	switch s.Kind {
	case ShapeRectangle:
		return s.Y
	case ShapeCircle:
		return s.Y - s.Radius
	default:
		return 0
	}
}

func (s Shape) Right() float64 {
	switch s.Kind {
	case ShapeRectangle:
		return s.X + s.W
	case ShapeCircle:
		return s.X + s.Radius
	default:
		return 0
	}
}

func (s Shape) Bottom() float64 {
	switch s.Kind {
	case ShapeRectangle:
		return s.Y + s.H
	case ShapeCircle:
		return s.Y + s.Radius
	default:
		return 0
	}
}

func (s Shape) Width() float64 {
	return s.Right() - s.Left()
}

func (s Shape) Height() float64 {
	return s.Bottom() - s.Top()
}

func (s Shape) CenterX() float64 {
	return (s.Left() + s.Right()) / 2
}

func (s Shape) CenterY() float64 {
	return (s.Top() + s.Bottom()) / 2
}

// BB returns the shape's box with B as the top edge, like Body.BB.
func (s Shape) BB() cp.BB {
	return cp.BB{L: s.Left(), B: s.Top(), R: s.Right(), T: s.Bottom()}
}
