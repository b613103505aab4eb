package ppu

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"
)

const (
	defaultMinVelocity = -10000
	defaultMaxVelocity = 10000
)

var (
	debugColorOK        color.Color = colornames.Lime
	debugColorColliding color.Color = colornames.Red
)

// Passable lets movable bodies cross an immovable body in the given
// directions. A true flag suppresses collision resolution for that approach.
type Passable struct {
	FromLeftToRight bool
	FromRightToLeft bool
	FromTopToBottom bool
	FromBottomToTop bool
}

// Touches records the immovable body a movable body was pushed against on
// each side during the last Update.
type Touches struct {
	Left   *Body
	Right  *Body
	Top    *Body
	Bottom *Body
}

func (t *Touches) Reset() {
	t.Left = nil
	t.Right = nil
	t.Top = nil
	t.Bottom = nil
}

// Body is an arcade physics body. Bodies are created by PPU.CreateBody and
// are never removed from the engine, only disabled.
type Body struct {
	ID  int
	Tag string

	Position         Vector
	PreviousPosition Vector
	Velocity         Vector

	MinXVelocity float64
	MaxXVelocity float64
	MinYVelocity float64
	MaxYVelocity float64

	AffectedByGravity bool
	Immovable         bool
	Passable          Passable

	// CollisionMask is ANDed with the other body's mask; zero means the two
	// bodies never interact.
	CollisionMask uint32

	Shape              Shape
	CollideWorldBounds bool
	Touches            Touches
	Enabled            bool

	DebugColor color.Color
}

func newBody(id int) *Body {
	return &Body{
		ID:                id,
		MinXVelocity:      defaultMinVelocity,
		MaxXVelocity:      defaultMaxVelocity,
		MinYVelocity:      defaultMinVelocity,
		MaxYVelocity:      defaultMaxVelocity,
		AffectedByGravity: true,
		CollisionMask:     1,
		DebugColor:        debugColorOK,
	}
}

func (b *Body) Movable() bool {
	return !b.Immovable
}

func (b *Body) SetMovable(movable bool) {
	b.Immovable = !movable
}

func (b *Body) Left() float64 {
	return b.Position.X + b.Shape.Left()
}

func (b *Body) SetLeft(x float64) {
	b.Position.X = x - b.Shape.Left()
}

func (b *Body) Top() float64 {
	return b.Position.Y + b.Shape.Top()
}

func (b *Body) SetTop(y float64) {
	b.Position.Y = y - b.Shape.Top()
}

func (b *Body) Right() float64 {
	return b.Position.X + b.Shape.Right()
}

func (b *Body) SetRight(x float64) {
	b.Position.X = x - b.Shape.Right()
}

func (b *Body) Bottom() float64 {
	return b.Position.Y + b.Shape.Bottom()
}

func (b *Body) SetBottom(y float64) {
	b.Position.Y = y - b.Shape.Bottom()
}

func (b *Body) Width() float64 {
	return b.Shape.Width()
}

func (b *Body) Height() float64 {
	return b.Shape.Height()
}

func (b *Body) CenterX() float64 {
	return (b.Left() + b.Right()) / 2
}

func (b *Body) SetCenterX(x float64) {
	b.Position.X = x - b.Shape.CenterX()
}

func (b *Body) CenterY() float64 {
	return (b.Top() + b.Bottom()) / 2
}

func (b *Body) SetCenterY(y float64) {
	b.Position.Y = y - b.Shape.CenterY()
}

func (b *Body) PreviousLeft() float64 {
	return b.PreviousPosition.X + b.Shape.Left()
}

func (b *Body) PreviousTop() float64 {
	return b.PreviousPosition.Y + b.Shape.Top()
}

func (b *Body) PreviousRight() float64 {
	return b.PreviousPosition.X + b.Shape.Right()
}

func (b *Body) PreviousBottom() float64 {
	return b.PreviousPosition.Y + b.Shape.Bottom()
}

func (b *Body) PreviousCenterX() float64 {
	return b.PreviousPosition.X + b.Shape.CenterX()
}

func (b *Body) PreviousCenterY() float64 {
	return b.PreviousPosition.Y + b.Shape.CenterY()
}

func (b *Body) IsGoingLeft() bool {
	return b.Position.X < b.PreviousPosition.X
}

func (b *Body) IsGoingRight() bool {
	return b.Position.X > b.PreviousPosition.X
}

func (b *Body) IsGoingUp() bool {
	return b.Position.Y < b.PreviousPosition.Y
}

func (b *Body) IsGoingDown() bool {
	return b.Position.Y > b.PreviousPosition.Y
}

// BB returns the world-space bounding box. Screen space is y-down, so B holds
// the top edge and T the bottom edge.
func (b *Body) BB() cp.BB {
	return cp.BB{L: b.Left(), B: b.Top(), R: b.Right(), T: b.Bottom()}
}
