// Package ppu is the physics processing unit: arcade motion integration and
// movable-vs-immovable collision resolution for axis-aligned bodies.
package ppu

import (
	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
)

// PPU owns the world and every body created through it. It is the only
// component that integrates motion and resolves collisions; entities keep
// non-owning references to their bodies and tweak them between ticks.
type PPU struct {
	world  World
	bodies []*Body

	debugDraw bool
	logger    *log.Logger
}

// New creates an engine with the default 1024x576 world and no gravity.
// A nil logger falls back to the package default logger.
func New(logger *log.Logger) *PPU {
	if logger == nil {
		logger = log.Default()
	}
	return &PPU{
		world:  newWorld(),
		logger: logger.WithPrefix("ppu"),
	}
}

// Reset drops every body. World settings are kept.
func (p *PPU) Reset() {
	p.logger.Debug("reset", "bodies", len(p.bodies))
	p.bodies = nil
}

func (p *PPU) World() *World {
	return &p.world
}

// Bodies returns the live body list in creation order.
func (p *PPU) Bodies() []*Body {
	return p.bodies
}

func (p *PPU) SetWorldBounds(x, y, w, h float64) {
	p.world.Bounds = Rectangle(x, y, w, h)
}

func (p *PPU) SetWorldGravity(x, y float64) {
	p.world.Gravity = Vector{X: x, Y: y}
}

// CreateBody registers a new disabled body with default settings.
func (p *PPU) CreateBody() *Body {
	b := newBody(len(p.bodies))
	p.bodies = append(p.bodies, b)
	return b
}

// EnableBody makes the body take part in motion and collisions.
func (p *PPU) EnableBody(b *Body) {
	b.Enabled = true
}

func (p *PPU) DisableBody(b *Body) {
	b.Enabled = false
}

// SetBodyRectangle replaces the body shape with a rectangle whose top-left
// corner is at leftX, topY relative to the body position.
func (p *PPU) SetBodyRectangle(b *Body, leftX, topY, w, h float64) {
	b.Shape = Rectangle(leftX, topY, w, h)
}

// SetBodyCircle replaces the body shape with a circle centered on cx, cy
// relative to the body position.
func (p *PPU) SetBodyCircle(b *Body, cx, cy, radius float64) {
	b.Shape = Circle(cx, cy, radius)
}

func (p *PPU) SetBodyVelocityBounds(b *Body, minX, maxX, minY, maxY float64) {
	b.MinXVelocity = minX
	b.MaxXVelocity = maxX
	b.MinYVelocity = minY
	b.MaxYVelocity = maxY
}

func (p *PPU) SetBodyCollisionMask(b *Body, mask uint32) {
	b.CollisionMask = mask
}

func (p *PPU) SetBodyAffectedByGravity(b *Body, affected bool) {
	b.AffectedByGravity = affected
}

func (p *PPU) SetBodyPosition(b *Body, x, y float64) {
	b.Position.X = x
	b.Position.Y = y
}

func (p *PPU) SetBodyVelocity(b *Body, vx, vy float64) {
	b.Velocity.X = vx
	b.Velocity.Y = vy
}

func (p *PPU) SetBodyImmovable(b *Body, immovable bool) {
	b.Immovable = immovable
}

func (p *PPU) SetBodyPassable(b *Body, passable Passable) {
	b.Passable = passable
}

func (p *PPU) SetBodyCollideWorldBounds(b *Body, collide bool) {
	b.CollideWorldBounds = collide
}

// Update advances the simulation by one tick. The pass order matters: the
// second world-bound clamp undoes pushes out of the world made by collision
// resolution.
func (p *PPU) Update() {
	for _, b := range p.bodies {
		p.moveBody(b)
	}
	for _, b := range p.bodies {
		b.DebugColor = debugColorOK
		b.Touches.Reset()
	}
	for _, b := range p.bodies {
		p.keepBodyInWorldBound(b)
	}
	for _, a := range p.bodies {
		for _, b := range p.bodies {
			p.collideBodies(a, b)
		}
	}
	for _, b := range p.bodies {
		p.keepBodyInWorldBound(b)
	}
}

func (p *PPU) moveBody(b *Body) {
	if !b.Enabled || b.Immovable {
		return
	}
	b.PreviousPosition = b.Position

	if b.AffectedByGravity {
		AddForce(&b.Velocity, p.world.Gravity)
	}

	b.Velocity.X = cp.Clamp(b.Velocity.X, b.MinXVelocity, b.MaxXVelocity)
	b.Velocity.Y = cp.Clamp(b.Velocity.Y, b.MinYVelocity, b.MaxYVelocity)

	b.Position = b.Position.Add(b.Velocity)
}

func (p *PPU) keepBodyInWorldBound(b *Body) {
	if !b.Enabled || !b.CollideWorldBounds {
		return
	}
	bounds := p.world.Bounds
	if b.Left() < bounds.Left() {
		b.SetLeft(bounds.Left())
	}
	if b.Top() < bounds.Top() {
		b.SetTop(bounds.Top())
	}
	if b.Right() > bounds.Right() {
		b.SetRight(bounds.Right())
	}
	if b.Bottom() > bounds.Bottom() {
		b.SetBottom(bounds.Bottom())
	}
}

func (p *PPU) collideBodies(a, b *Body) {
	if a == b || !a.Enabled || !b.Enabled || a.CollisionMask&b.CollisionMask == 0 {
		return
	}
	switch {
	case a.Movable() && b.Immovable:
		collideMovableAndImmovable(a, b)
	case a.Immovable && b.Movable():
		collideMovableAndImmovable(b, a)
	}
	// Movable bodies pass through each other, as do immovable ones.
}

// collideMovableAndImmovable snaps the movable body against the immovable
// one. Vertical contacts win over horizontal ones so a body falling onto a
// ledge corner lands instead of sticking to the wall. At most one axis is
// corrected per pair and tick.
func collideMovableAndImmovable(m, im *Body) {
	if !overlapsStrictly(m.BB(), im.BB()) {
		return
	}
	m.DebugColor = debugColorColliding
	im.DebugColor = debugColorColliding

	if !im.Passable.FromTopToBottom && m.IsGoingDown() && m.Top() < im.Top() && m.Bottom() > im.Top() {
		m.SetBottom(im.Top())
		m.Touches.Bottom = im
		return
	}
	if !im.Passable.FromBottomToTop && m.IsGoingUp() && m.Bottom() > im.Bottom() && m.Top() < im.Bottom() {
		m.SetTop(im.Bottom())
		m.Touches.Top = im
		return
	}
	if !im.Passable.FromLeftToRight && m.IsGoingRight() && m.Left() < im.Left() && m.Right() > im.Left() {
		m.SetRight(im.Left())
		m.Touches.Right = im
		return
	}
	if !im.Passable.FromRightToLeft && m.IsGoingLeft() && m.Right() > im.Right() && m.Left() < im.Right() {
		m.SetLeft(im.Right())
		m.Touches.Left = im
		return
	}
}

// overlapsStrictly reports whether the interiors of a and b overlap. Boxes
// sharing only an edge do not, unlike cp.BB.Intersects.
func overlapsStrictly(a, b cp.BB) bool {
	return a.L < b.R && b.L < a.R && a.B < b.T && b.B < a.T
}
