package ppu

// CheckIfBodiesIntersects reports whether the bounding boxes of a and b
// touch or overlap. Unlike collision resolution, shared edges count.
func (p *PPU) CheckIfBodiesIntersects(a, b *Body) bool {
	return a.BB().Intersects(b.BB())
}

// CheckIfBodyStompOther reports whether stomper is falling onto stomped.
func (p *PPU) CheckIfBodyStompOther(stomper, stomped *Body) bool {
	return p.CheckIfBodiesIntersects(stomper, stomped) && stomper.Bottom() >= stomped.Top() && stomper.IsGoingDown()
}

// CheckIfBodyRunIntoOther reports whether runner moves horizontally into runned.
func (p *PPU) CheckIfBodyRunIntoOther(runner, runned *Body) bool {
	if !p.CheckIfBodiesIntersects(runner, runned) {
		return false
	}
	return (runner.Right() > runned.Left() && runner.IsGoingRight()) ||
		(runner.Left() < runned.Right() && runner.IsGoingLeft())
}

// CheckIfBodyIsInWorldBound reports whether any part of the body lies inside
// the world bounds, edges included.
func (p *PPU) CheckIfBodyIsInWorldBound(b *Body) bool {
	return p.world.Bounds.BB().Intersects(b.BB())
}
