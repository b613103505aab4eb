package ppu

import "github.com/milk9111/newton/common"

// World holds the bounds and gravity shared by every body of a PPU.
type World struct {
	Bounds  Shape
	Gravity Vector
}

func newWorld() World {
	return World{
		Bounds: Rectangle(0, 0, common.ScreenWidth, common.ScreenHeight),
	}
}
