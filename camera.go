package main

import (
	"math"

	"github.com/milk9111/newton/common"
	"github.com/milk9111/newton/ppu"
)

// Camera follows a world point and keeps the view inside the world bounds.
// Its position is the world coordinate shown at the screen center.
type Camera struct {
	PosX float64
	PosY float64

	screenW float64
	screenH float64
	bounds  ppu.Shape

	// smoothing factor (0..1). higher -> faster follow. 0 snaps.
	smooth float64
}

func NewCamera(screenW, screenH int, bounds ppu.Shape) *Camera {
	return &Camera{
		screenW: float64(screenW),
		screenH: float64(screenH),
		bounds:  bounds,
		smooth:  0.15,
	}
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = common.Bound(0, f, 1)
}

// Snap moves the camera onto the target without smoothing.
func (c *Camera) Snap(targetX, targetY float64) {
	c.PosX = targetX
	c.PosY = targetY
	c.clamp()
}

// Update moves the camera toward the target. Call it once per tick to get
// consistent smoothing.
func (c *Camera) Update(targetX, targetY float64) {
	if c.smooth <= 0 {
		c.PosX = targetX
		c.PosY = targetY
	} else {
		c.PosX += (targetX - c.PosX) * c.smooth
		c.PosY += (targetY - c.PosY) * c.smooth
	}
	c.clamp()
}

// Scroll returns the gpu scroll that shows the camera position at the
// screen center, snapped to whole pixels.
func (c *Camera) Scroll() (float64, float64) {
	return -math.Round(c.PosX - c.screenW/2), -math.Round(c.PosY - c.screenH/2)
}

func (c *Camera) clamp() {
	c.PosX = clampView(c.PosX, c.bounds.Left(), c.bounds.Right(), c.screenW/2)
	c.PosY = clampView(c.PosY, c.bounds.Top(), c.bounds.Bottom(), c.screenH/2)
}

// clampView keeps a view of half size half inside [lo, hi], or centers it
// when the range is smaller than the view.
func clampView(pos, lo, hi, half float64) float64 {
	minPos := lo + half
	maxPos := hi - half
	if maxPos < minPos {
		return (lo + hi) / 2
	}
	return common.Bound(minPos, pos, maxPos)
}
