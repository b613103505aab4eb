package ppu

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	debugMarkerSize   = 16
	debugStrokeWidth  = 1
	debugPointMaxSize = 1
)

func (p *PPU) SetDebugDraw(enabled bool) {
	p.debugDraw = enabled
}

func (p *PPU) ToggleDebugDraw() {
	p.debugDraw = !p.debugDraw
	p.logger.Debug("debug draw", "enabled", p.debugDraw)
}

func (p *PPU) DebugDrawEnabled() bool {
	return p.debugDraw
}

// DebugDraw strokes every enabled body in its debug color, offset by the
// scroll. Point bodies (no shape) get a crosshair marker so sensors stay
// visible.
func (p *PPU) DebugDraw(screen *ebiten.Image, scrollX, scrollY float64) {
	if !p.debugDraw || screen == nil {
		return
	}
	drawer := &bodyDebugDrawer{screen: screen, scrollX: scrollX, scrollY: scrollY}
	for _, b := range p.bodies {
		if !b.Enabled {
			continue
		}
		clr := b.DebugColor
		if clr == nil {
			clr = debugColorOK
		}
		if b.Width() < debugPointMaxSize && b.Height() < debugPointMaxSize {
			drawer.drawMarker(b.CenterX(), b.CenterY(), clr)
			continue
		}
		drawer.drawRect(b.Left(), b.Top(), b.Width(), b.Height(), clr)
	}
}

type bodyDebugDrawer struct {
	screen  *ebiten.Image
	scrollX float64
	scrollY float64
}

func (d *bodyDebugDrawer) toScreen(x, y float64) (float32, float32) {
	return float32(x + d.scrollX), float32(y + d.scrollY)
}

func (d *bodyDebugDrawer) drawRect(x, y, w, h float64, clr color.Color) {
	sx, sy := d.toScreen(x, y)
	vector.StrokeRect(d.screen, sx, sy, float32(w), float32(h), debugStrokeWidth, clr, false)
}

func (d *bodyDebugDrawer) drawMarker(cx, cy float64, clr color.Color) {
	x, y := d.toScreen(cx, cy)
	vector.StrokeLine(d.screen, x-debugMarkerSize, y, x+debugMarkerSize, y, debugStrokeWidth, clr, false)
	vector.StrokeLine(d.screen, x, y-debugMarkerSize, x, y+debugMarkerSize, debugStrokeWidth, clr, false)
	vector.StrokeCircle(d.screen, x, y, debugMarkerSize, debugStrokeWidth, clr, false)
}
