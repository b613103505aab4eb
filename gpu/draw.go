package gpu

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// DrawFrame advances animations and composes every layer onto screen.
func (g *GPU) DrawFrame(screen *ebiten.Image) {
	g.UpdateSprites()
	if g.Background != nil {
		screen.Fill(g.Background)
	}
	for _, b := range g.Drawables() {
		g.drawBatch(screen, b)
	}
}

func (g *GPU) drawBatch(screen *ebiten.Image, b Batch) {
	l := b.Layer

	var layerGeoM ebiten.GeoM
	if l.Angle != 0 || l.Scale != 1 {
		cx := float64(g.screenWidth) / 2
		cy := float64(g.screenHeight) / 2
		layerGeoM.Translate(-cx, -cy)
		layerGeoM.Scale(l.Scale, l.Scale)
		layerGeoM.Rotate(l.Angle)
		layerGeoM.Translate(cx, cy)
	}
	layerGeoM.Translate(l.Offset(g.scrollX, g.scrollY))

	var layerColor ebiten.ColorScale
	layerColor.ScaleWithColorScale(l.Filter)
	if l.Alpha < 1 {
		layerColor.ScaleAlpha(float32(l.Alpha))
	}

	for _, s := range b.Sprites {
		img := s.Picture.Image()
		if img == nil {
			continue
		}

		op := &ebiten.DrawImageOptions{}
		w := float64(s.Picture.W)
		h := float64(s.Picture.H)
		if s.Scale != 1 || s.Angle != 0 {
			op.GeoM.Translate(-w/2, -h/2)
			op.GeoM.Scale(s.Scale, s.Scale)
			op.GeoM.Rotate(s.Angle)
			op.GeoM.Translate(s.X+w/2, s.Y+h/2)
		} else {
			op.GeoM.Translate(s.X, s.Y)
		}
		op.GeoM.Concat(layerGeoM)
		op.ColorScale = layerColor

		screen.DrawImage(img, op)
	}
}
