package gpu

import "github.com/hajimehoshi/ebiten/v2"

// Layer holds the compositing state shared by every sprite whose floor(Z)
// equals the layer index.
type Layer struct {
	Index int

	X float64
	Y float64

	ParallaxX float64
	ParallaxY float64

	Scale float64
	Angle float64
	Alpha float64

	// Filter tints every sprite of the layer. The zero value leaves colors
	// unchanged.
	Filter ebiten.ColorScale

	Enabled bool
}

func newLayer(index int) *Layer {
	return &Layer{
		Index:     index,
		ParallaxX: 1,
		ParallaxY: 1,
		Scale:     1,
		Alpha:     1,
		Enabled:   true,
	}
}

// Offset returns the layer translation for the given world scroll.
func (l *Layer) Offset(scrollX, scrollY float64) (float64, float64) {
	return l.X + l.ParallaxX*scrollX, l.Y + l.ParallaxY*scrollY
}
