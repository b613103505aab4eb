package gpu

import "math"

// Sprite is a drawable positioned in screen space. Z selects the layer
// (floor(Z)) and the draw order inside the compositor.
type Sprite struct {
	X float64
	Y float64
	Z float64

	Picture *Picture

	Scale float64
	Angle float64

	Enabled bool
	Visible bool

	Animation           *Animation
	AnimationMode       AnimationMode
	AnimationState      AnimationState
	AnimationFrameIndex int
	AnimationTime       float64

	LastBlinkTime  float64
	BlinkUntilTime float64
}

func newSprite() *Sprite {
	return &Sprite{
		Scale:   1,
		Visible: true,
	}
}

func (s *Sprite) AnimationStopped() bool {
	return s.AnimationState == AnimationStopped
}

// Layer returns the index of the layer the sprite is drawn in.
func (s *Sprite) Layer() int {
	return layerIndex(s.Z)
}

// Width is the current picture width, or zero without a picture.
func (s *Sprite) Width() float64 {
	if s.Picture == nil {
		return 0
	}
	return float64(s.Picture.W)
}

func (s *Sprite) Height() float64 {
	if s.Picture == nil {
		return 0
	}
	return float64(s.Picture.H)
}

func (s *Sprite) Left() float64 {
	return s.X
}

func (s *Sprite) Top() float64 {
	return s.Y
}

func (s *Sprite) Right() float64 {
	return s.Left() + s.Width()
}

func (s *Sprite) Bottom() float64 {
	return s.Top() + s.Height()
}

func (s *Sprite) CenterX() float64 {
	return (s.Left() + s.Right()) / 2
}

func (s *Sprite) SetCenterX(x float64) {
	s.X = x - s.Width()/2
}

func (s *Sprite) CenterY() float64 {
	return (s.Top() + s.Bottom()) / 2
}

func (s *Sprite) SetCenterY(y float64) {
	s.Y = y - s.Height()/2
}

func layerIndex(z float64) int {
	return int(math.Floor(z))
}
