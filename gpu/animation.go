package gpu

// AnimationMode selects what happens when an animation reaches its end.
type AnimationMode uint8

const (
	// AnimationLoop wraps back to the first frame.
	AnimationLoop AnimationMode = iota
	// AnimationOnce stops on the last frame.
	AnimationOnce
)

func (m AnimationMode) String() string {
	if m == AnimationOnce {
		return "once"
	}
	return "loop"
}

type AnimationState uint8

const (
	AnimationStarted AnimationState = iota
	AnimationStopped
)

// FrameDescription references a spriteset picture by name and shows it for
// Delay milliseconds.
type FrameDescription struct {
	Name  string
	Delay float64
}

// AnimationFrame shows Picture until the animation clock passes EndTime.
type AnimationFrame struct {
	Picture *Picture
	EndTime float64
}

// Animation is an immutable timed sequence of pictures. EndTime values are
// cumulative, so they never decrease along Frames.
type Animation struct {
	Frames        []AnimationFrame
	TotalDuration float64
}

// MaxWidth returns the widest frame picture width.
func (a *Animation) MaxWidth() int {
	width := 0
	for _, f := range a.Frames {
		if f.Picture != nil && f.Picture.W > width {
			width = f.Picture.W
		}
	}
	return width
}

// MaxHeight returns the tallest frame picture height.
func (a *Animation) MaxHeight() int {
	height := 0
	for _, f := range a.Frames {
		if f.Picture != nil && f.Picture.H > height {
			height = f.Picture.H
		}
	}
	return height
}
