package ctrl

// Button identifies one virtual pad button.
type Button uint8

const (
	ButtonUp Button = iota
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonA
	ButtonB
	ButtonStart
	ButtonEsc

	NumButtons
)

var buttonNames = [NumButtons]string{
	ButtonUp:    "up",
	ButtonDown:  "down",
	ButtonLeft:  "left",
	ButtonRight: "right",
	ButtonA:     "a",
	ButtonB:     "b",
	ButtonStart: "start",
	ButtonEsc:   "esc",
}

func (b Button) String() string {
	if b < NumButtons {
		return buttonNames[b]
	}
	return "unknown"
}

// Buttons is the held state of every button of a pad.
type Buttons [NumButtons]bool

// Pad is a virtual gamepad. Gameplay reads held buttons with Pressed and
// single presses with TestAndResetIfPressed.
type Pad struct {
	Name string

	pressed       Buttons
	wasNotPressed Buttons
}

func (p *Pad) Pressed(b Button) bool {
	return p.pressed[b]
}

func (p *Pad) Set(b Button, down bool) {
	p.pressed[b] = down
}

// Buttons returns a copy of the held state.
func (p *Pad) Buttons() Buttons {
	return p.pressed
}

// TestAndResetIfPressed reports true once per press: the button must have
// been seen released since the last time it returned true.
func (p *Pad) TestAndResetIfPressed(b Button) bool {
	if p.wasNotPressed[b] && p.pressed[b] {
		p.wasNotPressed[b] = false
		return true
	}
	return false
}

// Reset forgets releases seen so far, so buttons held across a scene change
// do not count as new presses.
func (p *Pad) Reset() {
	p.wasNotPressed = Buttons{}
}

func (p *Pad) resetStates() {
	p.pressed = Buttons{}
}

func (p *Pad) merge(src Buttons) {
	for i, down := range src {
		p.pressed[i] = p.pressed[i] || down
	}
}

func (p *Pad) updateWasNotPressed() {
	for i, down := range p.pressed {
		if !down {
			p.wasNotPressed[i] = true
		}
	}
}
