// Package ctrl maps keyboard and gamepad input onto virtual pads.
package ctrl

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// KeyMapper applies a keyboard transition to pad and reports whether the key
// is mapped.
type KeyMapper func(pad *Pad, key ebiten.Key, down bool) bool

// DefaultKeyMapper maps the arrows, Z (A), X (B), Enter (start) and
// Escape (esc).
func DefaultKeyMapper(pad *Pad, key ebiten.Key, down bool) bool {
	switch key {
	case ebiten.KeyArrowUp:
		pad.Set(ButtonUp, down)
	case ebiten.KeyArrowDown:
		pad.Set(ButtonDown, down)
	case ebiten.KeyArrowLeft:
		pad.Set(ButtonLeft, down)
	case ebiten.KeyArrowRight:
		pad.Set(ButtonRight, down)
	case ebiten.KeyZ:
		pad.Set(ButtonA, down)
	case ebiten.KeyX:
		pad.Set(ButtonB, down)
	case ebiten.KeyEnter:
		pad.Set(ButtonStart, down)
	case ebiten.KeyEscape:
		pad.Set(ButtonEsc, down)
	default:
		return false
	}
	return true
}

// Controller owns one pad per player plus the keyboard pad. Scenes install
// their own KeyMapper on entry.
type Controller struct {
	KeyMapper KeyMapper
	Keys      KeySource
	Gamepads  GamepadSource

	pads     []*Pad
	keyboard *Pad
	keyUp    map[ebiten.Key]func()
	keyBuf   []ebiten.Key
}

// New creates a controller for players pads reading ebiten input.
func New(players int) *Controller {
	if players < 1 {
		players = 1
	}
	c := &Controller{
		KeyMapper: DefaultKeyMapper,
		Keys:      EbitenKeys{},
		Gamepads:  EbitenGamepads{},
		keyboard:  &Pad{Name: "keyboard"},
		keyUp:     make(map[ebiten.Key]func()),
	}
	for i := 0; i < players; i++ {
		c.pads = append(c.pads, &Pad{Name: fmt.Sprintf("player%d", i+1)})
	}
	return c
}

// SetKeyMapper installs mapper, or the default mapper when nil. The keyboard
// pad is cleared so keys held under the old mapping do not stick.
func (c *Controller) SetKeyMapper(mapper KeyMapper) {
	if mapper == nil {
		mapper = DefaultKeyMapper
	}
	c.KeyMapper = mapper
	c.keyboard.resetStates()
}

// OnKeyUp runs fn whenever key is released, independently of the mapper.
func (c *Controller) OnKeyUp(key ebiten.Key, fn func()) {
	c.keyUp[key] = fn
}

// Poll refreshes every pad from the current input. It must run once per
// tick before gameplay reads the pads.
func (c *Controller) Poll() {
	for _, p := range c.pads {
		p.resetStates()
	}

	c.keyBuf = c.Keys.AppendJustPressedKeys(c.keyBuf[:0])
	for _, k := range c.keyBuf {
		c.KeyMapper(c.keyboard, k, true)
	}
	c.keyBuf = c.Keys.AppendJustReleasedKeys(c.keyBuf[:0])
	for _, k := range c.keyBuf {
		c.KeyMapper(c.keyboard, k, false)
		if fn, ok := c.keyUp[k]; ok {
			fn()
		}
	}

	p := 0
	for _, state := range c.Gamepads.Read() {
		if p >= len(c.pads) {
			break
		}
		c.pads[p].merge(state)
		p++
	}

	// The keyboard doubles as player one's pad in single player games, and
	// otherwise stands in for the first player without a gamepad.
	if len(c.pads) == 1 {
		c.pads[0].merge(c.keyboard.pressed)
	} else if p < len(c.pads) {
		c.pads[p].merge(c.keyboard.pressed)
	}

	for _, pad := range c.pads {
		pad.updateWasNotPressed()
	}
}

// Pad returns the pad of player i, or nil when out of range.
func (c *Controller) Pad(i int) *Pad {
	if i < 0 || i >= len(c.pads) {
		return nil
	}
	return c.pads[i]
}

func (c *Controller) MasterPad() *Pad {
	return c.pads[0]
}

func (c *Controller) Players() int {
	return len(c.pads)
}

// Reset forgets pending presses on every pad.
func (c *Controller) Reset() {
	for _, p := range c.pads {
		p.Reset()
	}
}
