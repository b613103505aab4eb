package gpu

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

type fakeClock struct {
	now float64
}

func (c *fakeClock) Now() float64 {
	return c.now
}

func newTestGPU() (*GPU, *fakeClock) {
	c := &fakeClock{}
	return New(c, WithLogger(log.New(io.Discard))), c
}

func testSpriteset(g *GPU) *Spriteset {
	return g.CreateSpriteset(nil, []PictureDescription{
		{Name: "walk0", X: 0, Y: 0, W: 16, H: 16},
		{Name: "walk1", X: 16, Y: 0, W: 20, H: 16},
		{Name: "walk2", X: 36, Y: 0, W: 18, H: 24},
	})
}

// testAnimation is three 100ms frames.
func testAnimation(g *GPU, set *Spriteset) *Animation {
	return g.CreateAnimation(set, []FrameDescription{
		{Name: "walk0", Delay: 100},
		{Name: "walk1", Delay: 100},
		{Name: "walk2", Delay: 100},
	})
}

func newAnimatedSprite(g *GPU, anim *Animation, mode AnimationMode) *Sprite {
	s := g.CreateSprite()
	g.EnableSprite(s)
	g.SetSpriteAnimation(s, anim, mode)
	return s
}

func TestCreateAnimation(t *testing.T) {
	g, _ := newTestGPU()
	set := testSpriteset(g)
	anim := g.CreateAnimation(set, []FrameDescription{
		{Name: "walk0", Delay: 50},
		{Name: "missing", Delay: 30},
		{Name: "walk2", Delay: 20},
	})

	if anim.TotalDuration != 100 {
		t.Fatalf("TotalDuration = %v, want 100", anim.TotalDuration)
	}
	wantEnd := []float64{50, 80, 100}
	for i, f := range anim.Frames {
		if f.EndTime != wantEnd[i] {
			t.Fatalf("frame %d EndTime = %v, want %v", i, f.EndTime, wantEnd[i])
		}
	}
	if anim.Frames[1].Picture != nil {
		t.Fatalf("missing picture should leave the frame empty")
	}
	if anim.Frames[2].Picture != set.Find("walk2") {
		t.Fatalf("frame 2 picture mismatch")
	}
	if anim.MaxWidth() != 18 || anim.MaxHeight() != 24 {
		t.Fatalf("MaxWidth, MaxHeight = %d, %d", anim.MaxWidth(), anim.MaxHeight())
	}
}

func TestCreatePicture(t *testing.T) {
	g, _ := newTestGPU()
	p := g.CreatePicture(nil, 1, 2, 3, 4)
	if p.X != 1 || p.Y != 2 || p.W != 3 || p.H != 4 || p.Name != "" {
		t.Fatalf("unexpected picture %+v", p)
	}
	if p.Image() != nil {
		t.Fatalf("picture without bitmap should have no image")
	}
}

func TestFindPictureByName(t *testing.T) {
	g, _ := newTestGPU()
	set := testSpriteset(g)
	if p := g.FindPictureByName(set, "walk1"); p == nil || p.W != 20 {
		t.Fatalf("walk1 not found")
	}
	if p := g.FindPictureByName(set, "nope"); p != nil {
		t.Fatalf("unexpected picture %+v", p)
	}
	if got := set.Names(); len(got) != 3 || got[0] != "walk0" {
		t.Fatalf("Names = %v", got)
	}
}

func TestAnimationProgression(t *testing.T) {
	cases := []struct {
		name      string
		mode      AnimationMode
		frameMs   float64
		updates   int
		wantIndex int
		wantTime  float64
		wantState AnimationState
	}{
		{"first_frame_window_is_closed", AnimationLoop, 50, 2, 0, 100, AnimationStarted},
		{"second_frame", AnimationLoop, 50, 3, 1, 150, AnimationStarted},
		{"third_frame", AnimationLoop, 50, 5, 2, 250, AnimationStarted},
		{"loop_idempotence_steps", AnimationLoop, 100, 3, 0, 0, AnimationStarted},
		{"loop_idempotence_single", AnimationLoop, 300, 1, 0, 0, AnimationStarted},
		{"loop_wraps_remainder", AnimationLoop, 130, 3, 0, 90, AnimationStarted},
		{"huge_loop_delta", AnimationLoop, 750, 1, 1, 150, AnimationStarted},
		{"once_terminal", AnimationOnce, 120, 3, 2, 360, AnimationStopped},
		{"once_terminal_after_more", AnimationOnce, 120, 10, 2, 360, AnimationStopped},
		{"once_huge_delta", AnimationOnce, 5000, 1, 2, 5000, AnimationStopped},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, _ := newTestGPU()
			set := testSpriteset(g)
			anim := testAnimation(g, set)
			s := newAnimatedSprite(g, anim, c.mode)
			g.SetFrameDuration(c.frameMs)

			for i := 0; i < c.updates; i++ {
				g.UpdateSprites()
			}

			if s.AnimationFrameIndex != c.wantIndex {
				t.Fatalf("frame index = %d, want %d", s.AnimationFrameIndex, c.wantIndex)
			}
			if s.AnimationTime != c.wantTime {
				t.Fatalf("time = %v, want %v", s.AnimationTime, c.wantTime)
			}
			if s.AnimationState != c.wantState {
				t.Fatalf("state = %d, want %d", s.AnimationState, c.wantState)
			}
			if s.Picture != anim.Frames[c.wantIndex].Picture {
				t.Fatalf("picture does not match frame %d", c.wantIndex)
			}
		})
	}
}

func TestDisabledSpriteNotAnimated(t *testing.T) {
	g, _ := newTestGPU()
	anim := testAnimation(g, testSpriteset(g))
	s := newAnimatedSprite(g, anim, AnimationLoop)
	g.DisableSprite(s)
	g.SetFrameDuration(150)
	g.UpdateSprites()
	if s.AnimationTime != 0 || s.AnimationFrameIndex != 0 {
		t.Fatalf("disabled sprite advanced to %v", s.AnimationTime)
	}
}

func TestSetVersusResetAnimation(t *testing.T) {
	g, _ := newTestGPU()
	set := testSpriteset(g)
	walk := testAnimation(g, set)
	idle := g.CreateAnimation(set, []FrameDescription{{Name: "walk2", Delay: 500}})
	s := newAnimatedSprite(g, walk, AnimationLoop)

	g.SetFrameDuration(150)
	g.UpdateSprites()
	if s.AnimationFrameIndex != 1 {
		t.Fatalf("setup: frame index = %d, want 1", s.AnimationFrameIndex)
	}

	g.SetSpriteAnimation(s, walk, AnimationOnce)
	if s.AnimationFrameIndex != 1 || s.AnimationTime != 150 {
		t.Fatalf("setting the same animation restarted it")
	}
	if s.AnimationMode != AnimationOnce {
		t.Fatalf("mode not updated")
	}

	g.ResetSpriteAnimation(s, walk, AnimationLoop)
	if s.AnimationFrameIndex != 0 || s.AnimationTime != 0 || s.AnimationState != AnimationStarted {
		t.Fatalf("reset did not restart: %+v", s)
	}
	if s.Picture != set.Find("walk0") {
		t.Fatalf("reset should show the first frame")
	}

	g.UpdateSprites()
	g.SetSpriteAnimation(s, idle, AnimationLoop)
	if s.Animation != idle || s.AnimationTime != 0 || s.Picture != set.Find("walk2") {
		t.Fatalf("switching animation should restart on its first frame")
	}
}

func TestResetRestartsStoppedAnimation(t *testing.T) {
	g, _ := newTestGPU()
	anim := testAnimation(g, testSpriteset(g))
	s := newAnimatedSprite(g, anim, AnimationOnce)
	g.SetFrameDuration(1000)
	g.UpdateSprites()
	if !s.AnimationStopped() {
		t.Fatalf("setup: expected stopped")
	}

	g.SetSpriteAnimation(s, anim, AnimationOnce)
	if !s.AnimationStopped() {
		t.Fatalf("SetSpriteAnimation with the same animation must not restart")
	}
	g.ResetSpriteAnimation(s, anim, AnimationOnce)
	if s.AnimationStopped() {
		t.Fatalf("ResetSpriteAnimation must restart")
	}
}

func TestBlinkCadence(t *testing.T) {
	g, clk := newTestGPU()
	set := testSpriteset(g)
	s := g.CreateSprite()
	g.SetSpritePicture(s, set.Find("walk0"))
	g.EnableSprite(s)
	g.MakeSpriteBlink(s, 1000)

	steps := []struct {
		now      float64
		drawn    bool
		blinking bool
	}{
		{50, true, true},
		{101, false, true},
		{150, true, true},
		{201, true, true},
		{202, false, true},
		{999, false, true},
		{1000, true, false},
		{1200, true, false},
	}
	for _, step := range steps {
		clk.now = step.now
		drawn := false
		for _, b := range g.Drawables() {
			for _, ds := range b.Sprites {
				if ds == s {
					drawn = true
				}
			}
		}
		if drawn != step.drawn {
			t.Fatalf("at %v drawn = %v, want %v", step.now, drawn, step.drawn)
		}
		if got := g.IsSpriteBlinking(s); got != step.blinking {
			t.Fatalf("at %v blinking = %v, want %v", step.now, got, step.blinking)
		}
	}
}

func TestDrawablesLayerOrder(t *testing.T) {
	g, _ := newTestGPU()
	pic := g.CreatePicture(nil, 0, 0, 8, 8)

	add := func(z float64) *Sprite {
		s := g.CreateSprite()
		g.SetSpritePicture(s, pic)
		g.SetSpriteZ(s, z)
		g.EnableSprite(s)
		return s
	}
	a := add(2.5)
	b := add(-1)
	c := add(0.3)
	d := add(2.1)

	hidden := add(0)
	g.SetSpriteVisible(hidden, false)
	disabled := add(0)
	g.DisableSprite(disabled)
	noPicture := g.CreateSprite()
	g.EnableSprite(noPicture)

	off := add(5)
	g.DisableLayer(g.GetLayer(5.7))

	batches := g.Drawables()
	wantLayers := []int{-1, 0, 2}
	wantSprites := [][]*Sprite{{b}, {c}, {a, d}}
	if len(batches) != len(wantLayers) {
		t.Fatalf("got %d batches, want %d", len(batches), len(wantLayers))
	}
	for i, batch := range batches {
		if batch.Layer.Index != wantLayers[i] {
			t.Fatalf("batch %d layer = %d, want %d", i, batch.Layer.Index, wantLayers[i])
		}
		if len(batch.Sprites) != len(wantSprites[i]) {
			t.Fatalf("batch %d has %d sprites, want %d", i, len(batch.Sprites), len(wantSprites[i]))
		}
		for j, s := range batch.Sprites {
			if s != wantSprites[i][j] {
				t.Fatalf("batch %d sprite %d out of order", i, j)
			}
			if s == off {
				t.Fatalf("sprite on a disabled layer was drawn")
			}
		}
	}
}

func TestGetLayer(t *testing.T) {
	g, _ := newTestGPU()
	cases := []struct {
		z    float64
		want int
	}{
		{0, 0},
		{0.99, 0},
		{1, 1},
		{1.9, 1},
		{-0.5, -1},
	}
	for _, c := range cases {
		if l := g.GetLayer(c.z); l.Index != c.want {
			t.Fatalf("GetLayer(%v).Index = %d, want %d", c.z, l.Index, c.want)
		}
	}
	if g.GetLayer(1.2) != g.GetLayer(1.7) {
		t.Fatalf("layers in the same bucket should be shared")
	}

	l := g.GetLayer(3)
	if l.ParallaxX != 1 || l.ParallaxY != 1 || l.Scale != 1 || l.Alpha != 1 || !l.Enabled || l.Angle != 0 {
		t.Fatalf("unexpected layer defaults %+v", l)
	}
}

func TestLayerSetters(t *testing.T) {
	g, _ := newTestGPU()
	l := g.GetLayer(0)
	g.SetLayerScroll(l, 10, 5)
	g.SetLayerParallax(l, 0.5, 0.25)
	g.SetLayerRotozoom(l, 2, 0.1)
	g.SetLayerOpacity(l, 0.5)

	x, y := l.Offset(100, -40)
	if x != 60 || y != -5 {
		t.Fatalf("Offset = (%v,%v), want (60,-5)", x, y)
	}
	if l.Scale != 2 || l.Angle != 0.1 || l.Alpha != 0.5 {
		t.Fatalf("unexpected layer %+v", l)
	}
	g.DisableLayer(l)
	if l.Enabled {
		t.Fatalf("layer still enabled")
	}
	g.EnableLayer(l)
	if !l.Enabled {
		t.Fatalf("layer still disabled")
	}
}

func TestSpriteGeometry(t *testing.T) {
	g, _ := newTestGPU()
	s := g.CreateSprite()
	if s.Width() != 0 || s.Height() != 0 {
		t.Fatalf("sprite without picture should be empty")
	}
	if !s.Visible || s.Enabled || s.Scale != 1 {
		t.Fatalf("unexpected sprite defaults %+v", s)
	}

	g.SetSpritePicture(s, g.CreatePicture(nil, 0, 0, 20, 10))
	g.SetSpritePosition(s, 5, 7)
	if s.Right() != 25 || s.Bottom() != 17 || s.CenterX() != 15 || s.CenterY() != 12 {
		t.Fatalf("unexpected edges")
	}
	s.SetCenterX(100)
	s.SetCenterY(50)
	if s.X != 90 || s.Y != 45 {
		t.Fatalf("center setters moved sprite to (%v,%v)", s.X, s.Y)
	}

	g.SetSpriteRotozoom(s, 2, 1.5)
	if s.Scale != 2 || s.Angle != 1.5 {
		t.Fatalf("rotozoom not applied")
	}
}

func TestReset(t *testing.T) {
	g, _ := newTestGPU()
	g.CreateSprite()
	g.GetLayer(4)
	g.SetScroll(3, 4)
	g.Reset()

	if len(g.Sprites()) != 0 || len(g.Layers()) != 0 {
		t.Fatalf("reset kept sprites or layers")
	}
	if x, y := g.Scroll(); x != 0 || y != 0 {
		t.Fatalf("scroll = (%v,%v) after reset", x, y)
	}
}
