// Package gpu is the sprite compositor: pictures cut from shared bitmaps,
// timed animations, sprites grouped into parallax layers and the ebiten
// draw pass that blits them.
package gpu

import (
	"image/color"
	"math"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/newton/common"
)

// BlinkInterval is the time in milliseconds between two hidden frames of a
// blinking sprite.
const BlinkInterval = 100

// TimeSource supplies the current logical time in milliseconds.
type TimeSource interface {
	Now() float64
}

type Option func(*GPU)

func WithLogger(logger *log.Logger) Option {
	return func(g *GPU) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithScreenSize sets the size used as the center of layer rotozoom.
func WithScreenSize(width, height int) Option {
	return func(g *GPU) {
		g.screenWidth = width
		g.screenHeight = height
	}
}

// GPU owns sprites and layers and composes them once per frame.
type GPU struct {
	clock  TimeSource
	logger *log.Logger

	sprites []*Sprite
	layers  map[int]*Layer

	frameDuration float64
	scrollX       float64
	scrollY       float64

	screenWidth  int
	screenHeight int

	Background color.Color
}

func New(clock TimeSource, opts ...Option) *GPU {
	g := &GPU{
		clock:         clock,
		logger:        log.Default(),
		layers:        make(map[int]*Layer),
		frameDuration: common.DefaultFrameDuration,
		screenWidth:   common.ScreenWidth,
		screenHeight:  common.ScreenHeight,
		Background:    color.Black,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.WithPrefix("gpu")
	return g
}

// Reset drops every sprite and layer and clears the scroll.
func (g *GPU) Reset() {
	g.logger.Debug("reset", "sprites", len(g.sprites), "layers", len(g.layers))
	g.scrollX = 0
	g.scrollY = 0
	g.sprites = nil
	g.layers = make(map[int]*Layer)
	g.Background = color.Black
}

func (g *GPU) ScreenWidth() int {
	return g.screenWidth
}

func (g *GPU) ScreenHeight() int {
	return g.screenHeight
}

func (g *GPU) SetScroll(x, y float64) {
	g.scrollX = x
	g.scrollY = y
}

func (g *GPU) Scroll() (float64, float64) {
	return g.scrollX, g.scrollY
}

func (g *GPU) SetLayerScroll(layer *Layer, x, y float64) {
	layer.X = x
	layer.Y = y
}

// CreateSpriteset cuts one picture per description out of bitmap.
func (g *GPU) CreateSpriteset(bitmap *ebiten.Image, pictures []PictureDescription) *Spriteset {
	set := &Spriteset{Pictures: make([]*Picture, 0, len(pictures))}
	for _, d := range pictures {
		set.Pictures = append(set.Pictures, &Picture{
			Name:   d.Name,
			Bitmap: bitmap,
			X:      d.X,
			Y:      d.Y,
			W:      d.W,
			H:      d.H,
		})
	}
	return set
}

// CreatePicture returns an unnamed picture. A zero w or h takes the bitmap
// size.
func (g *GPU) CreatePicture(bitmap *ebiten.Image, x, y, w, h int) *Picture {
	if bitmap != nil {
		if w == 0 {
			w = bitmap.Bounds().Dx()
		}
		if h == 0 {
			h = bitmap.Bounds().Dy()
		}
	}
	return &Picture{Bitmap: bitmap, X: x, Y: y, W: w, H: h}
}

func (g *GPU) FindPictureByName(set *Spriteset, name string) *Picture {
	return set.Find(name)
}

// CreateAnimation builds an animation from named spriteset pictures. Unknown
// names are logged and leave the frame without a picture.
func (g *GPU) CreateAnimation(set *Spriteset, frames []FrameDescription) *Animation {
	anim := &Animation{Frames: make([]AnimationFrame, 0, len(frames))}
	var t float64
	for _, d := range frames {
		pic := set.Find(d.Name)
		if pic == nil {
			g.logger.Warn("cannot find picture", "name", d.Name)
		}
		t += d.Delay
		anim.Frames = append(anim.Frames, AnimationFrame{Picture: pic, EndTime: t})
	}
	anim.TotalDuration = t
	return anim
}

func (g *GPU) SetSpritePicture(s *Sprite, pic *Picture) {
	s.Picture = pic
}

// MakeSpriteBlink blinks the sprite for duration milliseconds.
func (g *GPU) MakeSpriteBlink(s *Sprite, duration float64) {
	now := g.clock.Now()
	s.LastBlinkTime = now
	s.BlinkUntilTime = now + duration
}

func (g *GPU) IsSpriteBlinking(s *Sprite) bool {
	return s.BlinkUntilTime > g.clock.Now()
}

// SetSpriteAnimation attaches anim to the sprite and restarts it, unless the
// sprite already plays anim, in which case only the mode changes.
func (g *GPU) SetSpriteAnimation(s *Sprite, anim *Animation, mode AnimationMode) {
	s.AnimationMode = mode
	if s.Animation != anim {
		g.startAnimation(s, anim)
	}
}

// ResetSpriteAnimation always restarts anim from its first frame.
func (g *GPU) ResetSpriteAnimation(s *Sprite, anim *Animation, mode AnimationMode) {
	s.AnimationMode = mode
	g.startAnimation(s, anim)
}

func (g *GPU) startAnimation(s *Sprite, anim *Animation) {
	s.Animation = anim
	s.AnimationState = AnimationStarted
	s.AnimationFrameIndex = 0
	s.AnimationTime = 0
	if anim != nil && len(anim.Frames) > 0 {
		s.Picture = anim.Frames[0].Picture
	}
}

func (g *GPU) SetSpriteVisible(s *Sprite, visible bool) {
	s.Visible = visible
}

func (g *GPU) SetSpritePosition(s *Sprite, x, y float64) {
	s.X = x
	s.Y = y
}

func (g *GPU) SetSpriteZ(s *Sprite, z float64) {
	s.Z = z
}

// SetSpriteRotozoom scales and rotates (radians) the sprite about the center
// of its picture.
func (g *GPU) SetSpriteRotozoom(s *Sprite, scale, angle float64) {
	s.Scale = scale
	s.Angle = angle
}

// GetLayer returns the layer holding sprites of the given z, creating it on
// first use.
func (g *GPU) GetLayer(z float64) *Layer {
	return g.layer(layerIndex(z))
}

func (g *GPU) layer(index int) *Layer {
	l, ok := g.layers[index]
	if !ok {
		l = newLayer(index)
		g.layers[index] = l
	}
	return l
}

// Layers returns the existing layers in draw order.
func (g *GPU) Layers() []*Layer {
	indexes := make([]int, 0, len(g.layers))
	for i := range g.layers {
		indexes = append(indexes, i)
	}
	slices.Sort(indexes)

	layers := make([]*Layer, 0, len(indexes))
	for _, i := range indexes {
		layers = append(layers, g.layers[i])
	}
	return layers
}

func (g *GPU) EnableLayer(l *Layer) {
	l.Enabled = true
}

func (g *GPU) DisableLayer(l *Layer) {
	l.Enabled = false
}

func (g *GPU) SetLayerRotozoom(l *Layer, scale, angle float64) {
	l.Scale = scale
	l.Angle = angle
}

func (g *GPU) SetLayerOpacity(l *Layer, alpha float64) {
	l.Alpha = alpha
}

func (g *GPU) SetLayerParallax(l *Layer, parallaxX, parallaxY float64) {
	l.ParallaxX = parallaxX
	l.ParallaxY = parallaxY
}

// CreateSprite registers a new disabled sprite.
func (g *GPU) CreateSprite() *Sprite {
	s := newSprite()
	g.sprites = append(g.sprites, s)
	return s
}

func (g *GPU) EnableSprite(s *Sprite) {
	s.Enabled = true
}

func (g *GPU) DisableSprite(s *Sprite) {
	s.Enabled = false
}

// Sprites returns every sprite in creation order.
func (g *GPU) Sprites() []*Sprite {
	return g.sprites
}

// SetFrameDuration sets the milliseconds added to animation clocks by each
// UpdateSprites call.
func (g *GPU) SetFrameDuration(ms float64) {
	g.frameDuration = ms
}

func (g *GPU) FrameDuration() float64 {
	return g.frameDuration
}

// UpdateSprites advances the animation of every enabled sprite by one frame
// duration.
func (g *GPU) UpdateSprites() {
	for _, s := range g.sprites {
		if s.Enabled && s.Animation != nil {
			g.updateSpriteAnimation(s)
		}
	}
}

func (g *GPU) updateSpriteAnimation(s *Sprite) {
	if s.AnimationStopped() {
		return
	}
	frames := s.Animation.Frames
	if len(frames) == 0 {
		return
	}
	last := len(frames) - 1
	total := s.Animation.TotalDuration

	s.AnimationTime += g.frameDuration
	if s.AnimationTime >= total {
		switch s.AnimationMode {
		case AnimationOnce:
			s.AnimationFrameIndex = last
			s.AnimationState = AnimationStopped
			s.Picture = frames[last].Picture
			return
		default:
			s.AnimationFrameIndex = 0
			if total > 0 {
				s.AnimationTime = math.Mod(s.AnimationTime, total)
			} else {
				s.AnimationTime = 0
			}
		}
	}

	// A single wrap is applied per update: the scan never runs past the last
	// frame whatever the delta.
	for s.AnimationFrameIndex < last && s.AnimationTime > frames[s.AnimationFrameIndex].EndTime {
		s.AnimationFrameIndex++
	}
	s.Picture = frames[s.AnimationFrameIndex].Picture
}

// Batch is one enabled layer and the sprites to draw in it this frame, in
// creation order.
type Batch struct {
	Layer   *Layer
	Sprites []*Sprite
}

// Drawables groups the drawable sprites by layer, in ascending layer order.
// Layers referenced by sprites are created on demand. Blinking sprites are
// dropped from the frame every BlinkInterval milliseconds, so Drawables
// should be called once per drawn frame.
func (g *GPU) Drawables() []Batch {
	buckets := make(map[int][]*Sprite)
	for _, s := range g.sprites {
		if !s.Enabled || !s.Visible || s.Picture == nil {
			continue
		}
		i := s.Layer()
		g.layer(i)
		buckets[i] = append(buckets[i], s)
	}

	now := g.clock.Now()
	var batches []Batch
	for _, l := range g.Layers() {
		if !l.Enabled {
			continue
		}
		sprites := buckets[l.Index]
		if len(sprites) == 0 {
			continue
		}
		var visible []*Sprite
		for _, s := range sprites {
			if s.BlinkUntilTime > now && now-s.LastBlinkTime > BlinkInterval {
				s.LastBlinkTime = now
				continue
			}
			visible = append(visible, s)
		}
		batches = append(batches, Batch{Layer: l, Sprites: visible})
	}
	return batches
}
