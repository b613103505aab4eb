package prefabs

import (
	"errors"
	"fmt"
	"image"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/newton/gpu"
)

// Clip is a library animation with the mode it plays in.
type Clip struct {
	Animation *gpu.Animation
	Mode      gpu.AnimationMode
}

// Library stores the spriteset and animation clips built from one
// SpritesetSpec.
type Library struct {
	Name      string
	Spriteset *gpu.Spriteset
	clips     map[string]Clip
}

// NewLibrary creates an empty library.
func NewLibrary(name string, set *gpu.Spriteset) *Library {
	return &Library{Name: name, Spriteset: set, clips: make(map[string]Clip)}
}

// Register adds an animation clip to the library.
func (l *Library) Register(key string, anim *gpu.Animation, mode gpu.AnimationMode) {
	if l == nil || key == "" || anim == nil {
		return
	}
	l.clips[key] = Clip{Animation: anim, Mode: mode}
}

// Get returns an animation clip by key.
func (l *Library) Get(key string) (Clip, bool) {
	if l == nil || key == "" {
		return Clip{}, false
	}
	clip, ok := l.clips[key]
	return clip, ok
}

// Keys returns the clip keys in sorted order.
func (l *Library) Keys() []string {
	keys := make([]string, 0, len(l.clips))
	for k := range l.clips {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (l *Library) Picture(name string) *gpu.Picture {
	return l.Spriteset.Find(name)
}

// Play attaches the clip to the sprite without restarting it when it already
// plays. It reports whether the clip exists.
func (l *Library) Play(g *gpu.GPU, s *gpu.Sprite, key string) bool {
	clip, ok := l.Get(key)
	if !ok {
		return false
	}
	g.SetSpriteAnimation(s, clip.Animation, clip.Mode)
	return true
}

// Restart plays the clip from its first frame.
func (l *Library) Restart(g *gpu.GPU, s *gpu.Sprite, key string) bool {
	clip, ok := l.Get(key)
	if !ok {
		return false
	}
	g.ResetSpriteAnimation(s, clip.Animation, clip.Mode)
	return true
}

// Build cuts the spec pictures out of bitmap and creates its animations.
// Animation frames naming an unknown picture are kept without a picture.
func Build(g *gpu.GPU, bitmap *ebiten.Image, spec SpritesetSpec) (*Library, error) {
	if len(spec.Pictures) == 0 {
		return nil, fmt.Errorf("prefabs: build %s: no pictures", spec.Name)
	}

	var bounds image.Rectangle
	if bitmap != nil {
		bounds = bitmap.Bounds()
	}

	var errs []error
	seen := make(map[string]bool, len(spec.Pictures))
	descs := make([]gpu.PictureDescription, 0, len(spec.Pictures))
	for i, p := range spec.Pictures {
		switch {
		case p.Name == "":
			errs = append(errs, fmt.Errorf("picture %d has no name", i))
		case seen[p.Name]:
			errs = append(errs, fmt.Errorf("picture %s declared twice", p.Name))
		case p.W <= 0 || p.H <= 0:
			errs = append(errs, fmt.Errorf("picture %s has size %dx%d", p.Name, p.W, p.H))
		case bitmap != nil && !image.Rect(p.X, p.Y, p.X+p.W, p.Y+p.H).In(bounds):
			errs = append(errs, fmt.Errorf("picture %s lies outside the %dx%d bitmap", p.Name, bounds.Dx(), bounds.Dy()))
		}
		seen[p.Name] = true
		descs = append(descs, gpu.PictureDescription{Name: p.Name, X: p.X, Y: p.Y, W: p.W, H: p.H})
	}

	keys := make([]string, 0, len(spec.Animations))
	for k := range spec.Animations {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		a := spec.Animations[k]
		if len(a.Frames) == 0 {
			errs = append(errs, fmt.Errorf("animation %s has no frames", k))
		}
		for _, f := range a.Frames {
			if f.Delay < 0 {
				errs = append(errs, fmt.Errorf("animation %s frame %s has negative delay", k, f.Name))
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("prefabs: build %s: %w", spec.Name, err)
	}

	set := g.CreateSpriteset(bitmap, descs)
	lib := NewLibrary(spec.Name, set)
	for _, k := range keys {
		a := spec.Animations[k]
		frames := make([]gpu.FrameDescription, 0, len(a.Frames))
		for _, f := range a.Frames {
			frames = append(frames, gpu.FrameDescription{Name: f.Name, Delay: f.Delay})
		}
		lib.Register(k, g.CreateAnimation(set, frames), gpu.AnimationMode(a.Mode))
	}
	return lib, nil
}
