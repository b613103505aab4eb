package gpu

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Picture is a named region of a shared bitmap. Pictures are immutable once
// created and may be shared by any number of sprites and animations.
type Picture struct {
	Name   string
	Bitmap *ebiten.Image
	X      int
	Y      int
	W      int
	H      int

	sub *ebiten.Image
}

// Image returns the picture region as an ebiten sub-image, or nil when the
// picture has no bitmap.
func (p *Picture) Image() *ebiten.Image {
	if p.Bitmap == nil {
		return nil
	}
	if p.sub == nil {
		img, ok := p.Bitmap.SubImage(image.Rect(p.X, p.Y, p.X+p.W, p.Y+p.H)).(*ebiten.Image)
		if !ok {
			return nil
		}
		p.sub = img
	}
	return p.sub
}

// PictureDescription names a region of a spritesheet for CreateSpriteset.
type PictureDescription struct {
	Name string
	X    int
	Y    int
	W    int
	H    int
}

// Spriteset is the list of pictures cut from one bitmap.
type Spriteset struct {
	Pictures []*Picture
}

// Find returns the first picture called name, or nil.
func (s *Spriteset) Find(name string) *Picture {
	if s == nil {
		return nil
	}
	for _, p := range s.Pictures {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Names lists the picture names in declaration order.
func (s *Spriteset) Names() []string {
	names := make([]string, 0, len(s.Pictures))
	for _, p := range s.Pictures {
		names = append(names, p.Name)
	}
	return names
}
