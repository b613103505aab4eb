package main

import (
	"fmt"
	"math"

	"github.com/milk9111/newton/common"
	"github.com/milk9111/newton/gpu"
	"github.com/milk9111/newton/ppu"
	"github.com/milk9111/newton/prefabs"
)

// Platform is an immovable body drawn as a grid of tile sprites.
type Platform struct {
	Kind prefabs.PlatformKind
	Body *ppu.Body

	tiles   []*gpu.Sprite
	offsets []ppu.Vector

	origin ppu.Point
	delta  ppu.Vector
	period float64
}

// oneWay lets bodies jump up through a platform and walk off its sides.
var oneWay = ppu.Passable{
	FromLeftToRight: true,
	FromRightToLeft: true,
	FromBottomToTop: true,
}

func newPlatform(s *Scene, spec prefabs.PlatformSpec) (*Platform, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("size %vx%v must be positive", spec.Width, spec.Height)
	}
	tile := s.lib.Picture(spec.Tile)
	if tile == nil {
		return nil, fmt.Errorf("unknown tile %q", spec.Tile)
	}

	pl := &Platform{
		Kind:   spec.Kind,
		origin: ppu.Point{X: spec.X, Y: spec.Y},
	}

	b := s.ppu.CreateBody()
	b.Tag = string(spec.Kind)
	s.ppu.SetBodyRectangle(b, 0, 0, spec.Width, spec.Height)
	s.ppu.SetBodyPosition(b, spec.X, spec.Y)
	s.ppu.SetBodyImmovable(b, true)
	s.ppu.SetBodyAffectedByGravity(b, false)
	s.ppu.SetBodyCollisionMask(b, maskSolid)

	switch spec.Kind {
	case prefabs.PlatformSolid:
	case prefabs.PlatformOneWay:
		s.ppu.SetBodyPassable(b, oneWay)
	case prefabs.PlatformMoving:
		if spec.PeriodMs <= 0 {
			return nil, fmt.Errorf("moving platform period %vms must be positive", spec.PeriodMs)
		}
		s.ppu.SetBodyPassable(b, oneWay)
		pl.delta = ppu.Vector{X: spec.DX, Y: spec.DY}
		pl.period = spec.PeriodMs
	default:
		return nil, fmt.Errorf("unknown platform kind %q", spec.Kind)
	}
	s.ppu.EnableBody(b)
	pl.Body = b

	tw, th := float64(tile.W), float64(tile.H)
	for y := 0.0; y < spec.Height; y += th {
		for x := 0.0; x < spec.Width; x += tw {
			sp := s.gpu.CreateSprite()
			s.gpu.SetSpritePicture(sp, tile)
			s.gpu.SetSpriteZ(sp, zPlatforms)
			s.gpu.EnableSprite(sp)
			pl.tiles = append(pl.tiles, sp)
			pl.offsets = append(pl.offsets, ppu.Vector{X: x, Y: y})
		}
	}
	pl.UpdateSprites(s)
	return pl, nil
}

// Move eases a moving platform back and forth along its path and carries
// the bodies that stood on it during the last tick.
func (pl *Platform) Move(s *Scene) {
	if pl.period <= 0 {
		return
	}
	t := (1 - math.Cos(2*math.Pi*s.clock.Now()/pl.period)) / 2
	x := common.Lerp(pl.origin.X, pl.origin.X+pl.delta.X, t)
	y := common.Lerp(pl.origin.Y, pl.origin.Y+pl.delta.Y, t)
	dx := x - pl.Body.Position.X
	dy := y - pl.Body.Position.Y
	s.ppu.SetBodyPosition(pl.Body, x, y)

	for _, b := range s.ppu.Bodies() {
		if b.Enabled && b.Touches.Bottom == pl.Body {
			s.ppu.SetBodyPosition(b, b.Position.X+dx, b.Position.Y+dy)
		}
	}
}

func (pl *Platform) UpdateSprites(s *Scene) {
	for i, sp := range pl.tiles {
		s.gpu.SetSpritePosition(sp, pl.Body.Left()+pl.offsets[i].X, pl.Body.Top()+pl.offsets[i].Y)
	}
}
