package main

import (
	"fmt"
	"math"

	"github.com/milk9111/newton/clock"
	"github.com/milk9111/newton/gpu"
	"github.com/milk9111/newton/ppu"
	"github.com/milk9111/newton/prefabs"
)

const (
	enemySquashMs = 500
	enemyMaxFall  = 12
)

// Enemy walks between two x limits, turning around at walls. Stomping it
// kills it, running into it hurts the player.
type Enemy struct {
	Body   *ppu.Body
	Sprite *gpu.Sprite
	Alive  bool

	spec     prefabs.EnemySpec
	dir      float64
	squashed *clock.Timer
}

func newEnemy(s *Scene, spec prefabs.EnemySpec) (*Enemy, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("size %vx%v must be positive", spec.Width, spec.Height)
	}
	if spec.MaxX <= spec.MinX {
		return nil, fmt.Errorf("patrol range [%v, %v] is empty", spec.MinX, spec.MaxX)
	}

	e := &Enemy{
		Alive:    true,
		spec:     spec,
		dir:      1,
		squashed: s.clock.NewTimer(enemySquashMs),
	}

	b := s.ppu.CreateBody()
	b.Tag = "enemy"
	s.ppu.SetBodyRectangle(b, 0, 0, spec.Width, spec.Height)
	s.ppu.SetBodyPosition(b, spec.X, spec.Y)
	s.ppu.SetBodyVelocityBounds(b, -math.Abs(spec.Speed), math.Abs(spec.Speed), -enemyMaxFall, enemyMaxFall)
	s.ppu.SetBodyCollisionMask(b, maskSolid)
	s.ppu.SetBodyCollideWorldBounds(b, true)
	s.ppu.EnableBody(b)
	e.Body = b

	e.Sprite = s.gpu.CreateSprite()
	s.gpu.SetSpriteZ(e.Sprite, zEnemies)
	s.lib.Play(s.gpu, e.Sprite, "slime_walk")
	s.gpu.EnableSprite(e.Sprite)
	s.placeSprite(e.Sprite, b)
	return e, nil
}

func (e *Enemy) UpdateBody(s *Scene) {
	if !e.Alive {
		return
	}
	b := e.Body
	switch {
	case b.Touches.Left != nil || b.Left() <= e.spec.MinX:
		e.dir = 1
	case b.Touches.Right != nil || b.Right() >= e.spec.MaxX:
		e.dir = -1
	}
	vy := b.Velocity.Y
	if b.Touches.Bottom != nil && vy > 0 {
		vy = 0
	}
	s.ppu.SetBodyVelocity(b, e.dir*math.Abs(e.spec.Speed), vy)
}

// Update resolves contacts with the player and places the sprite.
func (e *Enemy) Update(s *Scene) {
	if !e.Alive {
		if e.Sprite.Enabled && e.squashed.Elapsed() {
			s.gpu.DisableSprite(e.Sprite)
		}
		return
	}

	p := s.player
	switch {
	case s.ppu.CheckIfBodyStompOther(p.Body, e.Body):
		e.kill(s)
		p.Bounce(s)
	case s.ppu.CheckIfBodyRunIntoOther(p.Body, e.Body), s.ppu.CheckIfBodyRunIntoOther(e.Body, p.Body):
		p.Hurt(s, e.Body.CenterX())
	}
	s.placeSprite(e.Sprite, e.Body)
}

func (e *Enemy) kill(s *Scene) {
	e.Alive = false
	s.ppu.DisableBody(e.Body)
	s.gpu.SetSpriteRotozoom(e.Sprite, 1, math.Pi)
	e.squashed.Start()
	s.logger.Debug("enemy stomped", "body", e.Body.ID)
}
