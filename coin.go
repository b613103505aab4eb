package main

import (
	"github.com/milk9111/newton/gpu"
	"github.com/milk9111/newton/ppu"
	"github.com/milk9111/newton/prefabs"
)

const coinSize = 12

// Coin is a sensor: its body never collides, the scene only asks the PPU
// whether the player touches it.
type Coin struct {
	Body   *ppu.Body
	Sprite *gpu.Sprite
	Taken  bool
}

func newCoin(s *Scene, spec prefabs.CoinSpec) *Coin {
	c := &Coin{}

	b := s.ppu.CreateBody()
	b.Tag = "coin"
	s.ppu.SetBodyRectangle(b, 2, 2, coinSize, coinSize)
	s.ppu.SetBodyPosition(b, spec.X, spec.Y)
	s.ppu.SetBodyImmovable(b, true)
	s.ppu.SetBodyAffectedByGravity(b, false)
	s.ppu.SetBodyCollisionMask(b, 0)
	s.ppu.EnableBody(b)
	c.Body = b

	c.Sprite = s.gpu.CreateSprite()
	s.gpu.SetSpritePosition(c.Sprite, spec.X, spec.Y)
	s.gpu.SetSpriteZ(c.Sprite, zPickups)
	s.lib.Play(s.gpu, c.Sprite, "coin_spin")
	s.gpu.EnableSprite(c.Sprite)
	return c
}

// Update collects the coin on contact and hides it once the pickup
// animation has played.
func (c *Coin) Update(s *Scene) {
	if c.Taken {
		if c.Sprite.Enabled && c.Sprite.AnimationStopped() {
			s.gpu.DisableSprite(c.Sprite)
		}
		return
	}
	if !s.ppu.CheckIfBodiesIntersects(s.player.Body, c.Body) {
		return
	}
	c.Taken = true
	s.coinsTaken++
	s.ppu.DisableBody(c.Body)
	s.lib.Restart(s.gpu, c.Sprite, "coin_taken")
	s.logger.Debug("coin taken", "body", c.Body.ID, "taken", s.coinsTaken, "of", len(s.coins))
}
