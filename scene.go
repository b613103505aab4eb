package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/milk9111/newton/clock"
	"github.com/milk9111/newton/ctrl"
	"github.com/milk9111/newton/gpu"
	"github.com/milk9111/newton/ppu"
	"github.com/milk9111/newton/prefabs"
)

// Sprite depths. Each one is its own compositing layer.
const (
	zSky = iota
	zHills
	zPlatforms
	zPickups
	zEnemies
	zPlayer
)

// maskSolid is shared by everything that stands on platforms. Pickups use a
// zero mask so the physics never pushes the player off them.
const maskSolid uint32 = 1

// sceneClips are the library animations the scene entities play.
var sceneClips = []string{
	"hero_idle", "hero_run", "hero_jump", "hero_fall",
	"coin_spin", "coin_taken", "slime_walk",
}

// Scene is one playable level built from a SceneSpec. It creates bodies and
// sprites through the engines and only tweaks them between ticks.
type Scene struct {
	Name string

	lib    *prefabs.Library
	ppu    *ppu.PPU
	gpu    *gpu.GPU
	clock  *clock.Clock
	logger *log.Logger

	camera     *Camera
	player     *Player
	platforms  []*Platform
	coins      []*Coin
	enemies    []*Enemy
	coinsTaken int
}

// NewScene lays out spec on empty engines.
func NewScene(spec prefabs.SceneSpec, lib *prefabs.Library, p *ppu.PPU, g *gpu.GPU, clk *clock.Clock, logger *log.Logger) (*Scene, error) {
	if logger == nil {
		logger = log.Default()
	}
	for _, key := range sceneClips {
		if _, ok := lib.Get(key); !ok {
			return nil, fmt.Errorf("scene %s: spriteset %s has no %s animation", spec.Name, lib.Name, key)
		}
	}

	s := &Scene{
		Name:   spec.Name,
		lib:    lib,
		ppu:    p,
		gpu:    g,
		clock:  clk,
		logger: logger.WithPrefix("scene"),
	}

	if spec.Background != nil {
		g.Background = spec.Background.Color
	}
	for _, ls := range spec.Layers {
		l := g.GetLayer(ls.Z)
		g.SetLayerParallax(l, ls.ParallaxX, ls.ParallaxY)
		g.SetLayerOpacity(l, ls.Alpha)
		if ls.Tint != nil {
			l.Filter.ScaleWithColor(ls.Tint.Color)
		}
	}

	for i, ps := range spec.Platforms {
		pl, err := newPlatform(s, ps)
		if err != nil {
			return nil, fmt.Errorf("scene %s: platform %d: %w", spec.Name, i, err)
		}
		s.platforms = append(s.platforms, pl)
	}
	for _, cs := range spec.Coins {
		s.coins = append(s.coins, newCoin(s, cs))
	}
	for i, es := range spec.Enemies {
		e, err := newEnemy(s, es)
		if err != nil {
			return nil, fmt.Errorf("scene %s: enemy %d: %w", spec.Name, i, err)
		}
		s.enemies = append(s.enemies, e)
	}
	for _, ds := range spec.Decoration {
		pic := lib.Picture(ds.Picture)
		if pic == nil {
			return nil, fmt.Errorf("scene %s: unknown decoration picture %q", spec.Name, ds.Picture)
		}
		sp := g.CreateSprite()
		g.SetSpritePicture(sp, pic)
		g.SetSpritePosition(sp, ds.X, ds.Y)
		g.SetSpriteZ(sp, ds.Z)
		g.EnableSprite(sp)
	}

	player, err := newPlayer(s, spec.Player)
	if err != nil {
		return nil, fmt.Errorf("scene %s: player: %w", spec.Name, err)
	}
	s.player = player
	s.camera = NewCamera(g.ScreenWidth(), g.ScreenHeight(), p.World().Bounds)
	s.camera.Snap(player.Body.CenterX(), player.Body.CenterY())
	s.gpu.SetScroll(s.camera.Scroll())

	s.logger.Info("scene ready",
		"name", spec.Name,
		"platforms", len(s.platforms),
		"coins", len(s.coins),
		"enemies", len(s.enemies),
	)
	return s, nil
}

// UpdateBodies runs gameplay before the physics tick: it sets velocities
// and moves platforms.
func (s *Scene) UpdateBodies(pad *ctrl.Pad) {
	for _, pl := range s.platforms {
		pl.Move(s)
	}
	s.player.UpdateBody(s, pad)
	for _, e := range s.enemies {
		e.UpdateBody(s)
	}
}

// UpdateSprites runs gameplay after the physics tick: contact checks, sprite
// placement and the camera.
func (s *Scene) UpdateSprites() {
	for _, pl := range s.platforms {
		pl.UpdateSprites(s)
	}
	for _, c := range s.coins {
		c.Update(s)
	}
	for _, e := range s.enemies {
		e.Update(s)
	}
	s.player.UpdateSprite(s)
	s.updateCamera()
}

// Lost reports whether the player ran out of health.
func (s *Scene) Lost() bool {
	return s.player.Health <= 0
}

// Won reports whether every coin was collected.
func (s *Scene) Won() bool {
	return len(s.coins) > 0 && s.coinsTaken == len(s.coins)
}

func (s *Scene) CoinsTaken() int {
	return s.coinsTaken
}

func (s *Scene) CoinCount() int {
	return len(s.coins)
}

func (s *Scene) Player() *Player {
	return s.player
}

func (s *Scene) updateCamera() {
	s.camera.Update(s.player.Body.CenterX(), s.player.Body.CenterY())
	s.gpu.SetScroll(s.camera.Scroll())
}

// placeSprite centers sp horizontally on b and rests it on the body bottom.
func (s *Scene) placeSprite(sp *gpu.Sprite, b *ppu.Body) {
	s.gpu.SetSpritePosition(sp, b.CenterX()-sp.Width()/2, b.Bottom()-sp.Height())
}
