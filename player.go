package main

import (
	"fmt"
	"math"

	"github.com/milk9111/newton/clock"
	"github.com/milk9111/newton/ctrl"
	"github.com/milk9111/newton/gpu"
	"github.com/milk9111/newton/ppu"
	"github.com/milk9111/newton/prefabs"
)

const (
	playerHealth       = 3
	defaultHurtBlinkMs = 1000
	knockbackMs        = 250
	knockbackSpeed     = 4
	coyoteMs           = 100 // jump still allowed this long after walking off a ledge
	stompBounce        = 0.6
)

// playerState is the interface each concrete player state implements.
// HandleInput runs before the physics tick, OnPhysics after it.
type playerState interface {
	Name() string
	Animation() string
	HandleInput(s *Scene, p *Player, pad *ctrl.Pad)
	OnPhysics(s *Scene, p *Player)
}

var (
	stateIdle    playerState = idleState{}
	stateRunning playerState = runningState{}
	stateJumping playerState = jumpingState{}
	stateFalling playerState = fallingState{}
	stateHurt    playerState = hurtState{}
)

type idleState struct{}

func (idleState) Name() string      { return "idle" }
func (idleState) Animation() string { return "hero_idle" }
func (idleState) HandleInput(s *Scene, p *Player, pad *ctrl.Pad) {
	if pad.TestAndResetIfPressed(ctrl.ButtonA) {
		p.jump(s)
		return
	}
	if p.moveX != 0 {
		p.setState(s, stateRunning)
	}
}
func (idleState) OnPhysics(s *Scene, p *Player) {
	if !p.Grounded() {
		p.coyote.Start()
		p.setState(s, stateFalling)
	}
}

type runningState struct{}

func (runningState) Name() string      { return "running" }
func (runningState) Animation() string { return "hero_run" }
func (runningState) HandleInput(s *Scene, p *Player, pad *ctrl.Pad) {
	if pad.TestAndResetIfPressed(ctrl.ButtonA) {
		p.jump(s)
		return
	}
	if p.moveX == 0 {
		p.setState(s, stateIdle)
	}
}
func (runningState) OnPhysics(s *Scene, p *Player) {
	if !p.Grounded() {
		p.coyote.Start()
		p.setState(s, stateFalling)
	}
}

type jumpingState struct{}

func (jumpingState) Name() string                                  { return "jumping" }
func (jumpingState) Animation() string                             { return "hero_jump" }
func (jumpingState) HandleInput(s *Scene, p *Player, pad *ctrl.Pad) {}
func (jumpingState) OnPhysics(s *Scene, p *Player) {
	switch {
	case p.Grounded():
		p.land(s)
	case p.Body.Velocity.Y >= 0:
		p.setState(s, stateFalling)
	}
}

type fallingState struct{}

func (fallingState) Name() string      { return "falling" }
func (fallingState) Animation() string { return "hero_fall" }
func (fallingState) HandleInput(s *Scene, p *Player, pad *ctrl.Pad) {
	if !p.coyote.Elapsed() && pad.TestAndResetIfPressed(ctrl.ButtonA) {
		p.jump(s)
	}
}
func (fallingState) OnPhysics(s *Scene, p *Player) {
	if p.Grounded() {
		p.land(s)
	}
}

type hurtState struct{}

func (hurtState) Name() string                                  { return "hurt" }
func (hurtState) Animation() string                             { return "hero_jump" }
func (hurtState) HandleInput(s *Scene, p *Player, pad *ctrl.Pad) {}
func (hurtState) OnPhysics(s *Scene, p *Player) {
	if !p.knockback.Elapsed() {
		return
	}
	if p.Grounded() {
		p.land(s)
	} else {
		p.setState(s, stateFalling)
	}
}

// Player is the hero: a movable body driven by the master pad and a sprite
// following it.
type Player struct {
	Body   *ppu.Body
	Sprite *gpu.Sprite
	Health int

	spec  prefabs.PlayerSpec
	state playerState
	moveX float64

	coyote    *clock.Timer
	knockback *clock.Timer
}

func newPlayer(s *Scene, spec prefabs.PlayerSpec) (*Player, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("size %vx%v must be positive", spec.Width, spec.Height)
	}
	if spec.RunSpeed <= 0 || spec.JumpSpeed <= 0 || spec.MaxFallSpeed <= 0 {
		return nil, fmt.Errorf("run, jump and fall speeds must be positive")
	}
	if spec.HurtBlinkMs <= 0 {
		spec.HurtBlinkMs = defaultHurtBlinkMs
	}

	p := &Player{
		Health:    playerHealth,
		spec:      spec,
		state:     stateFalling,
		coyote:    s.clock.NewTimer(coyoteMs),
		knockback: s.clock.NewTimer(knockbackMs),
	}

	b := s.ppu.CreateBody()
	b.Tag = "player"
	maxX := math.Max(spec.RunSpeed, knockbackSpeed)
	s.ppu.SetBodyRectangle(b, 0, 0, spec.Width, spec.Height)
	s.ppu.SetBodyPosition(b, spec.X, spec.Y)
	s.ppu.SetBodyVelocityBounds(b, -maxX, maxX, -spec.JumpSpeed, spec.MaxFallSpeed)
	s.ppu.SetBodyCollisionMask(b, maskSolid)
	s.ppu.SetBodyCollideWorldBounds(b, true)
	s.ppu.EnableBody(b)
	p.Body = b

	p.Sprite = s.gpu.CreateSprite()
	s.gpu.SetSpriteZ(p.Sprite, zPlayer)
	s.gpu.EnableSprite(p.Sprite)
	p.UpdateSprite(s)
	return p, nil
}

func (p *Player) State() string {
	return p.state.Name()
}

// Grounded reports whether the body was standing on something after the last
// physics tick.
func (p *Player) Grounded() bool {
	return p.Body.Touches.Bottom != nil
}

// UpdateBody reads the pad and sets the body velocity for the next tick.
func (p *Player) UpdateBody(s *Scene, pad *ctrl.Pad) {
	b := p.Body
	vy := b.Velocity.Y
	if p.Grounded() && vy > 0 {
		vy = 0
	}
	if b.Touches.Top != nil && vy < 0 {
		vy = 0
	}
	s.ppu.SetBodyVelocity(b, b.Velocity.X, vy)

	p.moveX = 0
	if pad.Pressed(ctrl.ButtonLeft) {
		p.moveX--
	}
	if pad.Pressed(ctrl.ButtonRight) {
		p.moveX++
	}
	p.state.HandleInput(s, p, pad)

	if p.state != stateHurt {
		s.ppu.SetBodyVelocity(b, p.moveX*p.spec.RunSpeed, b.Velocity.Y)
	}
}

// UpdateSprite reacts to the physics tick and moves the sprite onto the body.
func (p *Player) UpdateSprite(s *Scene) {
	p.state.OnPhysics(s, p)
	s.lib.Play(s.gpu, p.Sprite, p.state.Animation())
	s.placeSprite(p.Sprite, p.Body)
}

// Hurt knocks the player away from fromX and costs one health point. It is
// ignored while the sprite still blinks from the previous hit.
func (p *Player) Hurt(s *Scene, fromX float64) bool {
	if s.gpu.IsSpriteBlinking(p.Sprite) {
		return false
	}
	p.Health--
	s.gpu.MakeSpriteBlink(p.Sprite, p.spec.HurtBlinkMs)

	dir := 1.0
	if fromX > p.Body.CenterX() {
		dir = -1
	}
	s.ppu.SetBodyVelocity(p.Body, dir*knockbackSpeed, -p.spec.JumpSpeed/2)
	p.knockback.Start()
	p.setState(s, stateHurt)
	s.logger.Debug("player hurt", "health", p.Health)
	return true
}

// Bounce is the small hop after stomping an enemy.
func (p *Player) Bounce(s *Scene) {
	s.ppu.SetBodyVelocity(p.Body, p.Body.Velocity.X, -p.spec.JumpSpeed*stompBounce)
	p.setState(s, stateJumping)
}

func (p *Player) jump(s *Scene) {
	p.coyote.Stop()
	s.ppu.SetBodyVelocity(p.Body, p.Body.Velocity.X, -p.spec.JumpSpeed)
	p.setState(s, stateJumping)
}

func (p *Player) land(s *Scene) {
	if p.moveX != 0 {
		p.setState(s, stateRunning)
	} else {
		p.setState(s, stateIdle)
	}
}

func (p *Player) setState(s *Scene, st playerState) {
	if p.state == st {
		return
	}
	s.logger.Debug("player state", "from", p.state.Name(), "to", st.Name())
	p.state = st
}
