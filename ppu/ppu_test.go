package ppu

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func newTestPPU() *PPU {
	return New(log.New(io.Discard))
}

// newTestBody creates an enabled rectangle body at x, y.
func newTestBody(p *PPU, x, y, w, h float64) *Body {
	b := p.CreateBody()
	p.SetBodyRectangle(b, 0, 0, w, h)
	p.SetBodyPosition(b, x, y)
	p.SetBodyAffectedByGravity(b, false)
	p.EnableBody(b)
	return b
}

func newTestWall(p *PPU, x, y, w, h float64) *Body {
	b := newTestBody(p, x, y, w, h)
	p.SetBodyImmovable(b, true)
	return b
}

func TestCreateBodyDefaults(t *testing.T) {
	p := newTestPPU()
	a := p.CreateBody()
	b := p.CreateBody()

	if a.ID != 0 || b.ID != 1 {
		t.Fatalf("ids = %d, %d; want 0, 1", a.ID, b.ID)
	}
	if a.Enabled {
		t.Fatalf("new body should be disabled")
	}
	if a.Shape.Kind != ShapeNone {
		t.Fatalf("new body shape = %s, want none", a.Shape.Kind)
	}
	if a.CollisionMask != 1 || !a.AffectedByGravity || a.Immovable {
		t.Fatalf("unexpected defaults %+v", a)
	}
	if a.MaxYVelocity != 10000 || a.MinXVelocity != -10000 {
		t.Fatalf("unexpected velocity bounds %+v", a)
	}
	if got := len(p.Bodies()); got != 2 {
		t.Fatalf("len(Bodies) = %d, want 2", got)
	}
}

func TestWorldDefaults(t *testing.T) {
	p := newTestPPU()
	w := p.World()
	if w.Bounds.Width() != 1024 || w.Bounds.Height() != 576 || w.Bounds.Left() != 0 || w.Bounds.Top() != 0 {
		t.Fatalf("unexpected bounds %+v", w.Bounds)
	}
	if w.Gravity.X != 0 || w.Gravity.Y != 0 {
		t.Fatalf("unexpected gravity %+v", w.Gravity)
	}
}

func TestReset(t *testing.T) {
	p := newTestPPU()
	p.SetWorldGravity(0, 2)
	newTestBody(p, 0, 0, 1, 1)
	p.Reset()
	if len(p.Bodies()) != 0 {
		t.Fatalf("bodies survived reset")
	}
	if p.World().Gravity.Y != 2 {
		t.Fatalf("reset should keep world settings")
	}
	if b := p.CreateBody(); b.ID != 0 {
		t.Fatalf("id after reset = %d, want 0", b.ID)
	}
}

func TestGravityIntegration(t *testing.T) {
	p := newTestPPU()
	p.SetWorldGravity(0, 0.5)
	b := newTestBody(p, 10, 0, 4, 4)
	p.SetBodyAffectedByGravity(b, true)

	const ticks = 10
	for i := 0; i < ticks; i++ {
		p.Update()
	}
	if b.Velocity.Y != ticks*0.5 {
		t.Fatalf("velocity.y = %v, want %v", b.Velocity.Y, ticks*0.5)
	}
	// 0.5 * (1 + 2 + ... + 10)
	if b.Position.Y != 27.5 {
		t.Fatalf("position.y = %v, want 27.5", b.Position.Y)
	}
	if b.Position.X != 10 {
		t.Fatalf("position.x drifted to %v", b.Position.X)
	}
}

func TestVelocityClamp(t *testing.T) {
	cases := []struct {
		name     string
		gravity  Vector
		velocity Vector
		want     Vector
	}{
		{"max_y", Vector{Y: 1}, Vector{}, Vector{Y: 3}},
		{"min_y", Vector{Y: -1}, Vector{}, Vector{Y: -2}},
		{"max_x", Vector{}, Vector{X: 50}, Vector{X: 4}},
		{"min_x", Vector{}, Vector{X: -50}, Vector{X: -5}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := newTestPPU()
			p.SetWorldGravity(c.gravity.X, c.gravity.Y)
			b := newTestBody(p, 500, 200, 4, 4)
			p.SetBodyAffectedByGravity(b, true)
			p.SetBodyVelocityBounds(b, -5, 4, -2, 3)
			p.SetBodyVelocity(b, c.velocity.X, c.velocity.Y)
			for i := 0; i < 10; i++ {
				p.Update()
			}
			if b.Velocity != c.want {
				t.Fatalf("velocity = %+v, want %+v", b.Velocity, c.want)
			}
		})
	}
}

func TestImmovableDoesNotMove(t *testing.T) {
	p := newTestPPU()
	p.SetWorldGravity(0, 1)
	w := newTestWall(p, 10, 10, 5, 5)
	p.SetBodyAffectedByGravity(w, true)
	p.SetBodyVelocity(w, 3, 3)
	p.Update()
	if w.Position != (Vector{X: 10, Y: 10}) {
		t.Fatalf("immovable moved to %+v", w.Position)
	}
}

func TestDisabledBodySkipped(t *testing.T) {
	p := newTestPPU()
	p.SetWorldGravity(0, 1)
	b := newTestBody(p, 0, -50, 4, 4)
	p.SetBodyAffectedByGravity(b, true)
	p.SetBodyCollideWorldBounds(b, true)
	p.DisableBody(b)
	p.Update()
	if b.Position.Y != -50 || b.Velocity.Y != 0 {
		t.Fatalf("disabled body changed: pos %+v vel %+v", b.Position, b.Velocity)
	}

	// A disabled wall does not stop a falling body.
	m := newTestBody(p, 100, 90, 10, 10)
	p.SetBodyVelocity(m, 0, 5)
	wall := newTestWall(p, 100, 100, 50, 10)
	p.DisableBody(wall)
	p.Update()
	if m.Position.Y != 95 || m.Touches.Bottom != nil {
		t.Fatalf("collided with disabled wall: y=%v", m.Position.Y)
	}
}

func TestWorldBoundClamp(t *testing.T) {
	cases := []struct {
		name  string
		x, y  float64
		wantX float64
		wantY float64
	}{
		{"inside", 50, 50, 50, 50},
		{"left", -20, 50, 0, 50},
		{"top", 50, -7, 50, 0},
		{"right", 1030, 50, 1014, 50},
		{"bottom_right", 1030, 580, 1014, 566},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := newTestPPU()
			b := newTestBody(p, c.x, c.y, 10, 10)
			p.SetBodyCollideWorldBounds(b, true)
			p.Update()
			if b.Position.X != c.wantX || b.Position.Y != c.wantY {
				t.Fatalf("position = %+v, want (%v,%v)", b.Position, c.wantX, c.wantY)
			}
			if !p.CheckIfBodyIsInWorldBound(b) {
				t.Fatalf("clamped body reported out of world")
			}
		})
	}
}

func TestWorldBoundIgnoredWithoutFlag(t *testing.T) {
	p := newTestPPU()
	b := newTestBody(p, -20, 50, 10, 10)
	p.Update()
	if b.Position.X != -20 {
		t.Fatalf("body without world bound collision was clamped to %v", b.Position.X)
	}
	if p.CheckIfBodyIsInWorldBound(b) {
		t.Fatalf("body at x=-20 with width 10 should be out of world")
	}
}

func TestLandOnImmovable(t *testing.T) {
	p := newTestPPU()
	m := newTestBody(p, 10, 88, 10, 10)
	wall := newTestWall(p, 0, 100, 100, 10)
	p.SetBodyVelocity(m, 0, 5)

	p.Update()

	if m.Bottom() != wall.Top() {
		t.Fatalf("bottom = %v, want %v", m.Bottom(), wall.Top())
	}
	if m.Touches.Bottom != wall {
		t.Fatalf("touches.bottom not set")
	}
	if m.DebugColor != debugColorColliding || wall.DebugColor != debugColorColliding {
		t.Fatalf("debug colors not set to colliding")
	}

	// The next tick resting on the wall is an edge contact only.
	p.SetBodyVelocity(m, 0, 0)
	p.Update()
	if m.Touches.Bottom != nil {
		t.Fatalf("touches should be cleared when no overlap")
	}
	if m.DebugColor != debugColorOK {
		t.Fatalf("debug color should reset to ok")
	}
}

func TestOneSidedPlatform(t *testing.T) {
	cases := []struct {
		name        string
		y, vy       float64
		wantY       float64
		wantLanding bool
	}{
		{"jump_through_from_below", 112, -5, 107, false},
		{"land_from_above", 88, 5, 90, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := newTestPPU()
			m := newTestBody(p, 10, c.y, 10, 10)
			platform := newTestWall(p, 0, 100, 100, 10)
			p.SetBodyPassable(platform, Passable{FromBottomToTop: true})
			p.SetBodyVelocity(m, 0, c.vy)

			p.Update()

			if m.Position.Y != c.wantY {
				t.Fatalf("y = %v, want %v", m.Position.Y, c.wantY)
			}
			if (m.Touches.Bottom == platform) != c.wantLanding {
				t.Fatalf("landing = %v, want %v", m.Touches.Bottom == platform, c.wantLanding)
			}
			if m.Touches.Top != nil {
				t.Fatalf("passable side recorded a touch")
			}
		})
	}
}

func TestCollisionMask(t *testing.T) {
	cases := []struct {
		name        string
		a, b        uint32
		wantCollide bool
	}{
		{"same", 1, 1, true},
		{"shared_bit", 3, 2, true},
		{"disjoint", 1, 2, false},
		{"zero", 0, 0xffffffff, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := newTestPPU()
			m := newTestBody(p, 10, 88, 10, 10)
			wall := newTestWall(p, 0, 100, 100, 10)
			p.SetBodyCollisionMask(m, c.a)
			p.SetBodyCollisionMask(wall, c.b)
			p.SetBodyVelocity(m, 0, 5)

			p.Update()

			if got := m.Touches.Bottom == wall; got != c.wantCollide {
				t.Fatalf("collided = %v, want %v", got, c.wantCollide)
			}
			if !c.wantCollide && m.Position.Y != 93 {
				t.Fatalf("y = %v, want 93", m.Position.Y)
			}
		})
	}
}

func TestMovableBodiesPassThrough(t *testing.T) {
	p := newTestPPU()
	p.SetWorldGravity(0, 1)
	a := newTestBody(p, 10, 10, 10, 10)
	b := newTestBody(p, 15, 15, 10, 10)
	p.SetBodyAffectedByGravity(a, true)
	p.SetBodyAffectedByGravity(b, true)

	p.Update()

	if a.Position.Y != 11 || b.Position.Y != 16 {
		t.Fatalf("positions = %v, %v; want 11, 16", a.Position.Y, b.Position.Y)
	}
	if a.Touches != (Touches{}) || b.Touches != (Touches{}) {
		t.Fatalf("movable bodies recorded touches")
	}
}

func TestVerticalResolutionWins(t *testing.T) {
	p := newTestPPU()
	m := newTestBody(p, 92, 92, 10, 10)
	wall := newTestWall(p, 100, 100, 50, 50)
	p.SetBodyVelocity(m, 3, 3)

	p.Update()

	if m.Position.Y != 90 || m.Position.X != 95 {
		t.Fatalf("position = %+v, want (95,90)", m.Position)
	}
	if m.Touches.Bottom != wall || m.Touches.Right != nil {
		t.Fatalf("expected bottom touch only, got %+v", m.Touches)
	}
}

func TestRunIntoWall(t *testing.T) {
	cases := []struct {
		name      string
		x, vx     float64
		wantX     float64
		wantRight bool
	}{
		{"going_right", 38, 5, 40, true},
		{"going_left", 62, -5, 60, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := newTestPPU()
			m := newTestBody(p, c.x, 20, 10, 10)
			wall := newTestWall(p, 50, 0, 10, 100)
			p.SetBodyVelocity(m, c.vx, 0)

			p.Update()

			if m.Position.X != c.wantX {
				t.Fatalf("x = %v, want %v", m.Position.X, c.wantX)
			}
			if c.wantRight && m.Touches.Right != wall {
				t.Fatalf("touches.right not set")
			}
			if !c.wantRight && m.Touches.Left != wall {
				t.Fatalf("touches.left not set")
			}
		})
	}
}

func TestSecondWorldBoundPass(t *testing.T) {
	p := newTestPPU()
	p.SetWorldBounds(0, 0, 100, 100)
	m := newTestBody(p, -2, 20, 10, 10)
	wall := newTestWall(p, 3, 0, 10, 100)
	p.SetBodyCollideWorldBounds(m, true)
	p.SetBodyVelocity(m, 2, 0)

	p.Update()

	if m.Position.X != 0 {
		t.Fatalf("x = %v, want 0 after the final clamp", m.Position.X)
	}
	if m.Touches.Right != wall {
		t.Fatalf("touches.right not set")
	}
}

func TestStomp(t *testing.T) {
	// after[i] is the expected query result after i+1 updates.
	cases := []struct {
		name    string
		y, h    float64
		vy      float64
		bottoms []float64
		after   []bool
	}{
		{"lands_on_edge", 94, 4, 5, []float64{103, 108}, []bool{false, true}},
		{"falls_from_100", 100, 4, 5, []float64{109}, []bool{true}},
		{"point_from_100", 100, 0, 5, []float64{105, 110}, []bool{false, true}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := newTestPPU()
			stomper := newTestBody(p, 10, c.y, 8, c.h)
			stomped := newTestBody(p, 10, 108, 8, 8)
			p.SetBodyVelocity(stomper, 0, c.vy)

			if p.CheckIfBodyStompOther(stomper, stomped) {
				t.Fatalf("stomp before moving")
			}
			for i, want := range c.after {
				p.Update()
				if stomper.Bottom() != c.bottoms[i] {
					t.Fatalf("update %d: bottom = %v, want %v", i+1, stomper.Bottom(), c.bottoms[i])
				}
				if got := p.CheckIfBodyStompOther(stomper, stomped); got != want {
					t.Fatalf("update %d: stomp = %v, want %v", i+1, got, want)
				}
			}

			p.SetBodyVelocity(stomper, 0, -1)
			p.Update()
			if p.CheckIfBodyStompOther(stomper, stomped) {
				t.Fatalf("stomp while going up")
			}
		})
	}
}

func TestIsInWorldBound(t *testing.T) {
	cases := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 100, 100, true},
		{"straddles_left", -5, 100, true},
		{"touches_right_edge", 1024, 100, true},
		{"left_of_world", -11, 100, false},
		{"below_world", 100, 577, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := newTestPPU()
			b := newTestBody(p, c.x, c.y, 10, 10)
			if got := p.CheckIfBodyIsInWorldBound(b); got != c.want {
				t.Fatalf("in world = %v, want %v", got, c.want)
			}
		})
	}
}

func TestIntersectsSharedEdge(t *testing.T) {
	cases := []struct {
		name string
		bx   float64
		want bool
	}{
		{"overlap", 5, true},
		{"shared_edge", 10, true},
		{"apart", 10.5, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := newTestPPU()
			a := newTestBody(p, 0, 0, 10, 10)
			b := newTestBody(p, c.bx, 0, 10, 10)
			if got := p.CheckIfBodiesIntersects(a, b); got != c.want {
				t.Fatalf("intersects = %v, want %v", got, c.want)
			}
			if got := p.CheckIfBodiesIntersects(b, a); got != c.want {
				t.Fatalf("intersects not symmetric")
			}
		})
	}
}

func TestRunIntoOther(t *testing.T) {
	p := newTestPPU()
	runner := newTestBody(p, 0, 0, 10, 10)
	target := newTestBody(p, 11, 0, 10, 10)
	p.SetBodyVelocity(runner, 2, 0)

	if p.CheckIfBodyRunIntoOther(runner, target) {
		t.Fatalf("run into before moving")
	}
	p.Update()
	if !p.CheckIfBodyRunIntoOther(runner, target) {
		t.Fatalf("expected run into after moving right onto target")
	}
}
