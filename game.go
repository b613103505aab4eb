package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/newton/clock"
	"github.com/milk9111/newton/config"
	"github.com/milk9111/newton/ctrl"
	"github.com/milk9111/newton/gpu"
	"github.com/milk9111/newton/ppu"
	"github.com/milk9111/newton/prefabs"
)

// Game wires the engines together and runs one scene. Each tick polls the
// pads, advances the clock, runs gameplay around the physics tick and, on
// draw, advances animations and composes the layers.
type Game struct {
	cfg    config.Config
	logger *log.Logger

	clock *clock.Clock
	ctrl  *ctrl.Controller
	ppu   *ppu.PPU
	gpu   *gpu.GPU

	content content
	lib     *prefabs.Library
	scene   *Scene

	pauseUI  *ebitenui.UI
	paused   bool
	restart  bool
	quit     bool
	frames   int
	lastDraw float64
}

func NewGame(cfg config.Config, logger *log.Logger, sceneName string) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		logger: logger,
		clock:  clock.New(nil),
		ctrl:   ctrl.New(cfg.Controller.Players),
		ppu:    ppu.New(logger),
	}
	g.gpu = gpu.New(g.clock,
		gpu.WithLogger(logger),
		gpu.WithScreenSize(cfg.Window.Width, cfg.Window.Height),
	)

	w := cfg.World
	g.ppu.SetWorldBounds(w.X, w.Y, w.Width, w.Height)
	g.ppu.SetWorldGravity(w.GravityX, w.GravityY)
	g.ppu.SetDebugDraw(cfg.Debug.DrawBodies)

	g.ctrl.SetKeyMapper(demoKeyMapper)
	g.ctrl.OnKeyUp(ebiten.KeyF1, g.ppu.ToggleDebugDraw)

	c, err := loadContent(cfg, newDrive(cfg, logger), sceneName)
	if err != nil {
		return nil, err
	}
	g.content = c

	lib, err := prefabs.Build(g.gpu, c.Bitmap, c.Spriteset)
	if err != nil {
		return nil, err
	}
	g.lib = lib

	if err := g.loadScene(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)
	return g, nil
}

// demoKeyMapper adds Space for jumping and P for pausing to the default
// keys.
func demoKeyMapper(pad *ctrl.Pad, key ebiten.Key, down bool) bool {
	switch key {
	case ebiten.KeySpace:
		pad.Set(ctrl.ButtonA, down)
	case ebiten.KeyP:
		pad.Set(ctrl.ButtonStart, down)
	default:
		return ctrl.DefaultKeyMapper(pad, key, down)
	}
	return true
}

func (g *Game) loadScene() error {
	g.gpu.Reset()
	g.ppu.Reset()
	s, err := NewScene(g.content.Scene, g.lib, g.ppu, g.gpu, g.clock, g.logger)
	if err != nil {
		return err
	}
	g.scene = s
	g.ctrl.Reset()
	return nil
}

// SetPaused stops or restarts the logical clock, which freezes physics,
// animations and gameplay timers together.
func (g *Game) SetPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	if paused {
		g.clock.Pause()
	} else {
		g.clock.Resume()
		g.ctrl.Reset()
	}
	g.logger.Debug("pause", "paused", paused)
}

func (g *Game) requestRestart() {
	g.restart = true
}

func (g *Game) requestQuit() {
	g.quit = true
}

func (g *Game) Update() error {
	g.frames++
	if g.quit {
		return ebiten.Termination
	}

	g.ctrl.Poll()
	g.clock.Update()

	pad := g.ctrl.MasterPad()
	if pad.TestAndResetIfPressed(ctrl.ButtonStart) || pad.TestAndResetIfPressed(ctrl.ButtonEsc) {
		g.SetPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if g.restart {
		g.restart = false
		if err := g.loadScene(); err != nil {
			return fmt.Errorf("restart: %w", err)
		}
	}

	g.scene.UpdateBodies(pad)
	g.ppu.Update()
	g.scene.UpdateSprites()

	switch {
	case g.scene.Lost():
		g.logger.Info("player lost", "coins", g.scene.CoinsTaken())
		g.requestRestart()
	case g.scene.Won():
		g.logger.Info("all coins collected", "scene", g.scene.Name)
		g.requestRestart()
	}
	return nil
}

// frameDuration is the animation time of the next draw: zero while paused,
// the configured step when set, otherwise the clock time since the last
// draw.
func (g *Game) frameDuration(now float64) float64 {
	switch {
	case g.paused:
		return 0
	case g.cfg.Animation.FrameDuration > 0:
		return g.cfg.Animation.FrameDuration
	default:
		return now - g.lastDraw
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	now := g.clock.Now()
	g.gpu.SetFrameDuration(g.frameDuration(now))
	g.lastDraw = now

	g.gpu.DrawFrame(screen)
	scrollX, scrollY := g.gpu.Scroll()
	g.ppu.DebugDraw(screen, scrollX, scrollY)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("coins: %d/%d    health: %d    FPS: %.2f",
		g.scene.CoinsTaken(), g.scene.CoinCount(), g.scene.Player().Health, ebiten.ActualFPS()))

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}
