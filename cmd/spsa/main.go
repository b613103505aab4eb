// spsa previews every animation of a spriteset spec and reloads it when the
// spec changes on disk.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/newton/assets"
	"github.com/milk9111/newton/clock"
	"github.com/milk9111/newton/common"
	"github.com/milk9111/newton/ctrl"
	"github.com/milk9111/newton/drive"
	"github.com/milk9111/newton/gpu"
	"github.com/milk9111/newton/prefabs"
)

const (
	screenW  = 768
	screenH  = 512
	cellPad  = 24
	labelGap = 14
)

type previewGame struct {
	specPath string
	scale    float64
	logger   *log.Logger

	clock   *clock.Clock
	ctrl    *ctrl.Controller
	gpu     *gpu.GPU
	drive   *drive.Drive
	watcher *prefabs.Watcher

	lib      *prefabs.Library
	keys     []string
	sprites  []*gpu.Sprite
	selected int
	lastDraw float64
	status   string
}

func newPreviewGame(specPath string, scale float64, logger *log.Logger) *previewGame {
	clk := clock.New(nil)
	layers := []fs.FS{os.DirFS(filepath.Dir(specPath)), assets.FS}
	return &previewGame{
		specPath: specPath,
		scale:    scale,
		logger:   logger,
		clock:    clk,
		ctrl:     ctrl.New(1),
		gpu:      gpu.New(clk, gpu.WithLogger(logger), gpu.WithScreenSize(screenW, screenH)),
		drive:    drive.New(logger, layers...),
	}
}

// load rebuilds every clip from the spec. On error the previous clips stay
// on screen.
func (g *previewGame) load() error {
	spec, err := prefabs.LoadSpecFile[prefabs.SpritesetSpec](g.specPath)
	if err != nil {
		return err
	}
	g.drive.Forget(spec.Image)
	bitmap, err := g.drive.LoadBitmap(spec.Image)
	if err != nil {
		return err
	}
	// Build only creates spritesets and animations, so the old sprites keep
	// drawing until the new library is known to be good.
	lib, err := prefabs.Build(g.gpu, bitmap, spec)
	if err != nil {
		return err
	}

	g.gpu.Reset()
	g.lib = lib
	g.keys = lib.Keys()
	g.sprites = g.sprites[:0]
	g.selected = common.Wrap(0, g.selected, len(g.keys)-1)

	cellW, cellH := 0, 0
	for _, k := range g.keys {
		clip, _ := lib.Get(k)
		cellW = max(cellW, clip.Animation.MaxWidth())
		cellH = max(cellH, clip.Animation.MaxHeight())
	}
	cw := float64(cellW)*g.scale + cellPad
	ch := float64(cellH)*g.scale + cellPad + labelGap
	cols := max(1, int(screenW/cw))

	for i, k := range g.keys {
		clip, _ := lib.Get(k)
		s := g.gpu.CreateSprite()
		g.gpu.ResetSpriteAnimation(s, clip.Animation, clip.Mode)
		g.gpu.SetSpriteRotozoom(s, g.scale, 0)
		col, row := i%cols, i/cols
		// Rotozoom keeps the picture center, so place the center in the cell.
		cx := float64(col)*cw + cw/2
		cy := float64(row)*ch + labelGap + (ch-labelGap)/2
		g.gpu.SetSpritePosition(s, cx-float64(clip.Animation.MaxWidth())/2, cy-float64(clip.Animation.MaxHeight())/2)
		g.gpu.EnableSprite(s)
		g.sprites = append(g.sprites, s)
	}

	g.status = fmt.Sprintf("%s: %d pictures, %d animations", spec.Name, len(spec.Pictures), len(g.keys))
	g.logger.Info("spriteset loaded", "name", spec.Name, "animations", len(g.keys))
	return nil
}

func (g *previewGame) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case name, ok := <-g.watcher.Events:
		if !ok {
			g.watcher = nil
			return
		}
		if filepath.Clean(name) != filepath.Clean(g.specPath) {
			return
		}
		if err := g.load(); err != nil {
			g.status = err.Error()
			g.logger.Error("reload failed", "err", err)
		}
	case err, ok := <-g.watcher.Errors:
		if ok {
			g.logger.Warn("watch", "err", err)
		}
	default:
	}
}

func (g *previewGame) Update() error {
	g.ctrl.Poll()
	g.clock.Update()
	g.pollWatcher()

	pad := g.ctrl.MasterPad()
	if pad.TestAndResetIfPressed(ctrl.ButtonEsc) {
		return ebiten.Termination
	}
	if pad.TestAndResetIfPressed(ctrl.ButtonStart) {
		if g.clock.Paused() {
			g.clock.Resume()
		} else {
			g.clock.Pause()
		}
	}
	if len(g.keys) == 0 {
		return nil
	}
	if pad.TestAndResetIfPressed(ctrl.ButtonRight) {
		g.selected = common.Wrap(0, g.selected+1, len(g.keys)-1)
	}
	if pad.TestAndResetIfPressed(ctrl.ButtonLeft) {
		g.selected = common.Wrap(0, g.selected-1, len(g.keys)-1)
	}
	if pad.TestAndResetIfPressed(ctrl.ButtonA) {
		clip, _ := g.lib.Get(g.keys[g.selected])
		g.gpu.ResetSpriteAnimation(g.sprites[g.selected], clip.Animation, clip.Mode)
	}
	if pad.TestAndResetIfPressed(ctrl.ButtonB) {
		s := g.sprites[g.selected]
		g.gpu.MakeSpriteBlink(s, 1000)
	}
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	now := g.clock.Now()
	g.gpu.SetFrameDuration(now - g.lastDraw)
	g.lastDraw = now
	g.gpu.DrawFrame(screen)

	for i, s := range g.sprites {
		label := g.keys[i]
		if i == g.selected {
			label = "> " + label
		}
		clip, _ := g.lib.Get(g.keys[i])
		x := int(s.CenterX() - float64(clip.Animation.MaxWidth())*g.scale/2)
		y := int(s.CenterY() - float64(clip.Animation.MaxHeight())*g.scale/2 - labelGap)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %s %d/%d", label, s.AnimationMode, s.AnimationFrameIndex+1, len(clip.Animation.Frames)), x, y)
	}
	help := "left/right select  z restart  x blink  enter pause  esc quit"
	if g.clock.Paused() {
		help = "PAUSED  " + help
	}
	ebitenutil.DebugPrintAt(screen, g.status, 4, screenH-32)
	ebitenutil.DebugPrintAt(screen, help, 4, screenH-16)
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func main() {
	specPath := flag.String("spec", "prefabs/demo.yaml", "spriteset spec to preview")
	scale := flag.Float64("scale", 3, "zoom applied to every sprite")
	watch := flag.Bool("watch", true, "reload the spec when it changes")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "spsa"})
	if *debug {
		logger.SetLevel(log.DebugLevel)
	}
	if *scale <= 0 || math.IsNaN(*scale) {
		logger.Fatal("scale must be positive", "scale", *scale)
	}

	g := newPreviewGame(*specPath, *scale, logger)
	if err := g.load(); err != nil {
		logger.Fatal("load", "err", err)
	}
	if *watch {
		w, err := prefabs.NewWatcher(filepath.Dir(*specPath))
		if err != nil {
			logger.Warn("hot reload disabled", "err", err)
		} else {
			g.watcher = w
			defer w.Close()
		}
	}

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("spsa - " + filepath.Base(*specPath))
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		logger.Fatal("run", "err", err)
	}
}
