package main

import (
	"errors"
	"fmt"
	"image"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milk9111/newton/clock"
	"github.com/milk9111/newton/config"
	"github.com/milk9111/newton/drive"
	"github.com/milk9111/newton/gpu"
	"github.com/milk9111/newton/ppu"
	"github.com/milk9111/newton/prefabs"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config, scene and spriteset without opening a window",
	Long: `Load the config and the scene, decode the spritesheet and lay the
scene out on headless engines. Every problem found is reported.

Examples:
  newton validate
  newton validate --scene meadow.yaml --assets ./art`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if err := validateContent(cfg, logger, newDrive(cfg, logger), flagScene); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", flagScene)
	return nil
}

// validateContent checks the spriteset against its decoded sheet and builds
// the scene without a GPU bitmap.
func validateContent(cfg config.Config, logger *log.Logger, d *drive.Drive, sceneName string) error {
	sceneSpec, set, err := loadSpecs(cfg, sceneName)
	if err != nil {
		return err
	}

	img, err := d.LoadImage(set.Image)
	if err != nil {
		return err
	}
	var errs []error
	for _, p := range set.Pictures {
		r := image.Rect(p.X, p.Y, p.X+p.W, p.Y+p.H)
		if !r.In(img.Bounds()) {
			errs = append(errs, fmt.Errorf("picture %s %v lies outside %s %v", p.Name, r, set.Image, img.Bounds()))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("spriteset %s: %w", set.Name, err)
	}

	clk := clock.New(nil)
	g := gpu.New(clk, gpu.WithLogger(logger), gpu.WithScreenSize(cfg.Window.Width, cfg.Window.Height))
	p := ppu.New(logger)
	p.SetWorldBounds(cfg.World.X, cfg.World.Y, cfg.World.Width, cfg.World.Height)

	lib, err := prefabs.Build(g, nil, set)
	if err != nil {
		return err
	}
	_, err = NewScene(sceneSpec, lib, p, g, clk, logger)
	return err
}
