// newton is a side-scrolling platformer demo for the ppu and gpu engines.
//
// Usage:
//
//	newton                   - Play the demo scene
//	newton validate          - Check the config, scene and spriteset
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.newton and configs/)
//	--scene <name>      - Scene spec in prefabs/ (default: scene.yaml)
//	--assets <dir>      - Directory searched before the embedded assets
//	--log-level <level> - debug, info, warn or error
//	--debug             - Draw physics bodies (toggle in game with F1)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/newton/config"
)

var (
	flagConfig   string
	flagScene    string
	flagAssets   string
	flagLogLevel string
	flagDebug    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "newton",
	Short: "Newton - arcade physics and sprite layers platformer demo",
	Long: `Newton runs a small side-scrolling level on top of the ppu physics
engine and the gpu sprite compositor.

Controls:
  Left/Right   - Run
  Z/Space      - Jump
  Enter/Esc/P  - Pause
  F1           - Toggle physics debug draw

Examples:
  newton
  newton --debug --log-level debug
  newton --assets ./art --scene meadow.yaml
  newton validate`,
	SilenceUsage: true,
	RunE:         runGame,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a config YAML file")
	rootCmd.PersistentFlags().StringVar(&flagScene, "scene", "scene.yaml", "Scene spec to load from prefabs/")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Directory searched before the embedded assets")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Draw physics bodies")

	rootCmd.AddCommand(validateCmd)
}

// setup loads the config, applies the command line overrides and builds the
// logger.
func setup() (config.Config, *log.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, nil, err
	}
	if flagAssets != "" {
		cfg.Assets.Dir = flagAssets
	}
	if flagLogLevel != "" {
		cfg.Debug.LogLevel = flagLogLevel
	}
	if flagDebug {
		cfg.Debug.DrawBodies = true
	}
	logger, err := config.NewLogger(cfg, os.Stderr)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

func runGame(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.TPS)

	game, err := NewGame(cfg, logger, flagScene)
	if err != nil {
		return err
	}
	logger.Info("starting", "scene", game.scene.Name, "size", fmt.Sprintf("%dx%d", cfg.Window.Width, cfg.Window.Height))
	return ebiten.RunGame(game)
}
