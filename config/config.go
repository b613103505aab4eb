// Package config holds the engine settings loaded from YAML.
package config

import (
	"errors"
	"fmt"

	"github.com/milk9111/newton/common"
)

type Config struct {
	Window     WindowConfig     `yaml:"window"`
	World      WorldConfig      `yaml:"world"`
	Animation  AnimationConfig  `yaml:"animation"`
	Controller ControllerConfig `yaml:"controller"`
	Assets     AssetsConfig     `yaml:"assets"`
	Debug      DebugConfig      `yaml:"debug"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	TPS    int    `yaml:"tps"`
}

// WorldConfig sets the physics world bounds and gravity, in pixels and
// pixels per tick squared.
type WorldConfig struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	GravityX float64 `yaml:"gravity_x"`
	GravityY float64 `yaml:"gravity_y"`
}

type AnimationConfig struct {
	FrameDuration float64 `yaml:"frame_duration_ms"`
}

type ControllerConfig struct {
	Players int `yaml:"players"`
}

// AssetsConfig points at an optional directory searched before the embedded
// assets, and the spriteset spec used by the demo.
type AssetsConfig struct {
	Dir       string `yaml:"dir"`
	Spriteset string `yaml:"spriteset"`
}

type DebugConfig struct {
	DrawBodies bool   `yaml:"draw_bodies"`
	LogLevel   string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  common.ScreenWidth,
			Height: common.ScreenHeight,
			Title:  "newton",
			TPS:    60,
		},
		World: WorldConfig{
			Width:    2 * common.ScreenWidth,
			Height:   common.ScreenHeight,
			GravityY: 0.6,
		},
		Animation: AnimationConfig{
			FrameDuration: common.DefaultFrameDuration,
		},
		Controller: ControllerConfig{
			Players: 1,
		},
		Assets: AssetsConfig{
			Spriteset: "demo.yaml",
		},
		Debug: DebugConfig{
			LogLevel: "info",
		},
	}
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window tps %d must be positive", c.Window.TPS))
	}
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size %vx%v must be positive", c.World.Width, c.World.Height))
	}
	if c.Animation.FrameDuration < 0 {
		errs = append(errs, fmt.Errorf("animation frame duration %v must not be negative", c.Animation.FrameDuration))
	}
	if c.Controller.Players < 1 {
		errs = append(errs, fmt.Errorf("controller players %d must be at least 1", c.Controller.Players))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}
