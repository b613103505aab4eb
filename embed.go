package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/newton/assets"
	"github.com/milk9111/newton/config"
	"github.com/milk9111/newton/drive"
	"github.com/milk9111/newton/prefabs"
)

// content is what a scene needs from disk: its layout, the spriteset it
// draws with and the decoded sheet.
type content struct {
	Scene     prefabs.SceneSpec
	Spriteset prefabs.SpritesetSpec
	Bitmap    *ebiten.Image
}

// newDrive searches the configured assets directory first, then the
// embedded assets.
func newDrive(cfg config.Config, logger *log.Logger) *drive.Drive {
	var layers []fs.FS
	if cfg.Assets.Dir != "" {
		layers = append(layers, os.DirFS(cfg.Assets.Dir))
	}
	layers = append(layers, assets.FS)
	return drive.New(logger, layers...)
}

// loadSpecs reads the scene and its spriteset. A spriteset named in the
// config replaces the one the scene asks for.
func loadSpecs(cfg config.Config, sceneName string) (prefabs.SceneSpec, prefabs.SpritesetSpec, error) {
	scene, err := prefabs.LoadSpec[prefabs.SceneSpec](sceneName)
	if err != nil {
		return prefabs.SceneSpec{}, prefabs.SpritesetSpec{}, err
	}
	name := scene.Spriteset
	if cfg.Assets.Spriteset != "" {
		name = cfg.Assets.Spriteset
	}
	if name == "" {
		return prefabs.SceneSpec{}, prefabs.SpritesetSpec{}, fmt.Errorf("scene %s names no spriteset", scene.Name)
	}
	set, err := prefabs.LoadSpec[prefabs.SpritesetSpec](name)
	if err != nil {
		return prefabs.SceneSpec{}, prefabs.SpritesetSpec{}, err
	}
	return scene, set, nil
}

func loadContent(cfg config.Config, d *drive.Drive, sceneName string) (content, error) {
	scene, set, err := loadSpecs(cfg, sceneName)
	if err != nil {
		return content{}, err
	}
	bitmap, err := d.LoadBitmap(set.Image)
	if err != nil {
		return content{}, err
	}
	return content{Scene: scene, Spriteset: set, Bitmap: bitmap}, nil
}
