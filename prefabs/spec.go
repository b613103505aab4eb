package prefabs

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/milk9111/newton/gpu"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// LoadSpec decodes a prefab YAML file from the prefabs directory or the
// embedded copy.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	spec, err := DecodeSpec[T](data)
	if err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// LoadSpecFile decodes a YAML file at an arbitrary path.
func LoadSpecFile[T any](path string) (T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("prefabs: read %s: %w", path, err)
	}
	spec, err := DecodeSpec[T](data)
	if err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", path, err)
	}
	return spec, nil
}

func DecodeSpec[T any](data []byte) (T, error) {
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

// SpritesetSpec describes the pictures of one spritesheet and the
// animations built from them.
type SpritesetSpec struct {
	Name       string                   `yaml:"name"`
	Image      string                   `yaml:"image"`
	Pictures   []PictureSpec            `yaml:"pictures"`
	Animations map[string]AnimationSpec `yaml:"animations"`
}

type PictureSpec struct {
	Name string `yaml:"name"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	W    int    `yaml:"w"`
	H    int    `yaml:"h"`
}

type AnimationSpec struct {
	Mode   ModeSpec    `yaml:"mode"`
	Frames []FrameSpec `yaml:"frames"`
}

type FrameSpec struct {
	Name  string  `yaml:"name"`
	Delay float64 `yaml:"delay"`
}

// ModeSpec is an animation mode written as "loop" (default) or "once".
type ModeSpec gpu.AnimationMode

func (m *ModeSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("animation mode must be a string")
	}
	switch strings.ToLower(value.Value) {
	case "", "loop":
		*m = ModeSpec(gpu.AnimationLoop)
	case "once":
		*m = ModeSpec(gpu.AnimationOnce)
	default:
		return fmt.Errorf("unknown animation mode %q", value.Value)
	}
	return nil
}

// SceneSpec lays out the demo level.
type SceneSpec struct {
	Name       string           `yaml:"name"`
	Background *Color       `yaml:"background"`
	Spriteset  string           `yaml:"spriteset"`
	Player     PlayerSpec       `yaml:"player"`
	Layers     []LayerSpec      `yaml:"layers"`
	Platforms  []PlatformSpec   `yaml:"platforms"`
	Coins      []CoinSpec       `yaml:"coins"`
	Enemies    []EnemySpec      `yaml:"enemies"`
	Decoration []DecorationSpec `yaml:"decoration"`
}

type PlayerSpec struct {
	X            float64 `yaml:"x"`
	Y            float64 `yaml:"y"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	RunSpeed     float64 `yaml:"run_speed"`
	JumpSpeed    float64 `yaml:"jump_speed"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	HurtBlinkMs  float64 `yaml:"hurt_blink_ms"`
}

// LayerSpec configures the compositing of one z bucket.
type LayerSpec struct {
	Z         float64    `yaml:"z"`
	ParallaxX float64    `yaml:"parallax_x"`
	ParallaxY float64    `yaml:"parallax_y"`
	Alpha     float64    `yaml:"alpha"`
	Tint      *Color `yaml:"tint"`
}

type PlatformKind string

const (
	PlatformSolid  PlatformKind = "solid"
	PlatformOneWay PlatformKind = "oneway"
	PlatformMoving PlatformKind = "moving"
)

// PlatformSpec is an immovable body drawn with a repeated tile picture.
// Moving platforms travel back and forth by DX, DY over PeriodMs.
type PlatformSpec struct {
	Kind     PlatformKind `yaml:"kind"`
	X        float64      `yaml:"x"`
	Y        float64      `yaml:"y"`
	Width    float64      `yaml:"width"`
	Height   float64      `yaml:"height"`
	Tile     string       `yaml:"tile"`
	DX       float64      `yaml:"dx"`
	DY       float64      `yaml:"dy"`
	PeriodMs float64      `yaml:"period_ms"`
}

type CoinSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// EnemySpec is a walker patrolling between MinX and MaxX.
type EnemySpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
	MinX   float64 `yaml:"min_x"`
	MaxX   float64 `yaml:"max_x"`
}

type DecorationSpec struct {
	Picture string  `yaml:"picture"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Z       float64 `yaml:"z"`
}

// Color is a scene color written as an SVG name ("skyblue") or as #rrggbb
// with an optional alpha byte.
type Color struct {
	color.Color
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: color must be a name or a hex string", value.Line)
	}
	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}
	b, err := hex.DecodeString(strings.TrimPrefix(value.Value, "#"))
	if err != nil || (len(b) != 3 && len(b) != 4) {
		return fmt.Errorf("line %d: color %q is neither a name nor #rrggbb[aa]", value.Line, value.Value)
	}
	rgba := color.NRGBA{R: b[0], G: b[1], B: b[2], A: 0xff}
	if len(b) == 4 {
		rgba.A = b[3]
	}
	c.Color = rgba
	return nil
}
