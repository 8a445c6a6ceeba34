package spotlight

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tanema/gween/ease"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Configuration errors. Validate wraps these with the offending field.
var (
	ErrNoRegions     = errors.New("no regions configured")
	ErrInvalidRegion = errors.New("invalid region")
	ErrInvalidTuning = errors.New("invalid tuning")
)

// Default tuning.
const (
	DefaultDimAlpha       = 0.7
	DefaultEasePos        = 0.18
	DefaultEaseRadiusUp   = 0.16
	DefaultEaseRadiusDown = 0.08
	DefaultEaseOverlay    = 0.12
	DefaultDwell          = 1200 * time.Millisecond
	DefaultTransition     = 350 * time.Millisecond
	DefaultStartDelay     = 2 * time.Second
)

// Config is the construction-time configuration of a Stage.
type Config struct {
	// Regions are resolution-independent definitions, checked in order.
	Regions []RegionDef `yaml:"regions"`
	// PixelRegions are authored in pixels against ImageSize and appended
	// after Regions.
	PixelRegions []PixelRegion `yaml:"pixel_regions"`
	ImageSize    ImageSize     `yaml:"image_size"`

	DimAlpha       float64   `yaml:"dim_alpha"`
	EasePos        float64   `yaml:"ease_pos"`
	EaseRadiusUp   float64   `yaml:"ease_radius_up"`
	EaseRadiusDown float64   `yaml:"ease_radius_down"`
	EaseOverlay    float64   `yaml:"ease_overlay"`
	OverlayColor   YAMLColor `yaml:"overlay_color"`
	// Falloff names the curve between cutout gradient stops; see Falloffs.
	Falloff        string    `yaml:"falloff"`

	Sequence SequenceConfig `yaml:"sequence"`
}

// ImageSize is the pixel size PixelRegions were authored against.
type ImageSize struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SequenceConfig times the guided tour. Durations are YAML strings such as
// "1200ms".
type SequenceConfig struct {
	Dwell      time.Duration `yaml:"dwell"`
	Transition time.Duration `yaml:"transition"`
	StartDelay time.Duration `yaml:"start_delay"`
	AutoPlay   bool          `yaml:"autoplay"`
}

// DefaultConfig returns a Config with default tuning and no regions.
func DefaultConfig() Config {
	return Config{
		DimAlpha:       DefaultDimAlpha,
		EasePos:        DefaultEasePos,
		EaseRadiusUp:   DefaultEaseRadiusUp,
		EaseRadiusDown: DefaultEaseRadiusDown,
		EaseOverlay:    DefaultEaseOverlay,
		OverlayColor:   YAMLColor(ColorBlack),
		Falloff:        "linear",
		Sequence: SequenceConfig{
			Dwell:      DefaultDwell,
			Transition: DefaultTransition,
			StartDelay: DefaultStartDelay,
		},
	}
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("spotlight: load %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("spotlight: %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
// Omitted fields keep their defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RegionDefs returns all region definitions as fractions, in configuration
// order.
func (c *Config) RegionDefs() []RegionDef {
	defs := make([]RegionDef, 0, len(c.Regions)+len(c.PixelRegions))
	defs = append(defs, c.Regions...)
	if len(c.PixelRegions) > 0 {
		defs = append(defs, RegionsFromPixels(c.PixelRegions, c.ImageSize.Width, c.ImageSize.Height)...)
	}
	return defs
}

// Validate reports the first configuration error found.
func (c *Config) Validate() error {
	if len(c.PixelRegions) > 0 && (c.ImageSize.Width <= 0 || c.ImageSize.Height <= 0) {
		return fmt.Errorf("%w: pixel_regions need a positive image_size", ErrInvalidRegion)
	}
	defs := c.RegionDefs()
	if len(defs) == 0 {
		return ErrNoRegions
	}
	for i, d := range defs {
		if !(d.R > 0) {
			return fmt.Errorf("%w: region %d (%s): radius must be positive, got %v", ErrInvalidRegion, i, d.Name, d.R)
		}
		if !inUnit(d.X) || !inUnit(d.Y) || d.R > 1 {
			return fmt.Errorf("%w: region %d (%s): fractions out of range (%v, %v, %v)", ErrInvalidRegion, i, d.Name, d.X, d.Y, d.R)
		}
	}

	if !inUnit(c.DimAlpha) {
		return fmt.Errorf("%w: dim_alpha %v outside [0, 1]", ErrInvalidTuning, c.DimAlpha)
	}
	eases := []struct {
		name string
		v    float64
	}{
		{"ease_pos", c.EasePos},
		{"ease_radius_up", c.EaseRadiusUp},
		{"ease_radius_down", c.EaseRadiusDown},
		{"ease_overlay", c.EaseOverlay},
	}
	for _, e := range eases {
		if !(e.v > 0 && e.v <= 1) {
			return fmt.Errorf("%w: %s %v outside (0, 1]", ErrInvalidTuning, e.name, e.v)
		}
	}
	if _, ok := Falloffs[c.Falloff]; !ok && c.Falloff != "" {
		return fmt.Errorf("%w: unknown falloff %q", ErrInvalidTuning, c.Falloff)
	}
	s := c.Sequence
	if s.Dwell < 0 || s.Transition < 0 || s.StartDelay < 0 {
		return fmt.Errorf("%w: sequence durations must not be negative", ErrInvalidTuning)
	}
	return nil
}

// Falloffs maps falloff names to gradient easing curves.
var Falloffs = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-out-sine":  ease.InOutSine,
}

// FalloffFunc returns the configured falloff curve, ease.Linear when unset.
func (c *Config) FalloffFunc() ease.TweenFunc {
	if fn, ok := Falloffs[c.Falloff]; ok {
		return fn
	}
	return ease.Linear
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}

// YAMLColor decodes "#rrggbb", "#rrggbbaa" or an SVG color name such as
// "midnightblue".
type YAMLColor Color

// Color returns c as a Color.
func (c YAMLColor) Color() Color {
	return Color(c)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	*c = YAMLColor(parsed)
	return nil
}

// ParseColor parses a hex color or an SVG color name.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return Color{
			R: float64(named.R) / 255,
			G: float64(named.G) / 255,
			B: float64(named.B) / 255,
			A: float64(named.A) / 255,
		}, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid color format: %s", s)
	}
	var ch [4]float64
	ch[3] = 1
	for i := 0; i < len(hex)/2; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color format: %s: %w", s, err)
		}
		ch[i] = float64(v) / 255
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
