// Package config loads the render style from a TOML or YAML file.
//
// Every key is optional; missing keys keep the values of [Default]:
//
//	[style]
//	scale = 200                # mm per logical unit
//	stroke_width = 0.005
//	emphasis_stroke_width = 0.01
//	muted_stroke = "#0000004d"
//	popup = "${totalDemerits}"
//
//	[dvi]
//	fonts = ["cmr10", "cmbx10"]
//
// Files ending in .yaml or .yml use the same keys.
package config

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/texscope/errors"
)

// Style controls how a layout is drawn. Sizes are in logical units of the
// normalized plane unless noted.
type Style struct {
	Scale               float64 `toml:"scale" yaml:"scale"` // mm per logical unit
	Font                string  `toml:"font" yaml:"font"`
	LabelSize           float64 `toml:"label_size" yaml:"label_size"`
	PopupSize           float64 `toml:"popup_size" yaml:"popup_size"`
	StrokeWidth         float64 `toml:"stroke_width" yaml:"stroke_width"`
	EmphasisStrokeWidth float64 `toml:"emphasis_stroke_width" yaml:"emphasis_stroke_width"`
	Stroke              string  `toml:"stroke" yaml:"stroke"`
	MutedStroke         string  `toml:"muted_stroke" yaml:"muted_stroke"`
	PopupFill           string  `toml:"popup_fill" yaml:"popup_fill"`
	Background          string  `toml:"background" yaml:"background"` // empty means transparent
	Label               string  `toml:"label" yaml:"label"`
	Popup               string  `toml:"popup" yaml:"popup"`
	PNGResolution       float64 `toml:"png_dpmm" yaml:"png_dpmm"` // dots per mm
}

// DVI configures the character dump parser.
type DVI struct {
	Fonts []string `toml:"fonts" yaml:"fonts"`
}

// Config is the whole configuration file.
type Config struct {
	Style Style `toml:"style" yaml:"style"`
	DVI   DVI   `toml:"dvi" yaml:"dvi"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Style: Style{
			Scale:               200,
			Font:                "lmroman10-regular",
			LabelSize:           0.03,
			PopupSize:           0.02,
			StrokeWidth:         0.005,
			EmphasisStrokeWidth: 0.01,
			Stroke:              "#000000",
			MutedStroke:         "#0000004d",
			PopupFill:           "#ffffff",
			Label:               "${breakpoint}",
			Popup:               "${totalDemerits}",
			PNGResolution:       4,
		},
		DVI: DVI{Fonts: []string{"cmr10"}},
	}
}

// Load reads path on top of Default. An empty path returns Default.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(path, &cfg)
	default:
		err = decodeTOML(path, &cfg)
	}
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

func decodeTOML(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "open %s", path)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	return nil
}

// Validate checks sizes are positive and colors parse.
func (c Config) Validate() error {
	s := c.Style
	positive := map[string]float64{
		"scale":                 s.Scale,
		"label_size":            s.LabelSize,
		"popup_size":            s.PopupSize,
		"stroke_width":          s.StrokeWidth,
		"emphasis_stroke_width": s.EmphasisStrokeWidth,
		"png_dpmm":              s.PNGResolution,
	}
	for key, v := range positive {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %g", key, v)
		}
	}
	colors := map[string]string{
		"stroke":       s.Stroke,
		"muted_stroke": s.MutedStroke,
		"popup_fill":   s.PopupFill,
	}
	if s.Background != "" {
		colors["background"] = s.Background
	}
	for key, v := range colors {
		if _, err := ParseColor(v); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

// ParseColor accepts #rgb, #rrggbb and #rrggbbaa.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
