package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when no -config flag is given.
const EnvPath = "XWGRID_CONFIG"

type Config struct {
	Source SourceConfig `yaml:"source"`
	Viewer ViewerConfig `yaml:"viewer"`
	Fill   FillConfig   `yaml:"fill"`
}

type SourceConfig struct {
	Path  string `yaml:"path"`
	Table string `yaml:"table"`
}

// ViewerConfig sizes the graphical view. Lengths are in pixels.
type ViewerConfig struct {
	Title           string `yaml:"title"`
	CellSize        int    `yaml:"cell_size"`
	RightPanelWidth int    `yaml:"right_panel_width"`
	MinHeight       int    `yaml:"min_height"`
	ButtonHeight    int    `yaml:"button_height"`
	Padding         int    `yaml:"padding"`
	ScrollSpeed     int    `yaml:"scroll_speed"`
}

type FillConfig struct {
	Delay     time.Duration `yaml:"delay"`
	AutoStart bool          `yaml:"auto_start"`
}

func defaults() Config {
	return Config{
		Source: SourceConfig{Table: "clues"},
		Viewer: ViewerConfig{
			Title:           "Crossword Visualizer",
			CellSize:        40,
			RightPanelWidth: 500,
			MinHeight:       1000,
			ButtonHeight:    50,
			Padding:         10,
			ScrollSpeed:     20,
		},
		Fill: FillConfig{Delay: 150 * time.Millisecond},
	}
}

// Default returns the built-in configuration.
func Default() Config {
	cfg := defaults()
	cfg.Normalize()
	return cfg
}

// Load reads a YAML config from path. Fields absent from the file keep their
// defaults; an empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize replaces out-of-range values with usable ones.
func (c *Config) Normalize() {
	d := defaults()
	c.Source.Path = strings.TrimSpace(c.Source.Path)
	c.Source.Table = strings.TrimSpace(c.Source.Table)
	if c.Source.Table == "" {
		c.Source.Table = d.Source.Table
	}

	v := &c.Viewer
	if strings.TrimSpace(v.Title) == "" {
		v.Title = d.Viewer.Title
	}
	if v.CellSize < 16 {
		v.CellSize = 16
	}
	if v.RightPanelWidth < 200 {
		v.RightPanelWidth = 200
	}
	if v.MinHeight < 0 {
		v.MinHeight = 0
	}
	if v.ButtonHeight < 30 {
		v.ButtonHeight = 30
	}
	if v.Padding < 0 {
		v.Padding = 0
	}
	if v.ScrollSpeed <= 0 {
		v.ScrollSpeed = d.Viewer.ScrollSpeed
	}

	if c.Fill.Delay < 0 {
		c.Fill.Delay = 0
	}
}
