// Package config loads the optional YAML settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/andareed/siftly-trend/axis"
	"github.com/andareed/siftly-trend/logging"
)

type ZoomConfig struct {
	MinScale float64 `yaml:"minScale"`
	MaxScale float64 `yaml:"maxScale"`
	Step     float64 `yaml:"step"` // factor applied per key press or wheel notch
}

type AxisConfig struct {
	Spacing    int `yaml:"spacing"`    // columns per value axis
	BaseMargin int `yaml:"baseMargin"` // columns left of the first axis
	Ticks      int `yaml:"ticks"`
}

type LogConfig struct {
	MaxSizeMB  int  `yaml:"maxSizeMB"`
	MaxBackups int  `yaml:"maxBackups"`
	Compress   bool `yaml:"compress"`
	Debug      bool `yaml:"debug"`
}

type Configuration struct {
	CorrelationWindow time.Duration `yaml:"correlationWindow"` // half width around the pinned cursor
	Timezone          string        `yaml:"timezone"`          // zone for timestamps without an offset, empty means local
	Zoom              ZoomConfig    `yaml:"zoom"`
	Axis              AxisConfig    `yaml:"axis"`
	Log               LogConfig     `yaml:"log"`
	Palette           []string      `yaml:"palette"`

	location *time.Location
}

// DefaultPalette is the ten colour category scheme tags cycle through.
var DefaultPalette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

func Default() Configuration {
	return Configuration{
		CorrelationWindow: time.Hour,
		Zoom:              ZoomConfig{MinScale: axis.DefaultMinScale, MaxScale: axis.DefaultMaxScale, Step: 1.25},
		Axis:              AxisConfig{Spacing: 9, BaseMargin: 1, Ticks: 5},
		Log:               LogConfig{MaxSizeMB: 10, MaxBackups: 3},
		Palette:           append([]string(nil), DefaultPalette...),
		location:          time.Local,
	}
}

// ReadConfigFile reads fileName over the defaults. A missing file is not an error.
func ReadConfigFile(fileName string) (Configuration, error) {
	if fileName == "" {
		return Default(), nil
	}
	yamlData, err := os.ReadFile(fileName)
	if errors.Is(err, os.ErrNotExist) {
		logging.Infof("config: %s not found, using defaults", fileName)
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("error reading config %s: %w", fileName, err)
	}
	return ExtractConfigData(yamlData)
}

// ExtractConfigData parses yamlData, fills unset fields from Default and validates.
func ExtractConfigData(yamlData []byte) (Configuration, error) {
	config := Default()
	if err := yaml.Unmarshal(yamlData, &config); err != nil {
		logging.Errorf("config: error parsing yaml err=%v", err)
		return Default(), fmt.Errorf("error parsing config: %w", err)
	}

	def := Default()
	if config.Axis.Spacing <= 0 {
		config.Axis.Spacing = def.Axis.Spacing
	}
	if config.Axis.BaseMargin < 0 {
		config.Axis.BaseMargin = def.Axis.BaseMargin
	}
	if config.Axis.Ticks <= 0 {
		config.Axis.Ticks = def.Axis.Ticks
	}
	if config.Zoom.Step <= 1 {
		config.Zoom.Step = def.Zoom.Step
	}
	if len(config.Palette) == 0 {
		config.Palette = def.Palette
	}

	if err := config.Validate(); err != nil {
		return Default(), err
	}
	return config, nil
}

// Validate checks the values that cannot be defaulted silently and resolves the timezone.
func (c *Configuration) Validate() error {
	if c.CorrelationWindow <= 0 {
		return fmt.Errorf("correlationWindow must be positive, got %s", c.CorrelationWindow)
	}
	if c.Zoom.MinScale <= 0 {
		return fmt.Errorf("zoom.minScale must be positive, got %v", c.Zoom.MinScale)
	}
	if c.Zoom.MaxScale < c.Zoom.MinScale {
		return fmt.Errorf("zoom.maxScale %v is below zoom.minScale %v", c.Zoom.MaxScale, c.Zoom.MinScale)
	}
	if c.Timezone == "" {
		c.location = time.Local
		return nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	c.location = loc
	return nil
}

// Location is the zone zone-less timestamps are read in.
func (c Configuration) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// ZoomBounds is the zoom clamp for the time axis.
func (c Configuration) ZoomBounds() axis.Bounds {
	return axis.Bounds{Min: c.Zoom.MinScale, Max: c.Zoom.MaxScale}
}

// LogOptions turns the log section into logging options for file.
func (c Configuration) LogOptions(file string) logging.Options {
	return logging.Options{
		File:       file,
		Debug:      c.Log.Debug || file != "",
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		Compress:   c.Log.Compress,
	}
}
