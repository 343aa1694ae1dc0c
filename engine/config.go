package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/threeview/engine/core"
	"github.com/spaghettifunk/threeview/engine/renderer/metadata"
	"github.com/spaghettifunk/threeview/engine/systems"
)

const DefaultConfigPath = "threeview.toml"

type Config struct {
	Viewer   ViewerConfig   `toml:"viewer"`
	Log      LogConfig      `toml:"log"`
	Geometry GeometryConfig `toml:"geometry"`
}

type ViewerConfig struct {
	// The application name used in log output.
	Name string `toml:"name"`
	// Scene document loaded on start, if any.
	Scene string `toml:"scene"`
	// Reload the scene when its file changes on disk.
	Watch bool `toml:"watch"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type GeometryConfig struct {
	MinRadialSegments uint32 `toml:"min_radial_segments"`
	MaxRadialSegments uint32 `toml:"max_radial_segments"`
}

func DefaultConfig() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Name:  "3D JSON Model Viewer",
			Watch: true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Geometry: GeometryConfig{
			MinRadialSegments: systems.DefaultMinRadialSegments,
			MaxRadialSegments: systems.DefaultMaxRadialSegments,
		},
	}
}

/**
 * @brief Reads the TOML configuration at path on top of the defaults.
 * A missing file is not an error: the defaults are returned as they are.
 */
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			core.LogDebug("no config file at '%s', using defaults.", path)
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config '%s': %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Geometry.MinRadialSegments < 3 {
		return fmt.Errorf("geometry.min_radial_segments must be >= 3, got %d", c.Geometry.MinRadialSegments)
	}
	if c.Geometry.MaxRadialSegments < c.Geometry.MinRadialSegments {
		return fmt.Errorf("geometry.max_radial_segments (%d) must be >= geometry.min_radial_segments (%d)", c.Geometry.MaxRadialSegments, c.Geometry.MinRadialSegments)
	}
	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}
	return nil
}

func (c *Config) geometrySystemConfig() *metadata.GeometrySystemConfig {
	return &metadata.GeometrySystemConfig{
		MinRadialSegments: c.Geometry.MinRadialSegments,
		MaxRadialSegments: c.Geometry.MaxRadialSegments,
	}
}
