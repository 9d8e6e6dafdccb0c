package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"asciify/pkg/asciiart"
	"asciify/pkg/logger"
	"asciify/pkg/raster"
	"asciify/pkg/utils"
)

const (
	EnvPrefix  = "ASCIIFY"
	ConfigName = "asciify"
)

// New returns a viper instance with defaults and environment binding in place.
// Callers may bind flags on it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the optional config file and unmarshals the result.
// With file empty, ./asciify.{yaml,yml,json,toml} is used if present.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		logger.LogDebug("Config file not found. Using environment variables and defaults.")
	} else {
		logger.LogDebug("Using config file %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.start_message", true)
	v.SetDefault("app.quiet", false)
	v.SetDefault("app.verbose", false)

	// Render
	v.SetDefault("render.columns", asciiart.DefaultColumns)
	v.SetDefault("render.palette", asciiart.DefaultPaletteString)
	v.SetDefault("render.cell_width", asciiart.DefaultCellWidth)
	v.SetDefault("render.cell_height", asciiart.DefaultCellHeight)
	v.SetDefault("render.font", raster.FaceBasic)
	v.SetDefault("render.filter", asciiart.DefaultFilter)

	// Input
	v.SetDefault("input.max_file_size", "64MB")

	// Output
	v.SetDefault("output.root", "")
	v.SetDefault("output.text", false)
	v.SetDefault("output.print", false)
}

func (c *Config) Validate() error {
	if c.Render.Columns <= 0 {
		return fmt.Errorf("%w: render.columns must be positive, got %d", asciiart.ErrInvalidDimension, c.Render.Columns)
	}
	if _, err := asciiart.ParsePalette(c.Render.Palette); err != nil {
		return fmt.Errorf("invalid render.palette: %w", err)
	}
	if err := c.Cell().Validate(); err != nil {
		return fmt.Errorf("invalid render.cell_width/cell_height: %w", err)
	}
	if _, err := asciiart.ParseFilter(c.Render.Filter); err != nil {
		return fmt.Errorf("invalid render.filter: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(c.Render.Font)) {
	case "", raster.FaceBasic, raster.FaceMono:
	default:
		if _, err := os.Stat(c.Render.Font); err != nil {
			return fmt.Errorf("invalid render.font %q: %w", c.Render.Font, err)
		}
	}

	if _, err := utils.ParseSize(c.Input.MaxFileSize); err != nil {
		return fmt.Errorf("invalid input.max_file_size: %w", err)
	}

	if c.App.Quiet && c.App.Verbose {
		logger.LogWarn("Both quiet and verbose are set; quiet wins.")
	}
	return nil
}

// Cell returns the configured character cell.
func (c *Config) Cell() asciiart.Cell {
	return asciiart.Cell{Width: c.Render.CellWidth, Height: c.Render.CellHeight}
}

// MaxFileBytes returns input.max_file_size in bytes.
func (c *Config) MaxFileBytes() int64 {
	return utils.SizeToBytes(c.Input.MaxFileSize, 64<<20)
}
