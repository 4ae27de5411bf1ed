// Package config reads the tutorial programs' settings from the environment.
//
// Values are looked up through envy, so a .env file in the working directory
// is honored as well as the process environment.
package config

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gobuffalo/envy"
	log "github.com/sirupsen/logrus"
)

const (
	KeyWindowTitle    = "HAL_WINDOW_TITLE"
	KeyWindowWidth    = "HAL_WINDOW_WIDTH"
	KeyWindowHeight   = "HAL_WINDOW_HEIGHT"
	KeyValidation     = "HAL_VALIDATION"
	KeyLogLevel       = "HAL_LOG_LEVEL"
	KeyShaderCompiler = "HAL_GLSLC"
)

type Config struct {
	WindowTitle string
	Width       int
	Height      int

	// Validation enables VK_LAYER_KHRONOS_validation and routes its
	// messages to the logger.
	Validation bool
	LogLevel   log.Level

	// ShaderCompiler is the GLSL to SPIR-V compiler executable.
	ShaderCompiler string
}

// Defaults returns the configuration used when nothing is set in the environment.
func Defaults(title string, width, height int) Config {
	return Config{
		WindowTitle:    title,
		Width:          width,
		Height:         height,
		Validation:     false,
		LogLevel:       log.InfoLevel,
		ShaderCompiler: "glslc",
	}
}

// Load overlays environment settings on top of defaults.
func Load(defaults Config) (Config, error) {
	cfg := defaults
	cfg.WindowTitle = stringValue(KeyWindowTitle, defaults.WindowTitle)
	cfg.ShaderCompiler = stringValue(KeyShaderCompiler, defaults.ShaderCompiler)

	var err error
	cfg.Width, err = intValue(KeyWindowWidth, defaults.Width)
	if err != nil {
		return cfg, err
	}

	cfg.Height, err = intValue(KeyWindowHeight, defaults.Height)
	if err != nil {
		return cfg, err
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, errors.Newf("config: window size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}

	if raw := envy.Get(KeyValidation, ""); raw != "" {
		cfg.Validation, err = strconv.ParseBool(raw)
		if err != nil {
			return cfg, errors.Wrapf(err, "config: %s", KeyValidation)
		}
	}

	if raw := envy.Get(KeyLogLevel, ""); raw != "" {
		cfg.LogLevel, err = log.ParseLevel(raw)
		if err != nil {
			return cfg, errors.Wrapf(err, "config: %s", KeyLogLevel)
		}
	}

	return cfg, nil
}

// ConfigureLogging applies the configured level to the standard logrus logger.
func (c Config) ConfigureLogging() {
	log.SetLevel(c.LogLevel)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

// Empty values count as unset.
func stringValue(key, fallback string) string {
	if raw := envy.Get(key, ""); raw != "" {
		return raw
	}
	return fallback
}

func intValue(key string, fallback int) (int, error) {
	raw := envy.Get(key, "")
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "config: %s", key)
	}

	return value, nil
}
