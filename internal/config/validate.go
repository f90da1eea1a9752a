package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateWhisper()
}

func (c *Config) validatePaths() error {
	if c.Paths.DBPath == "" {
		return errors.New("paths.db_path must be set")
	}
	if c.Paths.AudioCacheDir == "" {
		return errors.New("paths.audio_cache_dir must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
}

var whisperModels = map[string]struct{}{
	"tiny":     {},
	"base":     {},
	"small":    {},
	"medium":   {},
	"large-v2": {},
	"large-v3": {},
}

func (c *Config) validateWhisper() error {
	if _, ok := whisperModels[c.Whisper.Model]; !ok {
		return fmt.Errorf("whisper.model %q is not a recognized model size", c.Whisper.Model)
	}
	return nil
}
