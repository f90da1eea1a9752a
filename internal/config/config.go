package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and file location configuration.
type Paths struct {
	DBPath        string `toml:"db_path"`
	AudioCacheDir string `toml:"audio_cache_dir"`
	LogDir        string `toml:"log_dir"`
	FeedsFile     string `toml:"feeds_file"`
}

// Logging contains log output configuration.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Scrape contains ingestion tuning.
type Scrape struct {
	MaxEpisodes     int `toml:"max_episodes"`
	FetchTimeout    int `toml:"fetch_timeout"`    // seconds, transcript and feed fetches
	DownloadTimeout int `toml:"download_timeout"` // seconds, audio downloads
}

// Whisper contains transcription settings.
type Whisper struct {
	Model       string `toml:"model"`
	CUDAEnabled bool   `toml:"cuda_enabled"`
}

// Export contains defaults for transcript export.
type Export struct {
	LookbackHours      int `toml:"lookback_hours"`
	MaxEpisodesTotal   int `toml:"max_episodes_total"`
	MaxEpisodesPerFeed int `toml:"max_episodes_per_feed"`
	ExcerptChars       int `toml:"excerpt_chars"`
}

// Digest contains the optional downstream digest tool hand-off.
type Digest struct {
	Command   string `toml:"command"`
	OutputDir string `toml:"output_dir"`
}

// Config is the root configuration object.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Logging Logging `toml:"logging"`
	Scrape  Scrape  `toml:"scrape"`
	Whisper Whisper `toml:"whisper"`
	Export  Export  `toml:"export"`
	Digest  Digest  `toml:"digest"`
}

// Load reads configuration from the provided path, or from the default
// location when path is empty. A missing file is not an error; defaults apply.
// Returns the config, the resolved path, and whether a file was found.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// DefaultConfigPath returns the canonical config file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

func resolveConfigPath(path string) (string, bool, error) {
	candidate := strings.TrimSpace(path)
	if candidate == "" {
		candidate = defaultConfigPath
	}

	expanded, err := expandPath(candidate)
	if err != nil {
		return "", false, err
	}

	if _, statErr := os.Stat(expanded); statErr != nil {
		if errors.Is(statErr, fs.ErrNotExist) {
			// An explicitly requested config file must exist.
			if strings.TrimSpace(path) != "" {
				return "", false, fmt.Errorf("config file %s not found", expanded)
			}
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config %s: %w", expanded, statErr)
	}

	return expanded, true, nil
}

// EnsureDirectories creates every directory the pipeline writes to.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(c.Paths.DBPath),
		c.Paths.AudioCacheDir,
		c.Paths.LogDir,
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// ExpandPath resolves tilde shortcuts and returns an absolute path.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func expandPath(pathValue string) (string, error) {
	trimmed := strings.TrimSpace(pathValue)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		return filepath.Join(home, trimmed[2:]), nil
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", trimmed, err)
	}
	return abs, nil
}
