package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeScrape()
	c.normalizeWhisper()
	c.normalizeExport()
	return c.normalizeDigest()
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DBPath) == "" {
		c.Paths.DBPath = defaultDBPath
	}
	if c.Paths.DBPath, err = expandPath(c.Paths.DBPath); err != nil {
		return fmt.Errorf("paths.db_path: %w", err)
	}
	if strings.TrimSpace(c.Paths.AudioCacheDir) == "" {
		c.Paths.AudioCacheDir = defaultAudioCacheDir
	}
	if c.Paths.AudioCacheDir, err = expandPath(c.Paths.AudioCacheDir); err != nil {
		return fmt.Errorf("paths.audio_cache_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.FeedsFile) == "" {
		c.Paths.FeedsFile = defaultFeedsFile
	}
	if c.Paths.FeedsFile, err = expandPath(c.Paths.FeedsFile); err != nil {
		return fmt.Errorf("paths.feeds_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}

func (c *Config) normalizeScrape() {
	if c.Scrape.MaxEpisodes <= 0 {
		c.Scrape.MaxEpisodes = defaultMaxEpisodes
	}
	if c.Scrape.FetchTimeout <= 0 {
		c.Scrape.FetchTimeout = defaultFetchTimeout
	}
	if c.Scrape.DownloadTimeout <= 0 {
		c.Scrape.DownloadTimeout = defaultDownloadTimeout
	}
}

func (c *Config) normalizeWhisper() {
	c.Whisper.Model = strings.TrimSpace(c.Whisper.Model)
	if c.Whisper.Model == "" {
		c.Whisper.Model = defaultWhisperModel
	}
}

func (c *Config) normalizeExport() {
	if c.Export.LookbackHours <= 0 {
		c.Export.LookbackHours = defaultLookbackHours
	}
	if c.Export.MaxEpisodesTotal <= 0 {
		c.Export.MaxEpisodesTotal = defaultMaxTotal
	}
	if c.Export.MaxEpisodesPerFeed <= 0 {
		c.Export.MaxEpisodesPerFeed = defaultMaxPerFeed
	}
	if c.Export.ExcerptChars <= 0 {
		c.Export.ExcerptChars = defaultExcerptChars
	}
}

func (c *Config) normalizeDigest() error {
	c.Digest.Command = strings.TrimSpace(c.Digest.Command)
	if strings.TrimSpace(c.Digest.OutputDir) == "" {
		c.Digest.OutputDir = defaultDigestOutputDir
	}
	var err error
	if c.Digest.OutputDir, err = expandPath(c.Digest.OutputDir); err != nil {
		return fmt.Errorf("digest.output_dir: %w", err)
	}
	return nil
}
