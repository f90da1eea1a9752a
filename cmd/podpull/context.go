package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"

	"podpull/internal/audiocache"
	"podpull/internal/config"
	"podpull/internal/export"
	"podpull/internal/httpfetch"
	"podpull/internal/ingest"
	"podpull/internal/logging"
	"podpull/internal/rss"
	"podpull/internal/store"
	"podpull/internal/transcribe"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) newLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

func (c *commandContext) openStore() (*store.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg.Paths.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open episode store: %w", err)
	}
	return st, nil
}

// newIngestor wires the full acquisition pipeline: feed source,
// transcript fetcher, audio cache, and transcription service.
func (c *commandContext) newIngestor(st *store.Store, logger *slog.Logger) (*ingest.Ingestor, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	fetchTimeout := time.Duration(cfg.Scrape.FetchTimeout) * time.Second
	downloadTimeout := time.Duration(cfg.Scrape.DownloadTimeout) * time.Second

	cache := audiocache.New(cfg.Paths.AudioCacheDir, httpfetch.New(downloadTimeout), logger)
	if isTerminal(os.Stderr) {
		cache = cache.WithProgress(os.Stderr)
	}

	return &ingest.Ingestor{
		Source:      rss.NewSource(fetchTimeout),
		Store:       st,
		Transcripts: httpfetch.New(fetchTimeout),
		Audio:       cache,
		Transcriber: transcribe.NewService(transcribe.Config{
			Model:       cfg.Whisper.Model,
			CUDAEnabled: cfg.Whisper.CUDAEnabled,
		}, logger),
		MaxEpisodes: cfg.Scrape.MaxEpisodes,
		Logger:      logger,
	}, nil
}

func (c *commandContext) exportOptions() (export.Options, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return export.Options{}, err
	}
	return export.Options{
		LookbackHours:      cfg.Export.LookbackHours,
		MaxEpisodesTotal:   cfg.Export.MaxEpisodesTotal,
		MaxEpisodesPerFeed: cfg.Export.MaxEpisodesPerFeed,
		ExcerptChars:       cfg.Export.ExcerptChars,
	}, nil
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
