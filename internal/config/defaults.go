package config

const (
	defaultConfigPath      = "~/.config/podpull/config.toml"
	defaultDBPath          = "~/.local/share/podpull/podcasts.db"
	defaultAudioCacheDir   = "~/.local/share/podpull/audio_cache"
	defaultLogDir          = "~/.local/share/podpull/logs"
	defaultFeedsFile       = "~/.config/podpull/feeds.toml"
	defaultLogLevel        = "info"
	defaultLogFormat       = "console"
	defaultMaxEpisodes     = 10
	defaultFetchTimeout    = 30
	defaultDownloadTimeout = 600
	defaultWhisperModel    = "base"
	defaultLookbackHours   = 168
	defaultMaxTotal        = 25
	defaultMaxPerFeed      = 5
	defaultExcerptChars    = 4000
	defaultDigestOutputDir = "/tmp/podpull_digest"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DBPath:        defaultDBPath,
			AudioCacheDir: defaultAudioCacheDir,
			LogDir:        defaultLogDir,
			FeedsFile:     defaultFeedsFile,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Scrape: Scrape{
			MaxEpisodes:     defaultMaxEpisodes,
			FetchTimeout:    defaultFetchTimeout,
			DownloadTimeout: defaultDownloadTimeout,
		},
		Whisper: Whisper{
			Model: defaultWhisperModel,
		},
		Export: Export{
			LookbackHours:      defaultLookbackHours,
			MaxEpisodesTotal:   defaultMaxTotal,
			MaxEpisodesPerFeed: defaultMaxPerFeed,
			ExcerptChars:       defaultExcerptChars,
		},
		Digest: Digest{
			OutputDir: defaultDigestOutputDir,
		},
	}
}
