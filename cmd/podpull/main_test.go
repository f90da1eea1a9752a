package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"podpull/internal/config"
	"podpull/internal/ingest"
	"podpull/internal/store"
	"podpull/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ndb_path = %q\naudio_cache_dir = %q\nlog_dir = %q\nfeeds_file = %q\n\n[whisper]\nmodel = %q\n\n[digest]\noutput_dir = %q\n",
		cfg.Paths.DBPath,
		cfg.Paths.AudioCacheDir,
		cfg.Paths.LogDir,
		cfg.Paths.FeedsFile,
		cfg.Whisper.Model,
		cfg.Digest.OutputDir,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func seedEpisode(t *testing.T, cfg *config.Config, id, feed, title, transcript string) {
	t.Helper()
	st := testsupport.MustOpenStore(t, cfg)
	published := "2026-03-14"
	testsupport.SaveEpisode(t, st, &store.Episode{
		ID:               id,
		FeedName:         feed,
		FeedURL:          "https://example.org/rss",
		Title:            title,
		PublishedAt:      &published,
		Transcript:       transcript,
		TranscriptSource: store.SourcePublisher,
		ScrapedAt:        time.Now().UTC(),
	})
}

func TestConfigInit(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "config.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
}

func TestConfigShow(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithWhisperModel("small"))
	out, _, err := runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, env.cfg.Paths.DBPath)
	requireContains(t, out, "small")
}

func TestListEmptyArchive(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"list"}, env.configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "No episodes stored yet")
}

func TestListShowsStoredEpisodes(t *testing.T) {
	env := setupCLITestEnv(t)
	seedEpisode(t, env.cfg, "ep-1", "Compiler Hour", "Linkers Revisited", "these are the transcript words")

	out, _, err := runCLI(t, []string{"list"}, env.configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "Compiler Hour")
	requireContains(t, out, "Linkers Revisited")
}

func TestExportFailsWithEmptyWindow(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(testsupport.BaseDir(env.cfg), "digest.txt")
	_, _, err := runCLI(t, []string{"export", "-o", target}, env.configPath)
	if err == nil {
		t.Fatal("export of an empty window should fail")
	}
	if _, statErr := os.Stat(target); !os.IsNotExist(statErr) {
		t.Fatal("no export file should be written for an empty window")
	}
}

func TestExportWritesDigest(t *testing.T) {
	env := setupCLITestEnv(t)
	transcript := strings.Repeat("the full conversation continues without interruption ", 250)
	seedEpisode(t, env.cfg, "ep-1", "Compiler Hour", "Linkers Revisited", transcript)

	target := filepath.Join(testsupport.BaseDir(env.cfg), "digest.txt")
	out, _, err := runCLI(t, []string{"export", "-o", target}, env.configPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, "Exported 1 episodes")

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	content := string(data)
	requireContains(t, content, "[Compiler Hour]: Linkers Revisited (2026-03-14)")
	if !strings.Contains(content, transcript) {
		t.Fatalf("text export must carry the full transcript (export %d chars, transcript %d chars)",
			len(content), len(transcript))
	}
	if strings.Contains(content, "[...]") {
		t.Fatal("text export must not elide transcripts")
	}
}

func TestScrapeUnknownGroup(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFeedsFile(t, env.cfg.Paths.FeedsFile, "[[groups.news]]\nname = \"Compiler Hour\"\nfeed_url = \"https://example.org/rss\"\n")

	_, _, err := runCLI(t, []string{"scrape", "-g", "sports"}, env.configPath)
	if err == nil {
		t.Fatal("scrape of an unknown group should fail")
	}
	if !errors.Is(err, ingest.ErrConfiguration) {
		t.Fatalf("expected a configuration error, got %v", err)
	}
	requireContains(t, err.Error(), "news")
}
