package audiocache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"podpull/internal/httpfetch"
	"podpull/internal/logging"
)

const (
	downloadChunkSize = 256 * 1024
	defaultExtension  = ".mp3"
)

var knownExtensions = []string{".mp3", ".m4a", ".ogg", ".wav", ".mp4"}

// Cache downloads and retains episode audio files.
type Cache struct {
	dir      string
	client   *httpfetch.Client
	logger   *slog.Logger
	progress io.Writer
}

// New creates a cache rooted at dir. Progress output is disabled until
// WithProgress is called.
func New(dir string, client *httpfetch.Client, logger *slog.Logger) *Cache {
	return &Cache{
		dir:    dir,
		client: client,
		logger: logging.NewComponentLogger(logger, "audiocache"),
	}
}

// WithProgress enables byte-level download progress on the given writer,
// typically stdout when it is a terminal.
func (c *Cache) WithProgress(w io.Writer) *Cache {
	c.progress = w
	return c
}

// Path computes the deterministic local path for an audio URL.
func (c *Cache) Path(audioURL string) string {
	sum := sha256.Sum256([]byte(audioURL))
	name := hex.EncodeToString(sum[:])[:16] + guessExtension(audioURL)
	return filepath.Join(c.dir, name)
}

// Acquire returns the local path for the audio URL, downloading it on a cache
// miss. Transport failures leave no file at the cache path.
func (c *Cache) Acquire(ctx context.Context, audioURL string) (string, error) {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure cache dir: %w", err)
	}

	localPath := c.Path(audioURL)
	if _, err := os.Stat(localPath); err == nil {
		c.logger.Debug("audio cache hit", logging.String("path", filepath.Base(localPath)))
		return localPath, nil
	}

	c.logger.Info("downloading audio", logging.String("url", audioURL))

	resp, err := c.client.Get(ctx, audioURL)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", audioURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("download %s: unexpected status %s", audioURL, resp.Status)
	}

	// Stream to a unique temp file, rename into place on success. Concurrent
	// acquirers for the same URL each write their own temp file; the rename
	// is atomic, so whichever finishes last simply replaces identical bytes.
	tmp, err := os.CreateTemp(c.dir, filepath.Base(localPath)+".*.partial")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := c.copyWithProgress(tmp, resp.Body, resp.ContentLength); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("download %s: %w", audioURL, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, localPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("finalize download: %w", err)
	}

	if info, err := os.Stat(localPath); err == nil {
		c.logger.Info("audio saved",
			logging.String("path", filepath.Base(localPath)),
			logging.Float64("size_mb", float64(info.Size())/(1024*1024)))
	}
	return localPath, nil
}

func (c *Cache) copyWithProgress(dst io.Writer, src io.Reader, total int64) error {
	buf := make([]byte, downloadChunkSize)
	var downloaded int64

	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, writeErr := dst.Write(buf[:n]); writeErr != nil {
				return writeErr
			}
			downloaded += int64(n)
			c.reportProgress(downloaded, total)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return readErr
		}
	}

	if c.progress != nil && downloaded > 0 {
		fmt.Fprintln(c.progress)
	}
	return nil
}

func (c *Cache) reportProgress(downloaded, total int64) {
	if c.progress == nil {
		return
	}
	mb := float64(downloaded) / (1024 * 1024)
	if total > 0 {
		pct := float64(downloaded) / float64(total) * 100
		fmt.Fprintf(c.progress, "\r  downloading %.1f MB (%.0f%%)", mb, pct)
		return
	}
	fmt.Fprintf(c.progress, "\r  downloading %.1f MB", mb)
}

func guessExtension(audioURL string) string {
	trimmed := strings.ToLower(audioURL)
	if idx := strings.IndexByte(trimmed, '?'); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	for _, ext := range knownExtensions {
		if strings.HasSuffix(trimmed, ext) {
			return ext
		}
	}
	return defaultExtension
}
