package audiocache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"podpull/internal/httpfetch"
	"podpull/internal/logging"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	return New(t.TempDir(), httpfetch.New(5*time.Second), logging.NewNop())
}

func TestPathIsDeterministic(t *testing.T) {
	cache := newTestCache(t)
	url := "https://cdn.example.org/episode-1.mp3"
	if cache.Path(url) != cache.Path(url) {
		t.Fatal("cache path not deterministic")
	}
	if cache.Path(url) == cache.Path("https://cdn.example.org/episode-2.mp3") {
		t.Fatal("distinct urls must map to distinct paths")
	}
}

func TestPathExtensionGuessing(t *testing.T) {
	cache := newTestCache(t)
	cases := []struct {
		url string
		ext string
	}{
		{"https://cdn.example.org/a.mp3", ".mp3"},
		{"https://cdn.example.org/a.M4A?sig=xyz", ".m4a"},
		{"https://cdn.example.org/a.ogg", ".ogg"},
		{"https://cdn.example.org/a.wav", ".wav"},
		{"https://cdn.example.org/a.mp4", ".mp4"},
		{"https://cdn.example.org/stream", ".mp3"},
	}
	for _, tc := range cases {
		if got := filepath.Ext(cache.Path(tc.url)); got != tc.ext {
			t.Errorf("Path(%q) extension = %q, want %q", tc.url, got, tc.ext)
		}
	}
}

func TestAcquireDownloadsOnceAndReusesCache(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("fake audio bytes"))
	}))
	defer server.Close()

	cache := newTestCache(t)
	url := server.URL + "/episode.mp3"

	first, err := cache.Acquire(context.Background(), url)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read cached file: %v", err)
	}
	if string(data) != "fake audio bytes" {
		t.Fatalf("cached content = %q", data)
	}

	second, err := cache.Acquire(context.Background(), url)
	if err != nil {
		t.Fatalf("second Acquire: %v", err)
	}
	if second != first {
		t.Fatalf("cache path changed: %q vs %q", first, second)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected exactly one network hit, got %d", hits.Load())
	}
}

func TestAcquireFailureLeavesNoCacheEntry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Advertise a body larger than what is sent, then cut the connection.
		w.Header().Set("Content-Length", "1000000")
		_, _ = w.Write([]byte("partial"))
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		conn, _, _ := w.(http.Hijacker).Hijack()
		conn.Close()
	}))
	defer server.Close()

	cache := newTestCache(t)
	url := server.URL + "/episode.mp3"

	if _, err := cache.Acquire(context.Background(), url); err == nil {
		t.Fatal("expected transport error")
	}
	if _, err := os.Stat(cache.Path(url)); !os.IsNotExist(err) {
		t.Fatal("failed download must not leave a cache entry")
	}

	// No stray partials either.
	entries, err := os.ReadDir(cache.dir)
	if err != nil {
		t.Fatalf("read cache dir: %v", err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".partial") {
			t.Fatalf("stray partial file left behind: %s", entry.Name())
		}
	}
}

func TestAcquireRejectsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	cache := newTestCache(t)
	if _, err := cache.Acquire(context.Background(), server.URL+"/episode.mp3"); err == nil {
		t.Fatal("expected error for 403 response")
	}
}
