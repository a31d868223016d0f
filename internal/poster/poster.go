// Package poster downloads poster images into a local cache directory.
//
// Poster artwork is cosmetic. Every failure here wraps
// services.ErrPosterFetch so callers can log it and fall back to a
// placeholder without interrupting whatever they were doing.
package poster

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cinelog/internal/services"
)

const defaultTimeout = 15 * time.Second

// Cache fetches poster images over HTTP and stores them under a cache
// directory, keyed by URL. Fetching the same URL twice hits the disk copy.
type Cache struct {
	dir    string
	client *http.Client
	logger *slog.Logger
}

// Option customizes a Cache.
type Option func(*Cache)

// WithHTTPClient replaces the HTTP client used for downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Cache) {
		if client != nil {
			c.client = client
		}
	}
}

// NewCache creates a poster cache rooted at dir, creating it if needed.
func NewCache(dir string, logger *slog.Logger, opts ...Option) (*Cache, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "poster", "new cache", "cache directory is required", nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "poster", "new cache", dir, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	cache := &Cache{
		dir:    dir,
		client: &http.Client{Timeout: defaultTimeout},
		logger: logger.With("component", "poster"),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache, nil
}

// Fetch returns the local path of the poster at rawURL, downloading it on
// the first call. An empty rawURL returns "" with no error; there is simply
// no artwork for the record.
func (c *Cache) Fetch(ctx context.Context, rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", nil
	}
	path := c.cachePath(rawURL)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", services.Wrap(services.ErrPosterFetch, "poster", "build request", rawURL, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrPosterFetch, "poster", "download", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", services.Wrap(services.ErrPosterFetch, "poster", "download",
			fmt.Sprintf("%s returned status %d", rawURL, resp.StatusCode), nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrPosterFetch, "poster", "read body", rawURL, err)
	}
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return "", services.Wrap(services.ErrPosterFetch, "poster", "store", path, err)
	}
	c.logger.Debug("poster cached", "url", rawURL, "path", path, "bytes", len(data))
	return path, nil
}

func (c *Cache) cachePath(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	// The extension comes from the URL path only; query strings must not
	// leak into the cache filename.
	ext := ""
	if parsed, err := url.Parse(rawURL); err == nil {
		ext = filepath.Ext(parsed.Path)
	}
	return filepath.Join(c.dir, hex.EncodeToString(sum[:16])+ext)
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "poster-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
