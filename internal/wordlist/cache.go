// internal/wordlist/cache.go
//
// Word list acquisition and on-disk caching.
// Responsibilities:
//   - Download the source word list over HTTP, retrying transient failures.
//   - Store it zstd-compressed under the user cache directory.
//   - Stream it back, decompressed, for the words package to normalize.
//
// The cache file is replaced atomically (temp file + rename), so a failed
// download never leaves a truncated cache behind.

package wordlist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
)

// DefaultSource is the public list the cache is populated from.
const DefaultSource = "https://github.com/dwyl/english-words/raw/master/words_alpha.txt"

const fileName = "words.zst"

var (
	ErrNoCacheDir   = errors.New("no cache directory could be determined")
	ErrInvalidCache = errors.New("cache not valid after download")
)

// Cache is a compressed local copy of a remote word list.
type Cache struct {
	Dir    string        // directory holding the cache file
	Source string        // URL of the plain-text list
	Client *http.Client  // HTTP client; http.DefaultClient when nil
	Retry  time.Duration // total time budget for download retries
}

// New returns a cache rooted at dir, or at <user cache dir>/wordler when dir
// is empty. An empty source means DefaultSource.
func New(dir, source string) (*Cache, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil || base == "" {
			return nil, ErrNoCacheDir
		}
		dir = filepath.Join(base, "wordler")
	}
	if source == "" {
		source = DefaultSource
	}
	return &Cache{Dir: dir, Source: source, Retry: 30 * time.Second}, nil
}

// Path is the location of the compressed cache file.
func (c *Cache) Path() string { return filepath.Join(c.Dir, fileName) }

// Open streams the cached list without attempting to fetch it.
func (c *Cache) Open() (io.ReadCloser, error) {
	f, err := os.Open(c.Path())
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return &decodedFile{Decoder: dec, f: f}, nil
}

type decodedFile struct {
	*zstd.Decoder
	f *os.File
}

func (d *decodedFile) Close() error {
	d.Decoder.Close()
	return d.f.Close()
}

// Load opens the cache, downloading it first if it is missing or unreadable.
func (c *Cache) Load(ctx context.Context) (io.ReadCloser, error) {
	rc, err := c.Open()
	if err == nil {
		return rc, nil
	}
	log.Info().Err(err).Str("path", c.Path()).Msg("word list cache unavailable, downloading")

	if err := c.Fetch(ctx); err != nil {
		return nil, err
	}
	rc, err = c.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCache, err)
	}
	return rc, nil
}

// Fetch downloads the source list, clobbering any existing cache.
func (c *Cache) Fetch(ctx context.Context) error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", c.Dir, err)
	}
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxElapsedTime = c.Retry

	attempt := 0
	op := func() error {
		attempt++
		err := c.download(ctx, client)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Str("source", c.Source).Msg("word list download failed")
		}
		return err
	}
	if err := backoff.Retry(op, backoff.WithContext(policy, ctx)); err != nil {
		return fmt.Errorf("download word list: %w", err)
	}
	log.Info().Str("path", c.Path()).Int("attempts", attempt).Msg("word list cached")
	return nil
}

// download performs one attempt. Client errors (4xx) are permanent.
func (c *Cache) download(ctx context.Context, client *http.Client) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Source, nil)
	if err != nil {
		return backoff.Permanent(err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %s", resp.Status)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return backoff.Permanent(err)
		}
		return err
	}

	tmp, err := os.CreateTemp(c.Dir, fileName+".*")
	if err != nil {
		return backoff.Permanent(err)
	}
	defer os.Remove(tmp.Name())

	enc, err := zstd.NewWriter(tmp, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		_ = tmp.Close()
		return backoff.Permanent(err)
	}
	if _, err := io.Copy(enc, resp.Body); err != nil {
		_ = enc.Close()
		_ = tmp.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		_ = tmp.Close()
		return backoff.Permanent(fmt.Errorf("compress: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return backoff.Permanent(err)
	}
	return os.Rename(tmp.Name(), c.Path())
}
