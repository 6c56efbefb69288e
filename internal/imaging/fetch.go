package imaging

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/oglasna/internal/sanitize"
	"github.com/erazemk/oglasna/internal/store"
)

// DefaultMaxBytes caps the size of a fetched source image.
const DefaultMaxBytes = 10 << 20

// ErrTooLarge is returned when a source image exceeds the byte limit.
var ErrTooLarge = errors.New("image too large")

// Fetcher downloads remote images and caches their thumbnails in a Store.
type Fetcher struct {
	Client       *http.Client
	Store        store.Store
	MaxDimension int
	MaxBytes     int64
}

// NewFetcher creates a Fetcher caching into s.
func NewFetcher(s store.Store, maxDim int) *Fetcher {
	return &Fetcher{
		Client:       &http.Client{Timeout: 15 * time.Second},
		Store:        s,
		MaxDimension: maxDim,
		MaxBytes:     DefaultMaxBytes,
	}
}

// CacheKey returns the store key of the thumbnail for src.
func CacheKey(src string) string {
	sum := sha256.Sum256([]byte(src))
	return "thumbnail/" + hex.EncodeToString(sum[:])
}

// Thumbnail returns the JPEG thumbnail of the image at src, fetching and
// caching it on first use.
func (f *Fetcher) Thumbnail(ctx context.Context, src string) ([]byte, error) {
	if src == "" || !sanitize.ValidateURL(src) {
		return nil, fmt.Errorf("invalid image URL %q", src)
	}

	key := CacheKey(src)
	if f.Store != nil {
		cached, _, err := f.Store.Get(ctx, key)
		if err != nil {
			slog.Warn("reading cached thumbnail", "key", key, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	thumb, err := f.fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	if f.Store != nil {
		// A concurrent request may have cached it first; either copy is fine.
		if _, err := f.Store.Put(ctx, key, thumb, 0); err != nil && !errors.Is(err, store.ErrConflict) {
			slog.Warn("caching thumbnail", "key", key, "error", err)
		}
	}
	return thumb, nil
}

func (f *Fetcher) fetch(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", src, resp.StatusCode)
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src, err)
	}
	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}

	return Thumbnail(bytes.NewReader(data), f.MaxDimension)
}
